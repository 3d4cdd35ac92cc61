package layout

import "multicol/pkg/css"

// breakPrecedence orders break-between values when the break-after of one
// box meets the break-before of the next: forced beats avoid beats auto.
func breakPrecedence(v css.BreakBetween) int {
	switch v {
	case css.BreakAuto:
		return 0
	case css.BreakAvoid, css.BreakAvoidColumn, css.BreakAvoidPage:
		return 1
	}
	return 2
}

// joinBreakBetween combines the break-after of the previous sibling with
// the break-before of the next. On equal precedence the later value wins.
func joinBreakBetween(after, before css.BreakBetween) css.BreakBetween {
	if breakPrecedence(after) > breakPrecedence(before) {
		return after
	}
	return before
}

// isForcedBreakValue reports whether v forces a break in the fragmentation
// context of space.
func isForcedBreakValue(space ConstraintSpace, v css.BreakBetween) bool {
	switch v {
	case css.BreakColumn:
		return space.FragmentationType == FragmentColumn
	case css.BreakPage, css.BreakLeft, css.BreakRight:
		return space.FragmentationType == FragmentPage
	case css.BreakAlways:
		return space.HasBlockFragmentation()
	}
	return false
}

func isAvoidBreakValue(space ConstraintSpace, v css.BreakBetween) bool {
	switch v {
	case css.BreakAvoid:
		return space.HasBlockFragmentation()
	case css.BreakAvoidColumn:
		return space.FragmentationType == FragmentColumn
	case css.BreakAvoidPage:
		return space.FragmentationType == FragmentPage
	}
	return false
}

func isAvoidBreakInside(space ConstraintSpace, v css.BreakInside) bool {
	switch v {
	case css.BreakInsideAvoid:
		return space.HasBlockFragmentation()
	case css.BreakInsideAvoidColumn:
		return space.FragmentationType == FragmentColumn
	case css.BreakInsideAvoidPage:
		return space.FragmentationType == FragmentPage
	}
	return false
}

// breakBetweenValue is the combined break value between the previous
// in-flow sibling and child.
func breakBetweenValue(child *Node, b *fragmentBuilder) css.BreakBetween {
	return joinBreakBetween(b.previousBreakAfter, effectiveBreakBefore(child))
}

// calculateBreakAppealBefore rates a break before child. Breaking before
// the first piece of content in a fragmentainer is a last resort.
func calculateBreakAppealBefore(space ConstraintSpace, child *Node, b *fragmentBuilder, hasContainerSeparation bool) BreakAppeal {
	if !hasContainerSeparation {
		return AppealLastResort
	}
	if isAvoidBreakValue(space, breakBetweenValue(child, b)) {
		return AppealViolatingBreakAvoid
	}
	return AppealPerfect
}

// calculateBreakAppealInside rates the break that result made inside child.
func calculateBreakAppealInside(space ConstraintSpace, child *Node, result *LayoutResult) BreakAppeal {
	appeal := result.BreakAppeal
	if isAvoidBreakInside(space, child.BreakInside) && appeal > AppealViolatingBreakAvoid {
		appeal = AppealViolatingBreakAvoid
	}
	return appeal
}

// breakBeforeChildIfNeeded decides whether to break before child, whose
// layout produced result at fragmentainerOffset. It returns BreakContinue
// when child should be added, BreakBrokeBefore after adding a break before
// child to b, and BreakNeedsEarlierBreak when b.earlyBreak has been set to
// a more appealing earlier breakpoint.
func breakBeforeChildIfNeeded(space ConstraintSpace, child *Node, result *LayoutResult, fragmentainerOffset float64, hasContainerSeparation bool, b *fragmentBuilder, ignoreEarlyBreaks bool) BreakStatus {
	if hasContainerSeparation && isForcedBreakValue(space, breakBetweenValue(child, b)) {
		b.addBreakBeforeChild(child, AppealPerfect, true)
		return BreakBrokeBefore
	}

	appealBefore := calculateBreakAppealBefore(space, child, b, hasContainerSeparation)
	if movePastBreakpoint(space, child, result, fragmentainerOffset, appealBefore, b) {
		return BreakContinue
	}

	if !ignoreEarlyBreaks && b.bestEarlyBreak != nil && b.bestEarlyBreak.Appeal > appealBefore {
		b.earlyBreak = b.bestEarlyBreak
		return BreakNeedsEarlierBreak
	}

	propagateSpaceShortage(space, result, fragmentainerOffset, b)
	b.addBreakBeforeChild(child, appealBefore, false)
	return BreakBrokeBefore
}

// movePastBreakpoint reports whether child can stay in the current
// fragmentainer. When it can, the breakpoint before child is remembered as
// a candidate for an early break.
func movePastBreakpoint(space ConstraintSpace, child *Node, result *LayoutResult, fragmentainerOffset float64, appealBefore BreakAppeal, b *fragmentBuilder) bool {
	if result.Fragment == nil {
		return false
	}
	if !space.HasKnownFragmentainerBlockSize() {
		// Strip layout: nothing breaks softly, so every child fits.
		if result.brokeInside() {
			b.setBreakAppeal(calculateBreakAppealInside(space, child, result))
		}
		return true
	}

	if result.brokeInside() {
		appealInside := calculateBreakAppealInside(space, child, result)
		if appealInside < appealBefore {
			// Breaking before child is better, unless there is nothing
			// before it.
			if appealBefore == AppealLastResort {
				b.setBreakAppeal(appealInside)
				return true
			}
			return false
		}
		b.setBreakAppeal(appealInside)
		return true
	}

	blockEnd := fragmentainerOffset + result.Fragment.Size.Height
	if blockEnd <= fragmentainerCapacity(space) {
		if appealBefore > AppealLastResort && (b.bestEarlyBreak == nil || appealBefore >= b.bestEarlyBreak.Appeal) {
			b.bestEarlyBreak = &EarlyBreak{Node: child, Appeal: appealBefore}
		}
		return true
	}

	// Monolithic content at the start of a fragmentainer overflows rather
	// than being pushed forever.
	return appealBefore == AppealLastResort || fragmentainerOffset <= 0
}

// propagateSpaceShortage records how much taller the fragmentainer would
// have to be for child to fit (or to break at a better place inside it).
func propagateSpaceShortage(space ConstraintSpace, result *LayoutResult, fragmentainerOffset float64, b *fragmentBuilder) {
	if result.brokeInside() {
		b.propagateSpaceShortage(result.MinimalSpaceShortage)
		return
	}
	if result.Fragment == nil {
		return
	}
	b.propagateSpaceShortage(fragmentainerOffset + result.Fragment.Size.Height - fragmentainerCapacity(space))
}

// isEarlyBreakTarget reports whether child is where eb wants to break.
func isEarlyBreakTarget(eb *EarlyBreak, child *Node) bool {
	return eb != nil && eb.Node == child
}
