package layout

import "multicol/pkg/css"

// blockAlgorithm lays out one fragment of a block container: its in-flow
// block children, or the lines of a text node.
type blockAlgorithm struct {
	le    *LayoutEngine
	node  *Node
	space ConstraintSpace
	bt    *BreakToken
	b     *fragmentBuilder

	earlyBreak        *EarlyBreak
	ignoreEarlyBreaks bool

	isFragmentainer bool
	// bp is the border+padding of this fragment: the block-start side is
	// dropped when resuming, and fragmentainers have none.
	bp           css.BoxEdge
	contentWidth float64
	// offset is the block offset of the next piece of content, from the
	// border-box top of this fragment.
	offset float64
}

// layoutBlockFlow lays out node as a block container. When a break has to
// be moved earlier to honor break-avoid rules, the node is laid out again
// breaking at the remembered breakpoint.
func (le *LayoutEngine) layoutBlockFlow(node *Node, space ConstraintSpace, bt *BreakToken, boxType FragmentType) *LayoutResult {
	r := le.runBlockAlgorithm(node, space, bt, boxType, nil, false)
	if r.Status != StatusNeedsEarlierBreak {
		return r
	}
	le.logger.Debug("relayout with early break",
		zapNode("node", node), zapNode("break_before", r.EarlyBreak.Node))
	r = le.runBlockAlgorithm(node, space, bt, boxType, r.EarlyBreak, false)
	if r.Status != StatusNeedsEarlierBreak {
		return r
	}
	return le.runBlockAlgorithm(node, space, bt, boxType, nil, true)
}

func (le *LayoutEngine) runBlockAlgorithm(node *Node, space ConstraintSpace, bt *BreakToken, boxType FragmentType, earlyBreak *EarlyBreak, ignoreEarlyBreaks bool) *LayoutResult {
	a := &blockAlgorithm{
		le:                le,
		node:              node,
		space:             space,
		bt:                bt,
		b:                 newFragmentBuilder(node, space, boxType, bt),
		earlyBreak:        earlyBreak,
		ignoreEarlyBreaks: ignoreEarlyBreaks,
		isFragmentainer:   boxType == FragmentColumnBox || boxType == FragmentPageBox,
	}
	return a.layout()
}

func (a *blockAlgorithm) layout() *LayoutResult {
	if a.isFragmentainer {
		a.b.inlineSize = a.space.AvailableSize.Width
	} else {
		a.bp = a.node.borderPadding()
		a.b.border = a.node.Border
		if IsResumingLayout(a.bt) {
			a.bp.Top = 0
			a.b.border.Top = 0
		}
		a.b.inlineSize = a.le.resolveInlineSize(a.node, a.space)
	}
	a.contentWidth = max(a.b.inlineSize-a.bp.InlineSum(), 0)
	a.offset = a.bp.Top

	if a.node.Kind == NodeText {
		a.layoutLines()
	} else if a.layoutChildren() == BreakNeedsEarlierBreak {
		r := newResult(StatusNeedsEarlierBreak)
		r.EarlyBreak = a.b.earlyBreak
		return r
	}

	a.finishSizing()
	if a.b.needsBreakToken() {
		a.b.border.Bottom = 0
	}
	return a.b.toResult()
}

// layoutLines places the word-wrapped lines of a text node. A line never
// breaks; the break goes between lines.
func (a *blockAlgorithm) layoutLines() {
	lines := a.le.breakLines(a.node, a.contentWidth)
	start := 0
	if IsResumingLayout(a.bt) {
		start = a.bt.LinesConsumed
	}
	lh := a.node.LineHeight
	if len(lines) > 0 {
		a.b.propagateTallestUnbreakable(lh)
	}
	for i := start; i < len(lines); i++ {
		if a.space.HasKnownFragmentainerBlockSize() {
			fragmentainerOffset := a.space.FragmentainerOffsetAtBFC + a.offset
			capacity := fragmentainerCapacity(a.space)
			if fragmentainerOffset > 0 && fragmentainerOffset+lh > capacity {
				appeal := AppealPerfect
				if i == start {
					appeal = AppealLastResort
				}
				a.b.setBreakAppeal(appeal)
				a.b.propagateSpaceShortage(fragmentainerOffset + lh - capacity)
				a.b.linesConsumed = i
				a.b.brokeInside = true
				return
			}
		}
		line := &Fragment{
			Node:     a.node,
			Type:     FragmentLine,
			Size:     Size{Width: Snap(a.le.measure(a.node, lines[i])), Height: lh},
			Baseline: lineBaseline(a.node),
			Text:     lines[i],
		}
		a.b.addChild(line, Position{X: a.bp.Left, Y: a.offset})
		a.offset += lh
	}
	a.b.linesConsumed = len(lines)
	a.b.hasSeenAllChildren = true
}

// lineBaseline puts the alphabetic baseline at 80% of the em box, centred
// in the line.
func lineBaseline(n *Node) float64 {
	return Snap((n.LineHeight-n.FontSize)/2 + n.FontSize*0.8)
}

// layoutChildren lays out the block children, starting at the child the
// incoming break token points at.
func (a *blockAlgorithm) layoutChildren() BreakStatus {
	children := a.node.Children
	var tokens []*BreakToken
	start := 0
	if IsResumingLayout(a.bt) {
		tokens = a.bt.ChildTokens
		switch {
		case len(tokens) > 0:
			start = tokens[0].Node.index
		default:
			a.b.hasSeenAllChildren = true
			return BreakContinue
		}
	}

	var strut MarginStrut
	hasSeparation := false
	for i := start; i < len(children); i++ {
		child := children[i]
		childToken := findChildToken(tokens, child)

		if child.ColumnSpanAll && a.space.IsInColumnBFC {
			a.foundColumnSpanner(child)
			return BreakContinue
		}

		if a.earlyBreak != nil && isEarlyBreakTarget(a.earlyBreak, child) {
			a.b.addBreakBeforeChild(child, a.earlyBreak.Appeal, false)
			a.consumeRemainingSpace()
			return BreakBrokeBefore
		}

		marginTop := child.Margin.Top
		if IsResumingLayout(childToken) || (!hasSeparation && a.discardsStartMargin(childToken)) {
			marginTop = 0
		}
		strut.Append(marginTop)
		childOffset := a.offset + strut.Sum()

		childSpace := a.childSpace(child, childOffset)
		result := a.le.layoutChild(child, childSpace, childToken)

		if result.Status == StatusOutOfFragmentainerSpace {
			appeal := calculateBreakAppealBefore(a.space, child, a.b, hasSeparation)
			a.b.addBreakBeforeChild(child, appeal, false)
			a.consumeRemainingSpace()
			return BreakBrokeBefore
		}

		if a.space.HasBlockFragmentation() {
			fragmentainerOffset := a.space.FragmentainerOffsetAtBFC + childOffset
			switch breakBeforeChildIfNeeded(a.space, child, result, fragmentainerOffset, hasSeparation, a.b, a.ignoreEarlyBreaks) {
			case BreakNeedsEarlierBreak:
				return BreakNeedsEarlierBreak
			case BreakBrokeBefore:
				a.consumeRemainingSpace()
				return BreakBrokeBefore
			}
		}

		a.b.addResult(result, Position{X: a.bp.Left + child.Margin.Left, Y: childOffset})
		hasSeparation = true
		a.offset = childOffset + result.Fragment.Size.Height
		a.b.previousBreakAfter = effectiveBreakAfter(child)

		if result.ColumnSpanner != nil {
			return BreakContinue
		}
		if result.Fragment.BreakToken != nil {
			a.consumeRemainingSpace()
			return BreakContinue
		}
		strut = MarginStrut{}
		strut.Append(child.Margin.Bottom)
	}

	a.b.hasSeenAllChildren = true
	a.offset += strut.Sum()
	return BreakContinue
}

// foundColumnSpanner ends the column at a column-span:all child. Layout of
// this block resumes at the next sibling that is not a spanner.
func (a *blockAlgorithm) foundColumnSpanner(spanner *Node) {
	a.b.columnSpanner = spanner
	for next := spanner.NextSibling(); next != nil; next = next.NextSibling() {
		if next.ColumnSpanAll {
			continue
		}
		a.b.addBreakBeforeChild(next, AppealPerfect, true)
		return
	}
	a.b.hasSeenAllChildren = true
}

func findChildToken(tokens []*BreakToken, child *Node) *BreakToken {
	for _, t := range tokens {
		if t.Node == child {
			return t
		}
	}
	return nil
}

// discardsStartMargin reports whether the block-start margin of the first
// child in this fragment is truncated by the preceding break.
func (a *blockAlgorithm) discardsStartMargin(childToken *BreakToken) bool {
	if childToken != nil && childToken.IsBreakBefore && childToken.IsForcedBreak {
		return false
	}
	if a.isFragmentainer {
		return a.space.DiscardStartMargin
	}
	return IsResumingLayout(a.bt)
}

// consumeRemainingSpace makes a fragment that broke take up the rest of the
// fragmentainer.
func (a *blockAlgorithm) consumeRemainingSpace() {
	if a.space.HasKnownFragmentainerBlockSize() {
		a.offset = max(a.offset, fragmentainerSpaceAtBFCStart(a.space))
	}
}

func (a *blockAlgorithm) childSpace(child *Node, childOffset float64) ConstraintSpace {
	s := a.space
	s.AvailableSize = Size{
		Width:  max(a.contentWidth-child.Margin.InlineSum(), 0),
		Height: a.childAvailableBlockSize(),
	}
	if a.isFragmentainer {
		s.PercentageResolutionSize = a.space.PercentageResolutionSize
	} else {
		s.PercentageResolutionSize = Size{Width: a.contentWidth, Height: s.AvailableSize.Height}
	}
	s.FragmentainerOffsetAtBFC = a.space.FragmentainerOffsetAtBFC + childOffset
	s.IsAnonymous = child.Kind == NodeText
	s.IsNewFormattingContext = createsNewFormattingContext(child)
	if s.IsNewFormattingContext {
		s.IsInColumnBFC = false
	}
	s.DiscardStartMargin = false
	return s
}

// childAvailableBlockSize is the definite content-box block size, or
// Indefinite.
func (a *blockAlgorithm) childAvailableBlockSize() float64 {
	if a.isFragmentainer {
		return a.space.AvailableSize.Height
	}
	return resolveMainBlockLength(a.space, a.node.Height)
}

// finishSizing sets the block size of the fragment from its content, its
// specified sizes, and the space left in the fragmentainer.
func (a *blockAlgorithm) finishSizing() {
	b := a.b
	consumed := b.previousConsumed()
	if a.isFragmentainer {
		if a.space.HasKnownFragmentainerBlockSize() {
			b.blockSize = a.space.AvailableSize.Height
		} else {
			b.blockSize = a.offset
		}
		return
	}

	intrinsic := a.offset
	contentSize := consumed + intrinsic + a.node.borderPadding().Bottom
	total := computeBlockSize(a.node, a.space, contentSize)
	desired := total - consumed
	if !a.space.HasBlockFragmentation() {
		b.blockSize = max(desired, 0)
		return
	}
	finishFragmentation(a.space, a.b, desired, intrinsic, total == contentSize)
}

// finishFragmentation sizes a fragment in a fragmentation context. desired
// is the block size the node wants in this fragment, intrinsic the size of
// its content so far. When the size is set by content (contentBased) a
// fragment that broke inside may grow past desired.
func finishFragmentation(space ConstraintSpace, b *fragmentBuilder, desired, intrinsic float64, contentBased bool) {
	switch {
	case b.columnSpanner != nil:
		// Resumes after the spanner in the same outer fragmentainer.
		b.blockSize = intrinsic
	case !space.HasKnownFragmentainerBlockSize():
		if b.brokeInside {
			b.blockSize = intrinsic
		} else {
			b.blockSize = max(desired, 0)
		}
	case b.brokeInside:
		size := max(fragmentainerSpaceAtBFCStart(space), intrinsic)
		if !contentBased {
			size = min(size, desired)
		}
		b.blockSize = max(size, 0)
	default:
		spaceLeft := fragmentainerSpaceAtBFCStart(space)
		if desired <= spaceLeft {
			b.blockSize = max(desired, 0)
			return
		}
		size := max(min(desired, max(spaceLeft, intrinsic)), 0)
		b.blockSize = size
		if size < desired {
			b.didBreakSelf = true
			if size <= 0 && len(b.children) == 0 {
				b.setBreakAppeal(AppealLastResort)
			}
		}
	}
}

// effectiveBreakBefore joins the break-before of n with that of its first
// descendants in the same flow.
func effectiveBreakBefore(n *Node) css.BreakBetween {
	v := n.BreakBefore
	if n.Kind == NodeBlock && !n.IsMulticol() && len(n.Children) > 0 && !n.Children[0].ColumnSpanAll {
		v = joinBreakBetween(v, effectiveBreakBefore(n.Children[0]))
	}
	return v
}

// effectiveBreakAfter joins the break-after of the last descendants of n
// with its own.
func effectiveBreakAfter(n *Node) css.BreakBetween {
	v := n.BreakAfter
	if n.Kind == NodeBlock && !n.IsMulticol() && len(n.Children) > 0 {
		last := n.Children[len(n.Children)-1]
		if !last.ColumnSpanAll {
			v = joinBreakBetween(effectiveBreakAfter(last), v)
		}
	}
	return v
}
