package layout

import (
	"go.uber.org/zap"

	"multicol/pkg/css"
)

// columnAlgorithm lays out one fragment of a multicol container: rows of
// columns separated by column spanners.
type columnAlgorithm struct {
	le    *LayoutEngine
	node  *Node
	space ConstraintSpace
	bt    *BreakToken
	b     *fragmentBuilder

	earlyBreak *EarlyBreak

	// bp is the border+padding of this fragment; the block-start side is
	// zero when resuming.
	bp           css.BoxEdge
	contentWidth float64

	columnInlineSize        float64
	columnInlineProgression float64
	usedColumnCount         int
	// columnBlockSize is the content-box block size from height, min-height
	// and max-height, or Indefinite.
	columnBlockSize float64

	// isConstrainedByOuterFragmentationContext: the container sits in an
	// outer fragmentainer of known size, so rows can run out of space.
	isConstrainedByOuterFragmentationContext bool

	intrinsicBlockSize float64
	tallestUnbreakable float64

	hasProcessedFirstChild  bool
	hasProcessedFirstColumn bool
}

// layoutMulticol lays out a multicol container. If a spanner has to be
// pushed to an earlier breakpoint in the outer fragmentation context, the
// container is laid out again breaking there.
func (le *LayoutEngine) layoutMulticol(node *Node, space ConstraintSpace, bt *BreakToken) *LayoutResult {
	r := le.runColumnAlgorithm(node, space, bt, nil)
	if r.Status != StatusNeedsEarlierBreak {
		return r
	}
	le.logger.Debug("relayout multicol with early break",
		zapNode("node", node), zapNode("break_before", r.EarlyBreak.Node))
	return le.runColumnAlgorithm(node, space, bt, r.EarlyBreak)
}

func (le *LayoutEngine) runColumnAlgorithm(node *Node, space ConstraintSpace, bt *BreakToken, earlyBreak *EarlyBreak) *LayoutResult {
	a := &columnAlgorithm{
		le:         le,
		node:       node,
		space:      space,
		bt:         bt,
		b:          newFragmentBuilder(node, space, FragmentBox, bt),
		earlyBreak: earlyBreak,
	}
	return a.layout()
}

func (a *columnAlgorithm) layout() *LayoutResult {
	a.bp = a.node.borderPadding()
	a.b.border = a.node.Border
	if IsResumingLayout(a.bt) {
		a.bp.Top = 0
		a.b.border.Top = 0
	}
	a.b.inlineSize = a.le.resolveInlineSize(a.node, a.space)
	a.contentWidth = max(a.b.inlineSize-a.bp.InlineSum(), 0)

	a.columnBlockSize = initialContentBlockSize(a.node, a.space)
	a.columnInlineSize = ResolveUsedColumnInlineSize(a.contentWidth, a.node)
	a.columnInlineProgression = a.columnInlineSize + ResolveUsedColumnGap(a.node)
	a.usedColumnCount = ResolveUsedColumnCount(a.contentWidth, a.node)
	a.isConstrainedByOuterFragmentationContext = a.space.HasKnownFragmentainerBlockSize()
	a.intrinsicBlockSize = a.bp.Top

	switch a.layoutChildren() {
	case BreakNeedsEarlierBreak:
		r := newResult(StatusNeedsEarlierBreak)
		r.EarlyBreak = a.b.earlyBreak
		return r
	case BreakBrokeBefore:
		// Not even the first row fit. The parent breaks before us.
		return newResult(StatusOutOfFragmentainerSpace)
	}

	intrinsic := a.intrinsicBlockSize
	a.intrinsicBlockSize += a.node.borderPadding().Bottom

	consumed := a.b.previousConsumed()
	contentSize := consumed + a.intrinsicBlockSize
	total := computeBlockSize(a.node, a.space, contentSize)
	if !a.space.HasBlockFragmentation() {
		a.b.blockSize = max(total-consumed, 0)
	} else {
		finishFragmentation(a.space, a.b, total-consumed, intrinsic, total == contentSize)
	}
	if a.b.needsBreakToken() {
		a.b.border.Bottom = 0
	}
	return a.b.toResult()
}

// layoutChildren walks rows and spanners until everything is laid out or
// the outer fragmentainer is full.
func (a *columnAlgorithm) layoutChildren() BreakStatus {
	var strut MarginStrut
	walker := newMulticolPartWalker(a.node, a.bt)
	for !walker.IsFinished() {
		entry := walker.Current()

		if entry.Spanner == nil {
			result := a.layoutRow(entry.BreakToken, &strut)
			if result == nil {
				if a.intrinsicBlockSize > 0 {
					// Some content fit. Finish this fragment with what we
					// have and resume the row in the next one.
					a.b.didBreakSelf = true
					break
				}
				return BreakBrokeBefore
			}
			walker.Next()

			next := result.Fragment.BreakToken
			if result.ColumnSpanner != nil {
				walker.MoveToSpanner(result.ColumnSpanner, next)
				continue
			}
			if next != nil {
				// Column content continues in the next outer fragmentainer.
				walker.AddNextColumnBreakToken(next)
			}
			break
		}

		if isEarlyBreakTarget(a.earlyBreak, entry.Spanner) {
			break
		}

		status := a.layoutSpanner(entry.Spanner, entry.BreakToken, &strut)
		walker.Next()
		if status == BreakNeedsEarlierBreak {
			return status
		}
		if status == BreakBrokeBefore || a.b.brokeInside {
			break
		}
	}

	if !walker.IsFinished() || a.b.brokeInside {
		if a.space.HasKnownFragmentainerBlockSize() {
			a.intrinsicBlockSize = max(a.intrinsicBlockSize, fragmentainerSpaceAtBFCStart(a.space))
		}
		for ; !walker.IsFinished(); walker.Next() {
			entry := walker.Current()
			switch {
			case entry.BreakToken != nil:
				a.b.addBreakToken(entry.BreakToken)
				a.b.brokeInside = true
			case entry.Spanner != nil:
				a.b.addBreakBeforeChild(entry.Spanner, AppealPerfect, false)
			}
		}
		return BreakContinue
	}

	a.b.hasSeenAllChildren = true
	a.intrinsicBlockSize += strut.Sum()
	return BreakContinue
}

type columnPlacement struct {
	result *LayoutResult
	offset Position
}

// layoutRow lays out one row of columns resuming at nextColumnToken. It
// returns the result of the last column, or nil when there is no room for
// the row in the outer fragmentainer.
func (a *columnAlgorithm) layoutRow(nextColumnToken *BreakToken, strut *MarginStrut) *LayoutResult {
	columnSize := Size{Width: a.columnInlineSize, Height: a.columnBlockSize}

	// Margins don't collapse through rows.
	a.intrinsicBlockSize += strut.Sum()
	*strut = MarginStrut{}

	if isDefinite(columnSize.Height) {
		if a.bt != nil && a.isConstrainedByOuterFragmentationContext {
			columnSize.Height -= a.bt.ConsumedBlockSize
		}
		columnSize.Height = max(columnSize.Height-a.currentContentBlockOffset(), 0)
	}

	mayResumeInNextOuterFragmentainer := false
	zeroOuterSpaceLeft := false
	availableOuterSpace := Indefinite
	if a.isConstrainedByOuterFragmentationContext {
		availableOuterSpace = fragmentainerSpaceAtBFCStart(a.space) - a.intrinsicBlockSize
		if availableOuterSpace < 0 {
			return nil
		}
		zeroOuterSpaceLeft = availableOuterSpace == 0
		if !isDefinite(columnSize.Height) || columnSize.Height > availableOuterSpace {
			mayResumeInNextOuterFragmentainer = true
		}
	}

	balance := a.node.ColumnFill == css.ColumnFillBalance ||
		(!isDefinite(columnSize.Height) && !a.isConstrainedByOuterFragmentationContext)

	if balance {
		columnSize.Height = a.calculateBalancedColumnBlockSize(columnSize, nextColumnToken)
	} else if a.isConstrainedByOuterFragmentationContext {
		if !isDefinite(columnSize.Height) || columnSize.Height > availableOuterSpace {
			columnSize.Height = availableOuterSpace
		}
	}

	var columns []columnPlacement
	var result *LayoutResult
	for {
		columnToken := nextColumnToken
		// The start margin of the first child is kept at the start of the
		// multicol, and after a spanner.
		allowDiscardStartMargin := columnToken != nil && !columnToken.IsCausedByColumnSpanner
		hasViolatingBreak := false
		actualColumnCount := 0
		forcedBreakCount := 0
		minimalSpaceShortage := MaxLayoutSize
		inlineOffset := a.bp.Left

		for {
			space := a.columnSpace(columnSize, allowDiscardStartMargin, balance)
			result = a.le.layoutBlockFlow(a.node, space, columnToken, FragmentColumnBox)
			columns = append(columns, columnPlacement{result, Position{X: inlineOffset, Y: a.intrinsicBlockSize}})

			if shortage := result.MinimalSpaceShortage; shortage > 0 {
				minimalSpaceShortage = min(minimalSpaceShortage, shortage)
			}
			actualColumnCount++
			if result.HasForcedBreak {
				forcedBreakCount++
			}
			hasViolatingBreak = hasViolatingBreak || result.HasViolatingBreak
			inlineOffset += a.columnInlineProgression

			if result.ColumnSpanner != nil {
				break
			}
			columnToken = result.Fragment.BreakToken

			// Extra columns overflow inline, except in a nested fragmentation
			// context where the row continues in the next outer fragmentainer.
			if a.space.HasBlockFragmentation() && columnToken != nil &&
				actualColumnCount >= a.usedColumnCount && mayResumeInNextOuterFragmentainer {
				if zeroOuterSpaceLeft {
					return nil
				}
				a.b.setBreakAppeal(AppealPerfect)
				break
			}
			allowDiscardStartMargin = true
			if columnToken == nil {
				break
			}
		}

		if !balance {
			if result.ColumnSpanner != nil {
				// Content before a spanner is always balanced.
				balance = true
				columns = nil
				columnSize.Height = a.calculateBalancedColumnBlockSize(columnSize, nextColumnToken)
				continue
			}
			break
		}

		if !hasViolatingBreak && actualColumnCount <= a.usedColumnCount &&
			(columnToken == nil || result.ColumnSpanner != nil) {
			break
		}
		if minimalSpaceShortage == MaxLayoutSize {
			break
		}
		// Forced breaks need their own columns; stretching can't fix that.
		if actualColumnCount <= forcedBreakCount+1 {
			break
		}

		newSize := a.stretchColumnBlockSize(minimalSpaceShortage, columnSize.Height)
		if newSize <= columnSize.Height {
			if a.space.IsInsideBalancedColumns && !a.space.IsInitialColumnBalancingPass() {
				a.b.propagateSpaceShortage(minimalSpaceShortage)
			}
			break
		}
		a.le.logger.Debug("stretch columns",
			zapNode("multicol", a.node),
			zap.Float64("from", columnSize.Height),
			zap.Float64("to", newSize),
			zap.Int("columns", actualColumnCount),
			zap.Float64("shortage", minimalSpaceShortage))
		columns = nil
		columnSize.Height = newSize
	}

	isEmpty := len(columns) == 1 && len(columns[0].result.Fragment.Children) == 0
	if !isEmpty {
		a.hasProcessedFirstChild = true
		a.b.previousBreakAfter = css.BreakAuto
		if !a.hasProcessedFirstColumn {
			a.hasProcessedFirstColumn = true
			a.propagateBaselineFromChild(columns[0].result.Fragment, a.intrinsicBlockSize)
		}
	}

	a.intrinsicBlockSize += columnSize.Height
	for _, c := range columns {
		a.b.appendChild(c.result.Fragment, c.offset)
	}
	return result
}

// layoutSpanner lays out a column-span:all box across the full content
// width of the container.
func (a *columnAlgorithm) layoutSpanner(spanner *Node, bt *BreakToken, strut *MarginStrut) BreakStatus {
	margins := spanner.Margin
	if IsResumingLayout(bt) {
		margins.Top = 0
	}
	strut.Append(margins.Top)
	blockOffset := a.intrinsicBlockSize + strut.Sum()

	space := a.spannerSpace(spanner, blockOffset)
	// a.earlyBreak only ever names a spanner of this container. Early
	// breaks inside the spanner are found and taken by the spanner's own
	// block layout, which relays itself out.
	result := a.le.layoutChild(spanner, space, bt)

	if a.space.HasBlockFragmentation() && a.earlyBreak == nil {
		fragmentainerOffset := a.space.FragmentainerOffsetAtBFC + blockOffset
		if status := breakBeforeChildIfNeeded(a.space, spanner, result, fragmentainerOffset, a.hasProcessedFirstChild, a.b, false); status != BreakContinue {
			return status
		}
	}
	if result.Fragment == nil {
		// Out of space without a fragmentation context to break in.
		a.b.addBreakBeforeChild(spanner, AppealLastResort, false)
		return BreakBrokeBefore
	}

	offset := Position{X: a.bp.Left + margins.Left, Y: blockOffset}
	a.b.addResult(result, offset)
	a.b.previousBreakAfter = effectiveBreakAfter(spanner)

	*strut = MarginStrut{}
	strut.Append(margins.Bottom)
	a.intrinsicBlockSize = offset.Y + result.Fragment.Size.Height
	a.hasProcessedFirstChild = true
	return BreakContinue
}

func (a *columnAlgorithm) propagateBaselineFromChild(f *Fragment, blockOffset float64) {
	if a.b.hasBaseline() || !f.HasBaseline() {
		return
	}
	a.b.baseline = blockOffset + f.Baseline
}

// currentContentBlockOffset is the content-box offset of the next row.
func (a *columnAlgorithm) currentContentBlockOffset() float64 {
	return a.intrinsicBlockSize - a.bp.Top
}

func (a *columnAlgorithm) childAvailableBlockSize() float64 {
	return a.columnBlockSize
}

func (a *columnAlgorithm) columnPercentageResolutionSize() Size {
	return Size{Width: a.columnInlineSize, Height: a.childAvailableBlockSize()}
}

// columnSpace is the space for one column of the given size. Each column
// is a fragmentainer and starts its own block formatting context.
func (a *columnAlgorithm) columnSpace(size Size, allowDiscardStartMargin, balance bool) ConstraintSpace {
	s := NewConstraintSpace(size.Width, size.Height)
	s.PercentageResolutionSize = a.columnPercentageResolutionSize()
	s.FragmentationType = FragmentColumn
	s.FragmentainerBlockSize = max(size.Height, 1)
	s.IsAnonymous = true
	s.IsInColumnBFC = true
	s.IsInsideBalancedColumns = balance
	s.DiscardStartMargin = allowDiscardStartMargin
	return s
}

// balancingSpace lays the content out in columns of unlimited height, so
// only forced breaks and spanners end a column.
func (a *columnAlgorithm) balancingSpace(size Size) ConstraintSpace {
	s := NewConstraintSpace(size.Width, Indefinite)
	s.PercentageResolutionSize = a.columnPercentageResolutionSize()
	s.FragmentationType = FragmentColumn
	s.FragmentainerBlockSize = Indefinite
	s.IsAnonymous = true
	s.IsInColumnBFC = true
	s.IsInsideBalancedColumns = true
	return s
}

func (a *columnAlgorithm) spannerSpace(spanner *Node, blockOffset float64) ConstraintSpace {
	s := a.space
	s.AvailableSize = Size{
		Width:  max(a.contentWidth-spanner.Margin.InlineSum(), 0),
		Height: a.childAvailableBlockSize(),
	}
	s.PercentageResolutionSize = Size{Width: a.contentWidth, Height: a.childAvailableBlockSize()}
	if a.space.HasBlockFragmentation() {
		s.FragmentainerOffsetAtBFC = a.space.FragmentainerOffsetAtBFC + blockOffset
	}
	s.IsAnonymous = false
	s.IsNewFormattingContext = true
	s.IsInColumnBFC = false
	s.DiscardStartMargin = false
	return s
}
