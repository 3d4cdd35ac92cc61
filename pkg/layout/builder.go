package layout

import "multicol/pkg/css"

// fragmentBuilder collects the children and fragmentation state of one
// fragment while an algorithm runs, then freezes them into a result.
type fragmentBuilder struct {
	node       *Node
	space      ConstraintSpace
	boxType    FragmentType
	breakToken *BreakToken

	inlineSize  float64
	blockSize   float64
	border      css.BoxEdge
	children    []FragmentLink
	childTokens []*BreakToken
	baseline    float64

	previousBreakAfter css.BreakBetween

	// brokeInside: in-flow content continues in the next fragmentainer.
	brokeInside bool
	// didBreakSelf: the content is done but the box's own block size
	// continues.
	didBreakSelf       bool
	hasSeenAllChildren bool
	linesConsumed      int

	isForcedBreak        bool
	hasForcedBreak       bool
	hasViolatingBreak    bool
	breakAppeal          BreakAppeal
	minimalSpaceShortage float64
	tallestUnbreakable   float64
	columnSpanner        *Node

	// bestEarlyBreak is the most appealing breakpoint seen so far;
	// earlyBreak is set when a relayout should use it.
	bestEarlyBreak *EarlyBreak
	earlyBreak     *EarlyBreak
}

func newFragmentBuilder(node *Node, space ConstraintSpace, boxType FragmentType, bt *BreakToken) *fragmentBuilder {
	return &fragmentBuilder{
		node:                 node,
		space:                space,
		boxType:              boxType,
		breakToken:           bt,
		baseline:             Indefinite,
		breakAppeal:          AppealPerfect,
		minimalSpaceShortage: MaxLayoutSize,
	}
}

// previousConsumed is the block size taken by earlier fragments of the node.
func (b *fragmentBuilder) previousConsumed() float64 {
	if IsResumingLayout(b.breakToken) {
		return b.breakToken.ConsumedBlockSize
	}
	return 0
}

func (b *fragmentBuilder) addChild(f *Fragment, offset Position) {
	b.appendChild(f, offset)
	if !b.hasBaseline() && f.HasBaseline() {
		b.baseline = offset.Y + f.Baseline
	}
}

// appendChild adds f without looking at its baseline.
func (b *fragmentBuilder) appendChild(f *Fragment, offset Position) {
	b.children = append(b.children, FragmentLink{Fragment: f, Offset: offset})
}

func (b *fragmentBuilder) hasBaseline() bool { return isDefinite(b.baseline) }

// addResult adds a child's fragment and propagates its break and
// fragmentation data. The appeal of a break inside the child is recorded by
// the break-before check, which may lower it.
func (b *fragmentBuilder) addResult(r *LayoutResult, offset Position) {
	b.addChild(r.Fragment, offset)
	if bt := r.Fragment.BreakToken; bt != nil {
		b.childTokens = append(b.childTokens, bt)
		if r.ColumnSpanner == nil {
			b.brokeInside = true
		}
	}
	if r.HasForcedBreak {
		b.hasForcedBreak = true
	}
	if r.HasViolatingBreak {
		b.hasViolatingBreak = true
	}
	if r.ColumnSpanner != nil {
		b.columnSpanner = r.ColumnSpanner
	}
	b.propagateSpaceShortage(r.MinimalSpaceShortage)
	b.propagateTallestUnbreakable(r.TallestUnbreakableBlockSize)
}

// addBreakBeforeChild ends the fragment before child.
func (b *fragmentBuilder) addBreakBeforeChild(child *Node, appeal BreakAppeal, forced bool) {
	b.childTokens = append(b.childTokens, newBreakBeforeToken(child, forced))
	b.brokeInside = true
	if forced {
		b.isForcedBreak = true
		b.hasForcedBreak = true
		appeal = AppealPerfect
	}
	b.setBreakAppeal(appeal)
}

// addBreakToken carries an existing token into the outgoing break token.
func (b *fragmentBuilder) addBreakToken(bt *BreakToken) {
	b.childTokens = append(b.childTokens, bt)
}

func (b *fragmentBuilder) setBreakAppeal(appeal BreakAppeal) {
	b.breakAppeal = appeal
	if appeal < AppealPerfect {
		b.hasViolatingBreak = true
	}
}

// propagateSpaceShortage keeps the smallest positive shortage.
func (b *fragmentBuilder) propagateSpaceShortage(shortage float64) {
	if shortage <= 0 || shortage == MaxLayoutSize {
		return
	}
	b.minimalSpaceShortage = min(b.minimalSpaceShortage, Snap(shortage))
}

func (b *fragmentBuilder) propagateTallestUnbreakable(size float64) {
	b.tallestUnbreakable = max(b.tallestUnbreakable, size)
}

func (b *fragmentBuilder) sequenceNumber() int {
	if IsResumingLayout(b.breakToken) {
		return b.breakToken.SequenceNumber + 1
	}
	return 0
}

func (b *fragmentBuilder) needsBreakToken() bool {
	return b.brokeInside || b.didBreakSelf || b.columnSpanner != nil || len(b.childTokens) > 0
}

// toResult freezes the builder.
func (b *fragmentBuilder) toResult() *LayoutResult {
	f := &Fragment{
		Node:     b.node,
		Type:     b.boxType,
		Size:     Size{Width: b.inlineSize, Height: b.blockSize},
		Children: b.children,
		Border:   b.border,
		Baseline: b.baseline,
	}
	if b.needsBreakToken() {
		f.BreakToken = &BreakToken{
			Node:                    b.node,
			ConsumedBlockSize:       b.previousConsumed() + b.blockSize,
			SequenceNumber:          b.sequenceNumber(),
			ChildTokens:             b.childTokens,
			IsForcedBreak:           b.isForcedBreak,
			IsCausedByColumnSpanner: b.columnSpanner != nil,
			HasSeenAllChildren:      b.hasSeenAllChildren,
			LinesConsumed:           b.linesConsumed,
		}
	}
	r := newResult(StatusSuccess)
	r.Fragment = f
	r.ColumnSpanner = b.columnSpanner
	r.MinimalSpaceShortage = b.minimalSpaceShortage
	r.HasForcedBreak = b.hasForcedBreak
	r.HasViolatingBreak = b.hasViolatingBreak
	r.TallestUnbreakableBlockSize = b.tallestUnbreakable
	r.BreakAppeal = b.breakAppeal
	return r
}
