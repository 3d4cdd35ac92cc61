package layout

// LayoutStatus is the outcome of a layout pass. These are control values,
// not errors.
type LayoutStatus int

const (
	StatusSuccess LayoutStatus = iota
	// StatusNeedsEarlierBreak asks the caller to lay out again, breaking
	// at the result's EarlyBreak.
	StatusNeedsEarlierBreak
	// StatusOutOfFragmentainerSpace means the node did not fit at all and
	// produced no fragment; the parent should break before it.
	StatusOutOfFragmentainerSpace
)

func (s LayoutStatus) String() string {
	switch s {
	case StatusNeedsEarlierBreak:
		return "needs-earlier-break"
	case StatusOutOfFragmentainerSpace:
		return "out-of-fragmentainer-space"
	}
	return "success"
}

// BreakAppeal ranks breakpoints; higher is better.
type BreakAppeal int

const (
	AppealLastResort BreakAppeal = iota
	AppealViolatingBreakAvoid
	AppealPerfect
)

// BreakStatus is the answer of the break-before check for a child.
type BreakStatus int

const (
	BreakContinue BreakStatus = iota
	BreakNeedsEarlierBreak
	BreakBrokeBefore
)

// EarlyBreak is a breakpoint before Node, chosen because breaking later
// would violate a break-avoid rule.
type EarlyBreak struct {
	Node   *Node
	Appeal BreakAppeal
}

// LayoutResult is what a layout algorithm returns to its parent.
type LayoutResult struct {
	Fragment *Fragment
	Status   LayoutStatus

	// ColumnSpanner is the column-span:all box that stopped column content.
	ColumnSpanner *Node
	// MinimalSpaceShortage is the smallest extra fragmentainer block size
	// that would have moved a break, or MaxLayoutSize.
	MinimalSpaceShortage        float64
	HasForcedBreak              bool
	HasViolatingBreak           bool
	TallestUnbreakableBlockSize float64
	EarlyBreak                  *EarlyBreak
	BreakAppeal                 BreakAppeal
}

func newResult(status LayoutStatus) *LayoutResult {
	return &LayoutResult{
		Status:               status,
		MinimalSpaceShortage: MaxLayoutSize,
		BreakAppeal:          AppealPerfect,
	}
}

// brokeInside reports whether the node broke inside itself for a reason
// other than a column spanner.
func (r *LayoutResult) brokeInside() bool {
	return r.Fragment != nil && r.Fragment.BreakToken != nil && r.ColumnSpanner == nil
}
