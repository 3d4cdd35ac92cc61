package layout

import (
	"fmt"
	"strings"
)

// BreakToken records where layout of a node stopped so that the next
// fragmentainer can resume there. Tokens are immutable once created and
// shared by pointer.
type BreakToken struct {
	Node              *Node
	ConsumedBlockSize float64
	SequenceNumber    int
	ChildTokens       []*BreakToken

	// IsBreakBefore means nothing of Node has been laid out yet.
	IsBreakBefore           bool
	IsForcedBreak           bool
	IsCausedByColumnSpanner bool
	HasSeenAllChildren      bool

	// LinesConsumed is the number of lines of a text node already placed.
	LinesConsumed int
}

func newBreakBeforeToken(node *Node, forced bool) *BreakToken {
	return &BreakToken{Node: node, IsBreakBefore: true, IsForcedBreak: forced}
}

// IsResumingLayout reports whether bt continues a node that has already
// produced a fragment.
func IsResumingLayout(bt *BreakToken) bool {
	return bt != nil && !bt.IsBreakBefore
}

func (bt *BreakToken) String() string {
	if bt == nil {
		return "<nil>"
	}
	var sb strings.Builder
	bt.describe(&sb)
	return sb.String()
}

func (bt *BreakToken) describe(sb *strings.Builder) {
	switch {
	case bt.IsBreakBefore:
		fmt.Fprintf(sb, "before(%s", bt.Node)
		if bt.IsForcedBreak {
			sb.WriteString(" forced")
		}
	default:
		fmt.Fprintf(sb, "inside(%s consumed=%g", bt.Node, bt.ConsumedBlockSize)
		if bt.LinesConsumed > 0 {
			fmt.Fprintf(sb, " lines=%d", bt.LinesConsumed)
		}
		if bt.HasSeenAllChildren {
			sb.WriteString(" seen-all")
		}
		if bt.IsCausedByColumnSpanner {
			sb.WriteString(" spanner")
		}
	}
	for _, c := range bt.ChildTokens {
		sb.WriteString(" ")
		c.describe(sb)
	}
	sb.WriteString(")")
}
