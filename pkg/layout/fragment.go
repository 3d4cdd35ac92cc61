package layout

import "multicol/pkg/css"

// FragmentType classifies a physical fragment.
type FragmentType int

const (
	FragmentBox FragmentType = iota
	// FragmentColumnBox is one column of a multicol container.
	FragmentColumnBox
	FragmentPageBox
	FragmentLine
	FragmentReplaced
)

func (t FragmentType) String() string {
	switch t {
	case FragmentColumnBox:
		return "column"
	case FragmentPageBox:
		return "page"
	case FragmentLine:
		return "line"
	case FragmentReplaced:
		return "replaced"
	}
	return "box"
}

// FragmentLink places a child fragment relative to its parent's
// border-box origin.
type FragmentLink struct {
	Fragment *Fragment
	Offset   Position
}

// Fragment is the immutable output of laying out (part of) a node.
type Fragment struct {
	Node     *Node
	Type     FragmentType
	Size     Size
	Children []FragmentLink
	// BreakToken is nil when the node finished in this fragment.
	BreakToken *BreakToken
	// Border holds the border widths painted on this fragment; block-start
	// and block-end borders only appear on the first and last fragment.
	Border css.BoxEdge
	// Baseline is the first baseline from the block-start edge, or
	// Indefinite.
	Baseline float64
	// Text is the content of a line fragment.
	Text string
}

// HasBaseline reports whether the fragment has a first baseline.
func (f *Fragment) HasBaseline() bool {
	return isDefinite(f.Baseline)
}

// IsFragmentainerBox reports whether f is a column or a page.
func (f *Fragment) IsFragmentainerBox() bool {
	return f.Type == FragmentColumnBox || f.Type == FragmentPageBox
}

// Columns returns the column box children of a multicol fragment with
// their offsets, in order.
func (f *Fragment) Columns() []FragmentLink {
	var out []FragmentLink
	for _, c := range f.Children {
		if c.Fragment.Type == FragmentColumnBox {
			out = append(out, c)
		}
	}
	return out
}
