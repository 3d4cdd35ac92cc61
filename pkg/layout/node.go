package layout

import (
	"multicol/pkg/css"
	"multicol/pkg/html"
)

// NodeKind selects the layout algorithm for a node.
type NodeKind int

const (
	// NodeBlock is a block container; it is a multicol container when a
	// column count or width is set.
	NodeBlock NodeKind = iota
	// NodeText is an anonymous block of word-wrapped lines.
	NodeText
	// NodeReplaced is an unbreakable box with intrinsic dimensions.
	NodeReplaced
)

// Node is the layout input: a box with resolved style. The tree is built
// once and never changed by layout.
type Node struct {
	Kind  NodeKind
	Name  string
	Style *css.Style
	DOM   *html.Node

	Margin  css.BoxEdge
	Border  css.BoxEdge
	Padding css.BoxEdge

	Width     css.Length
	Height    css.Length
	MinHeight css.Length
	MaxHeight css.Length

	ColumnCount    int
	ColumnWidth    float64
	HasColumnWidth bool
	ColumnGap      float64
	ColumnFill     css.ColumnFill
	ColumnSpanAll  bool

	BreakBefore css.BreakBetween
	BreakAfter  css.BreakBetween
	BreakInside css.BreakInside

	OverflowClip bool
	FontSize     float64
	LineHeight   float64
	Bold         bool

	Text string

	IntrinsicWidth  float64
	IntrinsicHeight float64
	Src             string

	Children []*Node
	Parent   *Node
	index    int
}

// NewNode resolves style into a layout node of the given kind. A nil style
// is the initial style.
func NewNode(kind NodeKind, name string, style *css.Style) *Node {
	if style == nil {
		style = css.NewStyle()
	}
	n := &Node{
		Kind:          kind,
		Name:          name,
		Style:         style,
		Margin:        snapEdge(style.GetMargin()),
		Border:        snapEdge(style.GetBorderWidth()),
		Padding:       snapEdge(style.GetPadding()),
		Width:         snapLength(style.GetLengthValue("width")),
		Height:        snapLength(style.GetLengthValue("height")),
		MinHeight:     snapLength(style.GetLengthValue("min-height")),
		MaxHeight:     snapLength(style.GetLengthValue("max-height")),
		ColumnCount:   style.GetColumnCount(),
		ColumnGap:     Snap(style.GetColumnGap()),
		ColumnFill:    style.GetColumnFill(),
		ColumnSpanAll: style.IsColumnSpanAll(),
		BreakBefore:   style.GetBreakBefore(),
		BreakAfter:    style.GetBreakAfter(),
		BreakInside:   style.GetBreakInside(),
		OverflowClip:  style.IsOverflowClipped(),
		FontSize:      style.GetFontSize(),
		LineHeight:    Snap(style.GetLineHeight()),
	}
	n.ColumnWidth, n.HasColumnWidth = style.GetColumnWidth()
	n.ColumnWidth = Snap(n.ColumnWidth)
	if w, _ := style.Get("font-weight"); w == "bold" || w == "700" || w == "800" || w == "900" {
		n.Bold = true
	}
	if kind == NodeText {
		// Anonymous boxes take no box decorations.
		n.Margin, n.Border, n.Padding = css.BoxEdge{}, css.BoxEdge{}, css.BoxEdge{}
		n.Width, n.Height = css.Length{}, css.Length{}
		n.MinHeight, n.MaxHeight = css.Length{}, css.Length{Type: css.LengthNone}
		n.BreakBefore, n.BreakAfter, n.BreakInside = css.BreakAuto, css.BreakAuto, css.BreakInsideAuto
		n.ColumnCount, n.HasColumnWidth, n.ColumnSpanAll = 0, false, false
	}
	if kind == NodeReplaced {
		n.ColumnCount, n.HasColumnWidth = 0, false
	}
	return n
}

// NewTextNode creates an anonymous text block inheriting font metrics
// from style.
func NewTextNode(style *css.Style, text string) *Node {
	n := NewNode(NodeText, "#text", style)
	n.Text = text
	return n
}

// AppendChild adds child as the last child of n.
func (n *Node) AppendChild(child *Node) *Node {
	child.Parent = n
	child.index = len(n.Children)
	n.Children = append(n.Children, child)
	return n
}

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil || n.index+1 >= len(n.Parent.Children) {
		return nil
	}
	return n.Parent.Children[n.index+1]
}

// IsMulticol reports whether n establishes a multicolumn container.
func (n *Node) IsMulticol() bool {
	return n.Kind == NodeBlock && (n.ColumnCount > 0 || n.HasColumnWidth)
}

// IsMonolithic reports whether n can never be fragmented.
func (n *Node) IsMonolithic() bool {
	return n.Kind == NodeReplaced
}

func snapEdge(e css.BoxEdge) css.BoxEdge {
	return css.BoxEdge{Top: Snap(e.Top), Right: Snap(e.Right), Bottom: Snap(e.Bottom), Left: Snap(e.Left)}
}

func snapLength(l css.Length) css.Length {
	if l.Type == css.LengthFixed {
		l.Value = Snap(l.Value)
	}
	return l
}

func (n *Node) borderPadding() css.BoxEdge {
	return n.Border.Add(n.Padding)
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Name
}
