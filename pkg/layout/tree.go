package layout

import (
	"strconv"
	"strings"

	"multicol/pkg/css"
	"multicol/pkg/html"
	"multicol/pkg/images"
)

// TreeBuilder turns a styled DOM into a layout tree.
type TreeBuilder struct {
	Styles map[*html.Node]*css.Style
	// Images supplies intrinsic sizes of <img> elements. It may be nil.
	Images *images.Cache
}

var skippedTags = map[string]bool{
	"head": true, "script": true, "style": true, "title": true, "meta": true, "link": true,
}

// Build returns an anonymous root block holding the boxes of doc.
func (tb *TreeBuilder) Build(doc *html.Document) *Node {
	root := NewNode(NodeBlock, "#root", nil)
	tb.appendChildren(root, doc.Root, nil)
	return root
}

// appendChildren adds the boxes for the children of dom to parent. Runs of
// text and inline elements become one anonymous text block.
func (tb *TreeBuilder) appendChildren(parent *Node, dom *html.Node, inherited *css.Style) {
	var run strings.Builder
	flush := func() {
		s := strings.Join(strings.Fields(run.String()), " ")
		run.Reset()
		if s == "" {
			return
		}
		style := inherited
		if style == nil {
			style = css.NewStyle()
		}
		parent.AppendChild(NewTextNode(style, s))
	}

	for _, c := range dom.Children {
		switch c.Type {
		case html.TextNode:
			run.WriteString(c.Text)
			continue
		case html.DocumentNode:
			tb.appendChildren(parent, c, inherited)
			continue
		}
		if skippedTags[c.TagName] {
			continue
		}
		style := tb.Styles[c]
		if style == nil {
			style = css.NewStyle()
		}
		switch {
		case style.GetDisplay() == css.DisplayNone:
			continue
		case c.TagName == "img":
			flush()
			parent.AppendChild(tb.replacedNode(c, style))
		case style.GetDisplay() == css.DisplayInline:
			run.WriteString(" ")
			run.WriteString(c.TextContent())
			run.WriteString(" ")
		default:
			flush()
			n := NewNode(NodeBlock, nodeName(c), style)
			n.DOM = c
			tb.appendChildren(n, c, style)
			parent.AppendChild(n)
		}
	}
	flush()
}

// replacedNode sizes an image from its width and height attributes, then
// from the decoded image.
func (tb *TreeBuilder) replacedNode(el *html.Node, style *css.Style) *Node {
	n := NewNode(NodeReplaced, nodeName(el), style)
	n.DOM = el
	n.Src, _ = el.GetAttribute("src")
	if tb.Images != nil && n.Src != "" {
		if w, h, err := tb.Images.Dimensions(n.Src); err == nil {
			n.IntrinsicWidth, n.IntrinsicHeight = float64(w), float64(h)
		}
	}
	if v, ok := el.GetAttribute("width"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			n.IntrinsicWidth = f
		}
	}
	if v, ok := el.GetAttribute("height"); ok {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64); err == nil {
			n.IntrinsicHeight = f
		}
	}
	return n
}

// nodeName is the tag with the id or first class, for logs and dumps.
func nodeName(el *html.Node) string {
	if id, ok := el.GetAttribute("id"); ok && id != "" {
		return el.TagName + "#" + id
	}
	if class, ok := el.GetAttribute("class"); ok {
		if f := strings.Fields(class); len(f) > 0 {
			return el.TagName + "." + f[0]
		}
	}
	return el.TagName
}
