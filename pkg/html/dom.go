package html

import "strings"

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	DocumentNode
)

// Node is a DOM node. Text nodes carry Text; elements carry TagName and
// Attributes.
type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

// Document is a parsed document plus the raw contents of its <style> and
// <script> elements in source order.
type Document struct {
	Root        *Node
	Stylesheets []string
	Scripts     []string
}

func NewDocument() *Document {
	return &Document{Root: &Node{Type: DocumentNode, TagName: "document", Attributes: map[string]string{}}}
}

func NewElement(tag string) *Node {
	return &Node{Type: ElementNode, TagName: strings.ToLower(tag), Attributes: map[string]string{}}
}

func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = map[string]string{}
	}
	n.Attributes[name] = value
}

// AddChild appends child, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText appends character data, merging with a trailing text node.
func (n *Node) AppendText(text string) {
	if k := len(n.Children); k > 0 && n.Children[k-1].Type == TextNode {
		n.Children[k-1].Text += text
		return
	}
	n.AddChild(NewText(text))
}

// RemoveChild detaches child and returns it, or nil if it is not a child.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// InsertBefore inserts newChild before ref. A nil ref appends.
func (n *Node) InsertBefore(newChild, ref *Node) *Node {
	if ref == nil {
		n.AddChild(newChild)
		return newChild
	}
	if newChild.Parent != nil {
		newChild.Parent.RemoveChild(newChild)
	}
	for i, c := range n.Children {
		if c == ref {
			n.Children = append(n.Children[:i], append([]*Node{newChild}, n.Children[i:]...)...)
			newChild.Parent = n
			return newChild
		}
	}
	return nil
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetTextContent replaces all children with a single text node.
func (n *Node) SetTextContent(text string) {
	for _, c := range n.Children {
		c.Parent = nil
	}
	n.Children = nil
	if text != "" {
		n.AddChild(NewText(text))
	}
}

// Walk visits n and its descendants in document order until fn returns
// false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

func (d *Document) GetElementByID(id string) *Node {
	var found *Node
	d.Root.Walk(func(n *Node) bool {
		if v, ok := n.GetAttribute("id"); ok && v == id && n.Type == ElementNode {
			found = n
			return false
		}
		return true
	})
	return found
}

// Body returns the <body> element, falling back to the document root.
func (d *Document) Body() *Node {
	var body *Node
	d.Root.Walk(func(n *Node) bool {
		if n.Type == ElementNode && n.TagName == "body" {
			body = n
			return false
		}
		return true
	})
	if body == nil {
		return d.Root
	}
	return body
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base", "col", "embed", "source", "track", "wbr":
		return true
	}
	return false
}
