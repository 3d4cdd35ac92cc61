package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_InsertAndRemove(t *testing.T) {
	parent := NewElement("div")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	parent.AddChild(a)
	parent.AddChild(c)
	parent.InsertBefore(b, c)

	require.Len(t, parent.Children, 3)
	assert.Equal(t, []string{"a", "b", "c"}, tags(parent))

	assert.Same(t, b, parent.RemoveChild(b))
	assert.Nil(t, b.Parent)
	assert.Equal(t, []string{"a", "c"}, tags(parent))
	assert.Nil(t, parent.RemoveChild(b))
}

func TestNode_AddChildReparents(t *testing.T) {
	first, second := NewElement("div"), NewElement("div")
	child := NewElement("span")
	first.AddChild(child)
	second.AddChild(child)
	assert.Empty(t, first.Children)
	assert.Same(t, second, child.Parent)
}

func TestNode_AppendTextMerges(t *testing.T) {
	n := NewElement("p")
	n.AppendText("a")
	n.AppendText("b")
	require.Len(t, n.Children, 1)
	assert.Equal(t, "ab", n.TextContent())

	n.SetTextContent("c")
	assert.Equal(t, "c", n.TextContent())
}

func TestDocument_Lookup(t *testing.T) {
	doc, err := Parse(`<html><body><div id="main"><p id="x"></p></div></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "p", doc.GetElementByID("x").TagName)
	assert.Nil(t, doc.GetElementByID("missing"))
	assert.Equal(t, "body", doc.Body().TagName)
}

func tags(n *Node) []string {
	var out []string
	for _, c := range n.Children {
		out = append(out, c.TagName)
	}
	return out
}
