package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_SingleElement(t *testing.T) {
	doc, err := Parse("<div></div>")
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "div", doc.Root.Children[0].TagName)
}

func TestParser_NestedElementsAndText(t *testing.T) {
	doc, err := Parse(`<div class="multicol"><p>Hello <b>world</b></p></div>`)
	require.NoError(t, err)

	div := doc.Root.Children[0]
	cls, ok := div.GetAttribute("class")
	assert.True(t, ok)
	assert.Equal(t, "multicol", cls)

	p := div.Children[0]
	require.Len(t, p.Children, 2)
	assert.Equal(t, TextNode, p.Children[0].Type)
	assert.Equal(t, "Hello ", p.Children[0].Text)
	assert.Equal(t, "b", p.Children[1].TagName)
	assert.Equal(t, "Hello world", p.TextContent())
	assert.Same(t, div, p.Parent)
}

func TestParser_StyleAndScriptAreCaptured(t *testing.T) {
	doc, err := Parse(`<style>div { column-count: 3 }</style><script>var x = "<b>";</script><div></div>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"div { column-count: 3 }"}, doc.Stylesheets)
	assert.Equal(t, []string{`var x = "<b>";`}, doc.Scripts)
	require.Len(t, doc.Root.Children, 1)
	assert.Equal(t, "div", doc.Root.Children[0].TagName)
}

func TestParser_VoidAndSelfClosing(t *testing.T) {
	doc, err := Parse(`<div><img src="a.png" width=40><br/><span>x</span></div>`)
	require.NoError(t, err)
	div := doc.Root.Children[0]
	require.Len(t, div.Children, 3)
	assert.Equal(t, "img", div.Children[0].TagName)
	w, _ := div.Children[0].GetAttribute("width")
	assert.Equal(t, "40", w)
	assert.Equal(t, "span", div.Children[2].TagName)
}

func TestParser_AutoClosesParagraph(t *testing.T) {
	doc, err := Parse(`<p>one<div>two</div>`)
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, "p", doc.Root.Children[0].TagName)
	assert.Equal(t, "div", doc.Root.Children[1].TagName)
}

func TestParser_WhitespaceBetweenBlocksDropped(t *testing.T) {
	doc, err := Parse("<div>\n  <p>a   b\n c</p>\n</div>")
	require.NoError(t, err)
	div := doc.Root.Children[0]
	require.Len(t, div.Children, 1)
	assert.Equal(t, "a b c", div.Children[0].TextContent())
}

func TestParser_CommentsDoctypeAndEntities(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE html><!-- note --><p title="a &amp; b">x &lt; y</p>`)
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 1)
	p := doc.Root.Children[0]
	title, _ := p.GetAttribute("title")
	assert.Equal(t, "a & b", title)
	assert.Equal(t, "x < y", p.TextContent())
}

func TestParser_StylesheetLinks(t *testing.T) {
	p := NewParser(`<link rel="stylesheet" href="cols.css"><link rel="icon" href="x.ico">`)
	_, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, []string{"cols.css"}, p.Links)
}

func TestParser_UnterminatedTag(t *testing.T) {
	_, err := Parse(`<div class="x"`)
	assert.Error(t, err)
}
