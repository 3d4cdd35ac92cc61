package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicol/pkg/css"
	"multicol/pkg/layout"
	"multicol/pkg/text"
)

func node(kind layout.NodeKind, name, style string, children ...*layout.Node) *layout.Node {
	n := layout.NewNode(kind, name, css.ParseInlineStyle(style))
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func paint(t *testing.T, root *layout.Node, width, height int) *Painter {
	t.Helper()
	le := layout.NewLayoutEngine(layout.WithMeasurer(text.FixedMeasurer{Advance: 0.5}))
	p := NewPainter(width, height)
	p.Paint(le.Layout(root, float64(width)))
	return p
}

func rgba(p *Painter, x, y int) color.RGBA {
	return color.RGBAModel.Convert(p.Image().At(x, y)).(color.RGBA)
}

var white = color.RGBA{255, 255, 255, 255}

func TestPaint_Background(t *testing.T) {
	root := node(layout.NodeBlock, "root", "",
		node(layout.NodeBlock, "box", "height: 20px; background-color: red"))

	p := paint(t, root, 100, 40)

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(p, 50, 10))
	assert.Equal(t, white, rgba(p, 50, 30))
}

func TestPaint_Border(t *testing.T) {
	root := node(layout.NodeBlock, "root", "",
		node(layout.NodeBlock, "box", "height: 20px; border: 4px solid green"))

	p := paint(t, root, 100, 40)

	green := color.RGBA{0, 128, 0, 255}
	assert.Equal(t, green, rgba(p, 50, 1))
	assert.Equal(t, green, rgba(p, 1, 14))
	assert.Equal(t, white, rgba(p, 50, 14))
}

func TestPaint_ColumnRuleBetweenColumns(t *testing.T) {
	mc := node(layout.NodeBlock, "mc", "column-count: 2; column-gap: 20px; column-rule: 4px solid blue",
		node(layout.NodeBlock, "a", "height: 20px"),
		node(layout.NodeBlock, "b", "break-before: column; height: 20px"))
	root := node(layout.NodeBlock, "root", "", mc)

	p := paint(t, root, 100, 40)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba(p, 50, 10))
	assert.Equal(t, white, rgba(p, 20, 10))
	assert.Equal(t, white, rgba(p, 50, 30), "rule stops at the column height")
}

func TestPaint_MissingImagePlaceholder(t *testing.T) {
	root := node(layout.NodeBlock, "root", "",
		node(layout.NodeReplaced, "img", "width: 20px; height: 20px"))

	p := paint(t, root, 40, 40)

	c := rgba(p, 10, 2)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
	assert.InDelta(t, 230, int(c.R), 3)
}

func TestEncodePNG(t *testing.T) {
	p := paint(t, node(layout.NodeBlock, "root", "height: 10px"), 16, 16)

	var buf bytes.Buffer
	require.NoError(t, p.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}
