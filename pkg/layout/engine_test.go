package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multicol/pkg/text"
)

func TestLayout_MarginsCollapse(t *testing.T) {
	le := newTestEngine(t)
	first := block("p1", "height: 10px; margin-bottom: 10px")
	second := block("p2", "height: 10px; margin-top: 20px")
	root := block("root", "", first, second)

	f := le.Layout(root, 200)

	require.Len(t, f.Children, 2)
	assert.Equal(t, 0.0, f.Children[0].Offset.Y)
	assert.Equal(t, 30.0, f.Children[1].Offset.Y)
	assert.Equal(t, 40.0, f.Size.Height)
}

func TestLayout_AutoWidthStretches(t *testing.T) {
	le := newTestEngine(t)
	child := block("child", "margin-left: 15px; margin-right: 5px; padding: 10px")
	root := block("root", "", child)

	f := le.Layout(root, 200)

	c := f.Children[0]
	assert.Equal(t, 15.0, c.Offset.X)
	assert.Equal(t, Size{Width: 180, Height: 20}, c.Fragment.Size)
}

func TestLayout_TextWraps(t *testing.T) {
	le := newTestEngine(t)
	root := block("root", "", lines(3))

	f := le.Layout(root, 60)

	textFragment := f.Children[0].Fragment
	require.Len(t, textFragment.Children, 3)
	for i, line := range textFragment.Children {
		assert.Equal(t, FragmentLine, line.Fragment.Type)
		assert.Equal(t, float64(i)*20, line.Offset.Y)
		assert.Equal(t, 30.0, line.Fragment.Size.Width)
	}
	assert.Equal(t, 60.0, f.Size.Height)
}

func TestLayout_ReplacedAspectRatio(t *testing.T) {
	le := newTestEngine(t)
	img := replaced("img", "width: 50px")
	img.IntrinsicWidth, img.IntrinsicHeight = 200, 100
	root := block("root", "", img)

	f := le.Layout(root, 300)

	assert.Equal(t, Size{Width: 50, Height: 25}, f.Children[0].Fragment.Size)
	assert.Equal(t, FragmentReplaced, f.Children[0].Fragment.Type)
}

func TestPaginate_LinesAcrossPages(t *testing.T) {
	le := newTestEngine(t)
	root := block("root", "", lines(5))

	// Narrow enough that every word gets its own line.
	pages, err := le.Paginate(root, 60, 50)

	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, []int{2, 2, 1}, []int{lineCount(pages[0]), lineCount(pages[1]), lineCount(pages[2])})
	for _, p := range pages {
		assert.Equal(t, FragmentPageBox, p.Type)
		assert.Equal(t, Size{Width: 60, Height: 50}, p.Size)
	}
	assert.Nil(t, pages[2].BreakToken)
}

func TestPaginate_ForcedPageBreak(t *testing.T) {
	le := newTestEngine(t)
	root := block("root", "",
		lines(1),
		block("next", "break-before: page; margin-top: 10px", lines(1)))

	pages, err := le.Paginate(root, 100, 100)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.True(t, pages[0].BreakToken.ChildTokens[0].IsForcedBreak)
	// A forced break keeps the margin.
	assert.Equal(t, 10.0, pages[1].Children[0].Offset.Y)
}

func TestPaginate_UnforcedBreakDiscardsMargin(t *testing.T) {
	le := newTestEngine(t)
	root := block("root", "",
		block("a", "height: 40px"),
		block("b", "margin-top: 20px", lines(1)))

	pages, err := le.Paginate(root, 100, 50)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 0.0, pages[1].Children[0].Offset.Y)
}

func TestPaginate_EarlyBreakForBreakAfterAvoid(t *testing.T) {
	le := newTestEngine(t)
	keep := block("keep", "break-after: avoid", lines(1))
	root := block("root", "", lines(1), keep, lines(1))

	pages, err := le.Paginate(root, 100, 50)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Len(t, pages[0].Children, 1)
	require.Len(t, pages[1].Children, 2)
	assert.Equal(t, keep, pages[1].Children[0].Fragment.Node)
}

func TestPaginate_MulticolContinues(t *testing.T) {
	le := newTestEngine(t)
	mc := block("mc", "column-count: 2; column-gap: 0", lines(8))
	root := block("root", "", mc)

	pages, err := le.Paginate(root, 100, 50)

	require.NoError(t, err)
	require.Len(t, pages, 2)
	first := pages[0].Children[0].Fragment
	second := pages[1].Children[0].Fragment
	assert.Equal(t, 50.0, first.Size.Height)
	assert.Equal(t, 40.0, second.Size.Height)
	assert.Equal(t, 4, lineCount(first))
	assert.Equal(t, 4, lineCount(second))
}

func TestPaginate_TooManyPages(t *testing.T) {
	le := NewLayoutEngine(WithMeasurer(text.FixedMeasurer{Advance: 0.5}), WithMaxPages(2))
	root := block("root", "", lines(10))

	pages, err := le.Paginate(root, 100, 20)

	assert.ErrorIs(t, err, ErrTooManyPages)
	assert.Len(t, pages, 2)
}
