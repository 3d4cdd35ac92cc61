package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"multicol/pkg/css"
)

func TestResolveUsedColumnCount(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		width     float64
		gap       float64
		available float64
		want      int
	}{
		{"count only", 3, Indefinite, 10, 300, 3},
		{"both auto", 0, Indefinite, 10, 300, 1},
		{"width only", 0, 100, 10, 320, 3},
		{"width only, exact fit", 0, 100, 10, 430, 4},
		{"count caps width", 2, 100, 10, 320, 2},
		{"width caps count", 5, 100, 10, 320, 3},
		{"narrower than one column", 5, 100, 10, 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveUsedColumnCount(tt.count, tt.width, tt.gap, tt.available))
		})
	}
}

func TestResolveUsedColumnInlineSize(t *testing.T) {
	assert.Equal(t, 26.65625, resolveUsedColumnInlineSize(3, Indefinite, 10, 100))
	assert.Equal(t, 50.0, resolveUsedColumnInlineSize(2, Indefinite, 0, 100))
	// column-width grows to fill the container.
	assert.Equal(t, 100.0, resolveUsedColumnInlineSize(0, 100, 10, 320))
	assert.Equal(t, 0.0, resolveUsedColumnInlineSize(3, Indefinite, 50, 20))
}

func TestResolveUsedColumnCount_FromStyle(t *testing.T) {
	n := block("mc", "columns: 100px 5; column-gap: 10px")
	assert.Equal(t, 3, ResolveUsedColumnCount(320, n))
	assert.Equal(t, 100.0, ResolveUsedColumnInlineSize(320, n))
	assert.Equal(t, 10.0, ResolveUsedColumnGap(n))
}

func TestResolveUsedColumnGap_FallsBackToOneEm(t *testing.T) {
	for _, gap := range []string{"normal", "10%"} {
		n := block("mc", "font-size: 12px; column-count: 2; column-gap: "+gap)
		assert.Equal(t, 12.0, ResolveUsedColumnGap(n), gap)
	}
}

func TestDivideCeil(t *testing.T) {
	assert.Equal(t, 40.0, divideCeil(120, 3))
	// 100px is 6400 units; a third rounds up to 2134.
	assert.Equal(t, 33.34375, divideCeil(100, 3))
	assert.Equal(t, 7.0, divideCeil(7, 1))
}

func TestComputeBlockSize(t *testing.T) {
	space := NewConstraintSpace(200, 400)
	tests := []struct {
		name    string
		style   string
		content float64
		want    float64
	}{
		{"auto", "", 50, 50},
		{"fixed", "height: 80px", 50, 80},
		{"fixed with padding", "height: 80px; padding: 5px", 50, 90},
		{"percent", "height: 10%", 50, 40},
		{"max caps content", "max-height: 30px", 50, 30},
		{"min grows content", "min-height: 70px", 50, 70},
		{"min beats max", "min-height: 70px; max-height: 30px", 50, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(NodeBlock, "div", css.ParseInlineStyle(tt.style))
			assert.Equal(t, tt.want, computeBlockSize(n, space, tt.content))
		})
	}
}

func TestInitialContentBlockSize(t *testing.T) {
	space := NewConstraintSpace(200, Indefinite)
	assert.Equal(t, Indefinite, initialContentBlockSize(block("a", ""), space))
	assert.Equal(t, 50.0, initialContentBlockSize(block("a", "height: 80px; max-height: 50px"), space))
	assert.Equal(t, Indefinite, initialContentBlockSize(block("a", "height: 50%"), space))
}
