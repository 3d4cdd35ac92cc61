package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakLines(t *testing.T) {
	m := FixedMeasurer{Advance: 0.5}
	// 8px per rune at 16px.
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits", "ab cd", 40, []string{"ab cd"}},
		{"wraps", "ab cd ef", 40, []string{"ab cd", "ef"}},
		{"long word alone", "abcdefghij x", 40, []string{"abcdefghij", "x"}},
		{"collapses spaces", "  a   b ", 100, []string{"a b"}},
		{"empty", "   ", 100, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BreakLines(m, tt.text, 16, false, tt.width))
		})
	}
}

func TestContentWidths(t *testing.T) {
	m := FixedMeasurer{Advance: 1}
	assert.Equal(t, 50.0, MinContentWidth(m, "ab abcde c", 10, false))
	assert.Equal(t, 100.0, MaxContentWidth(m, "ab  abcde c", 10, false))
}

func TestFontMeasurerFallsBackToBasicFace(t *testing.T) {
	m := NewFontMeasurer(FontConfig{Regular: "/nonexistent/font.ttf"})
	assert.Nil(t, m.Face(13, false))
	// basicfont advances 7px per glyph at 13px.
	assert.InDelta(t, 21.0, m.MeasureString("abc", 13, false), 0.001)
	assert.InDelta(t, 42.0, m.MeasureString("abc", 26, true), 0.001)
}
