package text

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports the advance width of a run of text.
type Measurer interface {
	MeasureString(s string, fontSize float64, bold bool) float64
}

// FontConfig holds paths to TrueType fonts used for measurement and
// painting. Empty paths fall back to the built-in bitmap face.
type FontConfig struct {
	Regular string
	Bold    string
}

func (fc FontConfig) FontPath(bold bool) string {
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	return fc.Regular
}

type faceKey struct {
	path string
	size float64
}

// FontMeasurer measures with gg font faces, caching one face per path and
// size. It is safe for concurrent use.
type FontMeasurer struct {
	config FontConfig

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func NewFontMeasurer(config FontConfig) *FontMeasurer {
	return &FontMeasurer{config: config, faces: make(map[faceKey]font.Face)}
}

// Face returns the face for the given size, or nil when the font cannot be
// loaded.
func (m *FontMeasurer) Face(fontSize float64, bold bool) font.Face {
	path := m.config.FontPath(bold)
	if path == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := faceKey{path, fontSize}
	if f, ok := m.faces[key]; ok {
		return f
	}
	f, err := gg.LoadFontFace(path, fontSize)
	if err != nil {
		f = nil
	}
	m.faces[key] = f
	return f
}

func (m *FontMeasurer) MeasureString(s string, fontSize float64, bold bool) float64 {
	face := m.Face(fontSize, bold)
	if face == nil {
		return measureBasic(s, fontSize)
	}
	dc := gg.NewContext(1, 1)
	dc.SetFontFace(face)
	w, _ := dc.MeasureString(s)
	return w
}

// measureBasic scales the 7x13 bitmap face to fontSize.
func measureBasic(s string, fontSize float64) float64 {
	adv := font.MeasureString(basicfont.Face7x13, s)
	return float64(adv) / 64 * fontSize / 13
}

// FixedMeasurer gives every rune the same advance, as a fraction of the
// font size. Layout tests use it for exact geometry.
type FixedMeasurer struct {
	Advance float64
}

func (m FixedMeasurer) MeasureString(s string, fontSize float64, bold bool) float64 {
	return float64(utf8.RuneCountInString(s)) * m.Advance * fontSize
}

// BreakLines greedily wraps text into lines no wider than maxWidth. A word
// wider than maxWidth gets a line of its own.
func BreakLines(m Measurer, text string, fontSize float64, bold bool, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if m.MeasureString(candidate, fontSize, bold) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// MinContentWidth is the width of the widest word.
func MinContentWidth(m Measurer, text string, fontSize float64, bold bool) float64 {
	widest := 0.0
	for _, w := range strings.Fields(text) {
		if v := m.MeasureString(w, fontSize, bold); v > widest {
			widest = v
		}
	}
	return widest
}

// MaxContentWidth is the width of the text on a single line.
func MaxContentWidth(m Measurer, text string, fontSize float64, bold bool) float64 {
	return m.MeasureString(strings.Join(strings.Fields(text), " "), fontSize, bold)
}
