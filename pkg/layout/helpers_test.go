package layout

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"multicol/pkg/css"
	"multicol/pkg/text"
)

// Text in tests is 10px with 20px lines. Every rune is 5px wide, so a
// six-letter word is 30px and two of them with a space are 65px.
const testTextStyle = "font-size: 10px; line-height: 20px"

func newTestEngine(t *testing.T) *LayoutEngine {
	return NewLayoutEngine(
		WithMeasurer(text.FixedMeasurer{Advance: 0.5}),
		WithLogger(zaptest.NewLogger(t)),
	)
}

// newObservedEngine records debug logs for inspection.
func newObservedEngine() (*LayoutEngine, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	le := NewLayoutEngine(
		WithMeasurer(text.FixedMeasurer{Advance: 0.5}),
		WithLogger(zap.New(core)),
	)
	return le, logs
}

func block(name, style string, children ...*Node) *Node {
	n := NewNode(NodeBlock, name, css.ParseInlineStyle(style))
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

// lines returns a text node that wraps into n lines in any column between
// 30px and 65px wide.
func lines(n int) *Node {
	words := make([]string, n)
	for i := range words {
		words[i] = strings.Repeat(string(rune('a'+i%26)), 6)
	}
	return NewTextNode(css.ParseInlineStyle(testTextStyle), strings.Join(words, " "))
}

func replaced(name, style string) *Node {
	return NewNode(NodeReplaced, name, css.ParseInlineStyle(style))
}

// lineCount counts the line fragments below f.
func lineCount(f *Fragment) int {
	if f.Type == FragmentLine {
		return 1
	}
	n := 0
	for _, c := range f.Children {
		n += lineCount(c.Fragment)
	}
	return n
}

func dumpString(t *testing.T, f *Fragment) string {
	t.Helper()
	var sb strings.Builder
	if err := Dump(&sb, f); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}
