package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walk collects the entries of w until it finishes.
func walk(w *multicolPartWalker) []partEntry {
	var out []partEntry
	for !w.IsFinished() {
		out = append(out, w.Current())
		w.Next()
	}
	return out
}

func TestPartWalker_FreshStart(t *testing.T) {
	mc := block("mc", "column-count: 2", lines(2))
	w := newMulticolPartWalker(mc, nil)

	require.False(t, w.IsFinished())
	assert.Equal(t, partEntry{}, w.Current())
	w.Next()
	assert.True(t, w.IsFinished())
}

func TestPartWalker_ResumedWithNothingLeft(t *testing.T) {
	mc := block("mc", "column-count: 2", lines(2))
	bt := &BreakToken{Node: mc, ConsumedBlockSize: 40, HasSeenAllChildren: true}

	w := newMulticolPartWalker(mc, bt)

	assert.True(t, w.IsFinished())
	assert.Panics(t, func() { w.Current() })
}

func TestPartWalker_IncomingTokens(t *testing.T) {
	spanner := block("s", "column-span: all")
	mc := block("mc", "column-count: 2", lines(2), spanner, lines(2))
	columnToken := &BreakToken{Node: mc, ConsumedBlockSize: 10}
	spannerToken := &BreakToken{Node: spanner, ConsumedBlockSize: 5}
	bt := &BreakToken{Node: mc, ChildTokens: []*BreakToken{spannerToken, columnToken}}

	got := walk(newMulticolPartWalker(mc, bt))

	assert.Equal(t, []partEntry{
		{BreakToken: spannerToken, Spanner: spanner},
		{BreakToken: columnToken},
	}, got)
}

func TestPartWalker_MoveToSpanner(t *testing.T) {
	s1 := block("s1", "column-span: all")
	s2 := block("s2", "column-span: all")
	after := lines(1)
	mc := block("mc", "column-count: 2", lines(2), s1, s2, after)
	next := &BreakToken{Node: mc, IsCausedByColumnSpanner: true}

	w := newMulticolPartWalker(mc, nil)
	w.MoveToSpanner(s1, next)

	assert.Equal(t, []partEntry{
		{Spanner: s1},
		{Spanner: s2},
		{BreakToken: next},
	}, walk(w))
}

func TestPartWalker_LastSpanner(t *testing.T) {
	s := block("s", "column-span: all")
	mc := block("mc", "column-count: 2", lines(2), s)

	w := newMulticolPartWalker(mc, nil)
	w.MoveToSpanner(s, nil)

	assert.Equal(t, []partEntry{{Spanner: s}}, walk(w))
}

func TestPartWalker_AddNextColumnBreakToken(t *testing.T) {
	mc := block("mc", "column-count: 2", lines(8))
	next := &BreakToken{Node: mc, ConsumedBlockSize: 50}

	w := newMulticolPartWalker(mc, nil)
	w.Next()
	require.True(t, w.IsFinished())
	w.AddNextColumnBreakToken(next)

	assert.Equal(t, []partEntry{{BreakToken: next}}, walk(w))
}

func TestPartWalker_MoveToSpannerRejectsOtherNodes(t *testing.T) {
	child := lines(1)
	mc := block("mc", "column-count: 2", child)
	w := newMulticolPartWalker(mc, nil)

	assert.Panics(t, func() { w.MoveToSpanner(child, nil) })
}
