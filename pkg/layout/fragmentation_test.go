package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"multicol/pkg/css"
)

func TestJoinBreakBetween(t *testing.T) {
	tests := []struct {
		after, before, want css.BreakBetween
	}{
		{css.BreakAuto, css.BreakAuto, css.BreakAuto},
		{css.BreakColumn, css.BreakAuto, css.BreakColumn},
		{css.BreakAvoid, css.BreakColumn, css.BreakColumn},
		{css.BreakAvoid, css.BreakAuto, css.BreakAvoid},
		{css.BreakPage, css.BreakColumn, css.BreakColumn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, joinBreakBetween(tt.after, tt.before), "%v + %v", tt.after, tt.before)
	}
}

func TestIsForcedBreakValue(t *testing.T) {
	columns := NewConstraintSpace(100, 100).WithFragmentation(FragmentColumn, 100)
	pages := NewConstraintSpace(100, 100).WithFragmentation(FragmentPage, 100)
	none := NewConstraintSpace(100, 100)

	assert.True(t, isForcedBreakValue(columns, css.BreakColumn))
	assert.False(t, isForcedBreakValue(pages, css.BreakColumn))
	assert.True(t, isForcedBreakValue(pages, css.BreakPage))
	assert.False(t, isForcedBreakValue(columns, css.BreakPage))
	assert.True(t, isForcedBreakValue(columns, css.BreakAlways))
	assert.False(t, isForcedBreakValue(none, css.BreakAlways))
}

func TestCalculateBreakAppealInside(t *testing.T) {
	space := NewConstraintSpace(100, 100).WithFragmentation(FragmentColumn, 100)
	avoid := block("a", "break-inside: avoid-column")
	plain := block("b", "")
	r := newResult(StatusSuccess)

	assert.Equal(t, AppealViolatingBreakAvoid, calculateBreakAppealInside(space, avoid, r))
	assert.Equal(t, AppealPerfect, calculateBreakAppealInside(space, plain, r))

	pages := NewConstraintSpace(100, 100).WithFragmentation(FragmentPage, 100)
	assert.Equal(t, AppealPerfect, calculateBreakAppealInside(pages, avoid, r))
}

func TestEffectiveBreakBefore_PropagatesFromFirstChild(t *testing.T) {
	inner := block("inner", "break-before: column")
	outer := block("outer", "", inner, block("x", ""))
	assert.Equal(t, css.BreakColumn, effectiveBreakBefore(outer))

	// Multicol containers don't pass breaks out of their columns.
	mc := block("mc", "column-count: 2", block("inner", "break-before: column"))
	assert.Equal(t, css.BreakAuto, effectiveBreakBefore(mc))
}

func TestMarginStrut(t *testing.T) {
	tests := []struct {
		name    string
		margins []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"positive", []float64{10, 20, 5}, 20},
		{"mixed", []float64{10, -5}, 5},
		{"negative", []float64{-3, -7}, -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s MarginStrut
			for _, m := range tt.margins {
				s.Append(m)
			}
			assert.Equal(t, tt.want, s.Sum())
		})
	}
}

func TestBreakToken_String(t *testing.T) {
	mc := block("mc", "column-count: 2")
	child := block("p", "")
	bt := &BreakToken{
		Node:              mc,
		ConsumedBlockSize: 50,
		ChildTokens:       []*BreakToken{newBreakBeforeToken(child, true)},
	}
	assert.Equal(t, "inside(mc consumed=50 before(p forced))", bt.String())
	assert.Equal(t, "<nil>", (*BreakToken)(nil).String())
}

func TestConstraintSpace_WithHelpersCopy(t *testing.T) {
	base := NewConstraintSpace(100, Indefinite)
	paged := base.WithFragmentation(FragmentPage, 300).WithFragmentainerOffset(40)

	assert.False(t, base.HasBlockFragmentation())
	assert.True(t, paged.HasKnownFragmentainerBlockSize())
	assert.Equal(t, 260.0, fragmentainerSpaceAtBFCStart(paged))

	strip := base.WithFragmentation(FragmentColumn, Indefinite)
	assert.True(t, strip.IsInitialColumnBalancingPass())
	assert.False(t, strip.HasKnownFragmentainerBlockSize())
}
