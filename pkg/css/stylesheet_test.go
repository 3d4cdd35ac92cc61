package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelectorList(t *testing.T) {
	got, err := ParseSelectorList("div.note > p#x, *")
	require.NoError(t, err)

	want := []Selector{
		{
			Raw: "div.note > p#x",
			Parts: []SelectorPart{
				{Element: "div", Classes: []string{"note"}},
				{Element: "p", ID: "x"},
			},
			Combinators: []Combinator{ChildCombinator},
			Specificity: 112,
		},
		{Raw: "*", Parts: []SelectorPart{{Element: "*"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseSelectorList mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSelectorList_Invalid(t *testing.T) {
	for _, src := range []string{"", "a[href]", "> p", "div >", "p:hover"} {
		_, err := ParseSelectorList(src)
		assert.Error(t, err, src)
	}
}

func TestParseStylesheet_SkipsAtRulesAndComments(t *testing.T) {
	sheet, err := ParseStylesheet(`/* header */
@media print { p { color: red } }
.cols { column-count: 3 }`)
	require.NoError(t, err)

	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, ".cols", sheet.Rules[0].Selector.Raw)
	assert.Equal(t, "3", sheet.Rules[0].Declarations["column-count"])
}
