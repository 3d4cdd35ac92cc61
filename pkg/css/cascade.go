package css

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"multicol/pkg/html"
)

var inheritedProperties = []string{"font-size", "line-height", "color", "font-family", "font-weight", "text-align"}

// userAgentStyles are applied before author rules.
var userAgentStyles = map[string]string{
	"head":       "display: none",
	"style":      "display: none",
	"script":     "display: none",
	"title":      "display: none",
	"meta":       "display: none",
	"link":       "display: none",
	"body":       "margin: 8px",
	"p":          "margin: 1em 0",
	"h1":         "font-size: 2em; margin: 0.67em 0; font-weight: bold",
	"h2":         "font-size: 1.5em; margin: 0.83em 0; font-weight: bold",
	"h3":         "font-size: 1.17em; margin: 1em 0; font-weight: bold",
	"ul":         "margin: 1em 0; padding-left: 40px",
	"ol":         "margin: 1em 0; padding-left: 40px",
	"blockquote": "margin: 1em 40px",
	"span":       "display: inline",
	"b":          "display: inline; font-weight: bold",
	"i":          "display: inline",
	"em":         "display: inline",
	"strong":     "display: inline; font-weight: bold",
	"a":          "display: inline; color: #0645ad",
	"code":       "display: inline",
	"br":         "display: inline",
}

// ComputeStyle computes the style of an element given its parent's computed
// style (nil for the root). Rules apply in specificity order, then source
// order; the style attribute wins.
func ComputeStyle(node *html.Node, stylesheets []*Stylesheet, parent *Style) *Style {
	declared := NewStyle()
	if ua, ok := userAgentStyles[node.TagName]; ok {
		for k, v := range ParseInlineStyle(ua).Properties {
			declared.Set(k, v)
		}
	}

	type ordered struct {
		rule  Rule
		sheet int
	}
	var matched []ordered
	for i, sheet := range stylesheets {
		for _, r := range FindMatchingRules(node, sheet) {
			matched = append(matched, ordered{r, i})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.rule.Selector.Specificity != b.rule.Selector.Specificity {
			return a.rule.Selector.Specificity < b.rule.Selector.Specificity
		}
		if a.sheet != b.sheet {
			return a.sheet < b.sheet
		}
		return a.rule.Order < b.rule.Order
	})
	for _, m := range matched {
		for k, v := range m.rule.Declarations {
			declared.Set(k, v)
		}
	}
	if attr, ok := node.GetAttribute("style"); ok {
		for k, v := range ParseInlineStyle(attr).Properties {
			declared.Set(k, v)
		}
	}
	return resolveInheritance(declared, parent)
}

// resolveInheritance fills inherited properties from parent and turns
// font-relative units into pixels so children inherit absolute values.
func resolveInheritance(style, parent *Style) *Style {
	parentFont := 16.0
	if parent != nil {
		parentFont = parent.GetFontSize()
	}
	if v, ok := style.Get("font-size"); ok {
		l := ParseLengthValue(v, parentFont)
		switch {
		case l.Type == LengthFixed:
			style.Set("font-size", formatPx(l.Value))
		case l.Type == LengthPercent:
			style.Set("font-size", formatPx(parentFont*l.Value/100))
		default:
			style.Set("font-size", formatPx(parentFont))
		}
	}
	for _, prop := range inheritedProperties {
		v, ok := style.Get(prop)
		if (!ok || v == "inherit") && parent != nil {
			if pv, ok := parent.Get(prop); ok {
				style.Set(prop, pv)
			}
		}
	}
	if style.GetDisplay() == DisplayNone {
		return style
	}
	// Resolve em-based lengths now that the font size is known.
	fontSize := style.GetFontSize()
	for k, v := range style.Properties {
		if strings.HasSuffix(v, "em") && !strings.HasSuffix(v, "rem") && k != "font-size" {
			if l := ParseLengthValue(v, fontSize); l.Type == LengthFixed {
				style.Set(k, formatPx(l.Value))
			}
		}
	}
	return style
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ApplyStylesToDocument computes styles for every element of the document.
// Stylesheets that fail to parse are skipped and reported in the error
// slice; styling still proceeds.
func ApplyStylesToDocument(doc *html.Document, extra ...string) (map[*html.Node]*Style, []error) {
	var sheets []*Stylesheet
	var errs []error
	for i, src := range append(append([]string{}, extra...), doc.Stylesheets...) {
		sheet, err := ParseStylesheet(src)
		if err != nil {
			errs = append(errs, fmt.Errorf("stylesheet %d: %w", i, err))
			continue
		}
		sheets = append(sheets, sheet)
	}
	styles := make(map[*html.Node]*Style)
	var walk func(n *html.Node, parent *Style)
	walk = func(n *html.Node, parent *Style) {
		current := parent
		if n.Type == html.ElementNode {
			current = ComputeStyle(n, sheets, parent)
			styles[n] = current
		}
		for _, c := range n.Children {
			walk(c, current)
		}
	}
	walk(doc.Root, nil)
	return styles, errs
}
