package css

import (
	"strings"

	"multicol/pkg/html"
)

// MatchesSelector returns true if the element matches the complex selector,
// matching right to left.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode || len(selector.Parts) == 0 {
		return false
	}
	return matchesFrom(node, selector, len(selector.Parts)-1)
}

func matchesFrom(node *html.Node, selector Selector, i int) bool {
	if !matchesPart(node, selector.Parts[i]) {
		return false
	}
	if i == 0 {
		return true
	}
	switch selector.Combinators[i-1] {
	case ChildCombinator:
		parent := node.Parent
		return parent != nil && parent.Type == html.ElementNode && matchesFrom(parent, selector, i-1)
	default:
		for anc := node.Parent; anc != nil; anc = anc.Parent {
			if anc.Type == html.ElementNode && matchesFrom(anc, selector, i-1) {
				return true
			}
		}
		return false
	}
}

func matchesPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" && node.TagName != part.Element {
		return false
	}
	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}
	if len(part.Classes) > 0 {
		classAttr, _ := node.GetAttribute("class")
		have := make(map[string]bool)
		for _, c := range strings.Fields(classAttr) {
			have[c] = true
		}
		for _, c := range part.Classes {
			if !have[c] {
				return false
			}
		}
	}
	return true
}

// FindMatchingRules returns the rules of stylesheet that match node.
func FindMatchingRules(node *html.Node, stylesheet *Stylesheet) []Rule {
	var matches []Rule
	for _, rule := range stylesheet.Rules {
		if MatchesSelector(node, rule.Selector) {
			matches = append(matches, rule)
		}
	}
	return matches
}
