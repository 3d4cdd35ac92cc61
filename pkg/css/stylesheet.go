package css

import (
	"fmt"
	"strings"
)

// Combinator joins two compound selectors.
type Combinator int

const (
	DescendantCombinator Combinator = iota
	ChildCombinator
)

// SelectorPart is a compound selector such as div.note#intro.
type SelectorPart struct {
	Element string
	ID      string
	Classes []string
}

// Selector is a complex selector: Parts joined left to right by
// Combinators (len(Combinators) == len(Parts)-1).
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
	Specificity int
}

// Rule represents a CSS rule (selector + declarations). Order is the rule's
// position in its stylesheet, used to break specificity ties.
type Rule struct {
	Selector     Selector
	Declarations map[string]string
	Order        int
}

type Stylesheet struct {
	Rules []Rule
}

// ParseStylesheet parses CSS text. Malformed rules and at-rules are skipped;
// only an unbalanced brace is an error.
func ParseStylesheet(src string) (*Stylesheet, error) {
	src = stripComments(src)
	sheet := &Stylesheet{}
	depth, start := 0, 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unexpected '}' at offset %d", i)
			}
			if depth == 0 {
				sheet.addRules(src[start : i+1])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unterminated block in stylesheet")
	}
	return sheet, nil
}

func (s *Stylesheet) addRules(block string) {
	brace := strings.IndexByte(block, '{')
	prelude := strings.TrimSpace(block[:brace])
	if prelude == "" || strings.HasPrefix(prelude, "@") {
		return
	}
	decls := make(map[string]string)
	body := block[brace+1 : len(block)-1]
	st := NewStyle()
	for _, d := range parseDeclarations(body) {
		expandShorthand(st, d.property, d.value)
	}
	for k, v := range st.Properties {
		decls[k] = v
	}
	for _, raw := range strings.Split(prelude, ",") {
		sel, ok := parseSelector(raw)
		if !ok {
			continue
		}
		s.Rules = append(s.Rules, Rule{Selector: sel, Declarations: decls, Order: len(s.Rules)})
	}
}

// ParseSelectorList parses a comma-separated selector group such as the
// argument of querySelectorAll.
func ParseSelectorList(src string) ([]Selector, error) {
	var out []Selector
	for _, raw := range strings.Split(src, ",") {
		sel, ok := parseSelector(raw)
		if !ok {
			return nil, fmt.Errorf("invalid selector %q", strings.TrimSpace(raw))
		}
		out = append(out, sel)
	}
	return out, nil
}

func parseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	sel := Selector{Raw: raw}
	raw = strings.ReplaceAll(raw, ">", " > ")
	pendingChild := false
	for _, field := range strings.Fields(raw) {
		if field == ">" {
			pendingChild = true
			continue
		}
		part, ok := parseCompound(field)
		if !ok {
			return Selector{}, false
		}
		if len(sel.Parts) > 0 {
			if pendingChild {
				sel.Combinators = append(sel.Combinators, ChildCombinator)
			} else {
				sel.Combinators = append(sel.Combinators, DescendantCombinator)
			}
		} else if pendingChild {
			return Selector{}, false
		}
		pendingChild = false
		sel.Parts = append(sel.Parts, part)
		sel.Specificity += part.specificity()
	}
	if len(sel.Parts) == 0 || pendingChild {
		return Selector{}, false
	}
	return sel, true
}

// parseCompound parses tag, *, .class and #id sequences. Attribute selectors
// and pseudo-classes are not supported and reject the selector.
func parseCompound(s string) (SelectorPart, bool) {
	var part SelectorPart
	i := 0
	readIdent := func() string {
		start := i
		for i < len(s) && (isIdentChar(s[i])) {
			i++
		}
		return s[start:i]
	}
	if i < len(s) && s[i] == '*' {
		part.Element = "*"
		i++
	} else if i < len(s) && isIdentChar(s[i]) {
		part.Element = strings.ToLower(readIdent())
	}
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			name := readIdent()
			if name == "" {
				return part, false
			}
			part.Classes = append(part.Classes, name)
		case '#':
			i++
			name := readIdent()
			if name == "" {
				return part, false
			}
			part.ID = name
		default:
			return part, false
		}
	}
	return part, true
}

func (p SelectorPart) specificity() int {
	n := len(p.Classes) * 10
	if p.ID != "" {
		n += 100
	}
	if p.Element != "" && p.Element != "*" {
		n++
	}
	return n
}

func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_'
}

type declaration struct {
	property, value string
}

// parseDeclarations splits "a: b; c: d" into declarations in source order,
// lowercasing property names.
func parseDeclarations(src string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(src, ";") {
		colon := strings.IndexByte(part, ':')
		if colon < 0 {
			continue
		}
		property := strings.ToLower(strings.TrimSpace(part[:colon]))
		value := strings.TrimSpace(part[colon+1:])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		if property != "" && value != "" {
			decls = append(decls, declaration{property, value})
		}
	}
	return decls
}

func stripComments(src string) string {
	var sb strings.Builder
	for {
		start := strings.Index(src, "/*")
		if start < 0 {
			sb.WriteString(src)
			return sb.String()
		}
		sb.WriteString(src[:start])
		end := strings.Index(src[start+2:], "*/")
		if end < 0 {
			return sb.String()
		}
		src = src[start+2+end+2:]
	}
}
