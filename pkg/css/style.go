package css

import (
	"strconv"
	"strings"
)

// Style holds the declared (or computed) property values of one element,
// keyed by longhand property name.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

// Clone returns an independent copy of the style.
func (s *Style) Clone() *Style {
	c := NewStyle()
	for k, v := range s.Properties {
		c.Properties[k] = v
	}
	return c
}

// GetLength returns a pixel length. Percentages and keywords are not
// lengths; use GetLengthValue for those.
func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Add returns the side-wise sum of two edges.
func (e BoxEdge) Add(o BoxEdge) BoxEdge {
	return BoxEdge{
		Top:    e.Top + o.Top,
		Right:  e.Right + o.Right,
		Bottom: e.Bottom + o.Bottom,
		Left:   e.Left + o.Left,
	}
}

func (e BoxEdge) InlineSum() float64 { return e.Left + e.Right }
func (e BoxEdge) BlockSum() float64  { return e.Top + e.Bottom }

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("margin-top"),
		Right:  s.getLengthOrZero("margin-right"),
		Bottom: s.getLengthOrZero("margin-bottom"),
		Left:   s.getLengthOrZero("margin-left"),
	}
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return BoxEdge{
		Top:    s.getLengthOrZero("padding-top"),
		Right:  s.getLengthOrZero("padding-right"),
		Bottom: s.getLengthOrZero("padding-bottom"),
		Left:   s.getLengthOrZero("padding-left"),
	}
}

// GetBorderWidth returns the border width for all four sides. A side whose
// border-style is none (the default) has no width.
func (s *Style) GetBorderWidth() BoxEdge {
	side := func(name string) float64 {
		st, ok := s.Get("border-" + name + "-style")
		if !ok {
			st, _ = s.Get("border-style")
		}
		if st == "" || st == "none" || st == "hidden" {
			return 0
		}
		return s.getLengthOrZero("border-" + name + "-width")
	}
	return BoxEdge{
		Top:    side("top"),
		Right:  side("right"),
		Bottom: side("bottom"),
		Left:   side("left"),
	}
}

// getLengthOrZero returns the length value or 0 if not found
func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok || val < 0 && !strings.HasPrefix(property, "margin") {
		return 0
	}
	return val
}

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok && size > 0 {
		return size
	}
	return 16.0
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size).
// A unitless number multiplies the font size.
func (s *Style) GetLineHeight() float64 {
	if v, ok := s.Get("line-height"); ok {
		v = strings.TrimSpace(v)
		if strings.HasSuffix(v, "px") {
			if lh, ok := ParseLength(v); ok && lh > 0 {
				return lh
			}
		} else if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f * s.GetFontSize()
		}
	}
	return s.GetFontSize() * 1.2
}

// DisplayType represents the display property value
type DisplayType string

const (
	DisplayBlock  DisplayType = "block"
	DisplayInline DisplayType = "inline"
	DisplayNone   DisplayType = "none"
)

// GetDisplay returns the display value (default: block)
func (s *Style) GetDisplay() DisplayType {
	if display, ok := s.Get("display"); ok {
		switch display {
		case "inline":
			return DisplayInline
		case "none":
			return DisplayNone
		}
	}
	return DisplayBlock
}

// IsOverflowClipped reports whether overflow hides content outside the box.
func (s *Style) IsOverflowClipped() bool {
	v, _ := s.Get("overflow")
	return v == "hidden" || v == "clip" || v == "scroll" || v == "auto"
}

func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, d := range parseDeclarations(styleAttr) {
		expandShorthand(style, d.property, d.value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property, "", value)
	case "border-width":
		expandBoxProperty(style, "border", "-width", value)
	case "border":
		for _, side := range []string{"top", "right", "bottom", "left"} {
			expandBorderSide(style, "border-"+side, value)
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderSide(style, property, value)
	case "columns":
		expandColumns(style, value)
	case "column-rule":
		expandBorderSide(style, "column-rule", value)
	case "page-break-before", "page-break-after":
		// Legacy aliases: always maps to page.
		if value == "always" {
			value = "page"
		}
		style.Set(strings.TrimPrefix(property, "page-"), value)
	case "page-break-inside":
		style.Set("break-inside", value)
	case "background":
		style.Set("background-color", value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands margin/padding style shorthands.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, prefix, suffix, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	style.Set(prefix+"-top"+suffix, t)
	style.Set(prefix+"-right"+suffix, r)
	style.Set(prefix+"-bottom"+suffix, b)
	style.Set(prefix+"-left"+suffix, l)
}

// expandBorderSide expands "1px solid black" into width/style/color
// longhands of one border side (or the column rule).
func expandBorderSide(style *Style, prefix, value string) {
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderStyle(part):
			style.Set(prefix+"-style", part)
		case isLengthToken(part):
			style.Set(prefix+"-width", part)
		default:
			style.Set(prefix+"-color", part)
		}
	}
}

func isBorderStyle(v string) bool {
	switch v {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isLengthToken(v string) bool {
	if v == "0" || v == "thin" || v == "medium" || v == "thick" {
		return true
	}
	_, ok := ParseLength(v)
	return ok && strings.HasSuffix(v, "px")
}
