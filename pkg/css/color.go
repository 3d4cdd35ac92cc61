package css

import (
	"strconv"
	"strings"
)

type Color struct {
	R, G, B, A uint8
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"lightgray":   {211, 211, 211, 255},
	"navy":        {0, 0, 128, 255},
	"teal":        {0, 128, 128, 255},
	"lime":        {0, 255, 0, 255},
	"pink":        {255, 192, 203, 255},
	"brown":       {165, 42, 42, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor accepts named colors, #rgb, #rrggbb and rgb(r, g, b).
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, false
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, false
		}
		return Color{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, true
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			return Color{}, false
		}
		var rgb [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return Color{}, false
			}
			rgb[i] = uint8(n)
		}
		return Color{rgb[0], rgb[1], rgb[2], 255}, true
	}
	return Color{}, false
}

// GetColor returns the text color (default: black)
func (s *Style) GetColor() Color {
	if v, ok := s.Get("color"); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return Color{0, 0, 0, 255}
}

// GetBackgroundColor returns the background color, with ok=false when
// nothing should be painted.
func (s *Style) GetBackgroundColor() (Color, bool) {
	v, ok := s.Get("background-color")
	if !ok {
		return Color{}, false
	}
	c, ok := ParseColor(v)
	return c, ok && c.A > 0
}

// GetBorderColor returns the color of one border side ("top", "right", ...).
// It falls back to border-color and then to the text color.
func (s *Style) GetBorderColor(side string) Color {
	for _, prop := range []string{"border-" + side + "-color", "border-color"} {
		if v, ok := s.Get(prop); ok {
			if c, ok := ParseColor(v); ok {
				return c
			}
		}
	}
	return s.GetColor()
}
