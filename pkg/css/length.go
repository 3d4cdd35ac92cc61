package css

import (
	"strconv"
	"strings"
)

// LengthType classifies a sizing value.
type LengthType int

const (
	LengthAuto LengthType = iota
	LengthFixed
	LengthPercent
	LengthMinContent
	LengthMaxContent
	// LengthNone is the initial value of max-width and max-height.
	LengthNone
)

// Length is a specified sizing value: a pixel amount, a percentage of the
// containing block, or a keyword.
type Length struct {
	Type  LengthType
	Value float64
}

func Px(v float64) Length       { return Length{Type: LengthFixed, Value: v} }
func Percent(v float64) Length  { return Length{Type: LengthPercent, Value: v} }
func (l Length) IsAuto() bool   { return l.Type == LengthAuto }
func (l Length) IsNone() bool   { return l.Type == LengthNone }
func (l Length) IsFixed() bool  { return l.Type == LengthFixed }
func (l Length) IsPercent() bool { return l.Type == LengthPercent }

// ParseLengthValue parses px, em (against fontSize), %, and the auto, none,
// min-content and max-content keywords. Unparseable input is auto.
func ParseLengthValue(val string, fontSize float64) Length {
	val = strings.ToLower(strings.TrimSpace(val))
	switch val {
	case "", "auto":
		return Length{Type: LengthAuto}
	case "none":
		return Length{Type: LengthNone}
	case "min-content":
		return Length{Type: LengthMinContent}
	case "max-content":
		return Length{Type: LengthMaxContent}
	}
	if strings.HasSuffix(val, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64); err == nil {
			return Percent(f)
		}
		return Length{Type: LengthAuto}
	}
	if strings.HasSuffix(val, "em") && !strings.HasSuffix(val, "rem") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(val, "em"), 64); err == nil {
			return Px(f * fontSize)
		}
		return Length{Type: LengthAuto}
	}
	if f, ok := ParseLength(val); ok {
		return Px(f)
	}
	return Length{Type: LengthAuto}
}

// GetLengthValue returns the sizing value of property, or the property's
// initial value when unset.
func (s *Style) GetLengthValue(property string) Length {
	val, ok := s.Get(property)
	if !ok {
		if strings.HasPrefix(property, "max-") {
			return Length{Type: LengthNone}
		}
		return Length{Type: LengthAuto}
	}
	l := ParseLengthValue(val, s.GetFontSize())
	if l.Type == LengthFixed && l.Value < 0 {
		return Length{Type: LengthAuto}
	}
	return l
}
