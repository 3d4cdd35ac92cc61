package css

import (
	"strconv"
	"strings"
)

// ColumnFill is the column-fill property.
type ColumnFill int

const (
	ColumnFillBalance ColumnFill = iota
	ColumnFillAuto
)

// GetColumnCount returns column-count, or 0 for auto.
func (s *Style) GetColumnCount() int {
	v, ok := s.Get("column-count")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// GetColumnWidth returns column-width in pixels, with ok=false for auto.
func (s *Style) GetColumnWidth() (float64, bool) {
	l := s.GetLengthValue("column-width")
	if l.Type != LengthFixed {
		return 0, false
	}
	return l.Value, true
}

// GetColumnGap returns column-gap in pixels. "normal" resolves to 1em.
func (s *Style) GetColumnGap() float64 {
	if v, ok := s.Get("column-gap"); ok && v != "normal" {
		if l := ParseLengthValue(v, s.GetFontSize()); l.Type == LengthFixed {
			return l.Value
		}
	}
	return s.GetFontSize()
}

func (s *Style) GetColumnFill() ColumnFill {
	if v, _ := s.Get("column-fill"); v == "auto" {
		return ColumnFillAuto
	}
	return ColumnFillBalance
}

// IsColumnSpanAll reports column-span: all.
func (s *Style) IsColumnSpanAll() bool {
	v, _ := s.Get("column-span")
	return v == "all"
}

// IsMulticolContainer reports whether the element establishes a
// multicolumn container.
func (s *Style) IsMulticolContainer() bool {
	_, hasWidth := s.GetColumnWidth()
	return hasWidth || s.GetColumnCount() > 0
}

// ColumnRule describes the line painted between adjacent columns.
type ColumnRule struct {
	Width float64
	Color Color
}

// GetColumnRule returns the column rule, with ok=false when none is drawn.
func (s *Style) GetColumnRule() (ColumnRule, bool) {
	if st, _ := s.Get("column-rule-style"); st == "" || st == "none" || st == "hidden" {
		return ColumnRule{}, false
	}
	w := 3.0
	if v, ok := s.GetLength("column-rule-width"); ok {
		w = v
	}
	c := s.GetColor()
	if v, ok := s.Get("column-rule-color"); ok {
		if parsed, ok := ParseColor(v); ok {
			c = parsed
		}
	}
	return ColumnRule{Width: w, Color: c}, w > 0
}

// expandColumns expands "columns: <width> || <count>".
func expandColumns(style *Style, value string) {
	style.Set("column-width", "auto")
	style.Set("column-count", "auto")
	for _, part := range strings.Fields(value) {
		if part == "auto" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			style.Set("column-count", strconv.Itoa(n))
			continue
		}
		style.Set("column-width", part)
	}
}
