package layout

// MarginStrut accumulates adjoining block margins until they are resolved.
// Positive margins collapse to the largest, negative ones to the most
// negative, and the two are summed.
type MarginStrut struct {
	positive float64
	negative float64
}

// Append adds one margin to the strut.
func (m *MarginStrut) Append(margin float64) {
	if margin > m.positive {
		m.positive = margin
	}
	if margin < m.negative {
		m.negative = margin
	}
}

// Sum returns the collapsed margin.
func (m MarginStrut) Sum() float64 {
	return collapseMargins(m.positive, m.negative)
}

// collapseMargins returns the collapsed margin value for two adjoining vertical margins.
// Per CSS 2.1: both positive => max, both negative => most negative, mixed => sum.
func collapseMargins(margin1, margin2 float64) float64 {
	if margin1 >= 0 && margin2 >= 0 {
		return max(margin1, margin2)
	}
	if margin1 < 0 && margin2 < 0 {
		return min(margin1, margin2)
	}
	return margin1 + margin2
}
