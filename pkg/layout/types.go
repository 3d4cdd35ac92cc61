package layout

import "math"

// Indefinite marks a size that has not been resolved (an auto block size,
// an unknown fragmentainer size).
const Indefinite = -1.0

// MaxLayoutSize is the "no value" for space shortages.
const MaxLayoutSize = math.MaxFloat64

// unitsPerPixel is the sub-pixel grid every layout value is snapped to.
const unitsPerPixel = 64

// Snap rounds v to the nearest layout unit.
func Snap(v float64) float64 {
	return math.Round(v*unitsPerPixel) / unitsPerPixel
}

// CeilUnit rounds v up to the next layout unit.
func CeilUnit(v float64) float64 {
	return math.Ceil(math.Round(v*unitsPerPixel*1e6)/1e6) / unitsPerPixel
}

// divideCeil divides v into n pieces, rounding up to the layout unit so
// that n pieces always hold v.
func divideCeil(v float64, n int) float64 {
	raw := int64(math.Round(v * unitsPerPixel))
	q := (raw + int64(n) - 1) / int64(n)
	return float64(q) / unitsPerPixel
}

func isDefinite(v float64) bool { return v >= 0 }

// Size is a width/height pair. Layout is horizontal-tb only, so inline is
// width and block is height.
type Size struct {
	Width  float64
	Height float64
}

// Position is an offset relative to the parent fragment's border-box
// origin.
type Position struct {
	X float64
	Y float64
}
