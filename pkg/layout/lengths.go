package layout

import (
	"math"

	"multicol/pkg/css"
)

func toUnits(v float64) int64 { return int64(math.Round(v * unitsPerPixel)) }
func fromUnits(u int64) float64 { return float64(u) / unitsPerPixel }

// resolveUsedColumnCount implements the used column-count rules of CSS
// multicol. computedCount is 0 for column-count:auto, computedWidth is
// Indefinite for column-width:auto.
func resolveUsedColumnCount(computedCount int, computedWidth, gap, available float64) int {
	if !isDefinite(computedWidth) {
		return max(computedCount, 1)
	}
	countFromWidth := int((toUnits(available) + toUnits(gap)) / (toUnits(computedWidth) + toUnits(gap)))
	countFromWidth = max(1, countFromWidth)
	if computedCount == 0 {
		return countFromWidth
	}
	return max(1, min(computedCount, countFromWidth))
}

func resolveUsedColumnInlineSize(computedCount int, computedWidth, gap, available float64) float64 {
	count := resolveUsedColumnCount(computedCount, computedWidth, gap, available)
	size := fromUnits((toUnits(available)+toUnits(gap))/int64(count)) - gap
	return max(size, 0)
}

// computedColumnWidth is column-width floored at one pixel, or Indefinite
// for auto.
func computedColumnWidth(n *Node) float64 {
	if !n.HasColumnWidth {
		return Indefinite
	}
	return max(1, n.ColumnWidth)
}

// ResolveUsedColumnCount returns the number of columns n gets in a content
// box of the given inline size.
func ResolveUsedColumnCount(available float64, n *Node) int {
	return resolveUsedColumnCount(n.ColumnCount, computedColumnWidth(n), ResolveUsedColumnGap(n), available)
}

// ResolveUsedColumnInlineSize returns the width of each column of n.
func ResolveUsedColumnInlineSize(available float64, n *Node) float64 {
	return resolveUsedColumnInlineSize(n.ColumnCount, computedColumnWidth(n), ResolveUsedColumnGap(n), available)
}

// ResolveUsedColumnGap returns column-gap; normal is 1em. Percentage gaps
// are not supported and resolve to 1em as well.
func ResolveUsedColumnGap(n *Node) float64 {
	return n.ColumnGap
}

// resolveInlineSize returns the border-box inline size of a block in space.
// Auto widths stretch to the available size.
func (le *LayoutEngine) resolveInlineSize(n *Node, space ConstraintSpace) float64 {
	bp := n.borderPadding().InlineSum()
	switch n.Width.Type {
	case css.LengthFixed:
		return Snap(n.Width.Value + bp)
	case css.LengthPercent:
		if isDefinite(space.PercentageResolutionSize.Width) {
			return Snap(n.Width.Value*space.PercentageResolutionSize.Width/100 + bp)
		}
	case css.LengthMinContent:
		return Snap(le.ComputeMinMaxSizes(n).MinContentSize)
	case css.LengthMaxContent:
		return Snap(le.ComputeMinMaxSizes(n).MaxContentSize)
	}
	return max(space.AvailableSize.Width, bp)
}

// resolveMainBlockLength resolves height to a content-box size, or
// Indefinite when it is auto or a percentage of an indefinite size.
func resolveMainBlockLength(space ConstraintSpace, l css.Length) float64 {
	switch l.Type {
	case css.LengthFixed:
		return l.Value
	case css.LengthPercent:
		if h := space.PercentageResolutionSize.Height; isDefinite(h) {
			return Snap(l.Value * h / 100)
		}
	}
	return Indefinite
}

// resolveMinBlockLength treats unresolvable values as zero.
func resolveMinBlockLength(space ConstraintSpace, l css.Length) float64 {
	return max(resolveMainBlockLength(space, l), 0)
}

// resolveMaxBlockLength treats unresolvable values as no limit.
func resolveMaxBlockLength(space ConstraintSpace, l css.Length) float64 {
	if v := resolveMainBlockLength(space, l); isDefinite(v) {
		return v
	}
	return MaxLayoutSize
}

// computeBlockSize returns the border-box block size of n for content of
// the given border-box size, honoring height, min-height and max-height.
func computeBlockSize(n *Node, space ConstraintSpace, contentSize float64) float64 {
	bp := n.borderPadding().BlockSum()
	size := contentSize
	if h := resolveMainBlockLength(space, n.Height); isDefinite(h) {
		size = h + bp
	}
	if mx := resolveMaxBlockLength(space, n.MaxHeight); mx != MaxLayoutSize {
		size = min(size, mx+bp)
	}
	size = max(size, resolveMinBlockLength(space, n.MinHeight)+bp)
	return Snap(size)
}

// initialContentBlockSize is the content-box block size n is known to
// have before layout, or Indefinite when it depends on content.
func initialContentBlockSize(n *Node, space ConstraintSpace) float64 {
	h := resolveMainBlockLength(space, n.Height)
	if !isDefinite(h) {
		return Indefinite
	}
	if mx := resolveMaxBlockLength(space, n.MaxHeight); mx != MaxLayoutSize {
		h = min(h, mx)
	}
	return max(h, resolveMinBlockLength(space, n.MinHeight))
}
