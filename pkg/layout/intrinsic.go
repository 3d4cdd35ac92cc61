package layout

import (
	"multicol/pkg/css"
	"multicol/pkg/text"
)

// MinMaxSizes holds the min-content and max-content inline sizes of a box.
type MinMaxSizes struct {
	MinContentSize float64
	MaxContentSize float64
}

// Encompass grows s to hold o.
func (s *MinMaxSizes) Encompass(o MinMaxSizes) {
	s.MinContentSize = max(s.MinContentSize, o.MinContentSize)
	s.MaxContentSize = max(s.MaxContentSize, o.MaxContentSize)
}

func (s *MinMaxSizes) add(v float64) {
	s.MinContentSize += v
	s.MaxContentSize += v
}

// ComputeMinMaxSizes returns the border-box min/max content inline sizes
// of node.
func (le *LayoutEngine) ComputeMinMaxSizes(node *Node) MinMaxSizes {
	if node == nil {
		return MinMaxSizes{}
	}

	switch node.Kind {
	case NodeText:
		return le.computeTextMinMax(node)
	case NodeReplaced:
		w, _ := replacedSize(node, NewConstraintSpace(Indefinite, Indefinite))
		return MinMaxSizes{MinContentSize: w, MaxContentSize: w}
	}

	if node.Width.Type == css.LengthFixed {
		w := node.Width.Value + node.borderPadding().InlineSum()
		return MinMaxSizes{MinContentSize: w, MaxContentSize: w}
	}
	if node.IsMulticol() {
		return le.computeMulticolMinMax(node)
	}
	return le.computeBlockMinMax(node, false)
}

// computeTextMinMax: min is the longest word, max the unwrapped text.
func (le *LayoutEngine) computeTextMinMax(node *Node) MinMaxSizes {
	return MinMaxSizes{
		MinContentSize: Snap(text.MinContentWidth(le.measurer, node.Text, node.FontSize, node.Bold)),
		MaxContentSize: Snap(text.MaxContentWidth(le.measurer, node.Text, node.FontSize, node.Bold)),
	}
}

// computeBlockMinMax takes the largest child contribution.
func (le *LayoutEngine) computeBlockMinMax(node *Node, skipSpanners bool) MinMaxSizes {
	sizes := le.childrenMinMax(node, skipSpanners)
	sizes.add(node.borderPadding().InlineSum())
	return sizes
}

// childrenMinMax encompasses the margin-box contributions of the children.
// Column content skips spanners; they don't take part in the column-count
// multiplication.
func (le *LayoutEngine) childrenMinMax(node *Node, skipSpanners bool) MinMaxSizes {
	var sizes MinMaxSizes
	for _, child := range node.Children {
		if skipSpanners && child.ColumnSpanAll {
			continue
		}
		var childSizes MinMaxSizes
		if skipSpanners && child.Kind == NodeBlock && !createsNewFormattingContext(child) && child.Width.Type != css.LengthFixed {
			childSizes = le.computeBlockMinMax(child, true)
		} else {
			childSizes = le.ComputeMinMaxSizes(child)
		}
		childSizes.add(child.Margin.InlineSum())
		sizes.Encompass(childSizes)
	}
	return sizes
}

// computeMulticolMinMax converts column min/max sizes to container sizes.
// column-width caps the min size, and column-count is ignored for the min
// size when column-width is set.
func (le *LayoutEngine) computeMulticolMinMax(node *Node) MinMaxSizes {
	sizes := le.childrenMinMax(node, true)

	if node.HasColumnWidth {
		w := computedColumnWidth(node)
		sizes.MinContentSize = min(sizes.MinContentSize, w)
		sizes.MaxContentSize = max(sizes.MaxContentSize, w)
		sizes.MaxContentSize = max(sizes.MaxContentSize, sizes.MinContentSize)
	}

	count := max(node.ColumnCount, 1)
	gapExtra := ResolveUsedColumnGap(node) * float64(count-1)
	if !node.HasColumnWidth {
		sizes.MinContentSize = sizes.MinContentSize*float64(count) + gapExtra
	}
	sizes.MaxContentSize = sizes.MaxContentSize*float64(count) + gapExtra

	sizes.Encompass(le.computeSpannersMinMax(node))
	sizes.add(node.borderPadding().InlineSum())
	return sizes
}

// computeSpannersMinMax finds the spanners in the column formatting
// context of parent. They need not be direct children.
func (le *LayoutEngine) computeSpannersMinMax(parent *Node) MinMaxSizes {
	var sizes MinMaxSizes
	for _, child := range parent.Children {
		if child.Kind != NodeBlock {
			continue
		}
		if !child.ColumnSpanAll {
			if createsNewFormattingContext(child) {
				continue
			}
			sizes.Encompass(le.computeSpannersMinMax(child))
			continue
		}
		childSizes := le.ComputeMinMaxSizes(child)
		childSizes.add(child.Margin.InlineSum())
		sizes.Encompass(childSizes)
	}
	return sizes
}

func createsNewFormattingContext(n *Node) bool {
	return n.IsMulticol() || n.OverflowClip || n.Kind == NodeReplaced
}
