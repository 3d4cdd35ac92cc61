package layout

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"multicol/pkg/css"
	"multicol/pkg/text"
)

// ErrTooManyPages is returned by Paginate when the document does not end
// within the page limit.
var ErrTooManyPages = errors.New("layout: page limit reached")

const defaultMaxPages = 500

// LayoutEngine lays out node trees. Line breaking results are cached per
// node and width, so an engine must not be used from several goroutines at
// once.
type LayoutEngine struct {
	measurer text.Measurer
	logger   *zap.Logger
	maxPages int

	lines map[lineKey][]string
}

type lineKey struct {
	node  *Node
	width float64
}

// Option configures a LayoutEngine.
type Option func(*LayoutEngine)

// WithLogger sets the logger for layout decisions. They are logged at
// debug level.
func WithLogger(l *zap.Logger) Option {
	return func(le *LayoutEngine) { le.logger = l }
}

// WithMeasurer sets the text measurer used for line breaking.
func WithMeasurer(m text.Measurer) Option {
	return func(le *LayoutEngine) { le.measurer = m }
}

// WithMaxPages limits the number of pages Paginate produces.
func WithMaxPages(n int) Option {
	return func(le *LayoutEngine) { le.maxPages = n }
}

func NewLayoutEngine(opts ...Option) *LayoutEngine {
	le := &LayoutEngine{
		logger:   zap.NewNop(),
		maxPages: defaultMaxPages,
		lines:    make(map[lineKey][]string),
	}
	for _, opt := range opts {
		opt(le)
	}
	if le.measurer == nil {
		le.measurer = text.NewFontMeasurer(text.FontConfig{})
	}
	return le
}

// Layout lays out root in a viewport of the given width without
// fragmentation and returns its fragment.
func (le *LayoutEngine) Layout(root *Node, width float64) *Fragment {
	space := NewConstraintSpace(width, Indefinite)
	r := le.layoutChild(root, space, nil)
	return r.Fragment
}

// Paginate lays out root into pages of the given size. Each returned
// fragment is a page box.
func (le *LayoutEngine) Paginate(root *Node, pageWidth, pageHeight float64) ([]*Fragment, error) {
	var pages []*Fragment
	var bt *BreakToken
	for {
		if len(pages) >= le.maxPages {
			return pages, fmt.Errorf("%w: %d pages of %gx%g", ErrTooManyPages, le.maxPages, pageWidth, pageHeight)
		}
		space := NewConstraintSpace(pageWidth, pageHeight).WithFragmentation(FragmentPage, pageHeight)
		space.DiscardStartMargin = bt != nil && !bt.IsCausedByColumnSpanner
		r := le.layoutBlockFlow(root, space, bt, FragmentPageBox)
		pages = append(pages, r.Fragment)
		le.logger.Debug("page done",
			zap.Int("page", len(pages)), zap.Stringer("break_token", r.Fragment.BreakToken))
		bt = r.Fragment.BreakToken
		if bt == nil {
			return pages, nil
		}
	}
}

// layoutChild picks the algorithm for node. A break-before token means
// node has not started yet.
func (le *LayoutEngine) layoutChild(node *Node, space ConstraintSpace, bt *BreakToken) *LayoutResult {
	if bt != nil && bt.IsBreakBefore {
		bt = nil
	}
	switch {
	case node.Kind == NodeReplaced:
		return le.layoutReplaced(node, space)
	case node.IsMulticol():
		return le.layoutMulticol(node, space, bt)
	}
	return le.layoutBlockFlow(node, space, bt, FragmentBox)
}

// layoutReplaced produces the single unbreakable fragment of a replaced
// box.
func (le *LayoutEngine) layoutReplaced(node *Node, space ConstraintSpace) *LayoutResult {
	w, h := replacedSize(node, space)
	r := newResult(StatusSuccess)
	r.Fragment = &Fragment{
		Node:     node,
		Type:     FragmentReplaced,
		Size:     Size{Width: w, Height: h},
		Border:   node.Border,
		Baseline: h,
	}
	r.TallestUnbreakableBlockSize = h
	return r
}

// replacedSize returns the border-box size of a replaced box. A missing
// dimension follows the intrinsic aspect ratio.
func replacedSize(node *Node, space ConstraintSpace) (float64, float64) {
	bp := node.borderPadding()
	iw, ih := node.IntrinsicWidth, node.IntrinsicHeight

	w, h := Indefinite, Indefinite
	switch node.Width.Type {
	case css.LengthFixed:
		w = node.Width.Value
	case css.LengthPercent:
		if pw := space.PercentageResolutionSize.Width; isDefinite(pw) {
			w = node.Width.Value * pw / 100
		}
	}
	h = resolveMainBlockLength(space, node.Height)

	switch {
	case isDefinite(w) && isDefinite(h):
	case isDefinite(w):
		h = ih
		if iw > 0 {
			h = w * ih / iw
		}
	case isDefinite(h):
		w = iw
		if ih > 0 {
			w = h * iw / ih
		}
	default:
		w, h = iw, ih
	}
	if mx := resolveMaxBlockLength(space, node.MaxHeight); mx != MaxLayoutSize {
		h = min(h, mx)
	}
	h = max(h, resolveMinBlockLength(space, node.MinHeight))
	return Snap(w + bp.InlineSum()), Snap(h + bp.BlockSum())
}

func (le *LayoutEngine) breakLines(node *Node, width float64) []string {
	key := lineKey{node, width}
	if lines, ok := le.lines[key]; ok {
		return lines
	}
	lines := text.BreakLines(le.measurer, node.Text, node.FontSize, node.Bold, width)
	le.lines[key] = lines
	return lines
}

func (le *LayoutEngine) measure(node *Node, s string) float64 {
	return le.measurer.MeasureString(s, node.FontSize, node.Bold)
}

func zapNode(key string, n *Node) zap.Field {
	return zap.Stringer(key, n)
}
