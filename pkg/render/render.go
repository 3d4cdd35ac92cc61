package render

import (
	"errors"
	"image"
	"io"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"multicol/pkg/css"
	"multicol/pkg/images"
	"multicol/pkg/layout"
	"multicol/pkg/text"
)

var errNoImages = errors.New("no image source")

// Painter rasterizes fragment trees with gg.
type Painter struct {
	context *gg.Context
	fonts   *text.FontMeasurer
	images  *images.Cache
	logger  *zap.Logger
}

type Option func(*Painter)

// WithFonts paints text with the faces used for measuring. Without it the
// built-in bitmap face is used.
func WithFonts(m *text.FontMeasurer) Option { return func(p *Painter) { p.fonts = m } }

func WithImages(c *images.Cache) Option { return func(p *Painter) { p.images = c } }

func WithLogger(l *zap.Logger) Option { return func(p *Painter) { p.logger = l } }

func NewPainter(width, height int, opts ...Option) *Painter {
	p := &Painter{context: gg.NewContext(width, height), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Paint clears the canvas and draws f with its border-box origin at (0,0).
func (p *Painter) Paint(f *layout.Fragment) {
	p.context.SetRGB(1, 1, 1)
	p.context.Clear()
	p.paintFragment(f, 0, 0)
}

func (p *Painter) Image() image.Image { return p.context.Image() }

func (p *Painter) SavePNG(filename string) error { return p.context.SavePNG(filename) }

func (p *Painter) EncodePNG(w io.Writer) error { return p.context.EncodePNG(w) }

func (p *Painter) setColor(c css.Color) {
	p.context.SetRGBA255(int(c.R), int(c.G), int(c.B), int(c.A))
}

func (p *Painter) paintFragment(f *layout.Fragment, x, y float64) {
	switch f.Type {
	case layout.FragmentLine:
		p.drawText(f, x, y)
		return
	case layout.FragmentReplaced:
		p.drawBackground(f, x, y)
		p.drawImage(f, x, y)
		p.drawBorder(f, x, y)
		return
	case layout.FragmentBox:
		p.drawBackground(f, x, y)
		p.drawBorder(f, x, y)
	}
	for _, link := range f.Children {
		p.paintFragment(link.Fragment, x+link.Offset.X, y+link.Offset.Y)
	}
	if f.Type == layout.FragmentBox && f.Node != nil && f.Node.IsMulticol() {
		p.drawColumnRules(f, x, y)
	}
}

func (p *Painter) drawBackground(f *layout.Fragment, x, y float64) {
	if f.Node == nil {
		return
	}
	c, ok := f.Node.Style.GetBackgroundColor()
	if !ok || f.Size.Width <= 0 || f.Size.Height <= 0 {
		return
	}
	p.setColor(c)
	p.context.DrawRectangle(x, y, f.Size.Width, f.Size.Height)
	p.context.Fill()
}

// drawBorder paints each side as a trapezoid so corners miter. Sides that
// the fragment does not carry (a block-end border before a break) have
// zero width in f.Border.
func (p *Painter) drawBorder(f *layout.Fragment, x, y float64) {
	b := f.Border
	if f.Node == nil || (b.Top <= 0 && b.Right <= 0 && b.Bottom <= 0 && b.Left <= 0) {
		return
	}
	outerL, outerT := x, y
	outerR, outerB := x+f.Size.Width, y+f.Size.Height
	innerL, innerT := outerL+b.Left, outerT+b.Top
	innerR, innerB := outerR-b.Right, outerB-b.Bottom

	sides := []struct {
		name  string
		width float64
		pts   [4]gg.Point
	}{
		{"top", b.Top, [4]gg.Point{{X: outerL, Y: outerT}, {X: outerR, Y: outerT}, {X: innerR, Y: innerT}, {X: innerL, Y: innerT}}},
		{"right", b.Right, [4]gg.Point{{X: outerR, Y: outerT}, {X: outerR, Y: outerB}, {X: innerR, Y: innerB}, {X: innerR, Y: innerT}}},
		{"bottom", b.Bottom, [4]gg.Point{{X: outerL, Y: outerB}, {X: outerR, Y: outerB}, {X: innerR, Y: innerB}, {X: innerL, Y: innerB}}},
		{"left", b.Left, [4]gg.Point{{X: outerL, Y: outerT}, {X: outerL, Y: outerB}, {X: innerL, Y: innerB}, {X: innerL, Y: innerT}}},
	}
	for _, s := range sides {
		if s.width <= 0 {
			continue
		}
		p.setColor(f.Node.Style.GetBorderColor(s.name))
		p.context.MoveTo(s.pts[0].X, s.pts[0].Y)
		for _, pt := range s.pts[1:] {
			p.context.LineTo(pt.X, pt.Y)
		}
		p.context.ClosePath()
		p.context.Fill()
	}
}

// drawColumnRules paints a rule centered in the gap between each pair of
// adjacent columns in the same row.
func (p *Painter) drawColumnRules(f *layout.Fragment, x, y float64) {
	rule, ok := f.Node.Style.GetColumnRule()
	if !ok {
		return
	}
	p.setColor(rule.Color)
	p.context.SetLineWidth(rule.Width)
	var prev *layout.FragmentLink
	for i := range f.Children {
		link := &f.Children[i]
		if link.Fragment.Type != layout.FragmentColumnBox {
			prev = nil
			continue
		}
		if prev != nil && prev.Offset.Y == link.Offset.Y {
			left := prev.Offset.X + prev.Fragment.Size.Width
			mid := x + (left+link.Offset.X)/2
			top := y + link.Offset.Y
			bottom := top + link.Fragment.Size.Height
			p.context.DrawLine(mid, top, mid, bottom)
			p.context.Stroke()
		}
		prev = link
	}
}

func (p *Painter) face(n *layout.Node) font.Face {
	if p.fonts != nil {
		if f := p.fonts.Face(n.FontSize, n.Bold); f != nil {
			return f
		}
	}
	return basicfont.Face7x13
}

// drawText draws a line fragment with its baseline centered in the line
// box's half-leading.
func (p *Painter) drawText(f *layout.Fragment, x, y float64) {
	if f.Text == "" || f.Node == nil {
		return
	}
	face := p.face(f.Node)
	m := face.Metrics()
	ascent := float64(m.Ascent.Ceil())
	height := float64(m.Height.Ceil())
	baseline := y + (f.Size.Height-height)/2 + ascent

	p.context.SetFontFace(face)
	p.setColor(f.Node.Style.GetColor())
	p.context.DrawString(f.Text, x, baseline)
}

// drawImage scales the decoded image into the content box. Images that
// fail to load get a crossed placeholder.
func (p *Painter) drawImage(f *layout.Fragment, x, y float64) {
	n := f.Node
	bp := n.Border.Add(n.Padding)
	cx, cy := x+bp.Left, y+bp.Top
	w := f.Size.Width - bp.InlineSum()
	h := f.Size.Height - bp.BlockSum()
	if w <= 0 || h <= 0 {
		return
	}

	var img image.Image
	err := errNoImages
	if p.images != nil && n.Src != "" {
		img, err = p.images.Load(n.Src)
	}
	if err != nil {
		p.logger.Debug("image placeholder", zap.String("src", n.Src), zap.Error(err))
		p.context.SetRGB(0.9, 0.9, 0.9)
		p.context.DrawRectangle(cx, cy, w, h)
		p.context.Fill()
		p.context.SetRGB(0.5, 0.5, 0.5)
		p.context.SetLineWidth(1)
		p.context.DrawLine(cx, cy, cx+w, cy+h)
		p.context.DrawLine(cx+w, cy, cx, cy+h)
		p.context.Stroke()
		return
	}

	bounds := img.Bounds()
	p.context.Push()
	p.context.Translate(cx, cy)
	p.context.Scale(w/float64(bounds.Dx()), h/float64(bounds.Dy()))
	p.context.DrawImage(img, 0, 0)
	p.context.Pop()
}
