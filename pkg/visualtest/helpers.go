package visualtest

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"

	"multicol/pkg/config"
	"multicol/pkg/render"
	"multicol/pkg/resource"
	"multicol/pkg/text"
)

// Renderer paints documents for reference comparisons. Text uses a fixed
// advance so results do not depend on installed fonts.
type Renderer struct {
	Width, Height int
	// PageHeight paginates when positive.
	PageHeight float64
}

func (r Renderer) config() *config.Config {
	return &config.Config{
		Viewport: config.ViewportConfig{Width: float64(r.Width), Height: float64(r.Height)},
		Page:     config.PageConfig{Height: r.PageHeight, MaxPages: 100},
		Fonts:    config.FontConfig{Size: 16},
		Scripts:  config.ScriptConfig{Enabled: true},
		Logger:   config.LoggerConfig{Format: "console"},
	}
}

// RenderHTML lays out and paints markup, returning one image per page
// (a single image when not paginating).
func (r Renderer) RenderHTML(ctx context.Context, markup string) ([]image.Image, error) {
	dir, err := os.MkdirTemp("", "visualtest")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "doc.html")
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return nil, err
	}
	return r.RenderFile(ctx, path)
}

func (r Renderer) RenderFile(ctx context.Context, path string) ([]image.Image, error) {
	p := resource.NewPipeline(r.config(), resource.WithMeasurer(text.FixedMeasurer{Advance: 0.5}))
	res, err := p.Run(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}
	out := make([]image.Image, 0, len(res.Fragments))
	for _, f := range res.Fragments {
		height := r.Height
		if r.PageHeight <= 0 {
			height = int(math.Max(float64(r.Height), math.Ceil(f.Size.Height)))
		}
		painter := render.NewPainter(r.Width, height, render.WithImages(res.Images))
		painter.Paint(f)
		out = append(out, painter.Image())
	}
	return out, nil
}
