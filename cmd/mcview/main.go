package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"multicol/pkg/config"
	"multicol/pkg/layout"
	"multicol/pkg/observability"
	"multicol/pkg/render"
	"multicol/pkg/resource"
)

// viewer shows one page (or the whole document when not paginating) at
// a time.
type viewer struct {
	cfg    *config.Config
	logger *zap.Logger

	image  *canvas.Image
	status *widget.Label
	window fyne.Window

	result   *resource.Result
	pipeline *resource.Pipeline
	page     int
}

func main() {
	cfgFile := flag.String("config", "", "config file (default ./multicol.yaml)")
	flag.Parse()

	cfg, err := config.Load(config.NewViper(*cfgFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	logger, err := observability.NewLogger(cfg.Logger, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer observability.Sync(logger)

	a := app.New()
	w := a.NewWindow("multicol")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width)+40, float32(cfg.Viewport.Height)+80))

	v := &viewer{
		cfg:    cfg,
		logger: logger,
		image:  canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1))),
		status: widget.NewLabel("Enter a path or URL and press Enter"),
		window: w,
	}
	v.image.FillMode = canvas.ImageFillOriginal

	entry := widget.NewEntry()
	entry.SetPlaceHolder("docs/columns.html")
	entry.OnSubmitted = func(uri string) { go v.load(uri) }

	prev := widget.NewButton("<", func() { v.show(v.page - 1) })
	next := widget.NewButton(">", func() { v.show(v.page + 1) })
	top := container.NewBorder(nil, nil, nil, container.NewHBox(prev, next), entry)
	w.SetContent(container.NewBorder(top, v.status, nil, nil, container.NewScroll(v.image)))
	w.Canvas().Focus(entry)

	if flag.NArg() > 0 {
		entry.SetText(flag.Arg(0))
		go v.load(flag.Arg(0))
	}
	w.ShowAndRun()
}

func (v *viewer) load(uri string) {
	fyne.Do(func() { v.status.SetText("Loading " + uri + "...") })
	p := resource.NewPipeline(v.cfg, resource.WithLogger(v.logger))
	res, err := p.Run(context.Background(), uri)
	if err != nil && (res == nil || len(res.Fragments) == 0) {
		v.logger.Error("load failed", zap.String("uri", uri), zap.Error(err))
		fyne.Do(func() { v.status.SetText("Error: " + err.Error()) })
		return
	}
	fyne.Do(func() {
		v.result, v.pipeline = res, p
		v.window.SetTitle("multicol - " + uri)
		v.show(0)
	})
}

// show paints page i. It must run on the UI goroutine.
func (v *viewer) show(i int) {
	if v.result == nil || i < 0 || i >= len(v.result.Fragments) {
		return
	}
	v.page = i
	f := v.result.Fragments[i]
	height := math.Max(v.cfg.Viewport.Height, f.Size.Height)
	if f.Type == layout.FragmentPageBox {
		height = v.cfg.Page.Height
	}
	painter := render.NewPainter(int(math.Ceil(v.cfg.Viewport.Width)), int(math.Ceil(height)),
		render.WithFonts(v.pipeline.Fonts()),
		render.WithImages(v.result.Images),
		render.WithLogger(v.logger))
	painter.Paint(f)

	v.image.Image = painter.Image()
	v.image.SetMinSize(fyne.NewSize(float32(v.cfg.Viewport.Width), float32(height)))
	v.image.Refresh()
	v.status.SetText(fmt.Sprintf("%s  %d/%d", v.result.Source.URI, i+1, len(v.result.Fragments)))
}
