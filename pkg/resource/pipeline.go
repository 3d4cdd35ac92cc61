package resource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"multicol/pkg/config"
	"multicol/pkg/css"
	"multicol/pkg/html"
	"multicol/pkg/images"
	"multicol/pkg/js"
	"multicol/pkg/layout"
	"multicol/pkg/text"
	stdnet "multicol/std/net"
)

// Pipeline turns a document URI into fragments: load, parse, run scripts,
// cascade styles, build the layout tree, then lay out or paginate.
type Pipeline struct {
	cfg      *config.Config
	loader   *Loader
	fonts    *text.FontMeasurer
	measurer text.Measurer
	logger   *zap.Logger
}

type Option func(*Pipeline)

func WithLogger(l *zap.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// WithMeasurer overrides font-based measurement, mostly for tests.
func WithMeasurer(m text.Measurer) Option { return func(p *Pipeline) { p.measurer = m } }

func WithLoader(l *Loader) Option { return func(p *Pipeline) { p.loader = l } }

func NewPipeline(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.fonts = text.NewFontMeasurer(text.FontConfig{Regular: cfg.Fonts.Regular, Bold: cfg.Fonts.Bold})
	if p.measurer == nil {
		p.measurer = p.fonts
	}
	if p.loader == nil {
		client := stdnet.NewClient(cfg.Network.Timeout, cfg.Network.UserAgent)
		p.loader = NewLoader(client, p.logger.Named("loader"))
	}
	return p
}

// Fonts returns the faces used for measuring, so painting matches layout.
func (p *Pipeline) Fonts() *text.FontMeasurer { return p.fonts }

// Result is everything a consumer needs to dump or paint a document.
type Result struct {
	Source   *Source
	Document *html.Document
	Root     *layout.Node
	Images   *images.Cache
	// Fragments holds one fragment for continuous layout, or one page box
	// per page when paginating.
	Fragments []*layout.Fragment
}

func (p *Pipeline) Run(ctx context.Context, uri string) (*Result, error) {
	src, err := p.loader.Load(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", uri, err)
	}
	return p.RunSource(ctx, src)
}

// RunSource processes an already loaded document. Script and stylesheet
// failures are logged and skipped; only loading and layout limits fail
// the run.
func (p *Pipeline) RunSource(ctx context.Context, src *Source) (*Result, error) {
	parser := html.NewParser(src.Body)
	doc, err := parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.URI, err)
	}

	if p.cfg.Scripts.Enabled && len(doc.Scripts) > 0 {
		engine := js.New(js.WithLogger(p.logger.Named("js")))
		if err := engine.Execute(doc); err != nil {
			p.logger.Warn("script failed", zap.String("uri", src.URI), zap.Error(err))
		}
	}

	sheets := []string{fmt.Sprintf("html, body { font-size: %gpx }", p.cfg.Fonts.Size)}
	for _, href := range parser.Links {
		body, err := p.loader.Fetch(ctx, src, href)
		if err != nil {
			p.logger.Warn("stylesheet skipped", zap.String("href", href), zap.Error(err))
			continue
		}
		sheets = append(sheets, string(body))
	}
	styles, errs := css.ApplyStylesToDocument(doc, sheets...)
	for _, err := range errs {
		p.logger.Warn("stylesheet ignored", zap.Error(err))
	}

	cache := images.NewCache(src.BaseDir)
	if src.Remote() {
		cache = images.NewRemoteCache(func(ref string) ([]byte, error) {
			return p.loader.Fetch(ctx, src, ref)
		})
	}
	tb := &layout.TreeBuilder{Styles: styles, Images: cache}
	root := tb.Build(doc)

	le := layout.NewLayoutEngine(
		layout.WithMeasurer(p.measurer),
		layout.WithLogger(p.logger.Named("layout")),
		layout.WithMaxPages(p.cfg.Page.MaxPages),
	)
	res := &Result{Source: src, Document: doc, Root: root, Images: cache}
	if !p.cfg.Paginated() {
		res.Fragments = []*layout.Fragment{le.Layout(root, p.cfg.Viewport.Width)}
		return res, nil
	}
	pages, err := le.Paginate(root, p.cfg.Viewport.Width, p.cfg.Page.Height)
	res.Fragments = pages
	if err != nil {
		return res, fmt.Errorf("paginating %s: %w", src.URI, err)
	}
	p.logger.Info("paginated", zap.String("uri", src.URI), zap.Int("pages", len(pages)))
	return res, nil
}
