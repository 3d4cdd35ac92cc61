package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"multicol/pkg/layout"
	"multicol/pkg/render"
	"multicol/pkg/text"
)

var errNoPageHeight = errors.New("paginate needs --page-height or page.height")

func newPaginateCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "paginate <document>",
		Short: "Split a document into pages and write one PNG per page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Paginated() {
				return errNoPageHeight
			}
			res, err := a.pipeline().Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			fonts := text.FontConfig{Regular: a.cfg.Fonts.Regular, Bold: a.cfg.Fonts.Bold}
			width := int(math.Ceil(a.cfg.Viewport.Width))
			height := int(math.Ceil(a.cfg.Page.Height))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.NumCPU())
			for i, page := range res.Fragments {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					return writePage(page, filepath.Join(dir, pageName(i)), width, height,
						// Font faces are not safe for concurrent use; each page
						// gets its own.
						render.WithFonts(text.NewFontMeasurer(fonts)),
						render.WithImages(res.Images))
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			a.logger.Info("wrote pages", zap.String("dir", dir), zap.Int("pages", len(res.Fragments)))
			fmt.Fprintf(cmd.OutOrStdout(), "%d pages written to %s\n", len(res.Fragments), dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output-dir", "o", "pages", "directory for page PNGs")
	return cmd
}

func pageName(i int) string { return fmt.Sprintf("page-%03d.png", i+1) }

func writePage(page *layout.Fragment, path string, width, height int, opts ...render.Option) error {
	p := render.NewPainter(width, height, opts...)
	p.Paint(page)
	if err := p.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
