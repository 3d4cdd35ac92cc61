package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"multicol/pkg/layout"
	"multicol/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a document to a single PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Page.Height = 0
			p := a.pipeline()
			res, err := p.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f := res.Fragments[0]
			height := int(math.Ceil(math.Max(a.cfg.Viewport.Height, f.Size.Height)))
			painter := render.NewPainter(int(math.Ceil(a.cfg.Viewport.Width)), height,
				render.WithFonts(p.Fonts()),
				render.WithImages(res.Images),
				render.WithLogger(a.logger.Named("render")))
			painter.Paint(f)
			if err := painter.SavePNG(output); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.logger.Info("rendered", zap.String("output", output), zap.Int("height", height))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "out.png", "PNG file to write")
	return cmd
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <document>",
		Short: "Print the fragment tree, one page after another when paginating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.pipeline().Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, f := range res.Fragments {
				if f.Type == layout.FragmentPageBox {
					fmt.Fprintf(out, "page %d\n", i+1)
				}
				if err := layout.Dump(out, f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
