package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"multicol/pkg/config"
	"multicol/pkg/observability"
	"multicol/pkg/resource"
)

// app carries state set up by the root command for its subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagKeys maps persistent flags onto config keys. Flags only override
// the file and environment when set explicitly.
var flagKeys = map[string]string{
	"width":       "viewport.width",
	"height":      "viewport.height",
	"page-height": "page.height",
	"max-pages":   "page.max_pages",
	"font":        "fonts.regular",
	"bold-font":   "fonts.bold",
	"scripts":     "scripts.enabled",
	"log-level":   "logger.level",
	"log-format":  "logger.format",
	"log-file":    "logger.log_file",
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "multicol",
		Short:         "Lay out HTML documents with CSS multi-column and pagination.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Flags(), cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			observability.Sync(a.logger)
		},
	}
	root.SetVersionTemplate("multicol version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./multicol.yaml)")
	pf.Float64("width", 0, "viewport width in px")
	pf.Float64("height", 0, "viewport height in px")
	pf.Float64("page-height", 0, "paginate into pages of this height")
	pf.Int("max-pages", 0, "stop paginating after this many pages")
	pf.String("font", "", "regular TrueType font")
	pf.String("bold-font", "", "bold TrueType font")
	pf.Bool("scripts", true, "run inline scripts before layout")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("log-format", "", "console or json")
	pf.String("log-file", "", "also write JSON logs to this rotated file")

	root.AddCommand(
		newRenderCmd(a),
		newDumpCmd(a),
		newPaginateCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(flags *pflag.FlagSet, cmd *cobra.Command) error {
	v := config.NewViper(a.cfgFile)
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	logger.Debug("configured", zap.Float64("width", cfg.Viewport.Width), zap.Float64("page_height", cfg.Page.Height))
	return nil
}

func (a *app) pipeline() *resource.Pipeline {
	return resource.NewPipeline(a.cfg, resource.WithLogger(a.logger))
}
