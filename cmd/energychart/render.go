package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"webcarbon/internal/config"
	"webcarbon/internal/logger"
	"webcarbon/internal/models"
	"webcarbon/internal/reports"
	"webcarbon/internal/storage"
)

// renderOptions holds the flags of the render command.
type renderOptions struct {
	variant string
	out     string
}

// NewRenderCmd creates the render command.
func NewRenderCmd() *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart report and publish it to storage",
		Long: `Render the report page, methodology markdown, static PNG/SVG charts, the
interactive chart and the dataset exports, then publish them through the
configured storage (local OUTPUT_DIR or a GCS bucket).

Passing --out forces local storage under that directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "", "Methodology panel variant (detailed, compact); defaults to CHART_VARIANT")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Write the report to this local directory instead of the configured storage")

	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if opts.out != "" {
		cfg.StorageMode = config.StorageLocal
		cfg.OutputDir = opts.out
	}
	if opts.variant == "" {
		opts.variant = cfg.ChartVariant
	}

	variant, err := reports.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	generator, err := reports.NewGenerator(filepath.Join(cfg.OutputDir, "charts"), getVersion())
	if err != nil {
		return err
	}

	store, err := storage.NewStorageClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var report *reports.Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report, err = generator.Generate(gctx, variant)
		return err
	})
	// Loose chart files are only useful next to a local report
	if cfg.StorageMode == config.StorageLocal {
		g.Go(func() error {
			files, err := generator.Charts().GenerateCharts(models.Dataset())
			if err != nil {
				return err
			}
			logger.Debug("Charts written", map[string]interface{}{"files": len(files)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	folder, err := generator.Publish(ctx, report, store)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report published to %s (%s, %d files)\n", folder, variant, len(report.Artifacts))
	return nil
}
