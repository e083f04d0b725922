package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"webcarbon/internal/logger"
)

// NewRootCmd creates the root command for energychart.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "energychart",
		Short: "Web application energy consumption chart",
		Long: `energychart renders a stacked bar chart of the estimated energy used to
serve a web application on desktop web, mobile web, desktop app and mobile app,
split into content/API data, HTML/CSS and JavaScript.

Configuration is read from the environment (PORT, CHART_VARIANT, OUTPUT_DIR,
STORAGE_MODE, GCS_BUCKET, LOG_LEVEL, LOG_FORMAT).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			format, _ := cmd.Flags().GetString("log-format")
			return logger.Configure(level, format)
		},
	}

	// Global flags; empty keeps the LOG_LEVEL / LOG_FORMAT settings
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "Log format (json, text)")

	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewTooltipCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
