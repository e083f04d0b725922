package main

import (
	"github.com/spf13/cobra"

	"webcarbon/internal/models"
	"webcarbon/internal/reports"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the chart dataset as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := reports.MarshalDataset(models.Dataset(), format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if len(data) > 0 && data[len(data)-1] != '\n' {
				_, err = out.Write([]byte("\n"))
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")

	return cmd
}
