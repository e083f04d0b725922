package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"webcarbon/internal/models"
	"webcarbon/internal/tooltip"
)

// NewTooltipCmd creates the tooltip command.
func NewTooltipCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tooltip [platform]",
		Short: "Print the hover tooltip for a platform",
		Example: `  energychart tooltip "Desktop Web"
  energychart tooltip --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all && len(args) > 0 {
				return fmt.Errorf("--all does not take a platform argument")
			}
			if !all && len(args) != 1 {
				return fmt.Errorf("expected exactly one platform name, or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			records := models.Dataset()
			if !all {
				record, ok := models.FindByName(args[0])
				if !ok {
					return fmt.Errorf("unknown platform %q (known: %s)", args[0], platformNames(records))
				}
				records = []models.PlatformEnergyRecord{record}
			}

			out := cmd.OutOrStdout()
			for i, r := range records {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, tooltip.Format(tooltip.PointFromRecord(r)).Text())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Print the tooltip of every platform")

	return cmd
}

func platformNames(records []models.PlatformEnergyRecord) string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
