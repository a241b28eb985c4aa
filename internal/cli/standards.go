package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dougthor42/gdw/internal/project"
)

func newStandardsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Print the effective wafer-standard table",
		Long: `Standards prints the wafer presets used to resolve the flat size and
default exclusions for a diameter: the built-in SEMI M1-0302 flat table
overlaid with any user entries from the wafers.toml preset file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			standards, err := project.LoadStandards(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-14s %-14s %-16s %-14s\n",
				"Diameter (mm)", "Flat (mm)", "Edge excl (mm)", "Flat excl (mm)")
			for _, s := range standards {
				fmt.Fprintf(out, "%-14g %-14g %-16g %-14g\n",
					s.Diameter, s.FlatLength, s.EdgeExclusion, s.FlatExclusion)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", project.DefaultStandardsPath(), "wafer preset file to overlay")
	return cmd
}
