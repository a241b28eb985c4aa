package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newMaxCmd() *cobra.Command {
	var (
		opts       waferOpts
		resolution int
		jsonOut    bool
		savePath   string
		exp        exportOpts
	)

	cmd := &cobra.Command{
		Use:   "max",
		Short: "Search grid offsets for the maximum gross die count",
		Long: `Max tries grid offsets and keeps the one with the most gross die.
By default it compares the four odd/even parity alignments. With
--resolution N it instead brute-forces an NxN sub-die offset grid, which
is slower but can find offsets the parity search misses.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			wafer, die, eng, err := opts.build(ctx)
			if err != nil {
				return err
			}

			start := time.Now()
			if resolution > 0 {
				r, err := eng.OptimizeOffset(wafer, die, resolution)
				if err != nil {
					return err
				}
				logger.Debugf("searched %d offsets in %s", resolution*resolution,
					time.Since(start).Round(time.Millisecond))
				if err := exp.run(ctx, r, wafer, die); err != nil {
					return err
				}
				if savePath != "" {
					if err := saveProject(ctx, savePath, wafer, die, eng.Settings, r); err != nil {
						return err
					}
				}
				return render(cmd.OutOrStdout(), r, wafer, die, jsonOut)
			}

			r, err := eng.Maximize(wafer, die)
			if err != nil {
				return err
			}
			logger.Debugf("searched 4 parity shifts in %s",
				time.Since(start).Round(time.Millisecond))
			if err := exp.run(ctx, r, wafer, die); err != nil {
				return err
			}
			if savePath != "" {
				if err := saveProject(ctx, savePath, wafer, die, eng.Settings, r); err != nil {
					return err
				}
			}
			return render(cmd.OutOrStdout(), r, wafer, die, jsonOut)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&resolution, "resolution", 0, "sub-die offset search resolution; 0 uses the parity search")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the result summary as JSON")
	cmd.Flags().StringVar(&savePath, "save", "", "save the inputs and result to this project file")
	exp.register(cmd)
	return cmd
}
