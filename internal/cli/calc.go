package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/dougthor42/gdw/internal/engine"
	"github.com/dougthor42/gdw/internal/model"
	"github.com/dougthor42/gdw/internal/project"
)

// waferOpts holds the wafer and engine flags shared by calc and max.
// Negative values (zero for diameter and workers) mean "not set, use the
// config default".
type waferOpts struct {
	dieSpec    string
	diameter   float64
	excl       float64
	flatExcl   float64
	flatSize   float64
	northLimit float64
	maxCells   int
	workers    int
}

func (o *waferOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dieSpec, "die", "", "die size in mm as WIDTHxHEIGHT, e.g. 5x5 (required)")
	_ = cmd.MarkFlagRequired("die")
	cmd.Flags().Float64Var(&o.diameter, "diameter", 0, "wafer diameter in mm (default from config)")
	cmd.Flags().Float64Var(&o.excl, "excl", -1, "edge exclusion in mm (default from config)")
	cmd.Flags().Float64Var(&o.flatExcl, "flat-excl", -1, "flat exclusion in mm (default from config)")
	cmd.Flags().Float64Var(&o.flatSize, "flat", -1, "flat chord length in mm; 0 means no flat (default: wafer standard for the diameter)")
	cmd.Flags().Float64Var(&o.northLimit, "north-limit", 0, "scribe keep-out y in mm from wafer center; 0 disables")
	cmd.Flags().IntVar(&o.maxCells, "max-cells", -1, "abort when the grid has more candidate cells than this; 0 uncaps (default from config)")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "classification worker goroutines (default from config)")
}

// build resolves the flags against the app config and wafer standards and
// constructs the validated inputs.
func (o *waferOpts) build(ctx context.Context) (model.Wafer, model.DieSize, *engine.Engine, error) {
	logger := loggerFromContext(ctx)

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warnf("Ignoring unreadable config: %v", err)
		cfg = project.DefaultAppConfig()
	}

	die, err := parseDie(o.dieSpec)
	if err != nil {
		return model.Wafer{}, model.DieSize{}, nil, err
	}

	diameter := o.diameter
	if diameter == 0 {
		diameter = cfg.DefaultDiameter
	}
	excl := o.excl
	if excl < 0 {
		excl = cfg.DefaultEdgeExclusion
	}
	flatExcl := o.flatExcl
	if flatExcl < 0 {
		flatExcl = cfg.DefaultFlatExclusion
	}

	flatSize := o.flatSize
	if flatSize < 0 {
		standards, err := project.LoadStandards(project.DefaultStandardsPath())
		if err != nil {
			logger.Warnf("Ignoring unreadable wafer standards: %v", err)
			standards = project.BuiltinStandards()
		}
		if std, ok := project.FindStandard(standards, diameter); ok {
			flatSize = std.FlatLength
			logger.Debugf("using standard %g mm flat for %g mm wafer", flatSize, diameter)
		} else {
			flatSize = 0
			logger.Debugf("no standard flat for %g mm wafer, assuming none", diameter)
		}
	}

	wafer, err := model.NewWafer(diameter, excl, flatExcl, flatSize)
	if err != nil {
		return model.Wafer{}, model.DieSize{}, nil, err
	}

	maxCells := o.maxCells
	if maxCells < 0 {
		maxCells = cfg.MaxCells
	}
	workers := o.workers
	if workers == 0 {
		workers = cfg.Workers
	}
	eng := engine.New(engine.Settings{
		NorthLimit: o.northLimit,
		MaxCells:   maxCells,
		Workers:    workers,
	})
	return wafer, die, eng, nil
}

func newCalcCmd() *cobra.Command {
	var (
		opts       waferOpts
		offsetSpec string
		jsonOut    bool
		savePath   string
		exp        exportOpts
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute gross die per wafer for one grid offset",
		Long: `Calc enumerates the die grid for a single offset, classifies every
candidate position against the wafer boundary and exclusion zones, and
reports the per-state counts. Offsets are given per axis as "odd" (a die
centered on the wafer center), "even" (a die corner there), or a distance
in millimeters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			wafer, die, eng, err := opts.build(ctx)
			if err != nil {
				return err
			}
			offset, err := parseOffset(offsetSpec, die)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := eng.Compute(wafer, die, offset)
			if err != nil {
				return err
			}
			logger.Debugf("classified %d cells in %s", result.CellCount,
				time.Since(start).Round(time.Millisecond))

			if err := exp.run(ctx, result, wafer, die); err != nil {
				return err
			}
			if savePath != "" {
				if err := saveProject(ctx, savePath, wafer, die, eng.Settings, result); err != nil {
					return err
				}
			}
			return render(cmd.OutOrStdout(), result, wafer, die, jsonOut)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&offsetSpec, "offset", "odd,odd", "grid offset per axis: odd, even, or mm")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the result summary as JSON")
	cmd.Flags().StringVar(&savePath, "save", "", "save the inputs and result to this project file")
	exp.register(cmd)
	return cmd
}
