package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. This is
// called by the main package with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the gdw CLI and returns an error if any command fails.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext; --verbose raises it from info to debug level.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "gdw",
		Short:        "gdw computes gross die per wafer",
		Long:         `gdw computes the gross die per wafer (GDW) for a circular wafer and a rectangular die: how many whole die fit inside the usable wafer area, with every grid cell classified by why it was kept or lost.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("gdw %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newCalcCmd())
	root.AddCommand(newMaxCmd())
	root.AddCommand(newStandardsCmd())
	root.AddCommand(newProjectCmd())

	return root.ExecuteContext(context.Background())
}
