package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dougthor42/gdw/internal/engine"
	"github.com/dougthor42/gdw/internal/model"
	"github.com/dougthor42/gdw/internal/project"
)

// maxRecentProjects caps the recent-project list kept in the app config.
const maxRecentProjects = 10

// saveProject writes the inputs and result of a computation as a project
// file and records it in the recent-project list.
func saveProject(ctx context.Context, path string, wafer model.Wafer, die model.DieSize, settings engine.Settings, result model.GridResult) error {
	logger := loggerFromContext(ctx)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := project.NewProject(name)
	p.Wafer = project.WaferParams{
		Diameter:      wafer.Diameter(),
		EdgeExclusion: wafer.EdgeExclusion(),
		FlatExclusion: wafer.FlatExclusion(),
		FlatSize:      wafer.FlatSize(),
	}
	p.Die = die
	p.Settings = settings
	p.Result = &result

	if err := project.Save(path, p); err != nil {
		return err
	}
	logger.Infof("Saved project %s to %s", p.ID, path)

	if err := recordRecentProject(project.DefaultConfigPath(), path); err != nil {
		logger.Warnf("Could not update recent projects: %v", err)
	}
	return nil
}

// recordRecentProject moves path to the front of the recent-project list in
// the app config at cfgPath, dropping duplicates and trimming the tail.
func recordRecentProject(cfgPath, path string) error {
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return err
	}

	recents := []string{path}
	for _, r := range cfg.RecentProjects {
		if r != path {
			recents = append(recents, r)
		}
	}
	if len(recents) > maxRecentProjects {
		recents = recents[:maxRecentProjects]
	}
	cfg.RecentProjects = recents

	return project.SaveAppConfig(cfgPath, cfg)
}

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect saved project files",
	}
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectRecentCmd())
	return cmd
}

func newProjectShowCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the result stored in a project file",
		Long: `Show loads a project file written by calc/max --save, rebuilds and
validates its wafer and die, and prints the stored result. A project
without a stored result is recomputed on a centered grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.Load(args[0])
			if err != nil {
				return err
			}

			wafer, err := p.Wafer.Build()
			if err != nil {
				return fmt.Errorf("project %s: %w", args[0], err)
			}
			die, err := model.NewDieSize(p.Die.Width, p.Die.Height)
			if err != nil {
				return fmt.Errorf("project %s: %w", args[0], err)
			}

			result := p.Result
			if result == nil {
				res, err := engine.New(p.Settings).Compute(wafer, die, model.Offset{})
				if err != nil {
					return err
				}
				result = &res
			}
			return render(cmd.OutOrStdout(), *result, wafer, die, jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the result summary as JSON")
	return cmd
}

func newProjectRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently saved project files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
			if err != nil {
				return err
			}
			if len(cfg.RecentProjects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent projects.")
				return nil
			}
			for _, p := range cfg.RecentProjects {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
