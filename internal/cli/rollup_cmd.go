package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/avoronkov/trackdeck/internal/cli/formatter"
	"github.com/avoronkov/trackdeck/internal/rollup"
	"github.com/spf13/cobra"
)

// rollupScope carries the options shared by the three rollup tables.
type rollupScope struct {
	projectID string
	filter    rollup.SprintFilter
	basis     float64
}

// resolveRollupScope turns the --sprints selection into a filter. An empty
// selection falls back to the project's saved or active-sprint default; the
// literal "all" selects every sprint.
func resolveRollupScope(ctx context.Context, app *App, project string, sprints []string, all bool, save bool, basis float64) (*rollupScope, error) {
	projectID, err := resolveProjectID(ctx, app, project)
	if err != nil {
		return nil, err
	}

	var filter rollup.SprintFilter
	switch {
	case all:
		filter = rollup.AllSprints()
	case len(sprints) > 0:
		ids := make([]string, 0, len(sprints))
		for _, s := range sprints {
			id, err := resolveSprintID(ctx, app, projectID, s)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		filter = rollup.SelectSprints(ids...)
	default:
		filter, err = app.Rollups.DefaultFilter(ctx, projectID)
		if err != nil {
			return nil, err
		}
	}

	if save {
		if err := app.Rollups.SaveFilter(ctx, projectID, filter); err != nil {
			return nil, err
		}
	}

	return &rollupScope{projectID: projectID, filter: filter, basis: basis}, nil
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s\n", formatter.Dim("warning: "+w))
	}
}

func newRollupCmd(app *App) *cobra.Command {
	var project string
	var sprints []string
	var all, save bool
	var basis float64

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Hour and cost rollup tables",
	}

	cmd.PersistentFlags().StringVar(&project, "project", "", "Project ID")
	cmd.PersistentFlags().StringSliceVar(&sprints, "sprints", nil, "Sprints to include (default: saved selection, else active sprints)")
	cmd.PersistentFlags().BoolVar(&all, "all", false, "Include every sprint")
	cmd.PersistentFlags().BoolVar(&save, "save", false, "Persist this sprint selection as the project default")
	cmd.PersistentFlags().Float64Var(&basis, "basis", rollup.DefaultBasisHoursPerDay, "Working hours per day for FTE")
	_ = cmd.MarkPersistentFlagRequired("project")

	scopeOf := func(ctx context.Context) (*rollupScope, error) {
		return resolveRollupScope(ctx, app, project, sprints, all, save, basis)
	}

	cmd.AddCommand(
		newRollupHoursCmd(app, scopeOf),
		newRollupPeopleCmd(app, scopeOf),
		newRollupCostsCmd(app, scopeOf),
	)

	return cmd
}

type scopeFunc func(ctx context.Context) (*rollupScope, error)

func newRollupHoursCmd(app *App, scopeOf scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "hours",
		Short: "Epic hours per sprint, backlog, and epic-level allocations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scope, err := scopeOf(ctx)
			if err != nil {
				return err
			}
			rows, warnings, err := app.Rollups.EpicSprintHours(ctx, scope.projectID, scope.filter, scope.basis)
			if err != nil {
				return err
			}
			printWarnings(warnings)
			fmt.Printf("%s\n", formatter.FormatEpicHours(rows))
			return nil
		},
	}
}

func newRollupPeopleCmd(app *App, scopeOf scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "people",
		Short: "Person hours per sprint and backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scope, err := scopeOf(ctx)
			if err != nil {
				return err
			}
			rows, warnings, err := app.Rollups.PersonSprintHours(ctx, scope.projectID, scope.filter, scope.basis)
			if err != nil {
				return err
			}
			printWarnings(warnings)

			sprintIDs, err := sprintColumns(ctx, app, scope)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatPersonHours(rows, sprintIDs))
			return nil
		},
	}
}

func newRollupCostsCmd(app *App, scopeOf scopeFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "costs",
		Short: "Epic costs split by epic-level, backlog, and sprint buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			scope, err := scopeOf(ctx)
			if err != nil {
				return err
			}
			rows, warnings, err := app.Rollups.CostRollup(ctx, scope.projectID, scope.filter)
			if err != nil {
				return err
			}
			printWarnings(warnings)
			fmt.Printf("%s\n", formatter.FormatCostRollup(rows))
			return nil
		},
	}
}

// sprintColumns lists the selected sprints in start-date order so the
// person table's columns match the epic table's partitions.
func sprintColumns(ctx context.Context, app *App, scope *rollupScope) ([]formatter.SprintColumn, error) {
	sprints, err := app.Sprints.ListByProject(ctx, scope.projectID)
	if err != nil {
		return nil, err
	}
	sort.Slice(sprints, func(i, j int) bool {
		if !sprints[i].StartDate.Equal(sprints[j].StartDate) {
			return sprints[i].StartDate.Before(sprints[j].StartDate)
		}
		return sprints[i].ID < sprints[j].ID
	})
	var cols []formatter.SprintColumn
	for _, s := range sprints {
		if scope.filter.InScope(s.ID) {
			cols = append(cols, formatter.SprintColumn{ID: s.ID, Name: s.Name})
		}
	}
	return cols, nil
}
