package cli

import (
	"context"
	"fmt"

	"github.com/avoronkov/trackdeck/internal/cli/formatter"
	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/spf13/cobra"
)

// scopeFromFlags resolves exactly one of --epic / --item into an accounting
// scope.
func scopeFromFlags(ctx context.Context, app *App, projectID, epic, item string) (domain.AssignmentScope, error) {
	switch {
	case epic != "" && item != "":
		return domain.AssignmentScope{}, fmt.Errorf("--epic and --item are mutually exclusive")
	case epic != "":
		epicID, err := resolveEpicID(ctx, app, projectID, epic)
		if err != nil {
			return domain.AssignmentScope{}, err
		}
		return domain.EpicScope(epicID), nil
	case item != "":
		itemID, err := resolveItemID(ctx, app, projectID, item)
		if err != nil {
			return domain.AssignmentScope{}, err
		}
		return domain.WorkItemScope(itemID), nil
	default:
		return domain.AssignmentScope{}, fmt.Errorf("either --epic or --item is required")
	}
}

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign hours and costs to epics and work items",
	}

	cmd.AddCommand(
		newAssignHoursCmd(app),
		newAssignHoursListCmd(app),
		newAssignHoursSetCmd(app),
		newAssignHoursRemoveCmd(app),
		newAssignCostCmd(app),
		newAssignCostRemoveCmd(app),
	)

	return cmd
}

func newAssignHoursCmd(app *App) *cobra.Command {
	var project, epic, item, note string

	cmd := &cobra.Command{
		Use:   "hours PERSON HOURS",
		Short: "Assign a person's hours to an epic or a work item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			scope, err := scopeFromFlags(ctx, app, projectID, epic, item)
			if err != nil {
				return err
			}
			var hours float64
			if _, err := fmt.Sscanf(args[1], "%g", &hours); err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[1], err)
			}

			a, err := app.Assignments.AssignHours(ctx, personID, scope, hours, note)
			if err != nil {
				return err
			}
			fmt.Printf("Assigned: %s now holds %s on %s %s\n",
				args[0], formatter.Hours(a.Hours), a.Scope.Kind, a.Scope.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Epic-level assignment")
	cmd.Flags().StringVar(&item, "item", "", "Work-item assignment")
	cmd.Flags().StringVar(&note, "note", "", "Provenance note")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAssignHoursListCmd(app *App) *cobra.Command {
	var project, epic, item string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List hour assignments on an epic or a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			scope, err := scopeFromFlags(ctx, app, projectID, epic, item)
			if err != nil {
				return err
			}
			asgs, err := app.Assignments.ListHours(ctx, scope)
			if err != nil {
				return err
			}
			if len(asgs) == 0 {
				fmt.Println("No assignments found.")
				return nil
			}

			rows := make([][]string, 0, len(asgs))
			for _, a := range asgs {
				rows = append(rows, []string{
					a.ID[:8],
					a.PersonID[:8],
					formatter.Hours(a.Hours),
					a.Description,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "Person", "Hours", "Note"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Epic scope")
	cmd.Flags().StringVar(&item, "item", "", "Work-item scope")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAssignHoursSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set ASSIGNMENT_ID HOURS",
		Short: "Set an assignment's hours (zero deletes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var hours float64
			if _, err := fmt.Sscanf(args[1], "%g", &hours); err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[1], err)
			}
			if err := app.Assignments.UpdateHours(context.Background(), args[0], hours); err != nil {
				return err
			}
			if hours == 0 {
				fmt.Println("Assignment drained and removed.")
			} else {
				fmt.Printf("Assignment set to %s\n", formatter.Hours(hours))
			}
			return nil
		},
	}
}

func newAssignHoursRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ASSIGNMENT_ID",
		Short: "Remove an hour assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Assignments.RemoveHours(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Assignment removed.")
			return nil
		},
	}
}

func newAssignCostCmd(app *App) *cobra.Command {
	var project, epic, item string

	cmd := &cobra.Command{
		Use:   "cost COST_ID",
		Short: "Attach a cost entry to an epic or a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			scope, err := scopeFromFlags(ctx, app, projectID, epic, item)
			if err != nil {
				return err
			}

			a, err := app.Assignments.AssignCost(ctx, args[0], scope)
			if err != nil {
				return err
			}
			fmt.Printf("Cost attached to %s %s (link %s)\n", a.Scope.Kind, a.Scope.ID[:8], a.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Epic scope")
	cmd.Flags().StringVar(&item, "item", "", "Work-item scope")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newAssignCostRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cost-remove LINK_ID",
		Short: "Detach a cost entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Assignments.RemoveCost(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Println("Cost link removed.")
			return nil
		},
	}
}
