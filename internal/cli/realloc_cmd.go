package cli

import (
	"context"
	"fmt"

	"github.com/avoronkov/trackdeck/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newReallocCmd(app *App) *cobra.Command {
	var project, epic, item string
	var yes bool

	cmd := &cobra.Command{
		Use:   "realloc PERSON HOURS",
		Short: "Move a person's epic-level hours onto a work item",
		Long: `Moves hours from a person's epic-level allocation onto a work item in
the same epic. The move is transactional: the source decrement and the
target increment apply together or not at all. Draining the source
removes it; moving more than the source holds clamps it to zero after
confirmation.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			epicID, err := resolveEpicID(ctx, app, projectID, epic)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, item)
			if err != nil {
				return err
			}
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			var hours float64
			if _, err := fmt.Sscanf(args[1], "%g", &hours); err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[1], err)
			}

			preview, err := app.Realloc.Preview(ctx, epicID, personID, itemID, hours)
			if err != nil {
				return err
			}
			if preview.Overdrawn && !yes {
				ok, err := confirmOverdraw(app, preview.RequestedHours, preview.SourceHours)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Aborted.")
					return nil
				}
			}

			res, err := app.Realloc.Reallocate(ctx, epicID, personID, itemID, hours)
			if err != nil {
				return err
			}

			fmt.Printf("Moved %s onto work item %s.\n", formatter.Hours(res.MovedHours), itemID[:8])
			switch {
			case res.SourceDeleted:
				fmt.Println("Epic-level allocation fully consumed and removed.")
			default:
				fmt.Printf("Epic-level allocation now holds %s.\n", formatter.Hours(res.SourceRemaining))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Source epic")
	cmd.Flags().StringVar(&item, "item", "", "Target work item")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the over-allocation confirmation")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("epic")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// confirmOverdraw asks before moving more hours than the source holds. In a
// non-interactive run the caller must pass --yes instead.
func confirmOverdraw(app *App, requested, available float64) (bool, error) {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return false, fmt.Errorf("moving %s exceeds the %s available; pass --yes to clamp the source to zero",
			formatter.Hours(requested), formatter.Hours(available))
	}

	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Move %s? Only %s remain on the epic; the allocation will be emptied.",
					formatter.Hours(requested), formatter.Hours(available))).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
