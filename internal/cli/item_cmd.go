package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/cli/formatter"
	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemMoveCmd(app),
		newItemDoneCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, epic, sprint string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			now := time.Now()
			w := &domain.WorkItem{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Title:     args[0],
				Status:    domain.WorkItemTodo,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if epic != "" {
				epicID, err := resolveEpicID(ctx, app, projectID, epic)
				if err != nil {
					return err
				}
				w.EpicID = &epicID
			}
			if sprint != "" {
				sprintID, err := resolveSprintID(ctx, app, projectID, sprint)
				if err != nil {
					return err
				}
				w.SprintID = &sprintID
			}

			if err := app.WorkItems.Create(ctx, w); err != nil {
				return err
			}
			fmt.Printf("Created work item %s (%s, %s)\n", w.Title, w.ID[:8], w.Location())
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Epic to attach the item to")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Sprint to place the item in (omit for backlog)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var project, epic string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			var items []*domain.WorkItem
			if epic != "" {
				epicID, err := resolveEpicID(ctx, app, projectID, epic)
				if err != nil {
					return err
				}
				items, err = app.WorkItems.ListByEpic(ctx, epicID)
				if err != nil {
					return err
				}
			} else {
				items, err = app.WorkItems.ListByProject(ctx, projectID)
				if err != nil {
					return err
				}
			}
			if len(items) == 0 {
				fmt.Println("No work items found.")
				return nil
			}

			rows := make([][]string, 0, len(items))
			for _, w := range items {
				sprintRef := w.SprintRef()
				if sprintRef != "" {
					sprintRef = sprintRef[:8]
				}
				rows = append(rows, []string{
					w.ID[:8],
					w.Title,
					formatter.ItemStatus(w.Status),
					string(w.Location()),
					sprintRef,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "Title", "Status", "Location", "Sprint"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&epic, "epic", "", "Restrict to one epic")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemMoveCmd(app *App) *cobra.Command {
	var project, sprint string
	var backlog bool

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a work item into a sprint or back to the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			if backlog {
				if err := app.WorkItems.MoveToSprint(ctx, itemID, nil); err != nil {
					return err
				}
				fmt.Println("Moved to backlog.")
				return nil
			}
			if sprint == "" {
				return fmt.Errorf("either --sprint or --backlog is required")
			}
			sprintID, err := resolveSprintID(ctx, app, projectID, sprint)
			if err != nil {
				return err
			}
			if err := app.WorkItems.MoveToSprint(ctx, itemID, &sprintID); err != nil {
				return err
			}
			fmt.Printf("Moved to sprint %s.\n", sprintID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&sprint, "sprint", "", "Destination sprint")
	cmd.Flags().BoolVar(&backlog, "backlog", false, "Move back to the backlog")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemDoneCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a work item done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.MarkDone(ctx, itemID); err != nil {
				return err
			}
			fmt.Println("Work item marked done.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkItems.Delete(ctx, itemID); err != nil {
				return err
			}
			fmt.Println("Work item removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
