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

const dateLayout = "2006-01-02"

func newEpicCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epic",
		Short: "Manage epics",
	}

	cmd.AddCommand(
		newEpicAddCmd(app),
		newEpicListCmd(app),
		newEpicRemoveCmd(app),
	)

	return cmd
}

func newEpicAddCmd(app *App) *cobra.Command {
	var project, start, end string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create an epic with a date span",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(dateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			now := time.Now()
			e := &domain.Epic{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Title:     args[0],
				StartDate: startDate,
				EndDate:   endDate,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Epics.Create(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Created epic %s (%s, %.0f days)\n", e.Title, e.ID[:8], e.SpanDays())
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, exclusive)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newEpicListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's epics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			epics, err := app.Epics.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(epics) == 0 {
				fmt.Println("No epics found.")
				return nil
			}

			rows := make([][]string, 0, len(epics))
			for _, e := range epics {
				rows = append(rows, []string{
					e.ID[:8],
					e.Title,
					e.StartDate.Format(dateLayout),
					e.EndDate.Format(dateLayout),
					fmt.Sprintf("%.0f", e.SpanDays()),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "Title", "Start", "End", "Days"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newEpicRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			epicID, err := resolveEpicID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Epics.Delete(ctx, epicID); err != nil {
				return err
			}
			fmt.Println("Epic removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
