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

func newSprintCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sprint",
		Short: "Manage sprints",
	}

	cmd.AddCommand(
		newSprintAddCmd(app),
		newSprintListCmd(app),
		newSprintStatusCmd(app, "start", domain.SprintActive),
		newSprintStatusCmd(app, "complete", domain.SprintCompleted),
		newSprintRemoveCmd(app),
	)

	return cmd
}

func newSprintAddCmd(app *App) *cobra.Command {
	var project, start, end string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a sprint with a date span",
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
			s := &domain.Sprint{
				ID:        uuid.New().String(),
				ProjectID: projectID,
				Name:      args[0],
				StartDate: startDate,
				EndDate:   endDate,
				Status:    domain.SprintNotStarted,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Sprints.Create(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Created sprint %s (%s, %.0f days)\n", s.Name, s.ID[:8], s.SpanDays())
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

func newSprintListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			sprints, err := app.Sprints.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			if len(sprints) == 0 {
				fmt.Println("No sprints found.")
				return nil
			}

			rows := make([][]string, 0, len(sprints))
			for _, s := range sprints {
				rows = append(rows, []string{
					s.ID[:8],
					s.Name,
					s.StartDate.Format(dateLayout),
					s.EndDate.Format(dateLayout),
					formatter.SprintStatus(s.Status),
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "Name", "Start", "End", "Status"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSprintStatusCmd(app *App, verb string, status domain.SprintStatus) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   verb + " ID",
		Short: "Mark a sprint " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			s, err := app.Sprints.GetByID(ctx, sprintID)
			if err != nil {
				return err
			}
			s.Status = status
			s.UpdatedAt = time.Now()
			if err := app.Sprints.Update(ctx, s); err != nil {
				return err
			}
			fmt.Printf("Sprint %s is now %s\n", s.Name, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSprintRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			sprintID, err := resolveSprintID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if err := app.Sprints.Delete(ctx, sprintID); err != nil {
				return err
			}
			fmt.Println("Sprint removed.")
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
