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

func newPersonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "person",
		Short: "Manage people",
	}

	cmd.AddCommand(
		newPersonAddCmd(app),
		newPersonListCmd(app),
		newPersonRemoveCmd(app),
	)

	return cmd
}

func newPersonAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Register a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Person{
				ID:        uuid.New().String(),
				Name:      args[0],
				CreatedAt: time.Now(),
			}
			if err := app.Persons.Create(context.Background(), p); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", p.Name, p.ID[:8])
			return nil
		},
	}
}

func newPersonListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List people",
		RunE: func(cmd *cobra.Command, args []string) error {
			persons, err := app.Persons.List(context.Background())
			if err != nil {
				return err
			}
			if len(persons) == 0 {
				fmt.Println("No people found.")
				return nil
			}

			rows := make([][]string, 0, len(persons))
			for _, p := range persons {
				rows = append(rows, []string{p.ID[:8], p.Name})
			}
			fmt.Printf("%s\n", formatter.RenderTable([]string{"ID", "Name"}, rows))
			return nil
		},
	}
}

func newPersonRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			personID, err := resolvePersonID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Persons.Delete(ctx, personID); err != nil {
				return err
			}
			fmt.Println("Person removed.")
			return nil
		},
	}
}
