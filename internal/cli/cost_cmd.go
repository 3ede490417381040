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

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Manage cost entries",
	}

	cmd.AddCommand(
		newCostAddCmd(app),
		newCostListCmd(app),
		newCostRemoveCmd(app),
	)

	return cmd
}

func newCostAddCmd(app *App) *cobra.Command {
	var category, description string

	cmd := &cobra.Command{
		Use:   "add AMOUNT",
		Short: "Record a cost entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amount float64
			if _, err := fmt.Sscanf(args[0], "%g", &amount); err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			c := &domain.Cost{
				ID:          uuid.New().String(),
				Amount:      amount,
				Category:    category,
				Description: description,
				CreatedAt:   time.Now(),
			}
			if err := app.Costs.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Recorded cost %s (%s)\n", formatter.Money(c.Amount), c.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Cost category (e.g. licences, hardware)")
	cmd.Flags().StringVar(&description, "note", "", "Free-form description")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newCostListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cost entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			costs, err := app.Costs.List(context.Background())
			if err != nil {
				return err
			}
			if len(costs) == 0 {
				fmt.Println("No costs found.")
				return nil
			}

			rows := make([][]string, 0, len(costs))
			for _, c := range costs {
				rows = append(rows, []string{
					c.ID[:8],
					formatter.Money(c.Amount),
					c.Category,
					c.Description,
				})
			}
			fmt.Printf("%s\n", formatter.RenderTable(
				[]string{"ID", "Amount", "Category", "Note"}, rows))
			return nil
		},
	}
}

func newCostRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a cost entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			costs, err := app.Costs.List(ctx)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(costs))
			for _, c := range costs {
				ids = append(ids, c.ID)
			}
			costID, err := resolveID(args[0], "cost", ids)
			if err != nil {
				return err
			}
			if err := app.Costs.Delete(ctx, costID); err != nil {
				return err
			}
			fmt.Println("Cost removed.")
			return nil
		},
	}
}
