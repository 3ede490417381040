package cli

import (
	"github.com/avoronkov/trackdeck/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Epics       service.EpicService
	Sprints     service.SprintService
	WorkItems   service.WorkItemService
	Persons     service.PersonService
	Costs       service.CostService
	Assignments service.AssignmentService
	Rollups     service.RollupService
	Realloc     service.ReallocationService

	// IsInteractive reports whether stdin is a terminal; set by main.
	// Overdraw confirmation prompts are only shown interactively.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "trackdeck" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "trackdeck",
		Short: "Resource-hour and cost rollups for project tracking",
	}

	root.AddCommand(
		newProjectCmd(app),
		newEpicCmd(app),
		newSprintCmd(app),
		newItemCmd(app),
		newPersonCmd(app),
		newCostCmd(app),
		newAssignCmd(app),
		newRollupCmd(app),
		newReallocCmd(app),
	)

	return root
}
