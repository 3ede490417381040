package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avoronkov/trackdeck/internal/cli"
	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/rollup"
	"github.com/avoronkov/trackdeck/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.trackdeck/trackdeck.db
	dbPath := os.Getenv("TRACKDECK_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".trackdeck", "trackdeck.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	epicRepo := repository.NewSQLiteEpicRepo(database)
	sprintRepo := repository.NewSQLiteSprintRepo(database)
	workItemRepo := repository.NewSQLiteWorkItemRepo(database)
	personRepo := repository.NewSQLitePersonRepo(database)
	costRepo := repository.NewSQLiteCostRepo(database)
	personAsgRepo := repository.NewSQLitePersonAssignmentRepo(database)
	costAsgRepo := repository.NewSQLiteCostAssignmentRepo(database)
	prefRepo := repository.NewSQLiteSprintPrefRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	loader := rollup.NewLoader(epicRepo, sprintRepo, workItemRepo,
		personRepo, costRepo, personAsgRepo, costAsgRepo)

	app := &cli.App{
		Projects:    service.NewProjectService(projectRepo),
		Epics:       service.NewEpicService(epicRepo),
		Sprints:     service.NewSprintService(sprintRepo),
		WorkItems:   service.NewWorkItemService(workItemRepo, epicRepo, sprintRepo),
		Persons:     service.NewPersonService(personRepo),
		Costs:       service.NewCostService(costRepo),
		Assignments: service.NewAssignmentService(personAsgRepo, costAsgRepo, personRepo, costRepo),
		Rollups:     service.NewRollupService(loader, sprintRepo, prefRepo),
		Realloc:     service.NewReallocationService(workItemRepo, personAsgRepo, uow),
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
