package service

import (
	"context"
	"testing"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/rollup"
	"github.com/avoronkov/trackdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rollupEnv struct {
	svc       RollupService
	projectID string
	epicID    string
	activeID  string
	doneID    string
}

// setupRollup seeds one epic with an active and a completed sprint, a sprint
// item carrying 40h, a 20h epic-level allocation, a backlog item, and costs
// in all three buckets.
func setupRollup(t *testing.T) *rollupEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	epics := repository.NewSQLiteEpicRepo(database)
	sprints := repository.NewSQLiteSprintRepo(database)
	items := repository.NewSQLiteWorkItemRepo(database)
	persons := repository.NewSQLitePersonRepo(database)
	costs := repository.NewSQLiteCostRepo(database)
	personAsgs := repository.NewSQLitePersonAssignmentRepo(database)
	costAsgs := repository.NewSQLiteCostAssignmentRepo(database)
	prefs := repository.NewSQLiteSprintPrefRepo(database)

	proj := testutil.NewTestProject("Dashboard")
	require.NoError(t, projects.Create(ctx, proj))
	epic := testutil.NewTestEpic(proj.ID, "Checkout")
	require.NoError(t, epics.Create(ctx, epic))
	active := testutil.NewTestSprint(proj.ID, "Sprint 1")
	require.NoError(t, sprints.Create(ctx, active))
	done := testutil.NewTestSprint(proj.ID, "Sprint 0",
		testutil.WithSprintStatus(domain.SprintCompleted))
	require.NoError(t, sprints.Create(ctx, done))

	sprintItem := testutil.NewTestWorkItem(proj.ID, "Payment form",
		testutil.WithEpicID(epic.ID), testutil.WithSprintID(active.ID))
	require.NoError(t, items.Create(ctx, sprintItem))
	backlogItem := testutil.NewTestWorkItem(proj.ID, "Refund flow",
		testutil.WithEpicID(epic.ID))
	require.NoError(t, items.Create(ctx, backlogItem))

	ada := testutil.NewTestPerson("Ada")
	require.NoError(t, persons.Create(ctx, ada))
	grace := testutil.NewTestPerson("Grace")
	require.NoError(t, persons.Create(ctx, grace))

	require.NoError(t, personAsgs.Create(ctx,
		testutil.NewTestPersonAssignment(ada.ID, domain.WorkItemScope(sprintItem.ID), 40)))
	require.NoError(t, personAsgs.Create(ctx,
		testutil.NewTestPersonAssignment(grace.ID, domain.EpicScope(epic.ID), 20)))

	epicCost := testutil.NewTestCost(100, testutil.WithCategory("licences"))
	require.NoError(t, costs.Create(ctx, epicCost))
	require.NoError(t, costAsgs.Create(ctx,
		testutil.NewTestCostAssignment(epicCost.ID, domain.EpicScope(epic.ID))))
	backlogCost := testutil.NewTestCost(50, testutil.WithCategory("hardware"))
	require.NoError(t, costs.Create(ctx, backlogCost))
	require.NoError(t, costAsgs.Create(ctx,
		testutil.NewTestCostAssignment(backlogCost.ID, domain.WorkItemScope(backlogItem.ID))))
	sprintCost := testutil.NewTestCost(30, testutil.WithCategory("licences"))
	require.NoError(t, costs.Create(ctx, sprintCost))
	require.NoError(t, costAsgs.Create(ctx,
		testutil.NewTestCostAssignment(sprintCost.ID, domain.WorkItemScope(sprintItem.ID))))

	loader := rollup.NewLoader(epics, sprints, items, persons, costs, personAsgs, costAsgs)
	return &rollupEnv{
		svc:       NewRollupService(loader, sprints, prefs),
		projectID: proj.ID,
		epicID:    epic.ID,
		activeID:  active.ID,
		doneID:    done.ID,
	}
}

func TestRollupService_EpicSprintHours(t *testing.T) {
	env := setupRollup(t)

	rows, warnings, err := env.svc.EpicSprintHours(context.Background(),
		env.projectID, rollup.AllSprints(), rollup.DefaultBasisHoursPerDay)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, env.epicID, row.EpicID)
	assert.Equal(t, 60.0, row.TotalHours, "epic-level and item-level hours are additive")
	assert.Equal(t, 20.0, row.EpicOnly.TotalHours)

	var sprintHours float64
	for _, p := range row.Partitions {
		if p.SprintID == env.activeID {
			sprintHours = p.TotalHours
		}
	}
	assert.Equal(t, 40.0, sprintHours)
}

func TestRollupService_PersonSprintHours(t *testing.T) {
	env := setupRollup(t)

	rows, _, err := env.svc.PersonSprintHours(context.Background(),
		env.projectID, rollup.AllSprints(), rollup.DefaultBasisHoursPerDay)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ada", rows[0].PersonName)
	assert.Equal(t, 40.0, rows[0].SprintHours[env.activeID])
	assert.Equal(t, "Grace", rows[1].PersonName)
	assert.Equal(t, 20.0, rows[1].EpicOnlyHours)

	assert.Equal(t, 60.0, rows[0].TotalHours+rows[1].TotalHours,
		"person table grand total matches the epic table")
}

func TestRollupService_CostRollup(t *testing.T) {
	env := setupRollup(t)

	rows, _, err := env.svc.CostRollup(context.Background(), env.projectID, rollup.AllSprints())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 100.0, row.EpicLevel.Amount)
	assert.Equal(t, 50.0, row.Backlog.Amount)
	assert.Equal(t, 30.0, row.Sprint.Amount)
	assert.Equal(t, 180.0, row.TotalCost)

	require.Len(t, row.EpicLevel.Categories, 1)
	assert.Equal(t, "licences", row.EpicLevel.Categories[0].Category)
}

func TestRollupService_FilterExcludesSprint(t *testing.T) {
	env := setupRollup(t)

	rows, _, err := env.svc.EpicSprintHours(context.Background(),
		env.projectID, rollup.SelectSprints(env.doneID), rollup.DefaultBasisHoursPerDay)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	for _, p := range rows[0].Partitions {
		assert.NotEqual(t, env.activeID, p.SprintID, "unselected sprint is absent from partitions")
	}
	assert.Equal(t, 20.0, rows[0].TotalHours, "only the epic-level hours remain in scope")
}

func TestRollupService_DefaultFilterUsesActiveSprints(t *testing.T) {
	env := setupRollup(t)

	filter, err := env.svc.DefaultFilter(context.Background(), env.projectID)
	require.NoError(t, err)
	assert.False(t, filter.All())
	assert.Equal(t, []string{env.activeID}, filter.IDs(),
		"completed sprints are out of the default selection")
}

func TestRollupService_DefaultFilterPrefersSavedSelection(t *testing.T) {
	env := setupRollup(t)
	ctx := context.Background()

	require.NoError(t, env.svc.SaveFilter(ctx, env.projectID, rollup.SelectSprints(env.doneID)))
	filter, err := env.svc.DefaultFilter(ctx, env.projectID)
	require.NoError(t, err)
	assert.Equal(t, []string{env.doneID}, filter.IDs())

	require.NoError(t, env.svc.SaveFilter(ctx, env.projectID, rollup.AllSprints()))
	filter, err = env.svc.DefaultFilter(ctx, env.projectID)
	require.NoError(t, err)
	assert.True(t, filter.All(), "the saved selection survives round-tripping")
}
