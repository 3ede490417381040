package service

import (
	"context"
	"errors"
	"testing"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignEnv struct {
	svc      AssignmentService
	asgs     repository.PersonAssignmentRepo
	personID string
	epicID   string
	costID   string
}

func setupAssign(t *testing.T) *assignEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	epics := repository.NewSQLiteEpicRepo(database)
	persons := repository.NewSQLitePersonRepo(database)
	costs := repository.NewSQLiteCostRepo(database)
	personAsgs := repository.NewSQLitePersonAssignmentRepo(database)
	costAsgs := repository.NewSQLiteCostAssignmentRepo(database)

	proj := testutil.NewTestProject("Assign")
	require.NoError(t, projects.Create(ctx, proj))
	epic := testutil.NewTestEpic(proj.ID, "Epic")
	require.NoError(t, epics.Create(ctx, epic))
	person := testutil.NewTestPerson("Ada")
	require.NoError(t, persons.Create(ctx, person))
	cost := testutil.NewTestCost(100)
	require.NoError(t, costs.Create(ctx, cost))

	return &assignEnv{
		svc:      NewAssignmentService(personAsgs, costAsgs, persons, costs),
		asgs:     personAsgs,
		personID: person.ID,
		epicID:   epic.ID,
		costID:   cost.ID,
	}
}

func TestAssignHours_CreatesAssignment(t *testing.T) {
	env := setupAssign(t)

	a, err := env.svc.AssignHours(context.Background(),
		env.personID, domain.EpicScope(env.epicID), 20, "planning estimate")
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, 20.0, a.Hours)
	assert.Equal(t, "planning estimate", a.Description)
}

func TestAssignHours_MergesIntoExistingPair(t *testing.T) {
	env := setupAssign(t)
	ctx := context.Background()
	scope := domain.EpicScope(env.epicID)

	first, err := env.svc.AssignHours(ctx, env.personID, scope, 20, "initial")
	require.NoError(t, err)
	second, err := env.svc.AssignHours(ctx, env.personID, scope, 10, "topped up")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "one assignment per (person, scope) pair")
	assert.Equal(t, 30.0, second.Hours)
	assert.Equal(t, "initial; topped up", second.Description)

	all, err := env.svc.ListHours(ctx, scope)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssignHours_Rejections(t *testing.T) {
	env := setupAssign(t)
	ctx := context.Background()

	_, err := env.svc.AssignHours(ctx, env.personID, domain.EpicScope(env.epicID), 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.AssignHours(ctx, env.personID, domain.EpicScope(env.epicID), -4, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.AssignHours(ctx, env.personID, domain.AssignmentScope{Kind: "release", ID: "x"}, 4, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.svc.AssignHours(ctx, "nobody", domain.EpicScope(env.epicID), 4, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateHours_ZeroDeletes(t *testing.T) {
	env := setupAssign(t)
	ctx := context.Background()

	a, err := env.svc.AssignHours(ctx, env.personID, domain.EpicScope(env.epicID), 20, "")
	require.NoError(t, err)

	require.NoError(t, env.svc.UpdateHours(ctx, a.ID, 12.5))
	got, err := env.asgs.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Hours)

	require.NoError(t, env.svc.UpdateHours(ctx, a.ID, 0))
	_, err = env.asgs.GetByID(ctx, a.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound), "zero hours removes the row")

	assert.ErrorIs(t, env.svc.UpdateHours(ctx, a.ID, 5), ErrNotFound)
}

func TestRemoveHours(t *testing.T) {
	env := setupAssign(t)
	ctx := context.Background()

	a, err := env.svc.AssignHours(ctx, env.personID, domain.EpicScope(env.epicID), 8, "")
	require.NoError(t, err)
	require.NoError(t, env.svc.RemoveHours(ctx, a.ID))
	assert.ErrorIs(t, env.svc.RemoveHours(ctx, a.ID), ErrNotFound)
}

func TestAssignCost(t *testing.T) {
	env := setupAssign(t)
	ctx := context.Background()

	a, err := env.svc.AssignCost(ctx, env.costID, domain.EpicScope(env.epicID))
	require.NoError(t, err)
	assert.Equal(t, env.costID, a.CostID)

	_, err = env.svc.AssignCost(ctx, "missing", domain.EpicScope(env.epicID))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.svc.RemoveCost(ctx, a.ID))
	assert.ErrorIs(t, env.svc.RemoveCost(ctx, a.ID), ErrNotFound)
}
