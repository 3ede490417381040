package service

import (
	"context"
	"testing"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemEnv struct {
	svc       WorkItemService
	projectID string
	epicID    string
	sprintID  string
}

func setupItems(t *testing.T) *itemEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	epics := repository.NewSQLiteEpicRepo(database)
	sprints := repository.NewSQLiteSprintRepo(database)
	items := repository.NewSQLiteWorkItemRepo(database)

	proj := testutil.NewTestProject("Items")
	require.NoError(t, projects.Create(ctx, proj))
	epic := testutil.NewTestEpic(proj.ID, "Epic")
	require.NoError(t, epics.Create(ctx, epic))
	sprint := testutil.NewTestSprint(proj.ID, "Sprint 1")
	require.NoError(t, sprints.Create(ctx, sprint))

	return &itemEnv{
		svc:       NewWorkItemService(items, epics, sprints),
		projectID: proj.ID,
		epicID:    epic.ID,
		sprintID:  sprint.ID,
	}
}

func TestWorkItemService_CreateValidation(t *testing.T) {
	env := setupItems(t)
	ctx := context.Background()

	err := env.svc.Create(ctx, &domain.WorkItem{ProjectID: env.projectID})
	assert.ErrorIs(t, err, ErrValidation, "missing title")

	missing := "missing-epic"
	err = env.svc.Create(ctx, &domain.WorkItem{
		ProjectID: env.projectID,
		Title:     "Orphan",
		EpicID:    &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)

	w := &domain.WorkItem{ProjectID: env.projectID, Title: "Payment form", EpicID: &env.epicID}
	require.NoError(t, env.svc.Create(ctx, w))
	assert.NotEmpty(t, w.ID)
	assert.Equal(t, domain.WorkItemTodo, w.Status)
	assert.Equal(t, domain.LocationBacklog, w.Location())
}

func TestWorkItemService_MoveToSprint(t *testing.T) {
	env := setupItems(t)
	ctx := context.Background()

	w := &domain.WorkItem{ProjectID: env.projectID, Title: "Payment form", EpicID: &env.epicID}
	require.NoError(t, env.svc.Create(ctx, w))

	require.NoError(t, env.svc.MoveToSprint(ctx, w.ID, &env.sprintID))
	got, err := env.svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, env.sprintID, got.SprintRef())
	assert.Equal(t, domain.LocationSprint, got.Location())

	require.NoError(t, env.svc.MoveToSprint(ctx, w.ID, nil))
	got, err = env.svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationBacklog, got.Location())

	bogus := "missing-sprint"
	assert.ErrorIs(t, env.svc.MoveToSprint(ctx, w.ID, &bogus), ErrNotFound)
}

func TestWorkItemService_MarkDone(t *testing.T) {
	env := setupItems(t)
	ctx := context.Background()

	w := &domain.WorkItem{
		ProjectID: env.projectID,
		Title:     "Payment form",
		EpicID:    &env.epicID,
		SprintID:  &env.sprintID,
	}
	require.NoError(t, env.svc.Create(ctx, w))
	require.NoError(t, env.svc.MarkDone(ctx, w.ID))

	got, err := env.svc.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkItemDone, got.Status)
	assert.Equal(t, domain.LocationCompleted, got.Location())
	assert.Equal(t, env.sprintID, got.SprintRef(), "done items keep their sprint association")

	assert.ErrorIs(t, env.svc.MarkDone(ctx, "missing"), ErrNotFound)
}
