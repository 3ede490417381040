package repository_test

import (
	"context"
	"testing"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/avoronkov/trackdeck/internal/repository"
	"github.com/avoronkov/trackdeck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPersonWithEpic(t *testing.T) (*repository.SQLitePersonAssignmentRepo, string, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	epics := repository.NewSQLiteEpicRepo(database)
	persons := repository.NewSQLitePersonRepo(database)

	proj := testutil.NewTestProject("Repo")
	require.NoError(t, projects.Create(ctx, proj))
	epic := testutil.NewTestEpic(proj.ID, "Epic")
	require.NoError(t, epics.Create(ctx, epic))
	person := testutil.NewTestPerson("Ada")
	require.NoError(t, persons.Create(ctx, person))

	return repository.NewSQLitePersonAssignmentRepo(database), person.ID, epic.ID
}

func TestPersonAssignmentRepo_RoundTrip(t *testing.T) {
	repo, personID, epicID := seedPersonWithEpic(t)
	ctx := context.Background()
	scope := domain.EpicScope(epicID)

	a := testutil.NewTestPersonAssignment(personID, scope, 20,
		testutil.WithDescription("planning estimate"))
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, scope, got.Scope)
	assert.Equal(t, 20.0, got.Hours)
	assert.Equal(t, "planning estimate", got.Description)

	byPair, err := repo.FindByPersonAndScope(ctx, personID, scope)
	require.NoError(t, err)
	assert.Equal(t, a.ID, byPair.ID)

	_, err = repo.FindByPersonAndScope(ctx, personID, domain.WorkItemScope("other"))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPersonAssignmentRepo_UpdateHoursIfMatch(t *testing.T) {
	repo, personID, epicID := seedPersonWithEpic(t)
	ctx := context.Background()

	a := testutil.NewTestPersonAssignment(personID, domain.EpicScope(epicID), 20)
	require.NoError(t, repo.Create(ctx, a))

	ok, err := repo.UpdateHoursIfMatch(ctx, a.ID, 20, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Hours)

	// A stale expectation must not write.
	ok, err = repo.UpdateHoursIfMatch(ctx, a.ID, 20, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Hours)
}

func TestPersonAssignmentRepo_DeleteMissing(t *testing.T) {
	repo, _, _ := seedPersonWithEpic(t)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), repository.ErrNotFound)
}

func TestSprintPrefRepo_Upsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	projects := repository.NewSQLiteProjectRepo(database)
	proj := testutil.NewTestProject("Prefs")
	require.NoError(t, projects.Create(ctx, proj))

	prefs := repository.NewSQLiteSprintPrefRepo(database)

	_, err := prefs.Get(ctx, proj.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, prefs.Put(ctx, proj.ID, "all"))
	got, err := prefs.Get(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "all", got)

	require.NoError(t, prefs.Put(ctx, proj.ID, "s1,s2"))
	got, err = prefs.Get(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1,s2", got, "the selection is replaced, not duplicated")
}
