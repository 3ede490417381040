package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time — should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"projects", "epics", "sprints", "work_items",
		"persons", "costs", "person_assignments", "cost_assignments",
		"sprint_filter_prefs",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_epics_project",
		"idx_sprints_project",
		"idx_work_items_project",
		"idx_work_items_epic",
		"idx_work_items_sprint",
		"idx_person_assignments_scope",
		"idx_person_assignments_person",
		"idx_cost_assignments_scope",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ScopeKindConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO persons (id, name, created_at) VALUES ('p1', 'Ada', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO person_assignments
		(id, person_id, scope_kind, scope_id, hours, description, created_at, updated_at)
		VALUES ('a1', 'p1', 'sprint', 's1', 5, '', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "unknown scope kind must violate the CHECK constraint")

	_, err = db.Exec(`INSERT INTO person_assignments
		(id, person_id, scope_kind, scope_id, hours, description, created_at, updated_at)
		VALUES ('a2', 'p1', 'epic', 'e1', -2, '', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "negative hours must violate the CHECK constraint")
}
