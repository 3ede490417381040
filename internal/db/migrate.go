package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent
// (CREATE TABLE IF NOT EXISTS / CREATE INDEX IF NOT EXISTS) and the whole
// list is re-run on every startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','paused','done','archived')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS epics (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_epics_project ON epics(project_id)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'not_started'
		           CHECK(status IN ('not_started','active','completed')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_project ON sprints(project_id)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		epic_id    TEXT REFERENCES epics(id) ON DELETE SET NULL,
		sprint_id  TEXT REFERENCES sprints(id) ON DELETE SET NULL,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'todo'
		           CHECK(status IN ('todo','in_progress','done')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_project ON work_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_epic ON work_items(epic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_sprint ON work_items(sprint_id)`,

	`CREATE TABLE IF NOT EXISTS persons (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS costs (
		id          TEXT PRIMARY KEY,
		amount      REAL NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS person_assignments (
		id          TEXT PRIMARY KEY,
		person_id   TEXT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
		scope_kind  TEXT NOT NULL CHECK(scope_kind IN ('epic','work_item')),
		scope_id    TEXT NOT NULL,
		hours       REAL NOT NULL CHECK(hours >= 0),
		description TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_person_assignments_scope
		ON person_assignments(scope_kind, scope_id)`,
	`CREATE INDEX IF NOT EXISTS idx_person_assignments_person
		ON person_assignments(person_id)`,

	`CREATE TABLE IF NOT EXISTS cost_assignments (
		id         TEXT PRIMARY KEY,
		cost_id    TEXT NOT NULL REFERENCES costs(id) ON DELETE CASCADE,
		scope_kind TEXT NOT NULL CHECK(scope_kind IN ('epic','work_item')),
		scope_id   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cost_assignments_scope
		ON cost_assignments(scope_kind, scope_id)`,

	`CREATE TABLE IF NOT EXISTS sprint_filter_prefs (
		project_id TEXT PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
		selection  TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
