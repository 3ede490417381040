package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avoronkov/trackdeck/internal/db"
)

// SQLiteSprintPrefRepo stores the per-project sprint-filter selection blob.
type SQLiteSprintPrefRepo struct {
	db db.DBTX
}

// NewSQLiteSprintPrefRepo creates a new SQLiteSprintPrefRepo.
func NewSQLiteSprintPrefRepo(db db.DBTX) *SQLiteSprintPrefRepo {
	return &SQLiteSprintPrefRepo{db: db}
}

func (r *SQLiteSprintPrefRepo) Get(ctx context.Context, projectID string) (string, error) {
	var selection string
	row := r.db.QueryRowContext(ctx,
		`SELECT selection FROM sprint_filter_prefs WHERE project_id = ?`, projectID)
	if err := row.Scan(&selection); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("sprint filter preference: %w", ErrNotFound)
		}
		return "", fmt.Errorf("reading sprint filter preference: %w", err)
	}
	return selection, nil
}

func (r *SQLiteSprintPrefRepo) Put(ctx context.Context, projectID, selection string) error {
	query := `INSERT INTO sprint_filter_prefs (project_id, selection, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET selection = excluded.selection, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, projectID, selection, nowUTC()); err != nil {
		return fmt.Errorf("saving sprint filter preference: %w", err)
	}
	return nil
}
