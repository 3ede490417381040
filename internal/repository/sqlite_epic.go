package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
)

const epicColumns = `id, project_id, title, start_date, end_date, created_at, updated_at`

// SQLiteEpicRepo implements EpicRepo using a SQLite database.
type SQLiteEpicRepo struct {
	db db.DBTX
}

// NewSQLiteEpicRepo creates a new SQLiteEpicRepo.
func NewSQLiteEpicRepo(db db.DBTX) *SQLiteEpicRepo {
	return &SQLiteEpicRepo{db: db}
}

func (r *SQLiteEpicRepo) Create(ctx context.Context, e *domain.Epic) error {
	query := `INSERT INTO epics (` + epicColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Title,
		e.StartDate.Format(dateLayout),
		e.EndDate.Format(dateLayout),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting epic: %w", err)
	}
	return nil
}

func (r *SQLiteEpicRepo) GetByID(ctx context.Context, id string) (*domain.Epic, error) {
	query := `SELECT ` + epicColumns + ` FROM epics WHERE id = ?`
	return scanEpic(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEpicRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Epic, error) {
	query := `SELECT ` + epicColumns + ` FROM epics WHERE project_id = ? ORDER BY start_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing epics by project: %w", err)
	}
	defer rows.Close()

	var epics []*domain.Epic
	for rows.Next() {
		e, err := scanEpic(rows)
		if err != nil {
			return nil, err
		}
		epics = append(epics, e)
	}
	return epics, rows.Err()
}

func (r *SQLiteEpicRepo) Update(ctx context.Context, e *domain.Epic) error {
	query := `UPDATE epics SET title = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title,
		e.StartDate.Format(dateLayout),
		e.EndDate.Format(dateLayout),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating epic: %w", err)
	}
	return requireAffected(res, "epic", e.ID)
}

func (r *SQLiteEpicRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM epics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting epic: %w", err)
	}
	return requireAffected(res, "epic", id)
}

func scanEpic(row rowScanner) (*domain.Epic, error) {
	var e domain.Epic
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(&e.ID, &e.ProjectID, &e.Title, &startStr, &endStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("epic: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning epic: %w", err)
	}

	if e.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if e.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if e.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &e, nil
}
