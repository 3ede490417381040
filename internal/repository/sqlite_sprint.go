package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
)

const sprintColumns = `id, project_id, name, start_date, end_date, status, created_at, updated_at`

// SQLiteSprintRepo implements SprintRepo using a SQLite database.
type SQLiteSprintRepo struct {
	db db.DBTX
}

// NewSQLiteSprintRepo creates a new SQLiteSprintRepo.
func NewSQLiteSprintRepo(db db.DBTX) *SQLiteSprintRepo {
	return &SQLiteSprintRepo{db: db}
}

func (r *SQLiteSprintRepo) Create(ctx context.Context, s *domain.Sprint) error {
	query := `INSERT INTO sprints (` + sprintColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ProjectID,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		string(s.Status),
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sprint: %w", err)
	}
	return nil
}

func (r *SQLiteSprintRepo) GetByID(ctx context.Context, id string) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = ?`
	return scanSprint(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSprintRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE project_id = ? ORDER BY start_date, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing sprints by project: %w", err)
	}
	defer rows.Close()

	var sprints []*domain.Sprint
	for rows.Next() {
		s, err := scanSprint(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, s)
	}
	return sprints, rows.Err()
}

func (r *SQLiteSprintRepo) Update(ctx context.Context, s *domain.Sprint) error {
	query := `UPDATE sprints SET name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		s.StartDate.Format(dateLayout),
		s.EndDate.Format(dateLayout),
		string(s.Status),
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sprint: %w", err)
	}
	return requireAffected(res, "sprint", s.ID)
}

func (r *SQLiteSprintRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sprints WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sprint: %w", err)
	}
	return requireAffected(res, "sprint", id)
}

func scanSprint(row rowScanner) (*domain.Sprint, error) {
	var s domain.Sprint
	var startStr, endStr, statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &startStr, &endStr, &statusStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("sprint: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sprint: %w", err)
	}

	s.Status = domain.SprintStatus(statusStr)
	if s.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if s.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &s, nil
}
