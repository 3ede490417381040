package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
)

const personAssignmentColumns = `id, person_id, scope_kind, scope_id, hours, description, created_at, updated_at`

// SQLitePersonAssignmentRepo implements PersonAssignmentRepo using a SQLite database.
type SQLitePersonAssignmentRepo struct {
	db db.DBTX
}

// NewSQLitePersonAssignmentRepo creates a new SQLitePersonAssignmentRepo.
func NewSQLitePersonAssignmentRepo(db db.DBTX) *SQLitePersonAssignmentRepo {
	return &SQLitePersonAssignmentRepo{db: db}
}

func (r *SQLitePersonAssignmentRepo) Create(ctx context.Context, a *domain.PersonAssignment) error {
	query := `INSERT INTO person_assignments (` + personAssignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PersonID,
		string(a.Scope.Kind),
		a.Scope.ID,
		a.Hours,
		a.Description,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting person assignment: %w", err)
	}
	return nil
}

func (r *SQLitePersonAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.PersonAssignment, error) {
	query := `SELECT ` + personAssignmentColumns + ` FROM person_assignments WHERE id = ?`
	return scanPersonAssignment(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePersonAssignmentRepo) ListByScope(ctx context.Context, scope domain.AssignmentScope) ([]*domain.PersonAssignment, error) {
	query := `SELECT ` + personAssignmentColumns + ` FROM person_assignments
		WHERE scope_kind = ? AND scope_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, string(scope.Kind), scope.ID)
	if err != nil {
		return nil, fmt.Errorf("listing person assignments by scope: %w", err)
	}
	defer rows.Close()
	return scanPersonAssignments(rows)
}

func (r *SQLitePersonAssignmentRepo) FindByPersonAndScope(ctx context.Context, personID string, scope domain.AssignmentScope) (*domain.PersonAssignment, error) {
	query := `SELECT ` + personAssignmentColumns + ` FROM person_assignments
		WHERE person_id = ? AND scope_kind = ? AND scope_id = ?`
	return scanPersonAssignment(r.db.QueryRowContext(ctx, query, personID, string(scope.Kind), scope.ID))
}

func (r *SQLitePersonAssignmentRepo) Update(ctx context.Context, a *domain.PersonAssignment) error {
	query := `UPDATE person_assignments SET hours = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.Hours, a.Description, a.UpdatedAt.Format(time.RFC3339), a.ID)
	if err != nil {
		return fmt.Errorf("updating person assignment: %w", err)
	}
	return requireAffected(res, "person assignment", a.ID)
}

// UpdateHoursIfMatch performs a conditional write guarded by the currently
// stored hours value. A false return means another writer got there first.
func (r *SQLitePersonAssignmentRepo) UpdateHoursIfMatch(ctx context.Context, id string, expectedHours, newHours float64) (bool, error) {
	query := `UPDATE person_assignments SET hours = ?, updated_at = ? WHERE id = ? AND hours = ?`
	res, err := r.db.ExecContext(ctx, query, newHours, nowUTC(), id, expectedHours)
	if err != nil {
		return false, fmt.Errorf("conditionally updating person assignment hours: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking affected rows: %w", err)
	}
	return n == 1, nil
}

func (r *SQLitePersonAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM person_assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person assignment: %w", err)
	}
	return requireAffected(res, "person assignment", id)
}

func scanPersonAssignment(row rowScanner) (*domain.PersonAssignment, error) {
	var a domain.PersonAssignment
	var kindStr, createdAtStr, updatedAtStr string

	err := row.Scan(&a.ID, &a.PersonID, &kindStr, &a.Scope.ID, &a.Hours, &a.Description, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning person assignment: %w", err)
	}

	a.Scope.Kind = domain.ScopeKind(kindStr)
	if a.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &a, nil
}

func scanPersonAssignments(rows *sql.Rows) ([]*domain.PersonAssignment, error) {
	var out []*domain.PersonAssignment
	for rows.Next() {
		a, err := scanPersonAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SQLiteCostAssignmentRepo implements CostAssignmentRepo using a SQLite database.
type SQLiteCostAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteCostAssignmentRepo creates a new SQLiteCostAssignmentRepo.
func NewSQLiteCostAssignmentRepo(db db.DBTX) *SQLiteCostAssignmentRepo {
	return &SQLiteCostAssignmentRepo{db: db}
}

func (r *SQLiteCostAssignmentRepo) Create(ctx context.Context, a *domain.CostAssignment) error {
	query := `INSERT INTO cost_assignments (id, cost_id, scope_kind, scope_id, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.CostID, string(a.Scope.Kind), a.Scope.ID, a.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting cost assignment: %w", err)
	}
	return nil
}

func (r *SQLiteCostAssignmentRepo) ListByScope(ctx context.Context, scope domain.AssignmentScope) ([]*domain.CostAssignment, error) {
	query := `SELECT id, cost_id, scope_kind, scope_id, created_at FROM cost_assignments
		WHERE scope_kind = ? AND scope_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, string(scope.Kind), scope.ID)
	if err != nil {
		return nil, fmt.Errorf("listing cost assignments by scope: %w", err)
	}
	defer rows.Close()

	var out []*domain.CostAssignment
	for rows.Next() {
		var a domain.CostAssignment
		var kindStr, createdAtStr string
		if err := rows.Scan(&a.ID, &a.CostID, &kindStr, &a.Scope.ID, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning cost assignment: %w", err)
		}
		a.Scope.Kind = domain.ScopeKind(kindStr)
		if a.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *SQLiteCostAssignmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cost_assignments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cost assignment: %w", err)
	}
	return requireAffected(res, "cost assignment", id)
}
