package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
)

// SQLiteCostRepo implements CostRepo using a SQLite database.
type SQLiteCostRepo struct {
	db db.DBTX
}

// NewSQLiteCostRepo creates a new SQLiteCostRepo.
func NewSQLiteCostRepo(db db.DBTX) *SQLiteCostRepo {
	return &SQLiteCostRepo{db: db}
}

func (r *SQLiteCostRepo) Create(ctx context.Context, c *domain.Cost) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO costs (id, amount, category, description, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Amount, c.Category, c.Description, c.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting cost: %w", err)
	}
	return nil
}

func (r *SQLiteCostRepo) GetByID(ctx context.Context, id string) (*domain.Cost, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount, category, description, created_at FROM costs WHERE id = ?`, id)
	return scanCost(row)
}

func (r *SQLiteCostRepo) List(ctx context.Context) ([]*domain.Cost, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, category, description, created_at FROM costs ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing costs: %w", err)
	}
	defer rows.Close()

	var costs []*domain.Cost
	for rows.Next() {
		c, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

func (r *SQLiteCostRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM costs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting cost: %w", err)
	}
	return requireAffected(res, "cost", id)
}

func scanCost(row rowScanner) (*domain.Cost, error) {
	var c domain.Cost
	var createdAtStr string
	err := row.Scan(&c.ID, &c.Amount, &c.Category, &c.Description, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cost: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning cost: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &c, nil
}
