package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avoronkov/trackdeck/internal/db"
	"github.com/avoronkov/trackdeck/internal/domain"
)

// SQLitePersonRepo implements PersonRepo using a SQLite database.
type SQLitePersonRepo struct {
	db db.DBTX
}

// NewSQLitePersonRepo creates a new SQLitePersonRepo.
func NewSQLitePersonRepo(db db.DBTX) *SQLitePersonRepo {
	return &SQLitePersonRepo{db: db}
}

func (r *SQLitePersonRepo) Create(ctx context.Context, p *domain.Person) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO persons (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting person: %w", err)
	}
	return nil
}

func (r *SQLitePersonRepo) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM persons WHERE id = ?`, id)
	return scanPerson(row)
}

func (r *SQLitePersonRepo) List(ctx context.Context) ([]*domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM persons ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	defer rows.Close()

	var persons []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (r *SQLitePersonRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM persons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	return requireAffected(res, "person", id)
}

func scanPerson(row rowScanner) (*domain.Person, error) {
	var p domain.Person
	var createdAtStr string
	err := row.Scan(&p.ID, &p.Name, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	if p.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &p, nil
}
