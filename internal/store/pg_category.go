package store

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/BeltranCh97/catalog-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCategoryStore implements CategoryStore backed by PostgreSQL.
type PgCategoryStore struct {
	db *pgxpool.Pool
}

// NewPgCategoryStore creates a CategoryStore using a PostgreSQL connection pool.
func NewPgCategoryStore(dbp *pgxpool.Pool) *PgCategoryStore {
	return &PgCategoryStore{db: dbp}
}

// FindAll retrieves all categories.
func (s *PgCategoryStore) FindAll(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to find all categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category rows: %w", err)
	}
	return categories, nil
}

// FindByID retrieves a category by its identifier.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *PgCategoryStore) FindByID(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description FROM categories WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID: %w", err)
	}
	return &c, nil
}

// Create inserts a new category and returns the persisted record.
func (s *PgCategoryStore) Create(ctx context.Context, name string, description *string) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description`,
		name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// Update overwrites the category's fields and returns the persisted record.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *PgCategoryStore) Update(ctx context.Context, id int64, name string, description *string) (*Category, error) {
	var c Category
	err := s.db.QueryRow(ctx,
		`UPDATE categories
		 SET name = $2, description = $3
		 WHERE id = $1
		 RETURNING id, name, description`,
		id, name, description).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &c, nil
}

// DeleteByID removes a category by its identifier.
// Returns ErrCategoryNotFound if no category exists with the given ID.
func (s *PgCategoryStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cerrors.ErrCategoryNotFound
	}
	return nil
}
