package store

import (
	"context"
	"errors"
	"fmt"

	cerrors "github.com/BeltranCh97/catalog-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProductStore implements ProductStore backed by PostgreSQL.
type PgProductStore struct {
	db *pgxpool.Pool
}

// NewPgProductStore creates a ProductStore using a PostgreSQL connection pool.
func NewPgProductStore(dbp *pgxpool.Pool) *PgProductStore {
	return &PgProductStore{db: dbp}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.stock_quantity, p.availability_status,
	       c.id, c.name, c.description
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// scanProduct reads one joined product row, including the optional category.
func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var catID *int64
	var catName, catDescription *string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.AvailabilityStatus,
		&catID, &catName, &catDescription,
	)
	if err != nil {
		return nil, err
	}
	if catID != nil {
		p.CategoryID = catID
		p.Category = &Category{ID: *catID, Name: *catName, Description: catDescription}
	}
	return &p, nil
}

// FindAll retrieves all products with their category references resolved.
func (s *PgProductStore) FindAll(ctx context.Context) ([]Product, error) {
	rows, err := s.db.Query(ctx, productSelect)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// FindByID retrieves a product by its identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgProductStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	row := s.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// FindByCategoryID retrieves every product referencing the given category.
// An unknown category ID yields an empty slice.
func (s *PgProductStore) FindByCategoryID(ctx context.Context, categoryID int64) ([]Product, error) {
	rows, err := s.db.Query(ctx, productSelect+` WHERE p.category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by category ID: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Create inserts a new product and returns the persisted record with its
// category reference resolved.
func (s *PgProductStore) Create(ctx context.Context, product Product) (*Product, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO products (name, description, price, stock_quantity, availability_status, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		product.Name, product.Description, product.Price, product.StockQuantity,
		product.AvailabilityStatus, product.CategoryID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update overwrites every mutable field of the product and returns the
// persisted record. Returns ErrProductNotFound if no product exists with the
// given ID.
func (s *PgProductStore) Update(ctx context.Context, product Product) (*Product, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE products
		 SET name = $2, description = $3, price = $4, stock_quantity = $5,
		     availability_status = $6, category_id = $7
		 WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.AvailabilityStatus, product.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, cerrors.ErrProductNotFound
	}
	return s.FindByID(ctx, product.ID)
}

// DeleteByID removes a product by its identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *PgProductStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cerrors.ErrProductNotFound
	}
	return nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}
