// Package store provides interfaces and PostgreSQL implementations for
// catalog persistence.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Category is a persisted product category.
type Category struct {
	ID          int64
	Name        string
	Description *string
}

// Product is a persisted catalog product. Category is resolved on reads when
// the product references one; CategoryID carries the raw reference on writes.
type Product struct {
	ID                 int64
	Name               string
	Description        *string
	Price              decimal.Decimal
	StockQuantity      int32
	AvailabilityStatus string
	CategoryID         *int64
	Category           *Category
}

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	// FindAll returns every category; the order is unspecified.
	FindAll(ctx context.Context) ([]Category, error)

	// FindByID returns the category with the given ID.
	// Returns ErrCategoryNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*Category, error)

	// Create inserts a new category and returns it with its assigned ID.
	Create(ctx context.Context, name string, description *string) (*Category, error)

	// Update overwrites every mutable field of the category.
	// Returns ErrCategoryNotFound if it does not exist.
	Update(ctx context.Context, id int64, name string, description *string) (*Category, error)

	// DeleteByID removes the category. Products referencing it keep no
	// reference afterwards (the schema sets it to null).
	// Returns ErrCategoryNotFound if it does not exist.
	DeleteByID(ctx context.Context, id int64) error
}

// ProductStore is the persistence contract for products.
type ProductStore interface {
	// FindAll returns every product; the order is unspecified.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID returns the product with the given ID.
	// Returns ErrProductNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByCategoryID returns all products referencing the category.
	// An unknown category ID yields an empty slice, not an error.
	FindByCategoryID(ctx context.Context, categoryID int64) ([]Product, error)

	// Create inserts a new product and returns it with its assigned ID and
	// resolved category reference.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update overwrites every mutable field of the product.
	// Returns ErrProductNotFound if it does not exist.
	Update(ctx context.Context, product Product) (*Product, error)

	// DeleteByID removes the product.
	// Returns ErrProductNotFound if it does not exist.
	DeleteByID(ctx context.Context, id int64) error
}
