package service

import (
	"context"
	"fmt"

	"github.com/BeltranCh97/catalog-service/internal/store"
	"github.com/shopspring/decimal"
)

// Availability status tokens recognized by the stock derivation. Any other
// token is carried through opaquely.
const (
	StatusAvailable    = "AVAILABLE"
	StatusOutOfStock   = "OUT_OF_STOCK"
	StatusDiscontinued = "DISCONTINUED"
)

func init() {
	// Prices are JSON numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// CategoryRefDto is a product's reference to its category. Only the ID is
// consumed on writes; name and description are populated on reads.
type CategoryRefDto struct {
	ID          int64   `json:"id" validate:"required"`
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProductDto represents a product on the wire.
type ProductDto struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	Price              decimal.Decimal `json:"price"`
	StockQuantity      int32           `json:"stockQuantity"`
	AvailabilityStatus string          `json:"availabilityStatus"`
	Category           *CategoryRefDto `json:"category"`
}

// ProductSaveDto is the payload for creating or fully replacing a product.
// Optional fields are pointers so that absence is distinguishable from the
// zero value; a stock quantity of 0 is valid and drives the availability
// derivation.
type ProductSaveDto struct {
	Name               string           `json:"name"               validate:"required,notblank"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"              validate:"required,gte=0"`
	StockQuantity      *int32           `json:"stockQuantity"      validate:"required,gte=0"`
	AvailabilityStatus string           `json:"availabilityStatus" validate:"required"`
	Category           *CategoryRefDto  `json:"category"`
}

// ProductService defines the operations for managing products.
type ProductService interface {
	// FindAll returns every product; the order is unspecified.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID returns a product by its ID.
	// Returns ErrProductNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindByCategoryID returns all products referencing the category.
	// An unknown category ID yields an empty slice, not an error.
	FindByCategoryID(ctx context.Context, categoryID int64) ([]ProductDto, error)

	// Create derives the availability status from the stock quantity, then
	// persists the product and returns it with its assigned ID.
	Create(ctx context.Context, product ProductSaveDto) (*ProductDto, error)

	// Update derives the availability status from the stock quantity, then
	// overwrites every mutable field of an existing product.
	// Returns ErrProductNotFound if it does not exist.
	Update(ctx context.Context, id int64, product ProductSaveDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if it does not exist.
	DeleteByID(ctx context.Context, id int64) error
}

type productService struct {
	repository store.ProductStore
}

// NewProductService creates a ProductService over the given store.
func NewProductService(repo store.ProductStore) ProductService {
	return &productService{repository: repo}
}

func (s *productService) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(products), nil
}

func (s *productService) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toProductDto(product), nil
}

func (s *productService) FindByCategoryID(ctx context.Context, categoryID int64) ([]ProductDto, error) {
	products, err := s.repository.FindByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products for category %d: %w", categoryID, err)
	}
	return toProductDtos(products), nil
}

func (s *productService) Create(ctx context.Context, product ProductSaveDto) (*ProductDto, error) {
	deriveAvailabilityStatus(&product)
	created, err := s.repository.Create(ctx, toStoreProduct(0, product))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toProductDto(created), nil
}

func (s *productService) Update(ctx context.Context, id int64, product ProductSaveDto) (*ProductDto, error) {
	deriveAvailabilityStatus(&product)
	updated, err := s.repository.Update(ctx, toStoreProduct(id, product))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return toProductDto(updated), nil
}

func (s *productService) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

// deriveAvailabilityStatus recomputes the availability status from the stock
// quantity. A product with zero stock goes out of stock unless it has been
// discontinued; an out-of-stock product with stock again becomes available.
// Any other combination, including an absent stock quantity, is left as is.
func deriveAvailabilityStatus(p *ProductSaveDto) {
	switch {
	case p.StockQuantity == nil:
	case *p.StockQuantity == 0 && p.AvailabilityStatus != StatusDiscontinued:
		p.AvailabilityStatus = StatusOutOfStock
	case *p.StockQuantity > 0 && p.AvailabilityStatus == StatusOutOfStock:
		p.AvailabilityStatus = StatusAvailable
	}
}

func toStoreProduct(id int64, dto ProductSaveDto) store.Product {
	p := store.Product{
		ID:                 id,
		Name:               dto.Name,
		Description:        dto.Description,
		AvailabilityStatus: dto.AvailabilityStatus,
	}
	if dto.Price != nil {
		p.Price = *dto.Price
	}
	if dto.StockQuantity != nil {
		p.StockQuantity = *dto.StockQuantity
	}
	if dto.Category != nil {
		categoryID := dto.Category.ID
		p.CategoryID = &categoryID
	}
	return p
}

func toProductDto(product *store.Product) *ProductDto {
	dto := &ProductDto{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		Price:              product.Price,
		StockQuantity:      product.StockQuantity,
		AvailabilityStatus: product.AvailabilityStatus,
	}
	if product.Category != nil {
		dto.Category = &CategoryRefDto{
			ID:          product.Category.ID,
			Name:        product.Category.Name,
			Description: product.Category.Description,
		}
	}
	return dto
}

func toProductDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = *toProductDto(&p)
	}
	return dtos
}
