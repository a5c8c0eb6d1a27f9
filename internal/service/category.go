// Package service implements the catalog business logic on top of the stores.
package service

import (
	"context"
	"fmt"

	"github.com/BeltranCh97/catalog-service/internal/store"
)

// CategoryDto represents a category on the wire.
type CategoryDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CategorySaveDto is the payload for creating or fully replacing a category.
type CategorySaveDto struct {
	Name        string  `json:"name"        validate:"required,notblank"`
	Description *string `json:"description"`
}

// CategoryService defines the operations for managing categories.
type CategoryService interface {
	// FindAll returns every category; the order is unspecified.
	FindAll(ctx context.Context) ([]CategoryDto, error)

	// FindByID returns a category by its ID.
	// Returns ErrCategoryNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*CategoryDto, error)

	// Create persists a new category and returns it with its assigned ID.
	Create(ctx context.Context, category CategorySaveDto) (*CategoryDto, error)

	// Update overwrites every mutable field of an existing category.
	// Returns ErrCategoryNotFound if it does not exist.
	Update(ctx context.Context, id int64, category CategorySaveDto) (*CategoryDto, error)

	// DeleteByID removes a category by its ID.
	// Returns ErrCategoryNotFound if it does not exist.
	DeleteByID(ctx context.Context, id int64) error
}

type categoryService struct {
	repository store.CategoryStore
}

// NewCategoryService creates a CategoryService over the given store.
func NewCategoryService(repo store.CategoryStore) CategoryService {
	return &categoryService{repository: repo}
}

func (s *categoryService) FindAll(ctx context.Context) ([]CategoryDto, error) {
	categories, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	dtos := make([]CategoryDto, len(categories))
	for i, c := range categories {
		dtos[i] = *toCategoryDto(&c)
	}
	return dtos, nil
}

func (s *categoryService) FindByID(ctx context.Context, id int64) (*CategoryDto, error) {
	category, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category by ID %d: %w", id, err)
	}
	return toCategoryDto(category), nil
}

func (s *categoryService) Create(ctx context.Context, category CategorySaveDto) (*CategoryDto, error) {
	created, err := s.repository.Create(ctx, category.Name, category.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return toCategoryDto(created), nil
}

func (s *categoryService) Update(ctx context.Context, id int64, category CategorySaveDto) (*CategoryDto, error) {
	updated, err := s.repository.Update(ctx, id, category.Name, category.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to update category with ID %d: %w", id, err)
	}
	return toCategoryDto(updated), nil
}

func (s *categoryService) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

func toCategoryDto(category *store.Category) *CategoryDto {
	return &CategoryDto{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}
