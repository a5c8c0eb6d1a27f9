package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	cerrors "github.com/BeltranCh97/catalog-service/internal/errors"
	"github.com/BeltranCh97/catalog-service/internal/service"
	"github.com/BeltranCh97/catalog-service/pkg/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// CategoryHandler serves the /api/categories endpoints.
type CategoryHandler struct {
	service  service.CategoryService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler over the given service.
func NewCategoryHandler(service service.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger.With("component", "rest.category"),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll lists every category.
func (h *CategoryHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := requestLogger(h.logger, r)
	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving category list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a single category.
func (h *CategoryHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := requestLogger(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger, "id")
	if !ok {
		return
	}
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, cerrors.ErrCategoryNotFound) {
			mLogger.WarnContext(r.Context(), "Category not found", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving category", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve category with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// Create persists a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := requestLogger(h.logger, r)
	var dto service.CategorySaveDto
	if !decodeValid(w, r, mLogger, h.validate, &dto) {
		return
	}
	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating category", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create category")
		return
	}
	mLogger.InfoContext(r.Context(), "Category created", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update replaces every mutable field of an existing category.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := requestLogger(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger, "id")
	if !ok {
		return
	}
	var dto service.CategorySaveDto
	if !decodeValid(w, r, mLogger, h.validate, &dto) {
		return
	}
	updated, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, cerrors.ErrCategoryNotFound) {
			mLogger.WarnContext(r.Context(), "Category not found for update", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating category", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update category with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Category updated", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID removes a category. Products referencing it are kept and lose
// the reference.
func (h *CategoryHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := requestLogger(h.logger, r)
	id, ok := web.ParseID(w, r, mLogger, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, cerrors.ErrCategoryNotFound) {
			mLogger.WarnContext(r.Context(), "Category not found for deletion", "ID", id)
			web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Category with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting category", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete category with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Category deleted", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}
