// Package categories serves the category listing and admin creation
// endpoints.
package categories

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/models"
)

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
}

type CategoryHandler struct {
	repo CategoryProvider
	log  *slog.Logger
}

func NewCategoryHandler(r CategoryProvider, log *slog.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		h.log.Error("category listing failed", "error", err)
		api.Error(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryResponse{
			ID:   c.ID,
			Name: c.Name,
			Slug: c.Slug,
		}
	}

	api.JSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.Name == "" || input.Slug == "" {
		api.Error(w, http.StatusBadRequest, "Missing name or slug")
		return
	}

	category := &models.Category{
		Name: input.Name,
		Slug: input.Slug,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		h.log.Error("category creation failed", "error", err, "name", input.Name)
		api.Error(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	api.JSON(w, http.StatusCreated, CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Slug: category.Slug,
	})
}
