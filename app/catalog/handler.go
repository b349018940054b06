// Package catalog serves the paginated, filterable product listing.
package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mondaymerch/ecommerce-api/app/api"
	"github.com/mondaymerch/ecommerce-api/database"
	"github.com/mondaymerch/ecommerce-api/models"
	"github.com/mondaymerch/ecommerce-api/pagination"
)

// MaxPageSize is the upper bound enforced on the page_size query parameter.
const MaxPageSize = 100

type Response struct {
	Products   []Product `json:"products"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Product struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Inventory   int       `json:"inventory"`
	CategoryID  uint      `json:"category_id"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
}

type CatalogHandler struct {
	repo ProductProvider
	log  *slog.Logger
}

func NewCatalogHandler(r ProductProvider, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
		log:  log,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	// Parse pagination query params; invalid values fall back to defaults.
	page := 1
	pageSize := pagination.DefaultPageSize

	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = p
		}
	}

	if sStr := r.URL.Query().Get("page_size"); sStr != "" {
		if s, err := strconv.Atoi(sStr); err == nil {
			if s < 1 {
				pageSize = 1
			} else if s > MaxPageSize {
				pageSize = MaxPageSize
			} else {
				pageSize = s
			}
		}
	}

	filters := models.ProductFilters{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
	}

	offset, limit := pagination.Calculate(page, pageSize)

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		h.log.Error("product listing failed", "error", err, "filters", filters)
		if database.SchemaOutOfDate(err) {
			api.Error(w, http.StatusInternalServerError, "Database schema is out of date. Please restart the application to apply migrations.")
			return
		}
		api.Error(w, http.StatusInternalServerError, "failed to get products")
		return
	}

	totalPages := (int(total) + pageSize - 1) / pageSize

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			Price:       p.Price.InexactFloat64(),
			Inventory:   p.Inventory,
			CategoryID:  p.CategoryID,
			Category: Category{
				ID:   p.Category.ID,
				Name: p.Category.Name,
				Slug: p.Category.Slug,
			},
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		}
	}

	api.JSON(w, http.StatusOK, Response{
		Products:   products,
		Total:      int(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}
