// Package health serves the liveness endpoints.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mondaymerch/ecommerce-api/app/api"
)

// Pinger checks connectivity to the database.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	log *slog.Logger
}

func NewHealthHandler(db Pinger, log *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// HandleRoot is the banner route.
func (h *HealthHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]string{
		"message": "Monday Merch e-commerce API",
	})
}

// HandleGet reports API and database health; a failed database ping turns
// into 503.
func (h *HealthHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.Error("database health check failed", "error", err)
		api.JSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":         "unhealthy",
			"api":            "ok",
			"database":       "unhealthy",
			"database_error": err.Error(),
		})
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"status":   "healthy",
		"api":      "ok",
		"database": "connected",
	})
}
