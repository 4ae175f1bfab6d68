package handler

import (
	"net/http"

	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/services/catalog"
)

// HealthHandler reports liveness and catalog readiness
type HealthHandler struct {
	catalog *catalog.Service
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalog *catalog.Service) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

// Get handles GET /api/v1/health. The process is healthy even without a
// catalog; draws report that separately.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.catalog.Catalog()
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:       "ok",
		CatalogReady: c != nil,
		Quotes:       c.QuoteCount(),
		Images:       c.ImageCount(),
	})
}
