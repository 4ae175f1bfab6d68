package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/leelawheel/internal/api/apierr"
	"github.com/mcoot/leelawheel/internal/api/request"
	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/services/settings"
)

// ConfigHandler handles the admin config endpoints
type ConfigHandler struct {
	settings settings.ServiceInterface
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(settings settings.ServiceInterface) *ConfigHandler {
	return &ConfigHandler{
		settings: settings,
	}
}

// Get handles GET /api/v1/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ConfigFromModel(h.settings.Current()))
}

// Update handles PUT /api/v1/config
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	cfg := req.Apply(h.settings.Current())
	if err := h.settings.Save(r.Context(), cfg); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ConfigFromModel(cfg))
}
