package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/leelawheel/internal/api/apierr"
	"github.com/mcoot/leelawheel/internal/api/request"
	"github.com/mcoot/leelawheel/internal/api/response"
	"github.com/mcoot/leelawheel/internal/api/sse"
	"github.com/mcoot/leelawheel/internal/model"
	"github.com/mcoot/leelawheel/internal/services/draw"
)

// Countdown event names
const (
	EventTick = "tick"
	EventOpen = "open"
)

// DrawHandler handles draws and per-player lookups
type DrawHandler struct {
	controller *draw.Controller
	location   *time.Location
}

// NewDrawHandler creates a new draw handler. Times in responses are rendered in loc.
func NewDrawHandler(controller *draw.Controller, loc *time.Location) *DrawHandler {
	if loc == nil {
		loc = time.Local
	}
	return &DrawHandler{
		controller: controller,
		location:   loc,
	}
}

// Create handles POST /api/v1/draws
func (h *DrawHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.DrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	outcome, err := h.controller.Draw(r.Context(), req.Player())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DrawResponseFromOutcome(outcome, h.location))
}

// Status handles GET /api/v1/players/status
func (h *DrawHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.controller.Status(r.Context(), request.PlayerFromQuery(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatusResponseFromModel(status, h.location))
}

// History handles GET /api/v1/players/history
func (h *DrawHandler) History(w http.ResponseWriter, r *http.Request) {
	player := request.PlayerFromQuery(r)
	entries, err := h.controller.History(r.Context(), player)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryResponseFromModel(player, entries))
}

// Countdown handles GET /api/v1/players/countdown as a server-sent event
// stream: a tick per second while locked, then a final open event.
func (h *DrawHandler) Countdown(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.controller.Countdown(r.Context(), request.PlayerFromQuery(r))
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sse.Serve(w, r, statuses, countdownEvent)
}

func countdownEvent(s model.LockStatus) sse.Event {
	name := EventTick
	if !s.IsLocked() {
		name = EventOpen
	}
	data, _ := json.Marshal(response.LockFromModel(s))
	return sse.Event{Name: name, Data: string(data)}
}
