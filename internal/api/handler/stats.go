package handler

import (
	"net/http"
	"strconv"

	"github.com/songguessr/songguessr-go/internal/api/middleware"
	"github.com/songguessr/songguessr-go/internal/api/response"
	"github.com/songguessr/songguessr-go/internal/services/auth"
	"github.com/songguessr/songguessr-go/internal/services/stats"
)

// StatsHandler handles user statistics endpoints
type StatsHandler struct {
	statsAggregator *stats.Aggregator
	authService     *auth.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsAggregator *stats.Aggregator, authService *auth.Service) *StatsHandler {
	return &StatsHandler{
		statsAggregator: statsAggregator,
		authService:     authService,
	}
}

// History handles GET /api/v1/me/game-history
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	records, err := h.statsAggregator.History(r.Context(), identity.UserID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(records))
}

// Recalculate handles POST /api/v1/me/recalculate-stats.
// Returns the rebuilt aggregates so clients can refresh in place.
func (h *StatsHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	if err := h.statsAggregator.Recalculate(r.Context(), identity.UserID); err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.authService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}
