package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/songguessr/songguessr-go/internal/api/middleware"
	"github.com/songguessr/songguessr-go/internal/api/request"
	"github.com/songguessr/songguessr-go/internal/api/response"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/services/catalog"
	"github.com/songguessr/songguessr-go/internal/services/selector"
	"github.com/songguessr/songguessr-go/internal/services/session"
)

// GameHandler handles session and prompt endpoints
type GameHandler struct {
	sessionManager session.ManagerInterface
	songSelector   selector.ServiceInterface
	catalogService *catalog.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	sessionManager session.ManagerInterface,
	songSelector selector.ServiceInterface,
	catalogService *catalog.Service,
) *GameHandler {
	return &GameHandler{
		sessionManager: sessionManager,
		songSelector:   songSelector,
		catalogService: catalogService,
	}
}

// StartGuest handles POST /api/v1/game/guest/start
func (h *GameHandler) StartGuest(w http.ResponseWriter, r *http.Request) {
	h.start(w, r, "")
}

// Start handles POST /api/v1/game/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	h.start(w, r, identity.UserID)
}

func (h *GameHandler) start(w http.ResponseWriter, r *http.Request, userID model.UserID) {
	var req request.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlaylistID == "" {
		WriteError(w, NewInvalidRequestError("playlistId is required"))
		return
	}
	if req.GameMode == "" {
		WriteError(w, NewInvalidRequestError("gameMode is required"))
		return
	}

	sess, song, err := h.sessionManager.StartSession(
		r.Context(),
		model.PlaylistID(req.PlaylistID),
		model.GameMode(req.GameMode),
		req.TotalRounds,
		userID,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess, song))
}

// NextSongGuest handles POST /api/v1/game/guest/next-song.
// A standalone prompt draw outside any session, for clients that manage
// their own round state.
func (h *GameHandler) NextSongGuest(w http.ResponseWriter, r *http.Request) {
	var req request.NextSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.PlaylistID == "" {
		WriteError(w, NewInvalidRequestError("playlistId is required"))
		return
	}

	playlist, err := h.catalogService.GetPlaylist(r.Context(), model.PlaylistID(req.PlaylistID))
	if err != nil {
		WriteError(w, err)
		return
	}

	exclude := make(map[model.SongID]bool, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		exclude[model.SongID(id)] = true
	}

	song, err := h.songSelector.NextSong(r.Context(), playlist, exclude)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SongFromModel(song))
}

// Get handles GET /api/v1/game/sessions/{id}.
// Session IDs are crypto-random and act as the access capability, so
// guest sessions stay reachable without a credential.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	sess, err := h.sessionManager.GetSession(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	var song *model.Song
	if sess.CurrentSongID != "" {
		song, err = h.catalogService.GetSong(r.Context(), sess.CurrentSongID)
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess, song))
}

// Advance handles POST /api/v1/game/sessions/{id}/advance
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.AdvanceRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	sess, song, err := h.sessionManager.AdvanceRound(r.Context(), id, req.RoundScore)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(sess, song))
}
