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
)

// CatalogHandler handles playlist and song endpoints
type CatalogHandler struct {
	catalogService *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListPlaylists handles GET /api/v1/playlists
func (h *CatalogHandler) ListPlaylists(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.catalogService.ListPlaylists(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.PlaylistsResponse{Playlists: make([]response.Playlist, len(playlists))}
	for i, p := range playlists {
		resp.Playlists[i] = response.PlaylistFromModel(p)
	}
	response.JSON(w, http.StatusOK, resp)
}

// CreatePlaylist handles POST /api/v1/playlists
func (h *CatalogHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	var req request.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	songIDs := make([]model.SongID, len(req.SongIDs))
	for i, id := range req.SongIDs {
		songIDs[i] = model.SongID(id)
	}

	playlist, err := h.catalogService.CreatePlaylist(r.Context(), req.Name, req.Description, songIDs, identity.UserID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlaylistFromModel(playlist))
}

// GetPlaylist handles GET /api/v1/playlists/{id}
func (h *CatalogHandler) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	id := model.PlaylistID(mux.Vars(r)["id"])

	playlist, err := h.catalogService.GetPlaylist(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlaylistFromModel(playlist))
}

// CreateSong handles POST /api/v1/songs
func (h *CatalogHandler) CreateSong(w http.ResponseWriter, r *http.Request) {
	middleware.MustGetIdentity(r.Context())

	var req request.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Title == "" || req.Artist == "" || req.AudioURL == "" {
		WriteError(w, NewInvalidRequestError("title, artist and audioUrl are required"))
		return
	}

	song, err := h.catalogService.CreateSong(r.Context(), &model.Song{
		Title:           req.Title,
		Artist:          req.Artist,
		AudioURL:        req.AudioURL,
		ExternalTrackID: req.ExternalTrackID,
		StartOffset:     req.StartOffset,
		Difficulty:      model.Difficulty(req.Difficulty),
		Genre:           req.Genre,
		Mood:            req.Mood,
		Energy:          req.Energy,
		Popularity:      req.Popularity,
		ReleaseYear:     req.ReleaseYear,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SongFromModel(song))
}

// GetSong handles GET /api/v1/songs/{id}
func (h *CatalogHandler) GetSong(w http.ResponseWriter, r *http.Request) {
	id := model.SongID(mux.Vars(r)["id"])

	song, err := h.catalogService.GetSong(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SongFromModel(song))
}

// UpdateSong handles PATCH /api/v1/songs/{id}
func (h *CatalogHandler) UpdateSong(w http.ResponseWriter, r *http.Request) {
	middleware.MustGetIdentity(r.Context())
	id := model.SongID(mux.Vars(r)["id"])

	var req request.UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	patch := catalog.SongPatch{
		Title:       req.Title,
		Artist:      req.Artist,
		StartOffset: req.StartOffset,
		Active:      req.Active,
		Genre:       req.Genre,
		Mood:        req.Mood,
		Energy:      req.Energy,
		Popularity:  req.Popularity,
		ReleaseYear: req.ReleaseYear,
	}
	if req.Difficulty != nil {
		difficulty := model.Difficulty(*req.Difficulty)
		patch.Difficulty = &difficulty
	}

	song, err := h.catalogService.UpdateSong(r.Context(), id, patch)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SongFromModel(song))
}
