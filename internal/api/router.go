package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/songguessr/songguessr-go/internal/api/handler"
	"github.com/songguessr/songguessr-go/internal/api/middleware"
	"github.com/songguessr/songguessr-go/internal/services/auth"
	"github.com/songguessr/songguessr-go/internal/services/catalog"
	"github.com/songguessr/songguessr-go/internal/services/selector"
	"github.com/songguessr/songguessr-go/internal/services/session"
	"github.com/songguessr/songguessr-go/internal/services/stats"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	SessionManager  *session.Manager
	SongSelector    *selector.Service
	StatsAggregator *stats.Aggregator
	CatalogService  *catalog.Service
}

// AuthPolicy is the route protection table. Routes absent from the table
// serve anonymous requests; resolved identities are injected either way.
func AuthPolicy() *middleware.Policy {
	return middleware.NewPolicy(
		middleware.Rule{Pattern: "/api/v1/auth/me", Methods: []string{http.MethodGet}},
		middleware.Rule{Pattern: "/api/v1/auth/validate", Methods: []string{http.MethodGet}},
		middleware.Rule{Pattern: "/api/v1/game/start", Methods: []string{http.MethodPost}},
		middleware.Rule{Pattern: "/api/v1/me/game-history", Methods: []string{http.MethodGet}},
		middleware.Rule{Pattern: "/api/v1/me/recalculate-stats", Methods: []string{http.MethodPost}},
		middleware.Rule{Pattern: "/api/v1/playlists", Methods: []string{http.MethodPost}},
		middleware.Rule{Pattern: "/api/v1/songs", Methods: []string{http.MethodPost}},
		middleware.Rule{Pattern: "/api/v1/songs/*", Methods: []string{http.MethodPatch}},
	)
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.SessionManager, cfg.SongSelector, cfg.CatalogService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)
	statsHandler := handler.NewStatsHandler(cfg.StatsAggregator, cfg.AuthService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService, AuthPolicy())
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(authMiddleware)

	// Auth routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/auth/validate", authHandler.Validate).Methods(http.MethodGet)

	// Game routes (guest variants take no credential)
	api.HandleFunc("/game/guest/start", gameHandler.StartGuest).Methods(http.MethodPost)
	api.HandleFunc("/game/guest/next-song", gameHandler.NextSongGuest).Methods(http.MethodPost)
	api.HandleFunc("/game/start", gameHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/game/sessions/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/game/sessions/{id}/advance", gameHandler.Advance).Methods(http.MethodPost)

	// Stats routes
	api.HandleFunc("/me/game-history", statsHandler.History).Methods(http.MethodGet)
	api.HandleFunc("/me/recalculate-stats", statsHandler.Recalculate).Methods(http.MethodPost)

	// Catalog routes
	api.HandleFunc("/playlists", catalogHandler.ListPlaylists).Methods(http.MethodGet)
	api.HandleFunc("/playlists", catalogHandler.CreatePlaylist).Methods(http.MethodPost)
	api.HandleFunc("/playlists/{id}", catalogHandler.GetPlaylist).Methods(http.MethodGet)
	api.HandleFunc("/songs", catalogHandler.CreateSong).Methods(http.MethodPost)
	api.HandleFunc("/songs/{id}", catalogHandler.GetSong).Methods(http.MethodGet)
	api.HandleFunc("/songs/{id}", catalogHandler.UpdateSong).Methods(http.MethodPatch)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
