package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/songguessr/songguessr-go/internal/dependencies/clock"
	"github.com/songguessr/songguessr-go/internal/dependencies/random"
	"github.com/songguessr/songguessr-go/internal/services/auth"
	"github.com/songguessr/songguessr-go/internal/services/catalog"
	"github.com/songguessr/songguessr-go/internal/services/selector"
	"github.com/songguessr/songguessr-go/internal/services/session"
	"github.com/songguessr/songguessr-go/internal/services/stats"
	"github.com/songguessr/songguessr-go/internal/storage"
	"github.com/songguessr/songguessr-go/internal/storage/memory"
	redisstorage "github.com/songguessr/songguessr-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService     *auth.Service
	CatalogService  *catalog.Service
	SongSelector    *selector.Service
	StatsAggregator *stats.Aggregator
	SessionManager  *session.Manager
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// SigningKey is required for any credentialed endpoint to work.
	AuthConfig auth.Config
	// StatsConfig holds configuration for the stats aggregator (optional)
	// If zero value, defaults to stats.DefaultConfig()
	StatsConfig stats.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.AuthConfig, cfg.StatsConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	statsCfg stats.Config,
	logger *slog.Logger,
) *App {
	// Create services
	authService := auth.New(store, clk, rnd, authCfg, logger)
	catalogService := catalog.New(store, clk, rnd, logger)
	songSelector := selector.New(store, rnd, logger)
	statsAggregator := stats.New(store, clk, statsCfg, logger)
	sessionManager := session.NewManager(store, songSelector, catalogService, statsAggregator, clk, rnd, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		AuthService:     authService,
		CatalogService:  catalogService,
		SongSelector:    songSelector,
		StatsAggregator: statsAggregator,
		SessionManager:  sessionManager,
	}
}
