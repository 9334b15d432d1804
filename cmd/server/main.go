package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/songguessr/songguessr-go/internal/api"
	"github.com/songguessr/songguessr-go/internal/factory"
	"github.com/songguessr/songguessr-go/internal/services/auth"
	"github.com/songguessr/songguessr-go/internal/services/stats"
	redisstorage "github.com/songguessr/songguessr-go/internal/storage/redis"
)

func main() {
	// Local development settings come from .env; absence is fine
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	signingKey := os.Getenv("SONGGUESSR_SIGNING_KEY")
	if signingKey == "" {
		logger.Error("SONGGUESSR_SIGNING_KEY is required")
		os.Exit(1)
	}

	authCfg := auth.DefaultConfig()
	authCfg.SigningKey = []byte(signingKey)

	statsCfg := stats.DefaultConfig()
	if raw := os.Getenv("WIN_RATIO"); raw != "" {
		ratio, err := strconv.ParseFloat(raw, 64)
		if err != nil || ratio <= 0 || ratio > 1 {
			logger.Error("WIN_RATIO must be a float in (0, 1]", slog.String("value", raw))
			os.Exit(1)
		}
		statsCfg.WinRatio = ratio
	}

	// Build factory config from environment
	cfg := factory.Config{
		AuthConfig:  authCfg,
		StatsConfig: statsCfg,
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		SessionManager:  app.SessionManager,
		SongSelector:    app.SongSelector,
		StatsAggregator: app.StatsAggregator,
		CatalogService:  app.CatalogService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			logger.Error("PORT must be an integer", slog.String("value", raw))
			os.Exit(1)
		}
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
