package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frontdesigner/api/internal/config"
	"github.com/frontdesigner/api/internal/database"
	"github.com/frontdesigner/api/internal/deploy"
	"github.com/frontdesigner/api/internal/enhance"
	"github.com/frontdesigner/api/internal/eventbus"
	"github.com/frontdesigner/api/internal/generation"
	"github.com/frontdesigner/api/internal/handlers"
	"github.com/frontdesigner/api/internal/logger"
	"github.com/frontdesigner/api/internal/middleware"
	"github.com/frontdesigner/api/internal/models"
	"github.com/frontdesigner/api/internal/provider"
	"github.com/frontdesigner/api/internal/server"
	"github.com/frontdesigner/api/internal/telemetry"
	"github.com/frontdesigner/api/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Frontend Designer API
// @version 2.0.0
// @description Generates single-file HTML pages from prompts with Claude, Mistral or Gemini.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("frontend designer API starting...",
		zap.String("version", models.Version),
		zap.String("environment", cfg.Environment),
	)

	shutdownTelemetry, err := telemetry.InitTracer(ctx, "frontdesigner-api", models.Version, cfg.OTLPEndpoint)
	if err != nil {
		// the API works without a collector
		zl.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(context.Background()); err != nil {
				zl.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	var events eventbus.Publisher = eventbus.NopPublisher{}
	if cfg.NATSURL != "" {
		nc, err := eventbus.Connect(cfg.NATSURL, zl)
		if err != nil {
			zl.Error("failed to connect to NATS, events disabled", zap.Error(err))
		} else {
			defer nc.Close()
			events = nc
			zl.Info("connected to NATS")
		}
	}

	// a nil interface, not a nil *database.Redis, when redis is off
	var redisPinger handlers.Pinger
	var limiter middleware.Limiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.PerMinute(cfg.RateLimitPerMinute)
	}
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			zl.Error("failed to connect to redis, using in-memory rate limiting", zap.Error(err))
		} else {
			defer rdb.Close()
			redisPinger = rdb
			if cfg.RateLimitPerMinute > 0 {
				limiter = middleware.NewRedisRateLimiter(rdb.Client(), cfg.RateLimitPerMinute, time.Minute)
			}
			zl.Info("connected to redis")
		}
	}

	store, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		zl.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	registry := provider.NewRegistry(cfg.ProviderConfig())
	dispatcher := generation.NewDispatcher(registry, cfg.DispatcherConfig(), zl)
	enhancer := enhance.NewEnhancer(cfg.EnhanceConfig(), zl)
	netlify := deploy.NewClient(cfg.NetlifyAPIURL, nil, zl)
	features := models.NewFeatures(dispatcher.Enabled, cfg.NetlifyAccessToken != "")

	zl.Info("integrations",
		zap.Bool("claude", features.Claude),
		zap.Bool("mistral", features.Mistral),
		zap.Bool("gemini", features.Gemini),
		zap.Bool("netlify", features.Netlify),
		zap.Bool("enhancer", enhancer.Enabled()),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.NewRouter(server.Deps{
		Logger:         zl,
		Generation:     handlers.NewGenerationHandler(dispatcher, enhancer, events, zl),
		Health:         handlers.NewHealthHandler(features, redisPinger, events),
		Project:        handlers.NewProjectHandler(netlify, cfg.NetlifyAccessToken, events, zl),
		Upload:         handlers.NewUploadHandler(store, zl),
		UploadDir:      store.Dir(),
		AllowedOrigins: cfg.AllowedOrigins(),
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Limiter:        limiter,
		ExposeErrors:   !cfg.IsProduction(),
		EnableMetrics:  true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited gracefully")
}
