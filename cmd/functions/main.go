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
	"github.com/frontdesigner/api/internal/functions"
	"github.com/frontdesigner/api/internal/generation"
	"github.com/frontdesigner/api/internal/logger"
	"github.com/frontdesigner/api/internal/models"
	"github.com/frontdesigner/api/internal/provider"
	"go.uber.org/zap"
)

// Runs the serverless functions locally, e.g. behind `netlify dev`.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	dispatcher := generation.NewDispatcher(provider.NewRegistry(cfg.ProviderConfig()), cfg.DispatcherConfig(), zl)
	features := models.NewFeatures(dispatcher.Enabled, true)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      functions.NewMux(dispatcher, features, zl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zl.Info("serving functions", zap.String("port", cfg.Port), zap.String("base_path", functions.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start functions server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("functions server forced to shutdown", zap.Error(err))
	}
}
