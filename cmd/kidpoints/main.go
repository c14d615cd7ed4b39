package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kidpoints/assets"
	"kidpoints/internal/alexa"
	"kidpoints/internal/backend"
	"kidpoints/internal/config"
	apphttp "kidpoints/internal/http"
	applog "kidpoints/internal/log"
	"kidpoints/internal/service"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(cfg, logger.Logger).CreateBackend(context.Background())
	if err != nil {
		logger.Error("Failed to initialize backend",
			applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Failed to resolve family timezone",
			applog.FieldError, err, "timezone", cfg.FamilyTimezone)
		os.Exit(1)
	}

	svc := service.New(result.Store, cfg.FamilyTabPrefix, loc)
	handler := alexa.NewHandler(svc,
		logger.WithComponent(applog.ComponentAlexa),
		json.RawMessage(assets.TrendDocument))

	srv := apphttp.NewServer(":"+cfg.Port, handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting kidpoints server",
		"port", cfg.Port, "backend", cfg.DataBackend, "timezone", cfg.FamilyTimezone)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
