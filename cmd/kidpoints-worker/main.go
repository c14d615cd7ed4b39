package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kidpoints/internal/amqp"
	"kidpoints/internal/backend"
	"kidpoints/internal/config"
	applog "kidpoints/internal/log"
	"kidpoints/internal/storage"
	"kidpoints/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("Worker requires AMQP_URL")
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open local event store",
			applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheetsClient, err := backend.NewFactory(cfg, logger.Logger).NewSheetsClient(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}

	syncWorker := worker.NewSyncWorker(repo, sheetsClient)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.Consume(ctx, syncWorker.HandleSyncMessage)
	})
	g.Go(func() error {
		<-ctx.Done()
		// Closing the connection unblocks the consumer's delivery loop.
		return amqpClient.Close()
	})

	logger.Info("Worker started",
		"queue", cfg.AMQPQueue, "exchange", cfg.AMQPExchange, "db_path", cfg.SQLiteDBPath)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
