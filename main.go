package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"catalog/internal/app"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/services"
	"catalog/pkg/logging"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "catalog")
	slog.SetDefault(logger)

	application, cleanup, err := newServer(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	defer cleanup()

	// --- Start HTTP Server ---
	logger.Info("starting server", "addr", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := application.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	logger.Info("shutting down server")

	if err := application.Shutdown(); err != nil {
		logger.Error("fiber shutdown", "error", err)
	}
	logger.Info("server gracefully stopped")
}

// newServer opens the store, runs the best-effort schema step, connects the
// optional event publisher and builds the Fiber app. Only an unusable DSN is fatal.
func newServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*fiber.App, func(), error) {
	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	database.EnsureSchema(ctx, db, logger)

	var publisher services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.RabbitMQExchange})
		if err != nil {
			logger.Warn("product events disabled", "error", err)
		} else {
			publisher = mqClient
		}
	}

	application := app.New(app.Deps{
		Config:    cfg,
		DB:        db,
		Publisher: publisher,
		Logger:    logger,
	})

	cleanup := func() {
		if mqClient != nil {
			if err := mqClient.Close(); err != nil {
				logger.Warn("close rabbitmq client", "error", err)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return application, cleanup, nil
}
