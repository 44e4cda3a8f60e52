package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wittyweekly/wire/internal/ai"
	"github.com/wittyweekly/wire/internal/api"
	"github.com/wittyweekly/wire/internal/config"
	"github.com/wittyweekly/wire/internal/logger"
	"github.com/wittyweekly/wire/internal/middleware"
	"github.com/wittyweekly/wire/internal/newsletter"
	"github.com/wittyweekly/wire/internal/store"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Msg("Starting application...")

	// Pick the archive persistence backend
	persistence, closeFn, err := buildPersistence(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.ArchiveBackend).Msg("Failed to initialize archive persistence")
	}
	if closeFn != nil {
		defer closeFn()
	}

	editionStore := store.NewStore(context.Background(), persistence)

	// Wire the generation pipeline
	gemini := ai.NewGeminiClient(cfg.AIApiKey, cfg.AIModel, cfg.AITemperature, time.Duration(cfg.AITimeout)*time.Second)
	generator := newsletter.NewGenerator(gemini, newsletter.NewFixtureInbox())

	if cfg.AIApiKey == "" {
		log.Warn().Msg("AI_API_KEY not set, generation requests will fail")
	}

	// Create Fiber app with custom config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Serve the SPA shell directly
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendFile("./web/static/index.html")
	})

	// Setup API routes
	api.SetupRoutes(app, cfg, editionStore, generator)

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func buildPersistence(cfg *config.Config) (store.Persistence, func(), error) {
	switch cfg.ArchiveBackend {
	case "redis":
		p, err := store.NewRedisPersistence(cfg.RedisURL, cfg.ArchiveKey)
		if err != nil {
			return nil, nil, err
		}
		return p, func() {
			if err := p.Close(); err != nil {
				logger.Get().Error().Err(err).Msg("Error closing Redis client")
			}
		}, nil
	case "s3":
		p, err := store.NewS3Persistence(context.Background(), store.S3Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
			Key:       cfg.ArchiveKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, nil, nil
	default:
		p, err := store.NewFilePersistence(cfg.ArchivePath)
		if err != nil {
			return nil, nil, err
		}
		return p, nil, nil
	}
}
