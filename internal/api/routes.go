package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/wittyweekly/wire/internal/config"
	"github.com/wittyweekly/wire/internal/middleware"
	"github.com/wittyweekly/wire/internal/store"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, cfg *config.Config, editionStore *store.Store, generator Generator) {
	handlers := NewHandlers(cfg, editionStore, generator)

	// Middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	// API group with versioning
	api := app.Group("/api/v1")

	// Health check endpoint
	api.Get("/health", handlers.HealthCheck)

	// Reference catalog
	catalog := api.Group("/catalog")
	{
		catalog.Get("/topics", handlers.GetTopics)
		catalog.Get("/sources", handlers.GetSources)
	}

	// Newsletter endpoints
	newsletters := api.Group("/newsletters")
	{
		newsletters.Post("", handlers.GenerateNewsletter)
		newsletters.Get("", handlers.ListNewsletters)
		newsletters.Get("/:id", handlers.GetNewsletter)
		newsletters.Post("/:id/send", handlers.SendNewsletter)
	}

	// Delivery schedule capture
	api.Post("/schedule", handlers.CaptureSchedule)

	// Admin endpoints
	admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminAPIKey))
	{
		admin.Delete("/newsletters", handlers.ClearNewsletters)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
