package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wittyweekly/wire/internal/ai"
	"github.com/wittyweekly/wire/internal/catalog"
	"github.com/wittyweekly/wire/internal/config"
	"github.com/wittyweekly/wire/internal/logger"
	"github.com/wittyweekly/wire/internal/middleware"
	"github.com/wittyweekly/wire/internal/models"
	"github.com/wittyweekly/wire/internal/store"
)

// retryMessage is the only failure detail the end user sees for a failed
// generation attempt, whatever the underlying cause.
const retryMessage = "Oops! Our AI editor is having a coffee break. Please try again."

// Generator abstracts the newsletter orchestrator for handler tests.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (*models.Edition, error)
}

type Handlers struct {
	config    *config.Config
	store     *store.Store
	generator Generator
	validator *middleware.Validator

	// lastSchedule is the most recent captured delivery preference. Nothing
	// executes it; it exists so the client can read back its confirmation.
	lastSchedule *models.ScheduleConfig
}

func NewHandlers(cfg *config.Config, editionStore *store.Store, generator Generator) *Handlers {
	return &Handlers{
		config:    cfg,
		store:     editionStore,
		generator: generator,
		validator: middleware.NewValidator(),
	}
}

// HealthCheck handles GET /api/v1/health
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// GetTopics handles GET /api/v1/catalog/topics
func (h *Handlers) GetTopics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"topics": catalog.Topics,
	})
}

// GetSources handles GET /api/v1/catalog/sources
func (h *Handlers) GetSources(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"sources": catalog.Sources,
	})
}

// GenerateNewsletter handles POST /api/v1/newsletters
func (h *Handlers) GenerateNewsletter(c *fiber.Ctx) error {
	log := logger.Get()

	var req models.GenerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	if len(req.Topics) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one topic must be selected",
		})
	}

	// Clients send catalog IDs; the prompt and the edition snapshot carry
	// display labels. Unknown IDs pass through as-is.
	for i, id := range req.Topics {
		req.Topics[i] = catalog.TopicLabel(id)
	}
	for i, id := range req.PreferredSources {
		req.PreferredSources[i] = catalog.SourceName(id)
	}

	edition, err := h.generator.Generate(c.Context(), req)
	if err != nil {
		// Configuration and transport failures surface identically to the
		// user; the log keeps them apart for the operator.
		if errors.Is(err, ai.ErrMissingAPIKey) {
			log.Error().Msg("Generation refused: AI API key is not configured")
		} else {
			log.Error().Err(err).Strs("topics", req.Topics).Msg("Newsletter generation failed")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": retryMessage,
		})
	}

	if err := h.store.Insert(c.Context(), edition); err != nil {
		log.Error().Err(err).Str("id", edition.ID).Msg("Failed to archive edition")
	}

	return c.Status(fiber.StatusCreated).JSON(edition)
}

// ListNewsletters handles GET /api/v1/newsletters
func (h *Handlers) ListNewsletters(c *fiber.Ctx) error {
	editions := h.store.List(c.Context())
	return c.JSON(fiber.Map{
		"total": len(editions),
		"items": editions,
	})
}

// GetNewsletter handles GET /api/v1/newsletters/:id
func (h *Handlers) GetNewsletter(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Edition ID is required",
		})
	}

	edition, err := h.store.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Edition not found",
		})
	}

	return c.JSON(edition)
}

// SendNewsletter handles POST /api/v1/newsletters/:id/send. Delivery is
// simulated; nothing leaves the building.
func (h *Handlers) SendNewsletter(c *fiber.Ctx) error {
	id := c.Params("id")

	edition, err := h.store.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Edition not found",
		})
	}

	logger.Get().Info().
		Str("id", edition.ID).
		Msg("Simulated newsletter dispatch")

	return c.JSON(fiber.Map{
		"status":  "sent",
		"message": "Your personalized newsletter has been dispatched into the ether.",
	})
}

// CaptureSchedule handles POST /api/v1/schedule. The preference is recorded
// and echoed back; no scheduler exists in this service.
func (h *Handlers) CaptureSchedule(c *fiber.Ctx) error {
	var cfg models.ScheduleConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body: " + err.Error(),
		})
	}

	if err := h.validator.Validate(cfg); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": middleware.FieldErrors(err),
		})
	}

	h.lastSchedule = &cfg

	logger.Get().Info().
		Str("frequency", cfg.Frequency).
		Str("target", cfg.Target).
		Msg("Captured delivery schedule")

	return c.JSON(fiber.Map{
		"status":   "scheduled",
		"schedule": cfg,
	})
}

// ClearNewsletters handles DELETE /api/v1/admin/newsletters
func (h *Handlers) ClearNewsletters(c *fiber.Ctx) error {
	if err := h.store.Clear(c.Context()); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to clear edition archive")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to clear archive",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "cleared",
		"message": "Edition archive emptied",
	})
}
