package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// ScoreHandler exposes the daily score ledger. Toggle and adjust accept
// both teacher and manager principals; the rest is teacher only.
type ScoreHandler struct {
	service service.ScoreService
	logger  zerolog.Logger
}

// NewScoreHandler constructs a score handler.
func NewScoreHandler(service service.ScoreService, logger zerolog.Logger) *ScoreHandler {
	return &ScoreHandler{
		service: service,
		logger:  logger.With().Str("component", "score_handler").Logger(),
	}
}

// Register wires the routes shared by teachers and managers.
func (h *ScoreHandler) Register(router fiber.Router) {
	router.Post("/toggle", h.toggle)
	router.Post("/adjust", h.adjust)
}

// RegisterTeacherOnly wires the ledger routes reserved for teachers.
func (h *ScoreHandler) RegisterTeacherOnly(router fiber.Router) {
	router.Get("/date/:date", h.listByDate)
	router.Post("/bulk-apply", h.bulkApply)
	router.Post("/bulk-clear", h.bulkClear)
}

func (h *ScoreHandler) toggle(c *fiber.Ctx) error {
	var payload dto.ScoreToggleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Toggle(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "score toggled", result)
}

func (h *ScoreHandler) adjust(c *fiber.Ctx) error {
	var payload dto.ScoreAdjustRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Adjust(c.Context(), principalFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "score adjusted", result)
}

func (h *ScoreHandler) listByDate(c *fiber.Ctx) error {
	result, err := h.service.ListByDate(c.Context(), userIDFromContext(c), c.Params("date"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "scores retrieved", result)
}

func (h *ScoreHandler) bulkApply(c *fiber.Ctx) error {
	var payload dto.BulkScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.BulkApply(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "bulk apply complete", result)
}

func (h *ScoreHandler) bulkClear(c *fiber.Ctx) error {
	var payload dto.BulkScoreRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.BulkClear(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "bulk clear complete", result)
}
