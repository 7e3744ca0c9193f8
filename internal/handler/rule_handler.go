package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// RuleHandler exposes scoring-rule CRUD and cross-classroom import.
type RuleHandler struct {
	service service.RuleService
	logger  zerolog.Logger
}

// NewRuleHandler constructs a rule handler.
func NewRuleHandler(service service.RuleService, logger zerolog.Logger) *RuleHandler {
	return &RuleHandler{
		service: service,
		logger:  logger.With().Str("component", "rule_handler").Logger(),
	}
}

// Register wires the rule routes.
func (h *RuleHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
	router.Post("/import", h.importRules)
}

func (h *RuleHandler) list(c *fiber.Ctx) error {
	classroomID, err := parseQueryID(c, "classroomId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	result, err := h.service.List(c.Context(), userIDFromContext(c), classroomID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "rules retrieved", result)
}

func (h *RuleHandler) create(c *fiber.Ctx) error {
	var payload dto.RuleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "rule created", result)
}

func (h *RuleHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	var payload dto.RuleUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "rule updated", result)
}

func (h *RuleHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid rule id")
	}

	if err := h.service.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "rule deleted", nil)
}

func (h *RuleHandler) importRules(c *fiber.Ctx) error {
	var payload dto.RuleImportRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Import(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "rules imported", result)
}
