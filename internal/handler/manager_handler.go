package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// ManagerHandler exposes student-manager account administration for teachers.
type ManagerHandler struct {
	service service.ManagerService
	logger  zerolog.Logger
}

// NewManagerHandler constructs a manager handler.
func NewManagerHandler(service service.ManagerService, logger zerolog.Logger) *ManagerHandler {
	return &ManagerHandler{
		service: service,
		logger:  logger.With().Str("component", "manager_handler").Logger(),
	}
}

// Register wires the manager routes.
func (h *ManagerHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *ManagerHandler) list(c *fiber.Ctx) error {
	classroomID, err := parseQueryID(c, "classroomId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	result, err := h.service.List(c.Context(), userIDFromContext(c), classroomID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "managers retrieved", result)
}

func (h *ManagerHandler) create(c *fiber.Ctx) error {
	var payload dto.ManagerCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "manager created", result)
}

func (h *ManagerHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid manager id")
	}

	var payload dto.ManagerUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Update(c.Context(), userIDFromContext(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "manager updated", result)
}

func (h *ManagerHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid manager id")
	}

	if err := h.service.Delete(c.Context(), userIDFromContext(c), id); err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "manager deleted", nil)
}
