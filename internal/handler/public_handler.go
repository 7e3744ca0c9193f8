package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// PublicHandler serves the unauthenticated share-token leaderboard.
type PublicHandler struct {
	service service.PublicService
	logger  zerolog.Logger
}

// NewPublicHandler constructs a public handler.
func NewPublicHandler(service service.PublicService, logger zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		service: service,
		logger:  logger.With().Str("component", "public_handler").Logger(),
	}
}

// Register wires the public routes.
func (h *PublicHandler) Register(router fiber.Router) {
	router.Get("/leaderboard/:token", h.leaderboard)
}

func (h *PublicHandler) leaderboard(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Params("token"))
	if token == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "missing share token")
	}

	query := dto.LeaderboardQuery{
		Period:    c.Query("period"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	result, err := h.service.Leaderboard(c.Context(), token, query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "leaderboard retrieved", result)
}
