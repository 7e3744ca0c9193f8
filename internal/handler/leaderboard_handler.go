package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/dto"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// LeaderboardHandler exposes the authenticated leaderboard view.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs a leaderboard handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register wires the leaderboard route.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("/", h.aggregate)
}

func (h *LeaderboardHandler) aggregate(c *fiber.Ctx) error {
	classroomID, err := parseQueryID(c, "classroomId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid classroom id")
	}

	query := dto.LeaderboardQuery{
		Period:    c.Query("period"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	result, err := h.service.AggregateFor(c.Context(), principalFromContext(c), classroomID, query)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "leaderboard retrieved", result)
}
