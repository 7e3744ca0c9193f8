package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classscore-api/internal/middleware"
	"github.com/noah-isme/classscore-api/internal/service"
	"github.com/noah-isme/classscore-api/internal/utils"
)

// principalFromContext rebuilds the service principal from the locals set
// by the JWT middleware.
func principalFromContext(c *fiber.Ctx) service.Principal {
	id, _ := c.Locals(middleware.LocalPrincipalID).(uint)
	role, _ := c.Locals(middleware.LocalPrincipalKind).(string)

	if role == middleware.RoleManager {
		return service.Principal{Kind: service.PrincipalManager, ManagerID: id}
	}
	return service.Principal{Kind: service.PrincipalTeacher, UserID: id}
}

// userIDFromContext returns the teacher id for teacher-only routes.
func userIDFromContext(c *fiber.Ctx) uint {
	if id, ok := c.Locals(middleware.LocalPrincipalID).(uint); ok {
		return id
	}
	return 0
}

func parseIDParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(parsed), nil
}

func parseQueryID(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fiber.ErrBadRequest
	}
	return uint(parsed), nil
}

// respondError translates domain outcomes into HTTP statuses. Absent and
// not-owned resources share 404; only unexpected failures are logged as
// errors.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed: "+validationErrs.Error())
	}

	switch {
	case errors.Is(err, service.ErrCredentialsInvalid):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrClassroomNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrRuleNotFound),
		errors.Is(err, service.ErrManagerNotFound),
		errors.Is(err, service.ErrShareNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrRuleNotAllowed),
		errors.Is(err, service.ErrOperationNotAllow):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrStudentExists),
		errors.Is(err, service.ErrManagerExists):
		return utils.SendError(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, service.ErrDefaultClassroom),
		errors.Is(err, service.ErrPeriodInvalid),
		errors.Is(err, service.ErrDateInvalid),
		errors.Is(err, service.ErrRuleNotInClass),
		errors.Is(err, service.ErrNothingToApply):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	logger.Error().Err(err).Str("path", c.Path()).Msg("unexpected error")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}
