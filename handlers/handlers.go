// handlers/handlers.go - service wiring and request helpers
package handlers

import (
	"errors"
	"strconv"
	"time"

	"crewfit/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var (
	battleService       *services.BattleService
	crewService         *services.CrewService
	notificationService *services.NotificationService
	attendanceService   *services.AttendanceService
	bodyService         *services.BodyService
	liveFeedInterval    = 5 * time.Second
)

// Services are the domain services the HTTP layer delegates to.
type Services struct {
	Battles          *services.BattleService
	Crews            *services.CrewService
	Notifications    *services.NotificationService
	Attendance       *services.AttendanceService
	Bodies           *services.BodyService
	LiveFeedInterval time.Duration
}

// InitHandlers must run before the routes are served.
func InitHandlers(s Services) {
	battleService = s.Battles
	crewService = s.Crews
	notificationService = s.Notifications
	attendanceService = s.Attendance
	bodyService = s.Bodies
	if s.LiveFeedInterval > 0 {
		liveFeedInterval = s.LiveFeedInterval
	}
}

// NewErrorHandler renders every error in the {success, error} envelope.
// In production, 500 details are replaced with a generic message.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
			if production {
				message = "An error occurred. Please try again later."
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}

// serviceError maps domain failures to HTTP statuses.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrBattleNotFound),
		errors.Is(err, services.ErrCrewNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCrewNotParticipant):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyAttended),
		errors.Is(err, services.ErrBattleNotStarted):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidMonth),
		errors.Is(err, services.ErrInvalidMeasurement):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrPushInterrupted),
		errors.Is(err, services.ErrPushFailed):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return err
	}
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// HealthCheck reports liveness.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
