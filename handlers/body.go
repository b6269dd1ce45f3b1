// handlers/body.go - Body survey HTTP Handlers
package handlers

import (
	"crewfit/middleware"
	"crewfit/services"
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
)

// RecordBodySurvey
// POST /api/v1/users/body
func RecordBodySurvey(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req services.BodySurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	history, err := bodyService.RecordSurvey(userID, req)
	if err != nil {
		return serviceError(err)
	}
	return utils.Created(c, history)
}

// ListBodySurveys
// GET /api/v1/users/body
func ListBodySurveys(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	histories, err := bodyService.ListSurveys(userID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, histories)
}
