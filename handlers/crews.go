// handlers/crews.go - Crew HTTP Handlers
package handlers

import (
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
)

const maxRankingLimit = 100

// GetCrewDetail
// GET /api/v1/crew/:crew_id/detail
func GetCrewDetail(c *fiber.Ctx) error {
	crewID, err := paramID(c, "crew_id")
	if err != nil {
		return err
	}

	detail, err := crewService.GetCrewDetail(c.UserContext(), crewID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, detail)
}

// GetCrewMemberRanking ranks members by exercise time this week
// GET /api/v1/crew/:crew_id/ranking
func GetCrewMemberRanking(c *fiber.Ctx) error {
	crewID, err := paramID(c, "crew_id")
	if err != nil {
		return err
	}

	members, err := crewService.GetCrewMemberRanking(c.UserContext(), crewID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, members)
}

// GetCrewRankingByExercise
// GET /api/v1/crew/ranking/:exercise_id?limit=
func GetCrewRankingByExercise(c *fiber.Ctx) error {
	exerciseID, err := paramID(c, "exercise_id")
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > maxRankingLimit {
		limit = 20
	}

	entries, err := crewService.GetCrewRankingByExercise(c.UserContext(), exerciseID, limit)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, entries)
}
