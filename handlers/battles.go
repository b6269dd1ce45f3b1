// handlers/battles.go - Battle HTTP Handlers
package handlers

import (
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
)

// GetBattleStatus returns the crew's live battle, or the "No Battle" view
// GET /api/v1/crew/:crew_id/battle
func GetBattleStatus(c *fiber.Ctx) error {
	crewID, err := paramID(c, "crew_id")
	if err != nil {
		return err
	}

	status, err := battleService.GetBattleStatus(c.UserContext(), crewID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, status)
}

// GetBattleMemberRanking ranks both crews' members for a battle
// GET /api/v1/battles/:battle_id/ranking?crew_id=
func GetBattleMemberRanking(c *fiber.Ctx) error {
	battleID, err := paramID(c, "battle_id")
	if err != nil {
		return err
	}
	crewID, err := queryID(c, "crew_id")
	if err != nil {
		return err
	}

	ranking, err := battleService.GetBattleMemberRanking(c.UserContext(), battleID, crewID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, ranking)
}

// GetBattleStats returns finished and won battle counts
// GET /api/v1/crew/:crew_id/battle/stats
func GetBattleStats(c *fiber.Ctx) error {
	crewID, err := paramID(c, "crew_id")
	if err != nil {
		return err
	}

	stats, err := battleService.GetBattleStats(c.UserContext(), crewID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, stats)
}
