package admin

import (
	"crewfit/services"
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var battleScheduler *services.BattleScheduler

// InitBattleAdmin hands the running scheduler to the admin endpoints.
func InitBattleAdmin(scheduler *services.BattleScheduler) {
	battleScheduler = scheduler
}

// RunBattles finishes the current round and pairs crews for the next one, right now
// POST /api/v1/admin/battles/run
func RunBattles(c *fiber.Ctx) error {
	if battleScheduler == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Service unavailable")
	}

	summary, err := battleScheduler.RunOnce(c.UserContext())
	if err != nil {
		return err
	}

	log.Info().
		Int("finished", len(summary.Finished)).
		Int("started", len(summary.Started)).
		Msg("battle round triggered manually")
	return utils.Success(c, summary)
}

// GetLastBattleRun
// GET /api/v1/admin/battles/last-run
func GetLastBattleRun(c *fiber.Ctx) error {
	if battleScheduler == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Service unavailable")
	}

	last := battleScheduler.LastRun()
	if last == nil {
		return fiber.NewError(fiber.StatusNotFound, "No battle round has run yet")
	}
	return utils.Success(c, last)
}
