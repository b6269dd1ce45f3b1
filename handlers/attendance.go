// handlers/attendance.go - Attendance HTTP Handlers
package handlers

import (
	"time"

	"crewfit/middleware"
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
)

// MarkAttendance checks the caller in for today
// POST /api/v1/users/attendance
func MarkAttendance(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	result, err := attendanceService.MarkAttendance(c.UserContext(), userID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Created(c, result)
}

// GetMonthlyAttendance defaults to the current UTC month
// GET /api/v1/users/attendance?year=&month=
func GetMonthlyAttendance(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))

	list, err := attendanceService.GetMonthlyAttendance(c.UserContext(), userID, year, month)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, list)
}
