// handlers/notifications.go - Notification HTTP Handlers
package handlers

import (
	"crewfit/middleware"
	"crewfit/models"
	"crewfit/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ListNotifications returns the caller's notifications, newest first
// GET /api/v1/notifications
func ListNotifications(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifications, err := notificationService.ListNotifications(c.UserContext(), userID)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, notifications)
}

// UpdateNotificationStatus
// PATCH /api/v1/notifications/:notification_id/status
func UpdateNotificationStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	notificationID, err := paramID(c, "notification_id")
	if err != nil {
		return err
	}

	var req struct {
		Status models.NotificationStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := notificationService.UpdateNotificationStatus(c.UserContext(), userID, notificationID, req.Status)
	if err != nil {
		return serviceError(err)
	}
	return utils.Success(c, resp)
}

type notificationTarget struct {
	UserID   uint `json:"user_id"`
	BattleID uint `json:"battle_id"`
}

// targetUser defaults the recipient to the caller. Only admins may address someone else.
func targetUser(c *fiber.Ctx, req *notificationTarget) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	if req.UserID == 0 {
		req.UserID = userID
		return nil
	}
	if req.UserID != userID && !middleware.IsAdmin(c) {
		return fiber.NewError(fiber.StatusForbidden, "Only admins can notify other users")
	}
	return nil
}

// CreateSurveyNotification
// POST /api/v1/notifications/survey
func CreateSurveyNotification(c *fiber.Ctx) error {
	var req notificationTarget
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := targetUser(c, &req); err != nil {
		return err
	}

	notification, err := notificationService.CreateBodySurveyNotification(c.UserContext(), req.UserID)
	if err != nil {
		if notification != nil {
			log.Warn().Err(err).Uint("notification_id", notification.ID).Msg("notification stored but push failed")
		}
		return serviceError(err)
	}
	return utils.Created(c, notification)
}

// CreateBattleNotification
// POST /api/v1/notifications/battle
func CreateBattleNotification(c *fiber.Ctx) error {
	var req notificationTarget
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.BattleID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "battle_id is required")
	}
	if err := targetUser(c, &req); err != nil {
		return err
	}

	notification, err := notificationService.CreateBattleNotification(c.UserContext(), req.UserID, req.BattleID)
	if err != nil {
		if notification != nil {
			log.Warn().Err(err).Uint("notification_id", notification.ID).Msg("notification stored but push failed")
		}
		return serviceError(err)
	}
	return utils.Created(c, notification)
}

// RegisterDeviceToken stores (or clears, with an empty token) the caller's push target
// PUT /api/v1/users/device-token
func RegisterDeviceToken(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := notificationService.RegisterDeviceToken(c.UserContext(), userID, req.Token); err != nil {
		return serviceError(err)
	}
	return utils.Success(c, fiber.Map{"registered": req.Token != ""})
}
