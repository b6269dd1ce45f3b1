// services/notification_service.go - Notification construction and push dispatch
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"crewfit/metrics"
	"crewfit/models"
	"crewfit/push"
	"crewfit/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// StatusUpdateResponse confirms a status transition.
type StatusUpdateResponse struct {
	NotificationID uint                      `json:"notification_id"`
	PreviousStatus models.NotificationStatus `json:"previous_status"`
	CurrentStatus  models.NotificationStatus `json:"current_status"`
}

// lookup is the outcome of a best-effort enrichment read.
type lookup[T any] struct {
	value   T
	present bool
}

func found[T any](v T) lookup[T] {
	return lookup[T]{value: v, present: true}
}

func absent[T any]() lookup[T] {
	return lookup[T]{}
}

// orNil returns the value, or nil so the payload key serializes as null.
func (l lookup[T]) orNil() interface{} {
	if !l.present {
		return nil
	}
	return l.value
}

type NotificationService struct {
	notifications NotificationStore
	users         UserStore
	bodies        BodyHistoryStore
	battles       BattleStore
	sender        push.Sender
}

func NewNotificationService(notifications NotificationStore, users UserStore, bodies BodyHistoryStore, battles BattleStore, sender push.Sender) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		bodies:        bodies,
		battles:       battles,
		sender:        sender,
	}
}

// CreateBodySurveyNotification stores a SURVEY notification carrying the date of the
// user's last body survey (null when unknown), then pushes it to the user's device.
func (s *NotificationService) CreateBodySurveyNotification(ctx context.Context, userID uint) (*models.Notification, error) {
	lastSurveyed := s.lastSurveyedDate(userID)

	notification := newNotification(models.NotificationTypeSurvey, userID, datatypes.JSONMap{
		"lastSurveyedDate": lastSurveyed.orNil(),
	})
	if err := s.save(ctx, notification); err != nil {
		return nil, err
	}

	if err := s.sendPush(ctx, userID, models.NotificationTypeSurvey, nil); err != nil {
		return notification, err
	}
	return notification, nil
}

// CreateBattleNotification stores a BATTLE_START or BATTLE_END notification depending on
// the battle's current status, then pushes it.
func (s *NotificationService) CreateBattleNotification(ctx context.Context, userID, battleID uint) (*models.Notification, error) {
	battle, err := s.battles.FindByID(ctx, battleID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find battle %d: %w", battleID, err)
	}

	notificationType := models.BattleNotificationType(battle.Status)
	notification := newNotification(notificationType, userID, datatypes.JSONMap{
		"battleId": battleID,
	})
	if err := s.save(ctx, notification); err != nil {
		return nil, err
	}

	data := map[string]string{"battleId": fmt.Sprint(battleID)}
	if err := s.sendPush(ctx, userID, notificationType, data); err != nil {
		return notification, err
	}
	return notification, nil
}

// UpdateNotificationStatus moves one of userID's notifications to status and reports the status it replaced.
// Notifications owned by someone else are reported as not found.
func (s *NotificationService) UpdateNotificationStatus(ctx context.Context, userID, notificationID uint, status models.NotificationStatus) (*StatusUpdateResponse, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	notification, err := s.notifications.FindByID(ctx, notificationID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find notification %d: %w", notificationID, err)
	}
	if notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	previous, err := s.notifications.UpdateStatus(ctx, notificationID, status)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update notification %d: %w", notificationID, err)
	}

	return &StatusUpdateResponse{
		NotificationID: notificationID,
		PreviousStatus: previous,
		CurrentStatus:  status,
	}, nil
}

// ListNotifications returns the user's inbox, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint) ([]models.Notification, error) {
	notifications, err := s.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications for user %d: %w", userID, err)
	}
	return notifications, nil
}

// RegisterDeviceToken stores the push target for userID. An empty token unregisters the device.
func (s *NotificationService) RegisterDeviceToken(ctx context.Context, userID uint, token string) error {
	var value *string
	if token != "" {
		value = &token
	}

	err := s.users.UpdateDeviceToken(ctx, userID, value)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func newNotification(t models.NotificationType, userID uint, data datatypes.JSONMap) *models.Notification {
	return &models.Notification{
		NotificationType:   t,
		NotificationStatus: models.NotificationStatusUnread,
		Content:            models.MessageFor(t),
		UserID:             userID,
		AdditionalData:     data,
	}
}

func (s *NotificationService) save(ctx context.Context, notification *models.Notification) error {
	if err := s.notifications.Create(ctx, notification); err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	metrics.RecordNotificationCreated(string(notification.NotificationType))
	return nil
}

// lastSurveyedDate never fails: a missing snapshot and a broken store both yield absent.
func (s *NotificationService) lastSurveyedDate(userID uint) lookup[time.Time] {
	latest, err := s.bodies.FindLatestByUser(userID)
	switch {
	case err == nil:
		return found(latest.CreatedAt)
	case errors.Is(err, repository.ErrNotFound):
		log.Debug().Uint("user_id", userID).Msg("no body survey recorded yet")
		return absent[time.Time]()
	default:
		log.Warn().Err(err).Uint("user_id", userID).Msg("body history lookup failed; continuing without lastSurveyedDate")
		return absent[time.Time]()
	}
}

// sendPush delivers to the user's device when one is registered.
func (s *NotificationService) sendPush(ctx context.Context, userID uint, t models.NotificationType, data map[string]string) error {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user %d: %w", userID, err)
	}

	if !user.HasDevice() {
		metrics.RecordPushDelivery("skipped")
		return nil
	}

	err = s.sender.Send(ctx, push.Message{
		Token: *user.DeviceToken,
		Title: models.TitleFor(t),
		Body:  models.MessageFor(t),
		Data:  data,
	})
	if err == nil {
		metrics.RecordPushDelivery("sent")
		return nil
	}

	metrics.RecordPushDelivery("failed")
	log.Warn().Err(err).Str("sender", s.sender.GetType()).Uint("user_id", userID).Msg("push delivery failed")
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrPushInterrupted, err)
	}
	return fmt.Errorf("%w: %v", ErrPushFailed, err)
}
