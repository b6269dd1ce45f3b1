package repository

import (
	"context"

	"crewfit/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

// UpdateStatus sets the status and returns the one stored immediately before.
func (r *NotificationRepository) UpdateStatus(ctx context.Context, id uint, status models.NotificationStatus) (models.NotificationStatus, error) {
	var previous models.NotificationStatus

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var notification models.Notification
		if err := tx.First(&notification, id).Error; err != nil {
			return err
		}
		previous = notification.NotificationStatus

		return tx.Model(&notification).Update("notification_status", status).Error
	})
	if err != nil {
		return "", translate(err)
	}

	return previous, nil
}
