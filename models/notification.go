// models/notification.go - In-app notifications
package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeSurvey      NotificationType = "SURVEY"
	NotificationTypeBattleStart NotificationType = "BATTLE_START"
	NotificationTypeBattleEnd   NotificationType = "BATTLE_END"
)

type NotificationStatus string

const (
	NotificationStatusUnread NotificationStatus = "UNREAD"
	NotificationStatusRead   NotificationStatus = "READ"
)

// Valid reports whether s is one of the enumerated statuses.
func (s NotificationStatus) Valid() bool {
	return s == NotificationStatusUnread || s == NotificationStatusRead
}

// Notification is owned by a user and carries an optional free-form payload,
// e.g. {"battleId": 12} or {"lastSurveyedDate": null}.
type Notification struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	NotificationType   NotificationType   `json:"notification_type" gorm:"not null;size:30"`
	NotificationStatus NotificationStatus `json:"notification_status" gorm:"not null;default:'UNREAD';size:10"`
	Content            string             `json:"content" gorm:"type:text"`
	UserID             uint               `json:"user_id" gorm:"not null;index"`
	AdditionalData     datatypes.JSONMap  `json:"additional_data,omitempty" gorm:"type:jsonb"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
