// models/user.go
package models

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Nickname     string  `gorm:"not null;size:50" json:"nickname"`
	ProfileImage string  `json:"profile_image"`
	Gender       string  `gorm:"size:10" json:"gender,omitempty"`
	BirthYear    int     `json:"birth_year,omitempty"`
	Coin         int     `gorm:"default:0" json:"coin"`
	DeviceToken  *string `gorm:"size:255" json:"-"` // nil when no device is registered

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Crews []UserCrew `gorm:"foreignKey:UserID" json:"crews,omitempty"`
}

// HasDevice reports whether the user registered a push target.
func (u *User) HasDevice() bool {
	return u.DeviceToken != nil && *u.DeviceToken != ""
}
