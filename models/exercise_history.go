// models/exercise_history.go
package models

import "time"

// ExerciseHistory is one recorded workout session of a user.
type ExerciseHistory struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;index"`
	User             *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ExerciseID       uint      `json:"exercise_id" gorm:"not null;index"`
	ExerciseDuration int64     `json:"exercise_duration" gorm:"not null;default:0"` // seconds
	BurnedCalories   float64   `json:"burned_calories" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"not null;index"`
}

func (ExerciseHistory) TableName() string {
	return "exercise_histories"
}
