// models/attendance.go
package models

import "time"

// Attendance records that a user checked in on a calendar day.
type Attendance struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_attendance_user_day"`
	AttendedOn time.Time `json:"attended_on" gorm:"type:date;not null;uniqueIndex:idx_attendance_user_day"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
