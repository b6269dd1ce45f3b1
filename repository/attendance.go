package repository

import (
	"context"
	"time"

	"crewfit/models"
	"crewfit/utils"

	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	return r.db.WithContext(ctx).Create(attendance).Error
}

// ExistsOn reports whether userID already checked in on day.
func (r *AttendanceRepository) ExistsOn(ctx context.Context, userID uint, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("user_id = ? AND attended_on = ?", userID, utils.DateOf(day)).
		Count(&count).Error
	return count > 0, err
}

// FindByUserAndMonth returns the user's attendances within a calendar month, in day order.
func (r *AttendanceRepository) FindByUserAndMonth(ctx context.Context, userID uint, year int, month time.Month) ([]models.Attendance, error) {
	var attendances []models.Attendance

	start, end := utils.MonthRange(year, month, time.UTC)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attended_on >= ? AND attended_on < ?", userID, start, end).
		Order("attended_on ASC").
		Find(&attendances).Error

	return attendances, err
}
