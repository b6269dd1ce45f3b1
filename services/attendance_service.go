// services/attendance_service.go - Daily check-in
package services

import (
	"context"
	"fmt"
	"time"

	"crewfit/models"
	"crewfit/utils"
)

type AttendanceSuccess struct {
	AttendedOn   string `json:"attended_on"`
	MonthlyCount int    `json:"monthly_count"`
}

type AttendanceList struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []int `json:"days"`
	Count int   `json:"count"`
}

type AttendanceService struct {
	attendances AttendanceStore
	now         func() time.Time
}

func NewAttendanceService(attendances AttendanceStore) *AttendanceService {
	return &AttendanceService{attendances: attendances, now: time.Now}
}

// MarkAttendance checks the user in for today (UTC). Only one check-in per day is allowed.
func (s *AttendanceService) MarkAttendance(ctx context.Context, userID uint) (*AttendanceSuccess, error) {
	today := utils.DateOf(s.now().UTC())

	exists, err := s.attendances.ExistsOn(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if exists {
		return nil, ErrAlreadyAttended
	}

	if err := s.attendances.Create(ctx, &models.Attendance{UserID: userID, AttendedOn: today}); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}

	month, err := s.attendances.FindByUserAndMonth(ctx, userID, today.Year(), today.Month())
	if err != nil {
		return nil, fmt.Errorf("count monthly attendance: %w", err)
	}

	return &AttendanceSuccess{
		AttendedOn:   today.Format(time.DateOnly),
		MonthlyCount: len(month),
	}, nil
}

// GetMonthlyAttendance lists the days of month the user checked in.
func (s *AttendanceService) GetMonthlyAttendance(ctx context.Context, userID uint, year, month int) (*AttendanceList, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	attendances, err := s.attendances.FindByUserAndMonth(ctx, userID, year, time.Month(month))
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	days := make([]int, 0, len(attendances))
	for _, a := range attendances {
		days = append(days, a.AttendedOn.Day())
	}

	return &AttendanceList{
		Year:  year,
		Month: month,
		Days:  days,
		Count: len(days),
	}, nil
}
