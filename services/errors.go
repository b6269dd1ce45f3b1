package services

import "errors"

var (
	ErrBattleNotFound       = errors.New("battle not found")
	ErrCrewNotParticipant   = errors.New("crew is not a participant of this battle")
	ErrBattleNotStarted     = errors.New("battle is not in progress")
	ErrCrewNotFound         = errors.New("crew not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrInvalidStatus        = errors.New("invalid notification status")
	ErrAlreadyAttended      = errors.New("attendance already marked today")
	ErrInvalidMonth         = errors.New("month must be between 1 and 12")
	ErrInvalidMeasurement   = errors.New("height and weight must be positive")

	// Push failures surfaced to callers. A missing device token is not a failure.
	ErrPushInterrupted = errors.New("push delivery interrupted")
	ErrPushFailed      = errors.New("push delivery failed")
)
