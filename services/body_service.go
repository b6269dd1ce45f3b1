package services

import (
	"fmt"
	"time"

	"crewfit/models"

	"github.com/google/uuid"
)

type BodySurveyRequest struct {
	Height             float64 `json:"height"`
	Weight             float64 `json:"weight"`
	SkeletalMuscleMass float64 `json:"skeletal_muscle_mass"`
	BodyFat            float64 `json:"body_fat"`
}

type BodyService struct {
	store BodyHistoryStore
	now   func() time.Time
}

func NewBodyService(store BodyHistoryStore) *BodyService {
	return &BodyService{store: store, now: time.Now}
}

// RecordSurvey stores a new body snapshot for userID.
func (s *BodyService) RecordSurvey(userID uint, req BodySurveyRequest) (*models.BodyHistory, error) {
	if req.Height <= 0 || req.Weight <= 0 {
		return nil, ErrInvalidMeasurement
	}

	history := models.BodyHistory{
		ID:                 uuid.NewString(),
		UserID:             userID,
		Height:             req.Height,
		Weight:             req.Weight,
		SkeletalMuscleMass: req.SkeletalMuscleMass,
		BodyFat:            req.BodyFat,
		BMI:                models.CalculateBMI(req.Height, req.Weight),
		CreatedAt:          s.now().UTC(),
	}
	if err := s.store.Save(history); err != nil {
		return nil, fmt.Errorf("save body history: %w", err)
	}
	return &history, nil
}

// ListSurveys returns the user's snapshots newest first.
func (s *BodyService) ListSurveys(userID uint) ([]models.BodyHistory, error) {
	histories, err := s.store.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list body history: %w", err)
	}
	return histories, nil
}
