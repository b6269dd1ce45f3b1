package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSurvey(t *testing.T) {
	store := &fakeBodyStore{}
	svc := NewBodyService(store)
	svc.now = fixedClock(time.Date(2026, time.October, 3, 9, 0, 0, 0, time.UTC))

	h, err := svc.RecordSurvey(3, BodySurveyRequest{Height: 180, Weight: 81, SkeletalMuscleMass: 35, BodyFat: 18})
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, uint(3), h.UserID)
	assert.InDelta(t, 25.0, h.BMI, 0.01)
	assert.Equal(t, svc.now(), h.CreatedAt)
	require.Len(t, store.histories, 1)

	_, err = svc.RecordSurvey(3, BodySurveyRequest{Height: 0, Weight: 70})
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
}

func TestListSurveys(t *testing.T) {
	store := &fakeBodyStore{}
	svc := NewBodyService(store)

	svc.now = fixedClock(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC))
	_, err := svc.RecordSurvey(1, BodySurveyRequest{Height: 170, Weight: 70})
	require.NoError(t, err)
	svc.now = fixedClock(time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC))
	latest, err := svc.RecordSurvey(1, BodySurveyRequest{Height: 170, Weight: 68})
	require.NoError(t, err)

	list, err := svc.ListSurveys(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, latest.ID, list[0].ID)

	none, err := svc.ListSurveys(2)
	require.NoError(t, err)
	assert.Empty(t, none)

	store.err = errStoreDown
	_, err = svc.ListSurveys(1)
	assert.ErrorIs(t, err, errStoreDown)
}
