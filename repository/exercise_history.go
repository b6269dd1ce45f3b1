package repository

import (
	"context"
	"time"

	"crewfit/models"

	"gorm.io/gorm"
)

type ExerciseHistoryRepository struct {
	db *gorm.DB
}

func NewExerciseHistoryRepository(db *gorm.DB) *ExerciseHistoryRepository {
	return &ExerciseHistoryRepository{db: db}
}

// FindUserRankingsByCrewSince ranks the members of crewID by time spent on the crew's exercise
// at or after since. Members with no such activity are listed with zero.
func (r *ExerciseHistoryRepository) FindUserRankingsByCrewSince(ctx context.Context, crewID uint, since time.Time) ([]models.CrewMemberInfo, error) {
	var rankings []models.CrewMemberInfo

	err := r.db.WithContext(ctx).
		Table("user_crews").
		Select(`users.id AS user_id,
			users.nickname AS nickname,
			users.profile_image AS user_profile_image,
			COALESCE(SUM(exercise_histories.exercise_duration), 0) AS exercise_time`).
		Joins("JOIN crews ON crews.id = user_crews.crew_id").
		Joins("JOIN users ON users.id = user_crews.user_id").
		Joins(`LEFT JOIN exercise_histories ON exercise_histories.user_id = users.id
			AND exercise_histories.exercise_id = crews.exercise_id
			AND exercise_histories.created_at >= ?`, since).
		Where("user_crews.crew_id = ?", crewID).
		Group("users.id, users.nickname, users.profile_image").
		Order("exercise_time DESC, users.id ASC").
		Scan(&rankings).Error

	return rankings, err
}

func (r *ExerciseHistoryRepository) Create(ctx context.Context, history *models.ExerciseHistory) error {
	return r.db.WithContext(ctx).Create(history).Error
}
