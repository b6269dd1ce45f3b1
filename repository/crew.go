package repository

import (
	"context"

	"crewfit/models"

	"gorm.io/gorm"
)

type CrewRepository struct {
	db *gorm.DB
}

func NewCrewRepository(db *gorm.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

// FindByID loads a crew with its exercise.
func (r *CrewRepository) FindByID(ctx context.Context, id uint) (*models.Crew, error) {
	var crew models.Crew
	if err := r.db.WithContext(ctx).Preload("Exercise").First(&crew, id).Error; err != nil {
		return nil, translate(err)
	}
	return &crew, nil
}

// ListAll returns every crew with its exercise, ordered by id.
func (r *CrewRepository) ListAll(ctx context.Context) ([]models.Crew, error) {
	var crews []models.Crew
	err := r.db.WithContext(ctx).
		Preload("Exercise").
		Order("id ASC").
		Find(&crews).Error
	return crews, err
}

// RankingByExercise returns crews of one exercise ordered by live total score.
func (r *CrewRepository) RankingByExercise(ctx context.Context, exerciseID uint, limit int) ([]models.Crew, error) {
	var crews []models.Crew

	query := r.db.WithContext(ctx).
		Preload("Exercise").
		Where("exercise_id = ?", exerciseID).
		Order("(basic_score + activity_score) DESC, id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&crews).Error
	return crews, err
}
