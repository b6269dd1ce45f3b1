package repository

import (
	"context"
	"time"

	"crewfit/models"

	"gorm.io/gorm"
)

type BattleRepository struct {
	db *gorm.DB
}

func NewBattleRepository(db *gorm.DB) *BattleRepository {
	return &BattleRepository{db: db}
}

// FindByID loads a battle without its crews.
func (r *BattleRepository) FindByID(ctx context.Context, id uint) (*models.Battle, error) {
	var battle models.Battle
	if err := r.db.WithContext(ctx).First(&battle, id).Error; err != nil {
		return nil, translate(err)
	}
	return &battle, nil
}

// FindByIDWithCrews loads a battle with both crews and their exercises.
func (r *BattleRepository) FindByIDWithCrews(ctx context.Context, id uint) (*models.Battle, error) {
	var battle models.Battle
	err := r.db.WithContext(ctx).
		Preload("HomeCrew.Exercise").
		Preload("AwayCrew.Exercise").
		First(&battle, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &battle, nil
}

// FindByCrewAndStatus returns the newest battle in status where crewID is home or away.
func (r *BattleRepository) FindByCrewAndStatus(ctx context.Context, crewID uint, status models.BattleStatus) (*models.Battle, error) {
	var battle models.Battle
	err := r.db.WithContext(ctx).
		Where("(home_crew_id = ? OR away_crew_id = ?) AND status = ?", crewID, crewID, status).
		Order("created_at DESC").
		First(&battle).Error
	if err != nil {
		return nil, translate(err)
	}
	return &battle, nil
}

// FindRecentFinishedByCrewIDs returns finished battles involving any of crewIDs, newest first.
func (r *BattleRepository) FindRecentFinishedByCrewIDs(ctx context.Context, crewIDs []uint) ([]models.Battle, error) {
	var battles []models.Battle
	if len(crewIDs) == 0 {
		return battles, nil
	}
	err := r.db.WithContext(ctx).
		Where("(home_crew_id IN ? OR away_crew_id IN ?) AND status = ?", crewIDs, crewIDs, models.BattleStatusFinished).
		Order("created_at DESC").
		Find(&battles).Error
	return battles, err
}

// CountTotalAndWon counts finished battles for crewID and those it won outright.
// Draws count toward the total only.
func (r *BattleRepository) CountTotalAndWon(ctx context.Context, crewID uint) (models.BattleStats, error) {
	var stats models.BattleStats
	err := r.db.WithContext(ctx).
		Model(&models.Battle{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE
				WHEN (home_crew_id = ? AND home_crew_score > away_crew_score)
				  OR (away_crew_id = ? AND away_crew_score > home_crew_score) THEN 1 ELSE 0 END), 0) AS won`,
			crewID, crewID).
		Where("(home_crew_id = ? OR away_crew_id = ?) AND status = ?", crewID, crewID, models.BattleStatusFinished).
		Scan(&stats).Error
	return stats, err
}

// ListByStatus returns every battle in status, oldest first.
func (r *BattleRepository) ListByStatus(ctx context.Context, status models.BattleStatus) ([]models.Battle, error) {
	var battles []models.Battle
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&battles).Error
	return battles, err
}

func (r *BattleRepository) Create(ctx context.Context, battle *models.Battle) error {
	if battle.CreatedAt.IsZero() {
		battle.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(battle).Error
}

// Finish records the final scores and marks the battle FINISHED.
// No status precondition is applied, so two concurrent finishes both succeed.
func (r *BattleRepository) Finish(ctx context.Context, id uint, homeScore, awayScore float64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Battle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"home_crew_score": homeScore,
			"away_crew_score": awayScore,
			"status":          models.BattleStatusFinished,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
