package repository

import (
	"context"

	"crewfit/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UpdateDeviceToken sets (or clears, with nil) the user's push token.
func (r *UserRepository) UpdateDeviceToken(ctx context.Context, id uint, token *string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("device_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListCrewMemberIDs returns the user ids belonging to crewID.
func (r *UserRepository) ListCrewMemberIDs(ctx context.Context, crewID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.UserCrew{}).
		Where("crew_id = ?", crewID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}
