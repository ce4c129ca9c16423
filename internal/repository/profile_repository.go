package repository

import (
	"context"

	"gorm.io/gorm"

	"habit-tracker/internal/model"
)

// ProfileRepository reads messaging profiles.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) FindByPhone(ctx context.Context, phone string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
