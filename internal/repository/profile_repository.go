package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) FindChild(ctx context.Context, id, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		First(&profile, "id = ? AND user_id = ? AND type = ?", id, userID, models.ProfileTypeChild).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateChild(ctx context.Context, id, userID uuid.UUID, name, ageBand string) (*models.Profile, error) {
	values := map[string]interface{}{}
	if name != "" {
		values["name"] = name
	}
	if ageBand != "" {
		values["age_band"] = ageBand
	}
	if len(values) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Profile{}).
			Where("id = ? AND user_id = ? AND type = ?", id, userID, models.ProfileTypeChild).
			Updates(values)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.FindChild(ctx, id, userID)
}

func (r *profileRepository) DeleteChild(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND type = ?", id, userID, models.ProfileTypeChild).
		Delete(&models.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
