package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type storyRepository struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	story.Status = models.StoryStatusDraft
	if err := r.db.WithContext(ctx).Create(story).Error; err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *storyRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	var story models.Story
	if err := r.db.WithContext(ctx).First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}

func (r *storyRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&stories).Error
	return stories, err
}

func (r *storyRepository) FindPublished(ctx context.Context, filter FeedFilter, limit int) ([]models.Story, error) {
	query := r.db.WithContext(ctx).Where("status = ?", models.StoryStatusPublished)
	if filter.AgeBand != "" {
		query = query.Where("age_band = ?", filter.AgeBand)
	}
	if filter.Theme != "" {
		query = query.Where("inputs->>'theme' ILIKE ?", "%"+filter.Theme+"%")
	}

	var stories []models.Story
	err := query.
		Order("published_at DESC NULLS LAST").
		Order("updated_at DESC").
		Limit(limit).
		Find(&stories).Error
	return stories, err
}

func (r *storyRepository) UpdateDraft(ctx context.Context, id, userID uuid.UUID, patch StoryPatch) (*models.Story, error) {
	values := map[string]interface{}{}
	if patch.Title != nil {
		values["title"] = *patch.Title
	}
	if patch.Content != nil {
		values["content"] = *patch.Content
	}
	if patch.Inputs != nil {
		values["inputs"] = datatypes.NewJSONType(*patch.Inputs)
	}
	if len(values) == 0 {
		return r.findDraft(ctx, id, userID)
	}

	result := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StoryStatusDraft).
		Updates(values)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *storyRepository) Publish(ctx context.Context, id, userID uuid.UUID, now time.Time) (*models.Story, error) {
	// Conditional write: the WHERE clause on prior status is what makes
	// concurrent publish/update/remove race-free.
	result := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, models.StoryStatusDraft).
		Updates(map[string]interface{}{
			"status":       models.StoryStatusPublished,
			"published_at": now,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *storyRepository) MarkRemoved(ctx context.Context, id uuid.UUID) (*models.Story, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Story{}).
		Where("id = ?", id).
		Update("status", models.StoryStatusRemoved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *storyRepository) findDraft(ctx context.Context, id, userID uuid.UUID) (*models.Story, error) {
	var story models.Story
	err := r.db.WithContext(ctx).
		First(&story, "id = ? AND user_id = ? AND status = ?", id, userID, models.StoryStatusDraft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &story, nil
}
