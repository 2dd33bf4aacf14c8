package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Upsert(ctx context.Context, userID, storyID uuid.UUID) error {
	like := models.Like{
		ID:      uuid.New(),
		UserID:  userID,
		StoryID: storyID,
	}
	// The unique index on (user_id, story_id) absorbs concurrent likes;
	// ON CONFLICT DO NOTHING keeps the repeat a silent no-op.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "story_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
	if err != nil {
		return fmt.Errorf("failed to record like: %w", err)
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, userID, storyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND story_id = ?", userID, storyID).
		Delete(&models.Like{}).Error
}

func (r *likeRepository) Exists(ctx context.Context, userID, storyID uuid.UUID) (bool, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		First(&like, "user_id = ? AND story_id = ?", userID, storyID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) CountByStory(ctx context.Context, storyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByStories(ctx context.Context, storyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(storyIDs))
	if len(storyIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		StoryID uuid.UUID
		Count   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("story_id, count(*) as count").
		Where("story_id IN ?", storyIDs).
		Group("story_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.StoryID] = row.Count
	}
	return counts, nil
}

func (r *likeRepository) LikedSet(ctx context.Context, userID uuid.UUID, storyIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(storyIDs))
	if len(storyIDs) == 0 {
		return liked, nil
	}

	var likes []models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND story_id IN ?", userID, storyIDs).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		liked[l.StoryID] = true
	}
	return liked, nil
}
