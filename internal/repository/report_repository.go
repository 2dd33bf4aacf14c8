package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.Status = models.ReportStatusPending
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) FindPending(ctx context.Context) ([]PendingReport, error) {
	var reports []PendingReport
	err := r.db.WithContext(ctx).
		Table("reports").
		Select("reports.*, users.email AS reporter_email, stories.title AS story_title, stories.user_id AS story_owner_id").
		Joins("JOIN users ON users.id = reports.reporter_user_id").
		Joins("JOIN stories ON stories.id = reports.story_id").
		Where("reports.status = ?", models.ReportStatusPending).
		Order("reports.created_at DESC").
		Scan(&reports).Error
	return reports, err
}

func (r *reportRepository) MarkProcessedByStory(ctx context.Context, storyID uuid.UUID) error {
	// All reports for the story, whatever their current status.
	return r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("story_id = ?", storyID).
		Update("status", models.ReportStatusProcessed).Error
}

func (r *reportRepository) MarkDismissed(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ?", id).
		Update("status", models.ReportStatusDismissed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
