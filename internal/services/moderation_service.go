package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
)

// ModerationService coordinates community reports with administrative
// action on content and accounts.
type ModerationService struct {
	stories repository.StoryRepository
	reports repository.ReportRepository
	users   repository.UserRepository
}

func NewModerationService(stories repository.StoryRepository, reports repository.ReportRepository, users repository.UserRepository) *ModerationService {
	return &ModerationService{stories: stories, reports: reports, users: users}
}

// Report files a complaint against a published story. Unpublished,
// removed and missing stories all answer with the same not-found.
func (s *ModerationService) Report(ctx context.Context, reporterID, storyID uuid.UUID, reason string) (*models.Report, error) {
	story, err := s.stories.FindByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if story.Status != models.StoryStatusPublished {
		return nil, ErrNotFound
	}

	report := &models.Report{
		ReporterUserID: reporterID,
		StoryID:        storyID,
		Reason:         reason,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListPending returns pending reports newest-first, joined with reporter
// identity and target story title/owner for the admin panel.
func (s *ModerationService) ListPending(ctx context.Context) ([]repository.PendingReport, error) {
	return s.reports.FindPending(ctx)
}

// RemoveStory marks the story removed, then marks every report against it
// processed. The second step is best-effort: when it fails the removal is
// not rolled back and the caller gets a PartialRemovalError so the stale
// reports are never silently dropped.
func (s *ModerationService) RemoveStory(ctx context.Context, storyID uuid.UUID) (*models.Story, error) {
	story, err := s.stories.MarkRemoved(ctx, storyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.reports.MarkProcessedByStory(ctx, storyID); err != nil {
		slog.Error("reports left pending after story removal",
			"action", "moderation.remove_story",
			"story_id", storyID.String(),
			"error", err.Error())
		return story, &PartialRemovalError{StoryID: storyID, Err: err}
	}
	return story, nil
}

// BlockUser flips the account status; content state is untouched.
func (s *ModerationService) BlockUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.UpdateStatus(ctx, userID, models.UserStatusBlocked)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// DismissReport closes a single report. Dismissing one that was already
// processed is a success, not an error; only a missing id is not-found.
func (s *ModerationService) DismissReport(ctx context.Context, reportID uuid.UUID) error {
	if err := s.reports.MarkDismissed(ctx, reportID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
