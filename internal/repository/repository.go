package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
)

// ErrNotFound is returned whenever a row is absent or a conditional write
// matched nothing. Callers decide what that means; repositories don't.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint rejects an insert.
var ErrDuplicate = errors.New("duplicate record")

// StoryPatch carries the mutable draft fields. Nil means "leave as is".
type StoryPatch struct {
	Title   *string
	Content *string
	Inputs  *models.StoryInputs
}

// FeedFilter narrows the published feed. Zero values mean no filtering.
type FeedFilter struct {
	AgeBand string
	Theme   string
}

// PendingReport is a report joined with what an administrator needs to
// act on it.
type PendingReport struct {
	models.Report
	ReporterEmail string    `json:"reporter_email"`
	StoryTitle    string    `json:"story_title"`
	StoryOwnerID  uuid.UUID `json:"story_owner_id"`
}

type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Story, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Story, error)
	FindPublished(ctx context.Context, filter FeedFilter, limit int) ([]models.Story, error)
	// UpdateDraft applies the patch only if the story is a draft owned by
	// userID; ErrNotFound otherwise.
	UpdateDraft(ctx context.Context, id, userID uuid.UUID, patch StoryPatch) (*models.Story, error)
	// Publish transitions draft → published only if the story is a draft
	// owned by userID; ErrNotFound otherwise.
	Publish(ctx context.Context, id, userID uuid.UUID, now time.Time) (*models.Story, error)
	// MarkRemoved sets status = removed regardless of prior status;
	// ErrNotFound only if no such story exists.
	MarkRemoved(ctx context.Context, id uuid.UUID) (*models.Story, error)
}

type LikeRepository interface {
	// Upsert records the like; a duplicate (user, story) pair is a no-op.
	Upsert(ctx context.Context, userID, storyID uuid.UUID) error
	Delete(ctx context.Context, userID, storyID uuid.UUID) error
	Exists(ctx context.Context, userID, storyID uuid.UUID) (bool, error)
	CountByStory(ctx context.Context, storyID uuid.UUID) (int64, error)
	// CountByStories is a single grouped query; stories with no likes are
	// absent from the result map.
	CountByStories(ctx context.Context, storyIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// LikedSet returns which of the given stories the user has liked.
	LikedSet(ctx context.Context, userID uuid.UUID, storyIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	FindPending(ctx context.Context) ([]PendingReport, error)
	// MarkProcessedByStory transitions every report targeting the story,
	// whatever its current status.
	MarkProcessedByStory(ctx context.Context, storyID uuid.UUID) error
	MarkDismissed(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Profile, error)
	// FindChild resolves a child-type profile owned by userID.
	FindChild(ctx context.Context, id, userID uuid.UUID) (*models.Profile, error)
	UpdateChild(ctx context.Context, id, userID uuid.UUID, name, ageBand string) (*models.Profile, error)
	DeleteChild(ctx context.Context, id, userID uuid.UUID) error
}

type RefreshTokenRepository interface {
	Store(ctx context.Context, token *models.RefreshToken) error
	FindActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeByID(ctx context.Context, id uuid.UUID) error
}
