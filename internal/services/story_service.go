package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
)

// StoryService owns the content lifecycle (draft → published → removed)
// and the per-story engagement counter.
type StoryService struct {
	stories  repository.StoryRepository
	likes    repository.LikeRepository
	profiles repository.ProfileRepository
}

func NewStoryService(stories repository.StoryRepository, likes repository.LikeRepository, profiles repository.ProfileRepository) *StoryService {
	return &StoryService{stories: stories, likes: likes, profiles: profiles}
}

type CreateStoryParams struct {
	ChildProfileID *uuid.UUID
	Kind           string
	Title          string
	Content        string
	Inputs         models.StoryInputs
	AgeBand        string
}

// StoryView is a story plus the caller's like state. Liked is nil when
// the caller owns the story: owners don't like their own content.
type StoryView struct {
	models.Story
	Liked *bool `json:"liked,omitempty"`
}

func (s *StoryService) List(ctx context.Context, userID uuid.UUID) ([]models.Story, error) {
	return s.stories.FindByUser(ctx, userID)
}

// Get applies the read-visibility policy: removed stories 404 for
// everyone, drafts only resolve for their owner, published stories
// resolve for all.
func (s *StoryService) Get(ctx context.Context, id, userID uuid.UUID) (*StoryView, error) {
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if story.Status == models.StoryStatusRemoved {
		return nil, ErrNotFound
	}
	isOwner := story.UserID == userID
	if story.Status == models.StoryStatusDraft && !isOwner {
		return nil, ErrNotFound
	}

	view := &StoryView{Story: *story}
	if !isOwner {
		liked, err := s.likes.Exists(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		view.Liked = &liked
	}
	return view, nil
}

func (s *StoryService) Create(ctx context.Context, userID uuid.UUID, params CreateStoryParams) (*models.Story, error) {
	if params.ChildProfileID != nil {
		if _, err := s.profiles.FindChild(ctx, *params.ChildProfileID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
	}

	story := &models.Story{
		UserID:         userID,
		ChildProfileID: params.ChildProfileID,
		Kind:           params.Kind,
		Title:          params.Title,
		Content:        params.Content,
		Inputs:         models.NewStoryInputs(params.Inputs),
		AgeBand:        params.AgeBand,
	}
	if err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Update only ever touches drafts owned by the caller; anything else is
// a uniform not-found.
func (s *StoryService) Update(ctx context.Context, id, userID uuid.UUID, patch repository.StoryPatch) (*models.Story, error) {
	story, err := s.stories.UpdateDraft(ctx, id, userID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return story, nil
}

// Publish is a one-way transition; there is no way back to draft.
func (s *StoryService) Publish(ctx context.Context, id, userID uuid.UUID) (*models.Story, error) {
	story, err := s.stories.Publish(ctx, id, userID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return story, nil
}

// Like records the caller's like and returns the story's current total.
// The upsert is idempotent: liking twice is not an error and never
// creates a second row.
func (s *StoryService) Like(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if story.Status != models.StoryStatusPublished {
		return 0, ErrNotFound
	}

	if err := s.likes.Upsert(ctx, userID, id); err != nil {
		return 0, err
	}
	return s.likes.CountByStory(ctx, id)
}

// Unlike removes the caller's like if present and returns the current
// total. Removing an absent like is a no-op.
func (s *StoryService) Unlike(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	if err := s.likes.Delete(ctx, userID, id); err != nil {
		return 0, err
	}
	return s.likes.CountByStory(ctx, id)
}
