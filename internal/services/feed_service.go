package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
)

const feedLimit = 50

// FeedService assembles the shared feed of published stories, decorated
// with like counts and the caller's liked flags.
type FeedService struct {
	stories repository.StoryRepository
	likes   repository.LikeRepository
}

func NewFeedService(stories repository.StoryRepository, likes repository.LikeRepository) *FeedService {
	return &FeedService{stories: stories, likes: likes}
}

type FeedItem struct {
	models.Story
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}

// Get returns the newest published stories. An unknown age band filter is
// ignored rather than rejected; the theme filter is a case-insensitive
// substring match on the generation theme.
func (s *FeedService) Get(ctx context.Context, userID uuid.UUID, ageBand, theme string) ([]FeedItem, error) {
	filter := repository.FeedFilter{Theme: strings.TrimSpace(theme)}
	if models.ValidAgeBand(ageBand) {
		filter.AgeBand = ageBand
	}

	stories, err := s.stories.FindPublished(ctx, filter, feedLimit)
	if err != nil {
		return nil, err
	}
	items := make([]FeedItem, 0, len(stories))
	if len(stories) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, len(stories))
	for i, story := range stories {
		ids[i] = story.ID
	}

	// One grouped count and one IN query, not 2N lookups: the feed is
	// the hottest read path.
	counts, err := s.likes.CountByStories(ctx, ids)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.LikedSet(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	for _, story := range stories {
		items = append(items, FeedItem{
			Story:     story,
			LikeCount: counts[story.ID],
			Liked:     liked[story.ID],
		})
	}
	return items, nil
}
