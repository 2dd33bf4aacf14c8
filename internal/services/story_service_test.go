package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoryService() (*StoryService, *fakeStoryRepo, *fakeLikeRepo, *fakeProfileRepo) {
	stories := newFakeStoryRepo()
	likes := newFakeLikeRepo()
	profiles := newFakeProfileRepo()
	return NewStoryService(stories, likes, profiles), stories, likes, profiles
}

func createDraft(t *testing.T, svc *StoryService, owner uuid.UUID) *models.Story {
	t.Helper()
	story, err := svc.Create(context.Background(), owner, CreateStoryParams{
		Kind:    models.KindStory,
		Title:   "Histoire : forêt",
		Content: "Il était une fois un lapin.",
		Inputs:  models.StoryInputs{Theme: "forêt", Characters: "lapin", Emotion: "joie"},
		AgeBand: "3-5",
	})
	require.NoError(t, err)
	return story
}

func TestCreateWithUnknownChildProfile(t *testing.T) {
	svc, _, _, _ := newStoryService()
	missing := uuid.New()

	_, err := svc.Create(context.Background(), uuid.New(), CreateStoryParams{
		ChildProfileID: &missing,
		Kind:           models.KindStory,
		Title:          "t",
		Content:        "c",
		AgeBand:        "3-5",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestCreateWithChildProfileOfAnotherUser(t *testing.T) {
	svc, _, _, profiles := newStoryService()
	other := uuid.New()
	child := &models.Profile{UserID: other, Type: models.ProfileTypeChild, Name: "Léa", AgeBand: "3-5"}
	require.NoError(t, profiles.Create(context.Background(), child))

	_, err := svc.Create(context.Background(), uuid.New(), CreateStoryParams{
		ChildProfileID: &child.ID,
		Kind:           models.KindRhyme,
		Title:          "t",
		Content:        "c",
		AgeBand:        "3-5",
	})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPublishTwice(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)

	published, err := svc.Publish(context.Background(), story.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.StoryStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	_, err = svc.Publish(context.Background(), story.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublishByNonOwner(t *testing.T) {
	svc, _, _, _ := newStoryService()
	story := createDraft(t, svc, uuid.New())

	_, err := svc.Publish(context.Background(), story.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePublishedStory(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)
	_, err := svc.Publish(context.Background(), story.ID, owner)
	require.NoError(t, err)

	title := "autre titre"
	_, err = svc.Update(context.Background(), story.ID, owner, repository.StoryPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateDraftByOwner(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)

	title := "Histoire : la mer"
	updated, err := svc.Update(context.Background(), story.ID, owner, repository.StoryPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Histoire : la mer", updated.Title)
}

func TestDraftVisibility(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)

	view, err := svc.Get(context.Background(), story.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, view.Liked) // owners get no liked flag

	_, err = svc.Get(context.Background(), story.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemovedStoryInvisibleToEveryone(t *testing.T) {
	svc, stories, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)
	_, err := svc.Publish(context.Background(), story.ID, owner)
	require.NoError(t, err)
	_, err = stories.MarkRemoved(context.Background(), story.ID)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), story.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Get(context.Background(), story.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	// and the terminal state rejects forward transitions
	_, err = svc.Publish(context.Background(), story.ID, owner)
	assert.ErrorIs(t, err, ErrNotFound)
	title := "x"
	_, err = svc.Update(context.Background(), story.ID, owner, repository.StoryPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeRequiresPublished(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)

	_, err := svc.Like(context.Background(), story.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, _, _, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)
	_, err := svc.Publish(context.Background(), story.ID, owner)
	require.NoError(t, err)

	liker := uuid.New()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Like(context.Background(), story.ID, liker)
		}()
	}
	wg.Wait()

	count, err := svc.Like(context.Background(), story.ID, liker)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnlikeThenCount(t *testing.T) {
	svc, _, likes, _ := newStoryService()
	owner := uuid.New()
	story := createDraft(t, svc, owner)
	_, err := svc.Publish(context.Background(), story.ID, owner)
	require.NoError(t, err)

	liker := uuid.New()
	count, err := svc.Like(context.Background(), story.ID, liker)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = svc.Unlike(context.Background(), story.ID, liker)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// unliking again stays a no-op success
	count, err = svc.Unlike(context.Background(), story.ID, liker)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	total, err := likes.CountByStory(context.Background(), story.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
}
