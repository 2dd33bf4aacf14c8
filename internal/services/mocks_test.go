package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
)

// In-memory repository fakes. They honor the same conditional-write
// contracts as the GORM implementations so lifecycle tests exercise the
// real transition rules.

type fakeStoryRepo struct {
	mu      sync.Mutex
	stories map[uuid.UUID]*models.Story
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{stories: make(map[uuid.UUID]*models.Story)}
}

func (r *fakeStoryRepo) Create(_ context.Context, story *models.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	story.Status = models.StoryStatusDraft
	clone := *story
	r.stories[story.ID] = &clone
	return nil
}

func (r *fakeStoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *story
	return &clone, nil
}

func (r *fakeStoryRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Story
	for _, s := range r.stories {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) FindPublished(_ context.Context, filter repository.FeedFilter, limit int) ([]models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Story
	for _, s := range r.stories {
		if s.Status != models.StoryStatusPublished {
			continue
		}
		if filter.AgeBand != "" && s.AgeBand != filter.AgeBand {
			continue
		}
		out = append(out, *s)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) UpdateDraft(_ context.Context, id, userID uuid.UUID, patch repository.StoryPatch) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok || story.UserID != userID || story.Status != models.StoryStatusDraft {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		story.Title = *patch.Title
	}
	if patch.Content != nil {
		story.Content = *patch.Content
	}
	if patch.Inputs != nil {
		story.Inputs = models.NewStoryInputs(*patch.Inputs)
	}
	clone := *story
	return &clone, nil
}

func (r *fakeStoryRepo) Publish(_ context.Context, id, userID uuid.UUID, now time.Time) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok || story.UserID != userID || story.Status != models.StoryStatusDraft {
		return nil, repository.ErrNotFound
	}
	story.Status = models.StoryStatusPublished
	story.PublishedAt = &now
	clone := *story
	return &clone, nil
}

func (r *fakeStoryRepo) MarkRemoved(_ context.Context, id uuid.UUID) (*models.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	story, ok := r.stories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	story.Status = models.StoryStatusRemoved
	clone := *story
	return &clone, nil
}

type likeKey struct {
	userID  uuid.UUID
	storyID uuid.UUID
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[likeKey]struct{}
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[likeKey]struct{})}
}

func (r *fakeLikeRepo) Upsert(_ context.Context, userID, storyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[likeKey{userID, storyID}] = struct{}{}
	return nil
}

func (r *fakeLikeRepo) Delete(_ context.Context, userID, storyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, likeKey{userID, storyID})
	return nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, userID, storyID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.likes[likeKey{userID, storyID}]
	return ok, nil
}

func (r *fakeLikeRepo) CountByStory(_ context.Context, storyID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k := range r.likes {
		if k.storyID == storyID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLikeRepo) CountByStories(_ context.Context, storyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, id := range storyIDs {
		n, _ := r.CountByStory(context.Background(), id)
		if n > 0 {
			counts[id] = n
		}
	}
	return counts, nil
}

func (r *fakeLikeRepo) LikedSet(_ context.Context, userID uuid.UUID, storyIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	for _, id := range storyIDs {
		if ok, _ := r.Exists(context.Background(), userID, id); ok {
			liked[id] = true
		}
	}
	return liked, nil
}

type fakeReportRepo struct {
	mu           sync.Mutex
	reports      map[uuid.UUID]*models.Report
	markFailWith error
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*models.Report)}
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.Status = models.ReportStatusPending
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) FindPending(_ context.Context) ([]repository.PendingReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.PendingReport
	for _, rep := range r.reports {
		if rep.Status == models.ReportStatusPending {
			out = append(out, repository.PendingReport{Report: *rep})
		}
	}
	return out, nil
}

func (r *fakeReportRepo) MarkProcessedByStory(_ context.Context, storyID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markFailWith != nil {
		return r.markFailWith
	}
	for _, rep := range r.reports {
		if rep.StoryID == storyID {
			rep.Status = models.ReportStatusProcessed
		}
	}
	return nil
}

func (r *fakeReportRepo) MarkDismissed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.reports[id]
	if !ok {
		return repository.ErrNotFound
	}
	rep.Status = models.ReportStatusDismissed
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Status = status
	clone := *u
	return &clone, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfileRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) FindChild(_ context.Context, id, userID uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID || p.Type != models.ProfileTypeChild {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) UpdateChild(_ context.Context, id, userID uuid.UUID, name, ageBand string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID || p.Type != models.ProfileTypeChild {
		return nil, repository.ErrNotFound
	}
	if name != "" {
		p.Name = name
	}
	if ageBand != "" {
		p.AgeBand = ageBand
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) DeleteChild(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok || p.UserID != userID || p.Type != models.ProfileTypeChild {
		return repository.ErrNotFound
	}
	delete(r.profiles, id)
	return nil
}
