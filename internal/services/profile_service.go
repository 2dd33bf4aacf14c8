package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
)

// ProfileService manages the guardian's child profiles. The parent
// profile is created at registration and never edited here.
type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) List(ctx context.Context, userID uuid.UUID) ([]models.Profile, error) {
	return s.profiles.FindByUser(ctx, userID)
}

func (s *ProfileService) CreateChild(ctx context.Context, userID uuid.UUID, name, ageBand string) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:  userID,
		Type:    models.ProfileTypeChild,
		Name:    name,
		AgeBand: ageBand,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpdateChild(ctx context.Context, id, userID uuid.UUID, name, ageBand string) (*models.Profile, error) {
	profile, err := s.profiles.UpdateChild(ctx, id, userID, name, ageBand)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) DeleteChild(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.profiles.DeleteChild(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}
