package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/config"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tokens   repository.RefreshTokenRepository
	cfg      *config.Config
}

func NewAuthService(users repository.UserRepository, profiles repository.ProfileRepository, tokens repository.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{users: users, profiles: profiles, tokens: tokens, cfg: cfg}
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

// Register creates the guardian account and its parent profile.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	profile := &models.Profile{
		UserID: user.ID,
		Type:   models.ProfileTypeParent,
		Name:   "Mon profil",
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status == models.UserStatusBlocked {
		return nil, ErrUserBlocked
	}
	return s.issueTokens(ctx, user)
}

// Refresh rotates the refresh token: the presented one is revoked whether
// or not a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	tokenHash := hashToken(refreshToken)

	stored, err := s.tokens.FindActive(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.RevokeByID(ctx, stored.ID)
		return nil, ErrInvalidToken
	}
	if err := s.tokens.RevokeByID(ctx, stored.ID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.Status == models.UserStatusBlocked {
		return nil, ErrUserBlocked
	}
	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, hashToken(refreshToken))
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
		"iat":   time.Now().Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	refresh := base64.RawURLEncoding.EncodeToString(raw)

	if err := s.tokens.Store(ctx, &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}); err != nil {
		return nil, err
	}

	return &AuthResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", sum)
}
