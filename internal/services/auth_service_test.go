package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/petitconteur/backend/internal/config"
	"github.com/petitconteur/backend/internal/models"
	"github.com/petitconteur/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uuid.UUID]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Store(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *fakeRefreshTokenRepo) FindActive(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash && !t.Revoked {
			clone := *t
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.Revoked = true
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeProfileRepo, *fakeRefreshTokenRepo) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	tokens := newFakeRefreshTokenRepo()
	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
	return NewAuthService(users, profiles, tokens, cfg), users, profiles, tokens
}

func TestRegisterCreatesParentProfile(t *testing.T) {
	svc, _, profiles, _ := newAuthFixture()

	res, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)

	owned, err := profiles.FindByUser(context.Background(), res.User.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, models.ProfileTypeParent, owned[0].Type)
	assert.Equal(t, "Mon profil", owned[0].Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "parent@exemple.fr", "autremotdepasse")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	_, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "parent@exemple.fr", "faux")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "inconnu@exemple.fr", "motdepasse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedUser(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)
	_, err = users.UpdateStatus(context.Background(), res.User.ID, models.UserStatusBlocked)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "parent@exemple.fr", "motdepasse")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestAccessTokenClaims(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)

	parsed, err := jwt.Parse(res.AccessToken, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.ID.String(), claims["sub"])
	assert.Equal(t, "parent@exemple.fr", claims["email"])
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	first, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)

	second, err := svc.Refresh(context.Background(), first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the presented token is single-use
	_, err = svc.Refresh(context.Background(), first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshExpiredToken(t *testing.T) {
	svc, _, _, tokens := newAuthFixture()
	res, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)

	tokens.mu.Lock()
	for _, tok := range tokens.tokens {
		tok.ExpiresAt = time.Now().Add(-time.Hour)
	}
	tokens.mu.Unlock()

	_, err = svc.Refresh(context.Background(), res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Refresh(context.Background(), "jamais-émis")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	res, err := svc.Register(context.Background(), "parent@exemple.fr", "motdepasse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.RefreshToken))
	_, err = svc.Refresh(context.Background(), res.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
