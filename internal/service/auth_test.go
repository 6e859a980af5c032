package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/model"
)

// memoryTokenRepo is an in-memory TokenRepositoryInterface for tests.
type memoryTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.Token
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]*model.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token *model.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *memoryTokenRepo) FindByToken(_ context.Context, tokenString string) (*model.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[tokenString]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (r *memoryTokenRepo) DeleteByToken(_ context.Context, tokenString string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tokenString)
	return nil
}

func (r *memoryTokenRepo) DeleteByEmail(_ context.Context, email, tokenType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.Email == email && t.Type == tokenType {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *memoryTokenRepo) IsBlacklisted(_ context.Context, tokenString string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenString]
	return ok && t.Type == "blacklist", nil
}

func (r *memoryTokenRepo) CleanupExpired(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for k, t := range r.tokens {
		if now.After(t.ExpiresAt) {
			delete(r.tokens, k)
		}
	}
	return nil
}

func testAuthConfig(t *testing.T) config.AuthConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("handmade-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AuthConfig{
		Enabled:           true,
		OwnerEmail:        "owner@kalakaari.in",
		OwnerName:         "Kalakaari Crafts",
		OwnerPasswordHash: string(hash),
		JWTSecretKey:      "access-secret-for-tests",
		JWTRefreshSecret:  "refresh-secret-for-tests",
		AccessTokenTTL:    15 * time.Minute,
		RefreshTokenTTL:   24 * time.Hour,
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMemoryTokenRepo()
	svc := NewAuthService(repo, testAuthConfig(t))
	ctx := context.Background()

	pair, owner, err := svc.Login(ctx, "owner@kalakaari.in", "handmade-secret")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	assert.Equal(t, "Kalakaari Crafts", owner.Name)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner@kalakaari.in", claims.Email)
}

func TestAuthService_LoginRejections(t *testing.T) {
	repo := newMemoryTokenRepo()
	svc := NewAuthService(repo, testAuthConfig(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "owner@kalakaari.in", password: "guess"},
		{name: "wrong email", email: "intruder@example.com", password: "handmade-secret"},
		{name: "empty credentials", email: "", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_LoginEmailCaseInsensitive(t *testing.T) {
	repo := newMemoryTokenRepo()
	svc := NewAuthService(repo, testAuthConfig(t))

	_, _, err := svc.Login(context.Background(), "Owner@Kalakaari.IN", "handmade-secret")
	assert.NoError(t, err)
}

func TestAuthService_LoginUnconfigured(t *testing.T) {
	svc := NewAuthService(newMemoryTokenRepo(), config.AuthConfig{})
	_, _, err := svc.Login(context.Background(), "owner@kalakaari.in", "handmade-secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshTokenRotation(t *testing.T) {
	repo := newMemoryTokenRepo()
	svc := NewAuthService(repo, testAuthConfig(t))
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "owner@kalakaari.in", "handmade-secret")
	require.NoError(t, err)

	rotated, err := svc.RefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	// The old refresh token was deleted during rotation.
	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newMemoryTokenRepo(), testAuthConfig(t))
	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_RefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewAuthService(newMemoryTokenRepo(), testAuthConfig(t))
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "owner@kalakaari.in", "handmade-secret")
	require.NoError(t, err)

	// Signed with the access secret, so the refresh secret rejects it.
	_, err = svc.RefreshToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LogoutBlacklistsAccessToken(t *testing.T) {
	repo := newMemoryTokenRepo()
	svc := NewAuthService(repo, testAuthConfig(t))
	ctx := context.Background()

	pair, _, err := svc.Login(ctx, "owner@kalakaari.in", "handmade-secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken, pair.RefreshToken))

	_, err = svc.ValidateToken(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenBlacklisted)

	_, err = svc.RefreshToken(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
