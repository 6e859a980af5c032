package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/kalakaari/storefront-service/config"
	"github.com/kalakaari/storefront-service/internal/domain/dto"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when token is invalid or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenBlacklisted is returned when token is blacklisted.
	ErrTokenBlacklisted = errors.New("token is blacklisted")
)

// ClaimsWithJWT extends dto.Claims with JWT RegisteredClaims for token
// generation.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// AuthService authenticates the single shop owner against the
// credentials supplied in deployment configuration. There is no user
// store and no registration.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Owner, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
}

// AuthServiceImpl implements AuthService. It delegates token operations
// to TokenService.
type AuthServiceImpl struct {
	owner        model.Owner
	tokenService TokenService
}

// NewAuthService creates an authentication service from the auth
// configuration.
func NewAuthService(tokenRepo repository.TokenRepositoryInterface, authConfig config.AuthConfig) AuthService {
	tokenService := NewTokenService(tokenRepo, NewTokenConfigFromAuthConfig(authConfig))
	return NewAuthServiceWithTokenService(model.Owner{
		Email:        authConfig.OwnerEmail,
		Name:         authConfig.OwnerName,
		PasswordHash: authConfig.OwnerPasswordHash,
	}, tokenService)
}

// NewAuthServiceWithTokenService creates an authentication service with
// an existing TokenService. Useful for tests.
func NewAuthServiceWithTokenService(owner model.Owner, tokenService TokenService) AuthService {
	return &AuthServiceImpl{
		owner:        owner,
		tokenService: tokenService,
	}
}

// Login authenticates the owner and returns JWT tokens.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenPair, *model.Owner, error) {
	if s.owner.Email == "" || s.owner.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(s.owner.Email))) != 1 {
		// Still burn a bcrypt comparison so a wrong email costs the same
		// as a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte(s.owner.PasswordHash), []byte(password))
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.owner.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	// Retire existing refresh tokens before issuing new ones.
	if err := s.tokenService.InvalidateOwnerTokens(ctx, s.owner.Email); err != nil {
		return nil, nil, fmt.Errorf("failed to invalidate existing tokens: %w", err)
	}

	tokenPair, err := s.tokenService.GenerateTokenPair(ctx, s.owner)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	owner := s.owner
	return tokenPair, &owner, nil
}

// RefreshToken rotates a refresh token into a fresh token pair.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	claims, err := s.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(claims.Email, s.owner.Email) {
		return nil, ErrInvalidToken
	}

	token, err := s.tokenService.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if token == nil || token.Type != "refresh" {
		return nil, ErrInvalidToken
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, ErrInvalidToken
	}

	// Delete the old refresh token before creating a new one to prevent
	// duplicate key errors.
	if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to delete old refresh token: %w", err)
	}

	return s.tokenService.GenerateTokenPair(ctx, s.owner)
}

// ValidateToken validates an access token.
func (s *AuthServiceImpl) ValidateToken(ctx context.Context, tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(ctx, tokenString)
}

// Logout invalidates the given tokens. Both invalidations are attempted
// even when one fails.
func (s *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error

	if accessToken != "" {
		if err := s.tokenService.InvalidateAccessToken(ctx, accessToken); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate access token during logout")
			errs = append(errs, fmt.Errorf("invalidate access token: %w", err))
		}
	}

	if refreshToken != "" {
		if err := s.tokenService.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Warn().Err(err).Msg("failed to delete refresh token during logout")
			errs = append(errs, fmt.Errorf("delete refresh token: %w", err))
		}
	}

	return errors.Join(errs...)
}
