package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dreamtrip-app/dreamtrip-api/config"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

var _ AuthService = (*IAuthService)(nil)

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshSession(ctx context.Context, refreshToken string) (string, string, error)
}

type IAuthService struct {
	logger *slog.Logger
	repo   AuthRepo
	jwtCfg config.JWTConfig
}

func NewAuthService(repo AuthRepo, jwtCfg config.JWTConfig, logger *slog.Logger) *IAuthService {
	return &IAuthService{
		logger: logger,
		repo:   repo,
		jwtCfg: jwtCfg,
	}
}

func (s *IAuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", email))

	userID, err := s.repo.Register(ctx, username, email, password)
	if err != nil {
		l.WarnContext(ctx, "Registration failed", slog.Any("error", err))
		return "", err
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", userID))
	return userID, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *IAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	l := s.logger.With(slog.String("method", "Login"))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrUnauthenticated
		}
		return "", "", err
	}
	if err := s.repo.VerifyPassword(ctx, user.ID, password); err != nil {
		l.WarnContext(ctx, "Invalid credentials", slog.String("userID", user.ID))
		return "", "", ErrUnauthenticated
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.jwtCfg.RefreshExpiry)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return "", "", err
	}

	l.InfoContext(ctx, "Login successful", slog.String("userID", user.ID))
	return accessToken, refreshToken, nil
}

func (s *IAuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.InvalidateRefreshToken(ctx, refreshToken)
}

// RefreshSession rotates the refresh token: the old one is invalidated and a
// fresh pair is issued.
func (s *IAuthService) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	l := s.logger.With(slog.String("method", "RefreshSession"))

	userID, expiresAt, invalidatedAt, err := s.repo.GetRefreshTokenInfo(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if time.Now().After(expiresAt) || invalidatedAt != nil {
		return "", "", ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", ErrUnauthenticated
		}
		return "", "", err
	}

	newAccessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := uuid.NewString()
	newExpiresAt := time.Now().Add(s.jwtCfg.RefreshExpiry)
	if err := s.repo.StoreRefreshToken(ctx, userID, newRefreshToken, newExpiresAt); err != nil {
		return "", "", err
	}
	if err := s.repo.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		l.WarnContext(ctx, "Failed to invalidate old refresh token", slog.Any("error", err))
	}

	return newAccessToken, newRefreshToken, nil
}

func (s *IAuthService) generateAccessToken(user *User) (string, error) {
	now := time.Now()
	claims := &types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Scope:    "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{s.jwtCfg.Audience},
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.AccessExpiry)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.SecretKey))
}
