package auth

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtrip-app/dreamtrip-api/config"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// MockAuthRepo is a mock implementation of AuthRepo
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) Register(ctx context.Context, username, email, password string) (string, error) {
	args := m.Called(ctx, username, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockAuthRepo) GetUserByID(ctx context.Context, userID string) (*User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockAuthRepo) VerifyPassword(ctx context.Context, userID, password string) error {
	args := m.Called(ctx, userID, password)
	return args.Error(0)
}

func (m *MockAuthRepo) StoreRefreshToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, token, expiresAt)
	return args.Error(0)
}

func (m *MockAuthRepo) GetRefreshTokenInfo(ctx context.Context, refreshToken string) (string, time.Time, *time.Time, error) {
	args := m.Called(ctx, refreshToken)
	var invalidatedAt *time.Time
	if args.Get(2) != nil {
		invalidatedAt = args.Get(2).(*time.Time)
	}
	return args.String(0), args.Get(1).(time.Time), invalidatedAt, args.Error(3)
}

func (m *MockAuthRepo) InvalidateRefreshToken(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *MockAuthRepo) InvalidateAllUserRefreshTokens(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey:     "test-secret",
		Issuer:        "dreamtrip-api",
		Audience:      "dreamtrip-app",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	}
}

func testUser() *User {
	return &User{
		ID:       "11111111-2222-3333-4444-555555555555",
		Username: "ana",
		Email:    "ana@example.com",
	}
}

func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()
	user := testUser()

	mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil)
	mockRepo.On("VerifyPassword", ctx, user.ID, "secret").Return(nil)
	mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

	accessToken, refreshToken, err := service.Login(ctx, user.Email, "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// The access token must parse back with the configured claims.
	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "dreamtrip-api", claims.Issuer)
	assert.Contains(t, claims.Audience, "dreamtrip-app")

	mockRepo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()
	user := testUser()

	mockRepo.On("GetUserByEmail", ctx, user.Email).Return(user, nil)
	mockRepo.On("VerifyPassword", ctx, user.ID, "wrong").Return(ErrUnauthenticated)

	_, _, err := service.Login(ctx, user.Email, "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogin_UnknownEmail(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()

	mockRepo.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, ErrNotFound)

	_, _, err := service.Login(ctx, "ghost@example.com", "any")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestRegister_Conflict(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()

	mockRepo.On("Register", ctx, "ana", "ana@example.com", "secret").
		Return("", fmt.Errorf("email already registered: %w", ErrConflict))

	_, err := service.Register(ctx, "ana", "ana@example.com", "secret")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRefreshSession_RotatesToken(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()
	user := testUser()

	mockRepo.On("GetRefreshTokenInfo", ctx, "old-token").
		Return(user.ID, time.Now().Add(time.Hour), nil, nil)
	mockRepo.On("GetUserByID", ctx, user.ID).Return(user, nil)
	mockRepo.On("StoreRefreshToken", ctx, user.ID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)
	mockRepo.On("InvalidateRefreshToken", ctx, "old-token").Return(nil)

	accessToken, refreshToken, err := service.RefreshSession(ctx, "old-token")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEqual(t, "old-token", refreshToken)
	mockRepo.AssertExpectations(t)
}

func TestRefreshSession_Expired(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()

	mockRepo.On("GetRefreshTokenInfo", ctx, "stale").
		Return("some-user", time.Now().Add(-time.Hour), nil, nil)

	_, _, err := service.RefreshSession(ctx, "stale")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	mockRepo.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRefreshSession_AlreadyInvalidated(t *testing.T) {
	mockRepo := new(MockAuthRepo)
	service := NewAuthService(mockRepo, testJWTConfig(), slog.Default())
	ctx := context.Background()
	revokedAt := time.Now().Add(-time.Minute)

	mockRepo.On("GetRefreshTokenInfo", ctx, "revoked").
		Return("some-user", time.Now().Add(time.Hour), &revokedAt, nil)

	_, _, err := service.RefreshSession(ctx, "revoked")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
