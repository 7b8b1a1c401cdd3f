package discover

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// MockTripHistory is a mock implementation of TripHistory
type MockTripHistory struct {
	mock.Mock
}

func (m *MockTripHistory) ListTripsByUser(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TripRecord), args.Error(1)
}

func luxuryCoupleHistory(t *testing.T) []types.TripRecord {
	t.Helper()
	snapshot, err := json.Marshal(types.TripRequest{
		Destination: types.Destination{Name: "Maldives"},
		Traveler:    &types.TravelerOption{Title: "Couple"},
		Budget:      &types.BudgetOption{Title: "Luxury"},
	})
	require.NoError(t, err)
	return []types.TripRecord{{DocID: "past", RequestSnapshot: string(snapshot)}}
}

func TestPersonalizedPackages(t *testing.T) {
	mockHistory := new(MockTripHistory)
	service := NewService(mockHistory, slog.Default())
	userID := uuid.New()

	mockHistory.On("ListTripsByUser", mock.Anything, userID).Return(luxuryCoupleHistory(t), nil)

	catalog, err := service.PersonalizedPackages(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Luxury", "Couple"}, catalog.Preferences)
	require.Len(t, catalog.Packages, len(TripPackages))

	// Scores must be non-increasing and the top result must actually match
	// the luxury couple profile.
	for i := 1; i < len(catalog.Packages); i++ {
		assert.GreaterOrEqual(t, catalog.Packages[i-1].Score, catalog.Packages[i].Score)
	}
	top := catalog.Packages[0]
	assert.Positive(t, top.Score)
	assert.Contains(t, top.Tags, "Luxury")
}

func TestPersonalizedPackages_EmptyHistory(t *testing.T) {
	mockHistory := new(MockTripHistory)
	service := NewService(mockHistory, slog.Default())
	userID := uuid.New()

	mockHistory.On("ListTripsByUser", mock.Anything, userID).Return([]types.TripRecord{}, nil)

	catalog, err := service.PersonalizedPackages(context.Background(), userID)
	require.NoError(t, err)

	assert.Empty(t, catalog.Preferences)
	require.Len(t, catalog.Packages, len(TripPackages))
	for i, pkg := range catalog.Packages {
		assert.Zero(t, pkg.Score)
		assert.Equal(t, TripPackages[i].ID, pkg.ID, "catalog order must be unchanged")
	}
}

func TestPersonalizedPackages_HistoryErrorDegrades(t *testing.T) {
	mockHistory := new(MockTripHistory)
	service := NewService(mockHistory, slog.Default())
	userID := uuid.New()

	mockHistory.On("ListTripsByUser", mock.Anything, userID).Return(nil, errors.New("db down"))

	catalog, err := service.PersonalizedPackages(context.Background(), userID)
	require.NoError(t, err, "a history failure must not fail the discover screen")

	assert.Empty(t, catalog.Preferences)
	require.Len(t, catalog.Packages, len(TripPackages))
	for _, pkg := range catalog.Packages {
		assert.Zero(t, pkg.Score)
	}
}

func TestPersonalizedPackages_CachesResult(t *testing.T) {
	mockHistory := new(MockTripHistory)
	service := NewService(mockHistory, slog.Default())
	userID := uuid.New()

	mockHistory.On("ListTripsByUser", mock.Anything, userID).Return(luxuryCoupleHistory(t), nil).Once()

	first, err := service.PersonalizedPackages(context.Background(), userID)
	require.NoError(t, err)
	second, err := service.PersonalizedPackages(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockHistory.AssertNumberOfCalls(t, "ListTripsByUser", 1)
}

func TestQuickTrip(t *testing.T) {
	service := NewService(new(MockTripHistory), slog.Default())

	req := service.QuickTrip("  Lisbon, Portugal  ")

	assert.Equal(t, "Lisbon, Portugal", req.Destination.Name)
	require.NotNil(t, req.Traveler)
	assert.Equal(t, "Couple", req.Traveler.Title)
	require.NotNil(t, req.Budget)
	assert.Equal(t, "Moderate", req.Budget.Title)
	assert.Equal(t, 5, req.TotalDays)

	start, err := time.Parse(time.RFC3339, req.StartDate)
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, req.EndDate)
	require.NoError(t, err)
	assert.Equal(t, 5*24*time.Hour, end.Sub(start))
}

func TestPopularPlaces(t *testing.T) {
	service := NewService(new(MockTripHistory), slog.Default())
	places := service.PopularPlaces(context.Background())
	require.Len(t, places, 8)
	assert.Equal(t, "Paris, France", places[0].Name)
}
