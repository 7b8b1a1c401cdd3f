package trip

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveTrip(ctx context.Context, record *types.TripRecord) (*types.TripRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripRecord), args.Error(1)
}

func (m *MockRepository) GetTrip(ctx context.Context, userID uuid.UUID, docID string) (*types.TripRecord, error) {
	args := m.Called(ctx, userID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TripRecord), args.Error(1)
}

func (m *MockRepository) ListTripsByUser(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TripRecord), args.Error(1)
}

func (m *MockRepository) UpdatePlan(ctx context.Context, userID uuid.UUID, docID string, plan types.GeneratedPlan) error {
	args := m.Called(ctx, userID, docID, plan)
	return args.Error(0)
}

func (m *MockRepository) UpdateNotes(ctx context.Context, userID uuid.UUID, docID string, notes string) error {
	args := m.Called(ctx, userID, docID, notes)
	return args.Error(0)
}

func (m *MockRepository) DeleteTrip(ctx context.Context, userID uuid.UUID, docID string) error {
	args := m.Called(ctx, userID, docID)
	return args.Error(0)
}

// MockGenerator is a mock implementation of PlanGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func newTestRequest() *types.TripRequest {
	return &types.TripRequest{
		Destination: types.Destination{Name: "Lisbon, Portugal"},
		Traveler:    &types.TravelerOption{ID: 2, Title: "Couple", People: "2 People"},
		Budget:      &types.BudgetOption{ID: 2, Title: "Moderate"},
		TotalDays:   4,
	}
}

func TestGeneratePlan_Success(t *testing.T) {
	mockRepo := new(MockRepository)
	mockGen := new(MockGenerator)
	service := NewService(mockRepo, mockGen, slog.Default())
	ctx := context.Background()
	userID := uuid.New()
	req := newTestRequest()

	response := `{"travel_plan": {"location": "Lisbon, Portugal", "hotels": [], "daily_plan": []}}`
	mockGen.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return len(prompt) > 0
	})).Return(response, nil)

	var saved *types.TripRecord
	mockRepo.On("SaveTrip", mock.Anything, mock.AnythingOfType("*types.TripRecord")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*types.TripRecord)
		}).
		Return(&types.TripRecord{UserID: userID, DocID: "generated"}, nil)

	record, err := service.GeneratePlan(ctx, userID, "", req)
	require.NoError(t, err)
	require.NotNil(t, record)

	// The snapshot must round-trip back into the original request.
	require.NotNil(t, saved)
	assert.Equal(t, userID, saved.UserID)
	assert.NotEmpty(t, saved.DocID)
	var roundTrip types.TripRequest
	require.NoError(t, json.Unmarshal([]byte(saved.RequestSnapshot), &roundTrip))
	assert.Equal(t, *req, roundTrip)
	assert.Equal(t, "Lisbon, Portugal", saved.Plan.TravelPlan.Location)

	mockGen.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestGeneratePlan_KeepsDocIDOnRegenerate(t *testing.T) {
	mockRepo := new(MockRepository)
	mockGen := new(MockGenerator)
	service := NewService(mockRepo, mockGen, slog.Default())
	userID := uuid.New()

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return(`{"travel_plan": {"hotels": [], "daily_plan": []}}`, nil)
	mockRepo.On("SaveTrip", mock.Anything, mock.MatchedBy(func(r *types.TripRecord) bool {
		return r.DocID == "existing-doc"
	})).Return(&types.TripRecord{UserID: userID, DocID: "existing-doc"}, nil)

	record, err := service.GeneratePlan(context.Background(), userID, "existing-doc", newTestRequest())
	require.NoError(t, err)
	assert.Equal(t, "existing-doc", record.DocID)
	mockRepo.AssertExpectations(t)
}

func TestGeneratePlan_RecoversTruncatedResponse(t *testing.T) {
	mockRepo := new(MockRepository)
	mockGen := new(MockGenerator)
	service := NewService(mockRepo, mockGen, slog.Default())
	userID := uuid.New()

	// Model output cut off after the flight details object, leaving the two
	// wrapper braces unclosed but the document still ending in '}'.
	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("```json\n{\"travel_plan\": {\"location\": \"Lisbon\", \"hotels\": [], \"daily_plan\": [], \"flight_details\": {\"origin\": \"Lisbon\"}", nil)
	mockRepo.On("SaveTrip", mock.Anything, mock.Anything).
		Return(&types.TripRecord{UserID: userID, DocID: "d"}, nil)

	record, err := service.GeneratePlan(context.Background(), userID, "d", newTestRequest())
	require.NoError(t, err)
	assert.Equal(t, "d", record.DocID)
}

func TestGeneratePlan_UnusableResponse(t *testing.T) {
	mockRepo := new(MockRepository)
	mockGen := new(MockGenerator)
	service := NewService(mockRepo, mockGen, slog.Default())

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("I am sorry, I cannot produce an itinerary for that.", nil)

	_, err := service.GeneratePlan(context.Background(), uuid.New(), "", newTestRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPlanUnusable)
	mockRepo.AssertNotCalled(t, "SaveTrip", mock.Anything, mock.Anything)
}

func TestGeneratePlan_GeneratorError(t *testing.T) {
	mockRepo := new(MockRepository)
	mockGen := new(MockGenerator)
	service := NewService(mockRepo, mockGen, slog.Default())

	mockGen.On("GenerateContent", mock.Anything, mock.Anything).
		Return("", errors.New("model overloaded"))

	_, err := service.GeneratePlan(context.Background(), uuid.New(), "", newTestRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPlanUnusable)
	mockRepo.AssertNotCalled(t, "SaveTrip", mock.Anything, mock.Anything)
}

func TestListTrips_CachesResult(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockGenerator), slog.Default())
	userID := uuid.New()

	trips := []types.TripRecord{{UserID: userID, DocID: "a"}}
	mockRepo.On("ListTripsByUser", mock.Anything, userID).Return(trips, nil).Once()

	first, err := service.ListTrips(context.Background(), userID)
	require.NoError(t, err)
	second, err := service.ListTrips(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	mockRepo.AssertNumberOfCalls(t, "ListTripsByUser", 1)
}

func TestUpdateNotes_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockGenerator), slog.Default())
	userID := uuid.New()

	mockRepo.On("UpdateNotes", mock.Anything, userID, "missing", "note").Return(ErrTripNotFound)

	err := service.UpdateNotes(context.Background(), userID, "missing", "note")
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestDeleteTrip_InvalidatesListCache(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockGenerator), slog.Default())
	userID := uuid.New()

	trips := []types.TripRecord{{UserID: userID, DocID: "a"}}
	mockRepo.On("ListTripsByUser", mock.Anything, userID).Return(trips, nil).Twice()
	mockRepo.On("DeleteTrip", mock.Anything, userID, "a").Return(nil)

	_, err := service.ListTrips(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, service.DeleteTrip(context.Background(), userID, "a"))

	_, err = service.ListTrips(context.Background(), userID)
	require.NoError(t, err)
	mockRepo.AssertNumberOfCalls(t, "ListTripsByUser", 2)
}
