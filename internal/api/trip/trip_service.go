package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/dreamtrip-app/dreamtrip-api/app/observability/metrics"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// ErrPlanUnusable marks a model response that survived no repair path. The
// handler maps it to a bad-gateway so the client can offer a retry.
var ErrPlanUnusable = errors.New("generated plan could not be normalized")

// PlanGenerator is the slice of the AI client the trip service needs.
type PlanGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GeneratePlan(ctx context.Context, userID uuid.UUID, docID string, req *types.TripRequest) (*types.TripRecord, error)
	GetTrip(ctx context.Context, userID uuid.UUID, docID string) (*types.TripRecord, error)
	ListTrips(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, docID string, plan types.GeneratedPlan) error
	UpdateNotes(ctx context.Context, userID uuid.UUID, docID string, notes string) error
	DeleteTrip(ctx context.Context, userID uuid.UUID, docID string) error
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	generator PlanGenerator
	cache     *cache.Cache
}

func NewService(repo Repository, generator PlanGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		generator: generator,
		cache:     cache.New(5*time.Minute, 10*time.Minute),
	}
}

// GeneratePlan runs the full round-trip: prompt, model call, normalization,
// persistence. An existing docID regenerates that trip in place; an empty one
// starts a new trip under a fresh id.
func (s *ServiceImpl) GeneratePlan(ctx context.Context, userID uuid.UUID, docID string, req *types.TripRequest) (*types.TripRecord, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GeneratePlan", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("destination", req.Destination.Name),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GeneratePlan"), slog.String("userID", userID.String()))

	if docID == "" {
		docID = uuid.NewString()
	}

	start := time.Now()
	metrics.Get().PlanGenerationsTotal.Add(ctx, 1)

	prompt := BuildPlanPrompt(req)
	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		l.ErrorContext(ctx, "AI generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI generation failed")
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	plan, repair, err := NormalizePlanResponse(raw)
	if err != nil {
		metrics.Get().PlanNormalizeFailsTotal.Add(ctx, 1)
		l.ErrorContext(ctx, "Plan normalization failed",
			slog.Any("error", err),
			slog.Int("response_len", len(raw)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Normalization failed")
		return nil, fmt.Errorf("%w: %w", ErrPlanUnusable, err)
	}
	if repair != RepairNone {
		metrics.Get().PlanRepairsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("repair_path", string(repair))))
		l.InfoContext(ctx, "Recovered truncated plan response",
			slog.String("repair_path", string(repair)))
	}

	snapshot, err := json.Marshal(req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to serialize trip request: %w", err)
	}

	record := &types.TripRecord{
		UserID:          userID,
		DocID:           docID,
		Plan:            *plan,
		RequestSnapshot: string(snapshot),
	}
	saved, err := s.repo.SaveTrip(ctx, record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to persist trip")
		return nil, err
	}
	s.cache.Delete(listCacheKey(userID))

	metrics.Get().PlanGenerationDuration.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(
		attribute.String("doc_id", docID),
		attribute.String("repair_path", string(repair)),
	)
	span.SetStatus(codes.Ok, "Plan generated")
	l.InfoContext(ctx, "Trip plan generated",
		slog.String("docID", docID),
		slog.Duration("took", time.Since(start)))
	return saved, nil
}

func (s *ServiceImpl) GetTrip(ctx context.Context, userID uuid.UUID, docID string) (*types.TripRecord, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "GetTrip")
	defer span.End()
	return s.repo.GetTrip(ctx, userID, docID)
}

// ListTrips returns the user's history, newest first. Results are cached
// briefly since the discover catalog re-reads the same history.
func (s *ServiceImpl) ListTrips(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "ListTrips")
	defer span.End()

	key := listCacheKey(userID)
	if cached, found := s.cache.Get(key); found {
		if trips, ok := cached.([]types.TripRecord); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return trips, nil
		}
	}

	trips, err := s.repo.ListTripsByUser(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.cache.Set(key, trips, cache.DefaultExpiration)
	return trips, nil
}

func (s *ServiceImpl) UpdatePlan(ctx context.Context, userID uuid.UUID, docID string, plan types.GeneratedPlan) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "UpdatePlan")
	defer span.End()

	if err := s.repo.UpdatePlan(ctx, userID, docID, plan); err != nil {
		span.RecordError(err)
		return err
	}
	s.cache.Delete(listCacheKey(userID))
	return nil
}

func (s *ServiceImpl) UpdateNotes(ctx context.Context, userID uuid.UUID, docID string, notes string) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "UpdateNotes")
	defer span.End()

	if err := s.repo.UpdateNotes(ctx, userID, docID, notes); err != nil {
		span.RecordError(err)
		return err
	}
	s.cache.Delete(listCacheKey(userID))
	return nil
}

func (s *ServiceImpl) DeleteTrip(ctx context.Context, userID uuid.UUID, docID string) error {
	ctx, span := otel.Tracer("TripService").Start(ctx, "DeleteTrip")
	defer span.End()

	if err := s.repo.DeleteTrip(ctx, userID, docID); err != nil {
		span.RecordError(err)
		return err
	}
	s.cache.Delete(listCacheKey(userID))
	return nil
}

func listCacheKey(userID uuid.UUID) string {
	return "trips:" + userID.String()
}
