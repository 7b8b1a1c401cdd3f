package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dreamtrip-app/dreamtrip-api/app/observability/metrics"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

var ErrTripNotFound = errors.New("trip not found")

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	SaveTrip(ctx context.Context, record *types.TripRecord) (*types.TripRecord, error)
	GetTrip(ctx context.Context, userID uuid.UUID, docID string) (*types.TripRecord, error)
	ListTripsByUser(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error)
	UpdatePlan(ctx context.Context, userID uuid.UUID, docID string, plan types.GeneratedPlan) error
	UpdateNotes(ctx context.Context, userID uuid.UUID, docID string, notes string) error
	DeleteTrip(ctx context.Context, userID uuid.UUID, docID string) error
}

// PgxPool is the subset of pgxpool.Pool the repository uses.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RepositoryImpl struct {
	pgpool PgxPool
	logger *slog.Logger
}

func NewRepository(pgpool PgxPool, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		pgpool: pgpool,
		logger: logger,
	}
}

// SaveTrip stores a generated trip. Regeneration under an existing doc id
// replaces the plan and snapshot in place, matching the client's
// "regenerate this trip" flow.
func (r *RepositoryImpl) SaveTrip(ctx context.Context, record *types.TripRecord) (*types.TripRecord, error) {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "SaveTrip", trace.WithAttributes(
		attribute.String("user_id", record.UserID.String()),
		attribute.String("doc_id", record.DocID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SaveTrip"))

	planJSON, err := json.Marshal(record.Plan)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}

	// The conflict branch leaves notes untouched: regenerating a plan must
	// not wipe what the user wrote about the trip.
	query := `
		INSERT INTO trips (user_id, doc_id, plan, request_snapshot, notes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, doc_id)
		DO UPDATE SET plan = EXCLUDED.plan,
		              request_snapshot = EXCLUDED.request_snapshot,
		              updated_at = now()
		RETURNING id, created_at, updated_at
	`

	err = r.pgpool.QueryRow(ctx, query,
		record.UserID, record.DocID, planJSON, record.RequestSnapshot, record.Notes,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		l.ErrorContext(ctx, "Failed to save trip", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database insert failed")
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	span.SetStatus(codes.Ok, "Trip saved")
	return record, nil
}

func (r *RepositoryImpl) GetTrip(ctx context.Context, userID uuid.UUID, docID string) (*types.TripRecord, error) {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "GetTrip", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("doc_id", docID),
	))
	defer span.End()

	query := `
		SELECT id, user_id, doc_id, plan, request_snapshot, notes, created_at, updated_at
		FROM trips
		WHERE user_id = $1 AND doc_id = $2
	`

	record, err := r.scanTrip(r.pgpool.QueryRow(ctx, query, userID, docID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Trip not found")
			return nil, ErrTripNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	span.SetStatus(codes.Ok, "Trip retrieved")
	return record, nil
}

// ListTripsByUser returns the user's trip history, newest first. This is the
// ranker's input: each record carries the request snapshot exactly as
// serialized at generation time.
func (r *RepositoryImpl) ListTripsByUser(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error) {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "ListTripsByUser", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListTripsByUser"))

	query := `
		SELECT id, user_id, doc_id, plan, request_snapshot, notes, created_at, updated_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query trips", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []types.TripRecord
	for rows.Next() {
		record, err := r.scanTrip(rows)
		if err != nil {
			l.WarnContext(ctx, "Failed to scan trip row", slog.Any("error", err))
			continue
		}
		trips = append(trips, *record)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating trip rows: %w", err)
	}

	span.SetAttributes(attribute.Int("results.trips", len(trips)))
	span.SetStatus(codes.Ok, "Trips retrieved")
	return trips, nil
}

func (r *RepositoryImpl) UpdatePlan(ctx context.Context, userID uuid.UUID, docID string, plan types.GeneratedPlan) error {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "UpdatePlan", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("doc_id", docID),
	))
	defer span.End()

	planJSON, err := json.Marshal(plan)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE trips SET plan = $1, updated_at = now() WHERE user_id = $2 AND doc_id = $3`,
		planJSON, userID, docID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update plan", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTripNotFound
	}

	span.SetStatus(codes.Ok, "Plan updated")
	return nil
}

func (r *RepositoryImpl) UpdateNotes(ctx context.Context, userID uuid.UUID, docID string, notes string) error {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "UpdateNotes", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("doc_id", docID),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx,
		`UPDATE trips SET notes = $1, updated_at = now() WHERE user_id = $2 AND doc_id = $3`,
		notes, userID, docID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update notes", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return fmt.Errorf("failed to update notes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTripNotFound
	}

	span.SetStatus(codes.Ok, "Notes updated")
	return nil
}

func (r *RepositoryImpl) DeleteTrip(ctx context.Context, userID uuid.UUID, docID string) error {
	ctx, span := otel.Tracer("TripRepository").Start(ctx, "DeleteTrip", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
		attribute.String("doc_id", docID),
	))
	defer span.End()

	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM trips WHERE user_id = $1 AND doc_id = $2`,
		userID, docID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete trip", slog.Any("error", err))
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTripNotFound
	}

	span.SetStatus(codes.Ok, "Trip deleted")
	return nil
}

func (r *RepositoryImpl) scanTrip(row pgx.Row) (*types.TripRecord, error) {
	var record types.TripRecord
	var planJSON []byte

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.DocID,
		&planJSON,
		&record.RequestSnapshot,
		&record.Notes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(planJSON, &record.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored plan: %w", err)
	}
	return &record, nil
}
