package trip

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dreamtrip-app/dreamtrip-api/internal/api"
	"github.com/dreamtrip-app/dreamtrip-api/internal/api/auth"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

type HandlerImpl struct {
	tripService Service
	logger      *slog.Logger
}

func NewHandlerImpl(tripService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		tripService: tripService,
		logger:      logger,
	}
}

// GenerateTripRequest is the questionnaire payload plus an optional document
// id. Sending the id of an existing trip regenerates its plan in place.
type GenerateTripRequest struct {
	DocID string `json:"doc_id,omitempty"`
	types.TripRequest
}

type updateNotesRequest struct {
	Notes string `json:"notes"`
}

// GenerateTrip handles POST /trips/generate.
func (h *HandlerImpl) GenerateTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "GenerateTrip", trace.WithAttributes(
		attribute.String("http.route", "/trips/generate"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateTrip"))

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Missing user ID in context", slog.Any("error", err))
		span.SetStatus(codes.Error, "Unauthorized")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req GenerateTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Destination.Name == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "location_info.name is required")
		return
	}

	record, err := h.tripService.GeneratePlan(ctx, userID, req.DocID, &req.TripRequest)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, ErrPlanUnusable) {
			span.SetStatus(codes.Error, "Unusable AI response")
			api.ErrorResponse(w, r, http.StatusBadGateway, "the generated plan was unreadable, please try again")
			return
		}
		span.SetStatus(codes.Error, "Generation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to generate trip plan")
		return
	}

	span.SetStatus(codes.Ok, "Trip generated")
	api.WriteJSONResponse(w, r, http.StatusCreated, record)
}

// ListTrips handles GET /trips.
func (h *HandlerImpl) ListTrips(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "ListTrips")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	trips, err := h.tripService.ListTrips(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list trips", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to list trips")
		return
	}
	if trips == nil {
		trips = []types.TripRecord{}
	}

	span.SetAttributes(attribute.Int("results.trips", len(trips)))
	api.WriteJSONResponse(w, r, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (h *HandlerImpl) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "GetTrip")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	docID := chi.URLParam(r, "tripID")

	record, err := h.tripService.GetTrip(ctx, userID, docID)
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to get trip")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, record)
}

// UpdatePlan handles PUT /trips/{tripID}/plan. The client sends the whole
// edited plan back, for example after removing a hotel or an activity.
func (h *HandlerImpl) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "UpdatePlan")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	docID := chi.URLParam(r, "tripID")

	// The decode into GeneratedPlan backfills missing lists, so the shape
	// check runs on the raw body before the decode can paper over gaps.
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "unable to read request body")
		return
	}

	var plan types.GeneratedPlan
	if err := json.Unmarshal(body, &plan); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "body contains badly-formed JSON")
		return
	}
	if err := validatePlanDocument(body); err != nil {
		l := h.logger.With(slog.String("handler", "UpdatePlan"))
		l.WarnContext(ctx, "Rejected plan edit", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tripService.UpdatePlan(ctx, userID, docID, plan); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update plan", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to update plan")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// UpdateNotes handles PUT /trips/{tripID}/notes.
func (h *HandlerImpl) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "UpdateNotes")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	docID := chi.URLParam(r, "tripID")

	var req updateNotesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tripService.UpdateNotes(ctx, userID, docID, req.Notes); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update notes", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to update notes")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (h *HandlerImpl) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TripHandler").Start(r.Context(), "DeleteTrip")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}
	docID := chi.URLParam(r, "tripID")

	if err := h.tripService.DeleteTrip(ctx, userID, docID); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "trip not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete trip", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to delete trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
