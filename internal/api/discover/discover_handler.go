package discover

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/dreamtrip-app/dreamtrip-api/internal/api"
	"github.com/dreamtrip-app/dreamtrip-api/internal/api/auth"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

type HandlerImpl struct {
	discoverService Service
	logger          *slog.Logger
}

func NewHandlerImpl(discoverService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		discoverService: discoverService,
		logger:          logger,
	}
}

type quickTripRequest struct {
	Destination string `json:"destination"`
}

// GetPackages handles GET /discover/packages. An optional ?category= query
// narrows the personalized catalog to one filter pill.
func (h *HandlerImpl) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DiscoverHandler").Start(r.Context(), "GetPackages")
	defer span.End()

	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	catalog, err := h.discoverService.PersonalizedPackages(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to personalize catalog", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Personalization failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "failed to load packages")
		return
	}

	category := r.URL.Query().Get("category")
	if category != "" {
		catalog = &types.PersonalizedCatalog{
			Preferences: catalog.Preferences,
			Packages:    FilterByCategory(catalog.Packages, category),
		}
		span.SetAttributes(attribute.String("filter.category", category))
	}

	api.WriteJSONResponse(w, r, http.StatusOK, catalog)
}

// GetPlaces handles GET /discover/places.
func (h *HandlerImpl) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DiscoverHandler").Start(r.Context(), "GetPlaces")
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, h.discoverService.PopularPlaces(ctx))
}

// QuickTrip handles POST /discover/quick-trip. It turns a bare destination
// search into a fully defaulted trip request the client can hand straight to
// plan generation.
func (h *HandlerImpl) QuickTrip(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("DiscoverHandler").Start(r.Context(), "QuickTrip")
	defer span.End()

	var req quickTripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination is required")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, h.discoverService.QuickTrip(req.Destination))
}
