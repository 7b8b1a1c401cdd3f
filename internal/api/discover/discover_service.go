package discover

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dreamtrip-app/dreamtrip-api/app/observability/metrics"
	"github.com/dreamtrip-app/dreamtrip-api/internal/types"
)

// TripHistory is the slice of the trip store the ranker needs.
type TripHistory interface {
	ListTripsByUser(ctx context.Context, userID uuid.UUID) ([]types.TripRecord, error)
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	PersonalizedPackages(ctx context.Context, userID uuid.UUID) (*types.PersonalizedCatalog, error)
	PopularPlaces(ctx context.Context) []types.PopularPlace
	QuickTrip(destination string) *types.TripRequest
}

type ServiceImpl struct {
	logger  *slog.Logger
	history TripHistory
	cache   *cache.Cache
}

func NewService(history TripHistory, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:  logger,
		history: history,
		cache:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

// PersonalizedPackages ranks the curated catalog against the user's trip
// history. A history read failure degrades to the unranked catalog instead of
// failing the discover screen.
func (s *ServiceImpl) PersonalizedPackages(ctx context.Context, userID uuid.UUID) (*types.PersonalizedCatalog, error) {
	ctx, span := otel.Tracer("DiscoverService").Start(ctx, "PersonalizedPackages", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "PersonalizedPackages"), slog.String("userID", userID.String()))

	cacheKey := "catalog:" + userID.String()
	if cached, found := s.cache.Get(cacheKey); found {
		if catalog, ok := cached.(*types.PersonalizedCatalog); ok {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return catalog, nil
		}
	}

	start := time.Now()

	history, err := s.history.ListTripsByUser(ctx, userID)
	if err != nil {
		l.WarnContext(ctx, "Falling back to unranked catalog", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "History unavailable")
		return &types.PersonalizedCatalog{
			Preferences: []string{},
			Packages:    ScorePackages(TripPackages, nil),
		}, nil
	}

	prefs := AggregatePreferences(history)
	packages := ScorePackages(TripPackages, prefs)
	SortByScore(packages)

	catalog := &types.PersonalizedCatalog{
		Preferences: prefs,
		Packages:    packages,
	}
	if catalog.Preferences == nil {
		catalog.Preferences = []string{}
	}
	s.cache.Set(cacheKey, catalog, cache.DefaultExpiration)

	metrics.Get().CatalogRankDuration.Record(ctx, time.Since(start).Seconds())
	span.SetAttributes(
		attribute.Int("results.preferences", len(prefs)),
		attribute.Int("results.packages", len(packages)),
	)
	span.SetStatus(codes.Ok, "Catalog personalized")
	return catalog, nil
}

func (s *ServiceImpl) PopularPlaces(ctx context.Context) []types.PopularPlace {
	return PopularPlaces
}

// QuickTrip builds a trip request from just a destination name using the
// quick-search defaults: a five day moderate couple trip starting today.
func (s *ServiceImpl) QuickTrip(destination string) *types.TripRequest {
	now := time.Now()
	return &types.TripRequest{
		Destination: types.Destination{Name: strings.TrimSpace(destination)},
		Traveler: &types.TravelerOption{
			ID:     2,
			Title:  "Couple",
			Desc:   "A romantic getaway",
			People: "2 People",
		},
		Budget: &types.BudgetOption{
			ID:    2,
			Title: "Moderate",
			Desc:  "Keep cost on the average side",
		},
		TotalDays: 5,
		StartDate: now.Format(time.RFC3339),
		EndDate:   now.Add(5 * 24 * time.Hour).Format(time.RFC3339),
	}
}

// FilterByCategory keeps packages matching the given filter pill. "All" keeps
// everything. "Solo" and "Budget" match their questionnaire equivalents
// "Just Me" and "Cheap".
func FilterByCategory(packages []types.ScoredPackage, category string) []types.ScoredPackage {
	if category == "" || category == "All" {
		return packages
	}

	filtered := make([]types.ScoredPackage, 0, len(packages))
	for _, pkg := range packages {
		var traveler, budget string
		if pkg.Template.Traveler != nil {
			traveler = pkg.Template.Traveler.Title
		}
		if pkg.Template.Budget != nil {
			budget = pkg.Template.Budget.Title
		}

		switch {
		case containsTag(pkg.Tags, category),
			strings.Contains(traveler, category),
			budget == category,
			category == "Solo" && traveler == justMeTitle,
			category == "Budget" && budget == "Cheap":
			filtered = append(filtered, pkg)
		}
	}
	return filtered
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
