package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	PlanGenerationsTotal    metric.Int64Counter
	PlanGenerationDuration  metric.Float64Histogram
	PlanRepairsTotal        metric.Int64Counter
	PlanNormalizeFailsTotal metric.Int64Counter
	CatalogRankDuration     metric.Float64Histogram
	DbQueryErrorsTotal      metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("DreamTripAPI")
		var err error
		m := &AppMetrics{}

		m.PlanGenerationsTotal, err = meter.Int64Counter(
			"plan_generations_total",
			metric.WithDescription("Total number of trip plan generation attempts"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_generations_total: %v", err)
		}

		m.PlanGenerationDuration, err = meter.Float64Histogram(
			"plan_generation_duration_seconds",
			metric.WithDescription("Duration of trip plan generation round-trips in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_generation_duration_seconds: %v", err)
		}

		m.PlanRepairsTotal, err = meter.Int64Counter(
			"plan_repairs_total",
			metric.WithDescription("Total number of AI responses recovered by a repair path"),
			metric.WithUnit("{response}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_repairs_total: %v", err)
		}

		m.PlanNormalizeFailsTotal, err = meter.Int64Counter(
			"plan_normalize_fails_total",
			metric.WithDescription("Total number of AI responses that could not be normalized"),
			metric.WithUnit("{response}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_normalize_fails_total: %v", err)
		}

		m.CatalogRankDuration, err = meter.Float64Histogram(
			"catalog_rank_duration_seconds",
			metric.WithDescription("Duration of catalog personalization runs in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create catalog_rank_duration_seconds: %v", err)
		}

		m.DbQueryErrorsTotal, err = meter.Int64Counter(
			"db_query_errors_total",
			metric.WithDescription("Total number of database query errors"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create db_query_errors_total: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. It initializes
// them lazily so tests can use the instruments without explicit setup.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}
