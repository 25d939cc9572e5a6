package prometheus

import (
	"fmt"
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Analysis pipeline
	AnalysesTotal        CounterVec
	AnalysisDuration     HistogramVec
	BrandMatchesTotal    CounterVec
	IndicatorHitsTotal   CounterVec
	HighRiskScoresTotal  CounterVec
	BatchListingsTotal   CounterVec
	BatchDuration        HistogramVec
	BatchSize            HistogramVec

	// Brand context cache
	ContextCacheHitsTotal   CounterVec
	ContextCacheMissesTotal CounterVec
	ContextCacheEntries     GaugeVec

	// Variation index
	IndexRebuildsTotal   CounterVec
	IndexRebuildDuration HistogramVec
	IndexVariationsTotal GaugeVec

	// Knowledge graph
	GraphQueryDuration HistogramVec
	GraphBrandsTotal   GaugeVec

	// Messaging
	EventsPublishedTotal CounterVec
	EventsConsumedTotal  CounterVec
	EventProcessDuration HistogramVec

	// Infrastructure
	DBPoolActive    GaugeVec
	DBPoolSize      GaugeVec
	DBQueryDuration HistogramVec

	// System health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default buckets
var (
	DefaultHTTPDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultAnalysisDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
	DefaultRebuildDurationBuckets  = []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
	DefaultBatchSizeBuckets        = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}
	DefaultDBDurationBuckets       = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers every application metric and returns the handle set.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Analysis
	m.AnalysesTotal = collector.RegisterCounter("analyses_total", "Listing analyses by outcome", "outcome")
	m.AnalysisDuration = collector.RegisterHistogram("analysis_duration_seconds", "Listing analysis duration", DefaultAnalysisDurationBuckets, "outcome")
	m.BrandMatchesTotal = collector.RegisterCounter("brand_matches_total", "Brand mentions by match type", "match_type")
	m.IndicatorHitsTotal = collector.RegisterCounter("indicator_hits_total", "Triggered counterfeit indicators", "indicator")
	m.HighRiskScoresTotal = collector.RegisterCounter("high_risk_scores_total", "Listings scored HIGH risk", "brand")
	m.BatchListingsTotal = collector.RegisterCounter("batch_listings_total", "Listings processed in batches", "status")
	m.BatchDuration = collector.RegisterHistogram("batch_duration_seconds", "Batch analysis duration", DefaultRebuildDurationBuckets)
	m.BatchSize = collector.RegisterHistogram("batch_size", "Listings per batch", DefaultBatchSizeBuckets)

	// Context cache
	m.ContextCacheHitsTotal = collector.RegisterCounter("context_cache_hits_total", "Brand context cache hits")
	m.ContextCacheMissesTotal = collector.RegisterCounter("context_cache_misses_total", "Brand context cache misses")
	m.ContextCacheEntries = collector.RegisterGauge("context_cache_entries", "Resident brand context entries")

	// Variation index
	m.IndexRebuildsTotal = collector.RegisterCounter("index_rebuilds_total", "Variation index rebuilds", "status")
	m.IndexRebuildDuration = collector.RegisterHistogram("index_rebuild_duration_seconds", "Variation index rebuild duration", DefaultRebuildDurationBuckets)
	m.IndexVariationsTotal = collector.RegisterGauge("index_variations_total", "Variations held by the index")

	// Graph
	m.GraphQueryDuration = collector.RegisterHistogram("graph_query_duration_seconds", "Knowledge graph query duration", DefaultDBDurationBuckets, "query_type")
	m.GraphBrandsTotal = collector.RegisterGauge("graph_brands_total", "Brands present in the knowledge graph")

	// Messaging
	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events published", "topic", "status")
	m.EventsConsumedTotal = collector.RegisterCounter("events_consumed_total", "Events consumed", "topic", "status")
	m.EventProcessDuration = collector.RegisterHistogram("event_process_duration_seconds", "Event handler duration", DefaultHTTPDurationBuckets, "topic")

	// Infrastructure
	m.DBPoolActive = collector.RegisterGauge("db_pool_active", "Active database connections", "db")
	m.DBPoolSize = collector.RegisterGauge("db_pool_size", "Database connection pool size", "db")
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "db", "operation")

	// System health
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_type")

	return m
}

// Helpers

func RecordHTTPRequest(metrics *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	status := fmt.Sprintf("%d", statusCode)
	metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordBrandMatch(metrics *AppMetrics, matchType listing.MatchType) {
	metrics.BrandMatchesTotal.WithLabelValues(string(matchType)).Inc()
}

func RecordIndicatorHit(metrics *AppMetrics, indicator string) {
	metrics.IndicatorHitsTotal.WithLabelValues(indicator).Inc()
}

func RecordBatch(metrics *AppMetrics, size, failed int, duration time.Duration) {
	metrics.BatchSize.WithLabelValues().Observe(float64(size))
	metrics.BatchDuration.WithLabelValues().Observe(duration.Seconds())
	metrics.BatchListingsTotal.WithLabelValues("ok").Add(float64(size - failed))
	if failed > 0 {
		metrics.BatchListingsTotal.WithLabelValues("failed").Add(float64(failed))
	}
}

func RecordIndexRebuild(metrics *AppMetrics, err error, variations int, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	metrics.IndexRebuildsTotal.WithLabelValues(status).Inc()
	metrics.IndexRebuildDuration.WithLabelValues().Observe(duration.Seconds())
	if err == nil {
		metrics.IndexVariationsTotal.WithLabelValues().Set(float64(variations))
	}
}

func RecordGraphQuery(metrics *AppMetrics, queryType string, duration time.Duration, err error) {
	metrics.GraphQueryDuration.WithLabelValues(queryType).Observe(duration.Seconds())
	if err != nil {
		metrics.ErrorsTotal.WithLabelValues("neo4j", "query_error").Inc()
	}
}

func RecordEventPublished(metrics *AppMetrics, topic string, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	metrics.EventsPublishedTotal.WithLabelValues(topic, status).Inc()
}

func RecordEventConsumed(metrics *AppMetrics, topic string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	metrics.EventsConsumedTotal.WithLabelValues(topic, status).Inc()
	metrics.EventProcessDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

func RecordError(metrics *AppMetrics, component, errorType string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

//Personal.AI order the ending
