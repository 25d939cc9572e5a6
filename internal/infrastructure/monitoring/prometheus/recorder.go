package prometheus

import (
	"time"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
)

// Recorder feeds scoring telemetry into the registered metrics. It satisfies
// the scoring service's Recorder contract.
type Recorder struct {
	metrics *AppMetrics
}

func NewRecorder(metrics *AppMetrics) *Recorder {
	return &Recorder{metrics: metrics}
}

// ObserveAnalysis counts one completed analysis and records its latency,
// both labelled by outcome.
func (r *Recorder) ObserveAnalysis(outcome listing.Outcome, duration time.Duration) {
	r.metrics.AnalysesTotal.WithLabelValues(string(outcome)).Inc()
	r.metrics.AnalysisDuration.WithLabelValues(string(outcome)).Observe(duration.Seconds())
}

// ObserveCacheHit records a brand context cache lookup.
func (r *Recorder) ObserveCacheHit(hit bool) {
	if hit {
		r.metrics.ContextCacheHitsTotal.WithLabelValues().Inc()
	} else {
		r.metrics.ContextCacheMissesTotal.WithLabelValues().Inc()
	}
}

// ObserveResult records per-result detail beyond the outcome counter: the
// match type, each triggered indicator, and HIGH risk scores by brand.
func (r *Recorder) ObserveResult(result *listing.ScoreResult) {
	if result == nil {
		return
	}
	if result.Mention != nil {
		RecordBrandMatch(r.metrics, result.Mention.Type)
	}
	for _, ind := range result.Indicators {
		if ind.Triggered {
			RecordIndicatorHit(r.metrics, ind.Name)
		}
	}
	if result.RiskLevel == listing.RiskHigh && result.Mention != nil {
		r.metrics.HighRiskScoresTotal.WithLabelValues(result.Mention.Brand).Inc()
	}
}

// NopRecorder discards all observations. Useful for CLI paths and tests.
type NopRecorder struct{}

func (NopRecorder) ObserveAnalysis(outcome listing.Outcome, duration time.Duration) {}
func (NopRecorder) ObserveCacheHit(hit bool)                                        {}

//Personal.AI order the ending
