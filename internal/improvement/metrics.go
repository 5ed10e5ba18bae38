package improvement

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("jobtuner.improvement")

var (
	// searchEvaluations counts cost evaluations.
	// Labels: phase (exhaustive, exploration, exploitation)
	searchEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobtuner",
		Subsystem: "search",
		Name:      "evaluations_total",
		Help:      "Total cost evaluations performed by the optimizer",
	}, []string{"phase"})

	// searchRuns counts completed or aborted searches.
	// Labels: mode (trivial, exhaustive, recursive), status (ok, error, interrupted)
	searchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jobtuner",
		Subsystem: "search",
		Name:      "runs_total",
		Help:      "Total optimizer runs by mode and outcome",
	}, []string{"mode", "status"})

	// searchDuration measures wall time per search.
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jobtuner",
		Subsystem: "search",
		Name:      "duration_seconds",
		Help:      "Optimizer run duration in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
	})

	// radiusShrinks counts local-search radius reductions.
	radiusShrinks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "jobtuner",
		Subsystem: "search",
		Name:      "radius_shrinks_total",
		Help:      "Total local-search radius reductions",
	})
)
