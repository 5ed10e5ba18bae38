package improvement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/logger"
)

// Phase identifies which part of a search produced an evaluation
type Phase string

const (
	PhaseExhaustive   Phase = "exhaustive"
	PhaseExploration  Phase = "exploration"
	PhaseExploitation Phase = "exploitation"
)

// Search modes reported in SearchResult.Mode
const (
	ModeTrivial    = "trivial"
	ModeExhaustive = "exhaustive"
	ModeRecursive  = "recursive"
)

// Evaluation is a single cost-engine call as seen by an observer
type Evaluation[P any] struct {
	Index    int
	Phase    Phase
	Point    P
	Cost     float64
	Improved bool
}

// RRSConfig holds the recursive random search parameters
type RRSConfig struct {
	// ExplorationConfidence (p) is the confidence that an exploration batch hits the top percentile
	ExplorationConfidence float64
	// ExplorationPercentile (r) is the target percentile and the initial local-search radius
	ExplorationPercentile float64
	// ExploitationConfidence (q) is the confidence used to derive local-search patience
	ExploitationConfidence float64
	// ExploitationThreshold (v) is the percentile a local sample must beat
	ExploitationThreshold float64
	// ShrinkRatio (c) multiplies the radius when patience runs out
	ShrinkRatio float64
	// TerminationRadius (s_t) ends a local search once the radius falls to it
	TerminationRadius float64
}

// DefaultRRSConfig returns the standard parameter set
func DefaultRRSConfig() RRSConfig {
	return RRSConfig{
		ExplorationConfidence:  0.99,
		ExplorationPercentile:  0.1,
		ExploitationConfidence: 0.99,
		ExploitationThreshold:  0.8,
		ShrinkRatio:            0.5,
		TerminationRadius:      0.001,
	}
}

// Validate checks every parameter lies in (0, 1) and that s_t < r
func (c RRSConfig) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"exploration_confidence", c.ExplorationConfidence},
		{"exploration_percentile", c.ExplorationPercentile},
		{"exploitation_confidence", c.ExploitationConfidence},
		{"exploitation_threshold", c.ExploitationThreshold},
		{"shrink_ratio", c.ShrinkRatio},
		{"termination_radius", c.TerminationRadius},
	}
	for _, f := range fields {
		if !(f.value > 0 && f.value < 1) {
			return &InvalidConfigError{Field: f.name, Value: f.value, Reason: "must be in (0, 1)"}
		}
	}
	if c.TerminationRadius >= c.ExplorationPercentile {
		return &InvalidConfigError{
			Field:  "termination_radius",
			Value:  c.TerminationRadius,
			Reason: "must be below exploration_percentile",
		}
	}
	return nil
}

// SampleSize returns n = round(ln(1-p) / ln(1-r)), at least 1
func (c RRSConfig) SampleSize() int {
	return derivedCount(c.ExplorationConfidence, c.ExplorationPercentile)
}

// Patience returns l = round(ln(1-q) / ln(1-v)), at least 1
func (c RRSConfig) Patience() int {
	return derivedCount(c.ExploitationConfidence, c.ExploitationThreshold)
}

func derivedCount(confidence, percentile float64) int {
	n := int(math.Round(math.Log(1-confidence) / math.Log(1-percentile)))
	if n < 1 {
		return 1
	}
	return n
}

// SearchResult is the outcome of FindBest
type SearchResult[P any] struct {
	// Best is the lowest-cost point evaluated
	Best P
	// BestCost is NaN when no evaluation was made
	BestCost    float64
	Evaluations int
	Mode        string
	StopReason  string
	Duration    time.Duration
}

// RecursiveRandomSearch finds a low-cost point in a parameter space with a
// bounded number of cost evaluations. Small spaces are enumerated; large
// ones alternate random exploration with shrinking-radius local search.
type RecursiveRandomSearch[P any] struct {
	config   RRSConfig
	logger   *slog.Logger
	progress func(evaluations int, best float64)
	observer func(Evaluation[P])
}

// NewRecursiveRandomSearch validates config and returns an optimizer
func NewRecursiveRandomSearch[P any](config RRSConfig) (*RecursiveRandomSearch[P], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &RecursiveRandomSearch[P]{
		config: config,
		logger: logger.Default,
	}, nil
}

// WithProgressReporter sets a callback invoked after every evaluation
func (s *RecursiveRandomSearch[P]) WithProgressReporter(fn func(evaluations int, best float64)) *RecursiveRandomSearch[P] {
	s.progress = fn
	return s
}

// WithObserver sets a callback receiving every evaluation in order
func (s *RecursiveRandomSearch[P]) WithObserver(fn func(Evaluation[P])) *RecursiveRandomSearch[P] {
	s.observer = fn
	return s
}

// WithLogger overrides the logger
func (s *RecursiveRandomSearch[P]) WithLogger(l *slog.Logger) *RecursiveRandomSearch[P] {
	if l != nil {
		s.logger = l
	}
	return s
}

// Config returns the search parameters
func (s *RecursiveRandomSearch[P]) Config() RRSConfig {
	return s.config
}

// FindBest searches space for the point with the lowest cost under engine.
// A cost-engine error aborts the search and is returned as a
// *CostEvaluationError. If ctx ends first, the best point so far is
// returned together with the wrapped context error.
func (s *RecursiveRandomSearch[P]) FindBest(ctx context.Context, space SearchSpace[P], engine CostEngine[P]) (result *SearchResult[P], err error) {
	if space == nil {
		return nil, ErrNilSpace
	}
	if engine == nil {
		return nil, ErrNilCostEngine
	}

	dims := space.NumDimensions()
	n := s.config.SampleSize()
	card := space.NumUniquePoints()

	ctx, span := tracer.Start(ctx, "improvement.FindBest",
		trace.WithAttributes(
			attribute.Int("search.dimensions", dims),
			attribute.Int("search.sample_size", n),
			attribute.String("search.cardinality", card.String()),
		),
	)
	defer span.End()

	run := &searchRun[P]{
		search:   s,
		space:    space,
		engine:   engine,
		bestCost: math.NaN(),
	}
	start := time.Now()

	defer func() {
		elapsed := time.Since(start)
		searchDuration.Observe(elapsed.Seconds())
		if result != nil {
			result.Duration = elapsed
		}

		status := "ok"
		switch {
		case err != nil && result != nil:
			status = "interrupted"
		case err != nil:
			status = "error"
		}
		searchRuns.WithLabelValues(run.mode, status).Inc()

		span.SetAttributes(
			attribute.String("search.mode", run.mode),
			attribute.Int("search.evaluations", run.evaluations),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		span.SetAttributes(attribute.Float64("search.best_cost", run.bestCost))
		span.SetStatus(codes.Ok, "")

		s.logger.Info("search completed",
			"mode", run.mode,
			"evaluations", run.evaluations,
			"best_cost", run.bestCost,
			"stop_reason", result.StopReason)
	}()

	switch {
	case dims == 0:
		run.mode = ModeTrivial
		s.logger.Debug("search space has no dimensions, skipping evaluation")
		return &SearchResult[P]{
			Best:       space.EmptyPoint(),
			BestCost:   math.NaN(),
			Mode:       ModeTrivial,
			StopReason: "no dimensions to tune",
		}, nil

	case card.Less(n):
		run.mode = ModeExhaustive
		result, err = run.exhaustive(ctx, n)

	default:
		run.mode = ModeRecursive
		result, err = run.recursive(ctx, dims, n)
	}

	// A cost engine that observed the context ending counts as an interruption.
	if err != nil && result == nil && run.found && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return run.interrupted(ctx)
	}
	return result, err
}

// searchRun holds the mutable state of one FindBest call
type searchRun[P any] struct {
	search *RecursiveRandomSearch[P]
	space  SearchSpace[P]
	engine CostEngine[P]
	mode   string

	evaluations     int
	lastImprovement int
	found           bool
	best            P
	bestCost        float64
}

func (r *searchRun[P]) evaluate(ctx context.Context, phase Phase, point P) (float64, error) {
	r.evaluations++
	searchEvaluations.WithLabelValues(string(phase)).Inc()

	cost, err := r.engine.Cost(ctx, point)
	if err == nil && math.IsNaN(cost) {
		err = ErrNaNCost
	}
	if err != nil {
		return 0, &CostEvaluationError{
			Point:      fmt.Sprint(point),
			Evaluation: r.evaluations,
			Err:        err,
		}
	}

	improved := !r.found || cost < r.bestCost
	if improved {
		r.found = true
		r.best = point
		r.bestCost = cost
	}

	if r.search.observer != nil {
		r.search.observer(Evaluation[P]{
			Index:    r.evaluations,
			Phase:    phase,
			Point:    point,
			Cost:     cost,
			Improved: improved,
		})
	}
	if r.search.progress != nil {
		r.search.progress(r.evaluations, r.bestCost)
	}
	return cost, nil
}

func (r *searchRun[P]) result(reason string) *SearchResult[P] {
	return &SearchResult[P]{
		Best:        r.best,
		BestCost:    r.bestCost,
		Evaluations: r.evaluations,
		Mode:        r.mode,
		StopReason:  reason,
	}
}

func (r *searchRun[P]) interrupted(ctx context.Context) (*SearchResult[P], error) {
	err := ctx.Err()
	if err == nil {
		return nil, nil
	}
	return r.result("interrupted: " + err.Error()),
		fmt.Errorf("search interrupted after %d evaluations: %w", r.evaluations, err)
}

// exhaustive evaluates every point of a space smaller than one sample batch
func (r *searchRun[P]) exhaustive(ctx context.Context, n int) (*SearchResult[P], error) {
	grid, err := r.space.Grid(false, n)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate search space: %w", err)
	}

	r.search.logger.Debug("enumerating search space", "points", len(grid))
	trace.SpanFromContext(ctx).AddEvent("exhaustive_enumeration",
		trace.WithAttributes(attribute.Int("search.grid_points", len(grid))))

	for _, point := range grid {
		if res, err := r.interrupted(ctx); err != nil {
			return res, err
		}
		if _, err := r.evaluate(ctx, PhaseExhaustive, point); err != nil {
			return nil, err
		}
	}

	return r.result(fmt.Sprintf("exhaustive enumeration of %d points", len(grid))), nil
}

// recursive runs exploration batches with threshold-triggered local search
func (r *searchRun[P]) recursive(ctx context.Context, dims, n int) (*SearchResult[P], error) {
	budget := BudgetForDimensions(dims)

	// Initial exploration batch; x0 is its minimum.
	var x0 P
	fx0 := math.Inf(1)
	for i := 0; i < n; i++ {
		if res, err := r.interrupted(ctx); err != nil {
			return res, err
		}
		point := r.space.RandomPoint()
		cost, err := r.evaluate(ctx, PhaseExploration, point)
		if err != nil {
			return nil, err
		}
		if i == 0 || cost < fx0 {
			x0, fx0 = point, cost
		}
	}

	// The since-improvement counter starts once the initial minimum is known
	// and is only reset by a local search that beats it.
	globalCost := fx0
	r.lastImprovement = r.evaluations

	history := []float64{fx0}
	threshold := fx0
	exploit := true
	batchCount := 0
	batchMin := math.Inf(1)

	r.search.logger.Debug("initial exploration complete",
		"samples", n,
		"best_cost", fx0,
		"max_evaluations", budget.MaxEvaluations,
		"max_since_improvement", budget.MaxSinceImprovement)

	for {
		if stop, reason := budget.Exhausted(r.evaluations, r.lastImprovement); stop {
			r.search.logger.Debug("search terminated", "reason", reason, "evaluations", r.evaluations)
			return r.result(reason), nil
		}
		if res, err := r.interrupted(ctx); err != nil {
			return res, err
		}

		if exploit {
			r.search.logger.Debug("exploiting", "center", x0, "cost", fx0, "evaluations", r.evaluations)
			localCost, err := r.localSearch(ctx, budget, x0, fx0)
			if err != nil {
				return nil, err
			}
			if localCost < globalCost {
				globalCost = localCost
				r.lastImprovement = r.evaluations
			}
			exploit = false
			continue
		}

		point := r.space.RandomPoint()
		cost, err := r.evaluate(ctx, PhaseExploration, point)
		if err != nil {
			return nil, err
		}
		if cost < threshold {
			x0, fx0 = point, cost
			exploit = true
		}

		batchCount++
		if cost < batchMin {
			batchMin = cost
		}
		if batchCount == n {
			history = append(history, batchMin)
			threshold = stat.Mean(history, nil)
			r.search.logger.Debug("exploitation threshold updated",
				"threshold", threshold,
				"batches", len(history))
			batchCount = 0
			batchMin = math.Inf(1)
		}
	}
}

// localSearch samples around center with a radius that starts at r and
// shrinks by c after l consecutive non-improving samples, stopping once the
// radius reaches s_t. It returns the cost of the final center, which is never
// worse than centerCost. It also returns early, without error, once the
// evaluation budget is spent or ctx is done.
func (r *searchRun[P]) localSearch(ctx context.Context, budget Budget, center P, centerCost float64) (float64, error) {
	cfg := r.search.config
	patience := cfg.Patience()
	radius := cfg.ExplorationPercentile
	misses := 0

	for radius > cfg.TerminationRadius {
		if r.evaluations >= budget.MaxEvaluations || ctx.Err() != nil {
			return centerCost, nil
		}

		candidate, err := r.space.RandomPointNear(center, radius)
		if err != nil {
			return centerCost, fmt.Errorf("failed to sample near %v: %w", center, err)
		}
		cost, err := r.evaluate(ctx, PhaseExploitation, candidate)
		if err != nil {
			return centerCost, err
		}

		if cost < centerCost {
			center, centerCost = candidate, cost
			misses = 0
			continue
		}

		misses++
		if misses >= patience {
			radius *= cfg.ShrinkRatio
			misses = 0
			radiusShrinks.Inc()
		}
	}
	return centerCost, nil
}
