package tuner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/GoSim-25-26J-441/jobtuner/internal/costmodel"
	"github.com/GoSim-25-26J-441/jobtuner/internal/improvement"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/config"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/logger"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/paramspace"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

var tracer = otel.Tracer("jobtuner.tuner")

// CostEngine is the cost engine type the tuner drives
type CostEngine = improvement.CostEngine[paramspace.MultiJobPoint]

// Tuner runs recursive random search over the joint parameter space of a
// workflow described by a TuningConfig
type Tuner struct {
	cfg      *config.TuningConfig
	space    *paramspace.MultiJobSpace
	search   improvement.RRSConfig
	deadline time.Duration
	engine   CostEngine
	logger   *slog.Logger
	progress func(evaluations int, best float64)
}

// New builds the joint space, search parameters and profile cost model from cfg
func New(cfg *config.TuningConfig) (*Tuner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("tuning config is required")
	}

	space, err := BuildSpace(cfg)
	if err != nil {
		return nil, err
	}

	search := SearchConfig(cfg.Search)
	if err := search.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	deadline, err := cfg.Search.GetDeadline()
	if err != nil {
		return nil, fmt.Errorf("invalid deadline %s: %w", cfg.Search.Deadline, err)
	}

	return &Tuner{
		cfg:      cfg,
		space:    space,
		search:   search,
		deadline: deadline,
		engine:   BuildCostEngine(cfg),
		logger:   logger.Default,
	}, nil
}

// WithCostEngine replaces the profile cost model
func (t *Tuner) WithCostEngine(engine CostEngine) *Tuner {
	t.engine = engine
	return t
}

// WithProgressReporter sets a callback invoked after every evaluation
func (t *Tuner) WithProgressReporter(fn func(evaluations int, best float64)) *Tuner {
	t.progress = fn
	return t
}

// WithLogger overrides the logger
func (t *Tuner) WithLogger(l *slog.Logger) *Tuner {
	if l != nil {
		t.logger = l
	}
	return t
}

// WithDeadline overrides the configured deadline; 0 disables it
func (t *Tuner) WithDeadline(d time.Duration) *Tuner {
	t.deadline = d
	return t
}

// Space returns the joint parameter space
func (t *Tuner) Space() *paramspace.MultiJobSpace {
	return t.space
}

// SearchConfig returns the optimizer parameters in use
func (t *Tuner) SearchConfig() improvement.RRSConfig {
	return t.search
}

// Run executes one tuning run. seed overrides the configured seed when
// non-zero; with neither set a fresh seed is drawn and reported.
func (t *Tuner) Run(ctx context.Context, seed int64) (*Result, error) {
	if seed == 0 {
		seed = t.cfg.Seed
	}
	src := utils.NewRandSource(seed)
	runID := utils.GenerateRunID()

	ctx, span := tracer.Start(ctx, "tuner.Run",
		trace.WithAttributes(
			attribute.String("tuner.run_id", runID),
			attribute.Int64("tuner.seed", src.Seed()),
			attribute.Int("tuner.jobs", len(t.space.JobIDs())),
		),
	)
	defer span.End()

	if t.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.deadline)
		defer cancel()
	}

	var costs []float64
	search, err := improvement.NewRecursiveRandomSearch[paramspace.MultiJobPoint](t.search)
	if err != nil {
		return nil, err
	}
	search.WithLogger(t.logger).
		WithProgressReporter(t.progress).
		WithObserver(func(e improvement.Evaluation[paramspace.MultiJobPoint]) {
			costs = append(costs, e.Cost)
		})

	t.logger.Info("tuning run started",
		"run_id", runID,
		"seed", src.Seed(),
		"jobs", len(t.space.JobIDs()),
		"dimensions", t.space.NumDimensions(),
		"cardinality", t.space.NumUniquePoints().String())

	res, err := search.FindBest(ctx, t.space.WithRandSource(src), t.engine)
	interrupted := false
	if err != nil {
		if res == nil || res.Evaluations == 0 || !errors.Is(err, context.DeadlineExceeded) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.logger.Error("tuning run failed", "run_id", runID, "error", err)
			return nil, fmt.Errorf("tuning run %s failed: %w", runID, err)
		}
		interrupted = true
		t.logger.Warn("tuning run hit its deadline, keeping best configuration so far",
			"run_id", runID,
			"evaluations", res.Evaluations)
	}

	result := &Result{
		RunID:       runID,
		Seed:        src.Seed(),
		Mode:        res.Mode,
		Evaluations: res.Evaluations,
		BestCost:    res.BestCost,
		StopReason:  res.StopReason,
		Duration:    res.Duration,
		Interrupted: interrupted,
		Best:        res.Best,
		Costs:       summarize(costs),
	}
	for _, job := range t.cfg.Jobs {
		result.Jobs = append(result.Jobs, JobConfig{
			ID:     job.ID,
			Name:   job.Name,
			Config: res.Best.JobSpacePoint(job.ID).ToConfig(),
		})
	}

	span.SetAttributes(
		attribute.Int("tuner.evaluations", result.Evaluations),
		attribute.Float64("tuner.best_cost", result.BestCost),
	)
	span.SetStatus(codes.Ok, "")

	t.logger.Info("tuning run completed",
		"run_id", runID,
		"mode", result.Mode,
		"evaluations", result.Evaluations,
		"best_cost", result.BestCost,
		"stop_reason", result.StopReason,
		"duration", result.Duration)

	return result, nil
}

// summarize computes min, mean and sample standard deviation of costs
func summarize(costs []float64) CostSummary {
	if len(costs) == 0 {
		return CostSummary{Min: math.NaN(), Mean: math.NaN(), StdDev: math.NaN()}
	}
	summary := CostSummary{
		Min:  floats.Min(costs),
		Mean: stat.Mean(costs, nil),
	}
	if len(costs) > 1 {
		summary.StdDev = stat.StdDev(costs, nil)
	}
	return summary
}

// BuildSpace creates the joint parameter space, one sub-space per job in
// configuration order
func BuildSpace(cfg *config.TuningConfig) (*paramspace.MultiJobSpace, error) {
	m := paramspace.NewMultiJobSpace()
	for _, job := range cfg.Jobs {
		descs := make([]paramspace.Descriptor, 0, len(job.Parameters))
		for i := range job.Parameters {
			d, err := job.Parameters[i].Descriptor()
			if err != nil {
				return nil, fmt.Errorf("job %d: %w", job.ID, err)
			}
			descs = append(descs, d)
		}
		space, err := paramspace.NewSpace(descs...)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", job.ID, err)
		}
		m.AddSpace(job.ID, space)
	}
	return m, nil
}

// BuildCostEngine registers every job's profile, merged over the defaults
func BuildCostEngine(cfg *config.TuningConfig) *costmodel.WorkflowCostEngine {
	engine := costmodel.NewWorkflowCostEngine()
	for _, job := range cfg.Jobs {
		engine.SetProfile(job.ID, ProfileFromSpec(job.Profile))
	}
	return engine
}

// ProfileFromSpec converts a configured profile; nil yields the defaults
func ProfileFromSpec(spec *config.ProfileSpec) costmodel.JobProfile {
	if spec == nil {
		return costmodel.DefaultJobProfile()
	}
	return costmodel.Merge(costmodel.DefaultJobProfile(), costmodel.JobProfile{
		InputMB:            spec.InputMB,
		MapTasks:           spec.MapTasks,
		MapSlots:           spec.MapSlots,
		ReduceSlots:        spec.ReduceSlots,
		MapCPUMsPerMB:      spec.MapCPUMsPerMB,
		ReduceCPUMsPerMB:   spec.ReduceCPUMsPerMB,
		MapOutputRatio:     spec.MapOutputRatio,
		RecordsPerMB:       spec.RecordsPerMB,
		CompressionRatio:   spec.CompressionRatio,
		CompressCPUMsPerMB: spec.CompressCPUMsPerMB,
		DiskMBPerSec:       spec.DiskMBPerSec,
		NetworkMBPerSec:    spec.NetworkMBPerSec,
		TaskStartupMs:      spec.TaskStartupMs,
		TaskHeapMB:         spec.TaskHeapMB,
	})
}

// SearchConfig overlays the configured search parameters on the defaults
func SearchConfig(spec config.SearchSpec) improvement.RRSConfig {
	cfg := improvement.DefaultRRSConfig()
	overlay := []struct {
		dst *float64
		v   float64
	}{
		{&cfg.ExplorationConfidence, spec.ExplorationConfidence},
		{&cfg.ExplorationPercentile, spec.ExplorationPercentile},
		{&cfg.ExploitationConfidence, spec.ExploitationConfidence},
		{&cfg.ExploitationThreshold, spec.ExploitationThreshold},
		{&cfg.ShrinkRatio, spec.ShrinkRatio},
		{&cfg.TerminationRadius, spec.TerminationRadius},
	}
	for _, o := range overlay {
		if o.v != 0 {
			*o.dst = o.v
		}
	}
	return cfg
}
