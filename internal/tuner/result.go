package tuner

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/config"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/paramspace"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// Result is the outcome of a tuning run
type Result struct {
	RunID       string
	Seed        int64
	Mode        string
	Evaluations int
	BestCost    float64
	StopReason  string
	Duration    time.Duration
	Interrupted bool
	Best        paramspace.MultiJobPoint
	Costs       CostSummary
	Jobs        []JobConfig
}

// CostSummary summarizes every cost evaluated during a run
type CostSummary struct {
	Min    float64
	Mean   float64
	StdDev float64
}

// JobConfig is the recommended configuration of one job
type JobConfig struct {
	ID     int
	Name   string
	Config map[string]string
}

// Report converts the result into its rendered form
func (r *Result) Report() *config.TuningResult {
	out := &config.TuningResult{
		RunID:       r.RunID,
		Mode:        r.Mode,
		Seed:        r.Seed,
		Evaluations: r.Evaluations,
		BestCost:    r.BestCost,
		StopReason:  r.StopReason,
		Duration:    r.Duration.Round(time.Millisecond).String(),
		Costs: config.CostSummary{
			Min:    r.Costs.Min,
			Mean:   r.Costs.Mean,
			StdDev: r.Costs.StdDev,
		},
	}
	for _, job := range r.Jobs {
		out.Jobs = append(out.Jobs, config.JobResult{
			ID:     job.ID,
			Name:   job.Name,
			Config: job.Config,
		})
	}
	return out
}

// WriteText renders the result as human-readable text
func (r *Result) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run:          %s\n", r.RunID)
	fmt.Fprintf(&b, "seed:         %d\n", r.Seed)
	fmt.Fprintf(&b, "mode:         %s\n", r.Mode)
	fmt.Fprintf(&b, "evaluations:  %d\n", r.Evaluations)
	fmt.Fprintf(&b, "best cost:    %.3f\n", r.BestCost)
	fmt.Fprintf(&b, "stopped:      %s\n", r.StopReason)
	fmt.Fprintf(&b, "duration:     %s\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "costs:        min %.3f, mean %.3f, stddev %.3f\n", r.Costs.Min, r.Costs.Mean, r.Costs.StdDev)

	for _, job := range r.Jobs {
		name := job.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "\njob %d (%s)\n", job.ID, name)

		keys := make([]string, 0, len(job.Config))
		for k := range job.Config {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %s\n", k, job.Config[k])
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// JobSpaceSummary describes one job's parameter space
type JobSpaceSummary struct {
	ID          int
	Name        string
	Dimensions  int
	Cardinality paramspace.Cardinality
	Parameters  []string
	Sample      string
}

// Describe summarizes every job's space with one sample point drawn from a
// source seeded by seed
func (t *Tuner) Describe(seed int64) []JobSpaceSummary {
	sample := t.space.WithRandSource(utils.NewRandSource(seed)).RandomPoint()

	out := make([]JobSpaceSummary, 0, len(t.cfg.Jobs))
	for _, job := range t.cfg.Jobs {
		space, ok := t.space.Space(job.ID)
		if !ok {
			continue
		}
		summary := JobSpaceSummary{
			ID:          job.ID,
			Name:        job.Name,
			Dimensions:  space.NumDimensions(),
			Cardinality: space.NumUniquePoints(),
			Sample:      sample.JobSpacePoint(job.ID).String(),
		}
		for _, d := range space.Descriptors() {
			summary.Parameters = append(summary.Parameters, fmt.Sprintf("%s (%s)", d.Name(), d.Kind()))
		}
		out = append(out, summary)
	}
	return out
}
