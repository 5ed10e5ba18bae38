//go:build integration
// +build integration

package integration_test

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/jobtuner/internal/costmodel"
	"github.com/GoSim-25-26J-441/jobtuner/internal/improvement"
	"github.com/GoSim-25-26J-441/jobtuner/internal/tuner"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/config"
)

func loadExampleConfig(t *testing.T) *config.TuningConfig {
	t.Helper()
	cfgPath := filepath.Join("..", "..", "config", "tuning.yaml")
	cfg, err := config.LoadTuningConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadTuningConfig(%s) failed: %v", cfgPath, err)
	}
	return cfg
}

func TestIntegration_TuneExampleWorkflow(t *testing.T) {
	cfg := loadExampleConfig(t)

	tn, err := tuner.New(cfg)
	if err != nil {
		t.Fatalf("tuner.New failed: %v", err)
	}

	res, err := tn.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Mode != improvement.ModeRecursive {
		t.Fatalf("expected recursive search over the example workflow, got %s", res.Mode)
	}

	budget := improvement.BudgetForDimensions(tn.Space().NumDimensions())
	if res.Evaluations > budget.MaxEvaluations {
		t.Fatalf("evaluations %d exceed budget %d", res.Evaluations, budget.MaxEvaluations)
	}
	if res.Interrupted {
		t.Fatalf("run hit its deadline after %d evaluations", res.Evaluations)
	}
	if math.IsNaN(res.BestCost) || res.BestCost <= 0 {
		t.Fatalf("expected a positive best cost, got %v", res.BestCost)
	}
	if res.BestCost > res.Costs.Mean {
		t.Fatalf("best cost %v should not exceed the mean cost %v", res.BestCost, res.Costs.Mean)
	}

	// The recommended configuration of every job must be accepted by the cost model.
	if len(res.Jobs) != len(cfg.Jobs) {
		t.Fatalf("expected %d job configs, got %d", len(cfg.Jobs), len(res.Jobs))
	}
	for i, job := range res.Jobs {
		if len(job.Config) != len(cfg.Jobs[i].Parameters) {
			t.Fatalf("job %d: expected %d settings, got %d", job.ID, len(cfg.Jobs[i].Parameters), len(job.Config))
		}
		engine := &costmodel.JobCostEngine{Profile: tuner.ProfileFromSpec(cfg.Jobs[i].Profile)}
		if _, err := engine.PredictConfig(job.Config); err != nil {
			t.Fatalf("job %d: recommended config rejected: %v", job.ID, err)
		}
	}
}

func TestIntegration_TuneBeatsDefaults(t *testing.T) {
	cfg := loadExampleConfig(t)
	tn, err := tuner.New(cfg)
	if err != nil {
		t.Fatalf("tuner.New failed: %v", err)
	}

	baseline, err := tuner.BuildCostEngine(cfg).Cost(context.Background(), tn.Space().EmptyPoint())
	if err != nil {
		t.Fatalf("baseline cost failed: %v", err)
	}

	res, err := tn.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.BestCost >= baseline {
		t.Fatalf("tuned cost %v should beat the default configuration cost %v", res.BestCost, baseline)
	}
}

func TestIntegration_ReportRoundTrip(t *testing.T) {
	cfg := loadExampleConfig(t)
	tn, err := tuner.New(cfg)
	if err != nil {
		t.Fatalf("tuner.New failed: %v", err)
	}
	res, err := tn.Run(context.Background(), 99)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := config.MarshalTuningResultYAML(res.Report())
	if err != nil {
		t.Fatalf("MarshalTuningResultYAML failed: %v", err)
	}
	text := string(data)
	for _, want := range []string{"run_id: " + res.RunID, "seed: 99", "name: wordcount", "name: sort"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, text)
		}
	}
}
