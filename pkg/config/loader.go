package config

import (
	"fmt"
	"math"
	"os"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/logger"
	"github.com/GoSim-25-26J-441/jobtuner/pkg/paramspace"
)

// LoadTuningConfig loads and parses a tuning configuration file
func LoadTuningConfig(path string) (*TuningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseTuningConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Descriptor converts the configured parameter into a descriptor
func (p *ParameterSpec) Descriptor() (paramspace.Descriptor, error) {
	effect, ok := paramspace.ParseTaskEffect(p.Effect)
	if !ok {
		return paramspace.Descriptor{}, fmt.Errorf("parameter %s: invalid effect %q (must be map, reduce, map_reduce, or empty)", p.Name, p.Effect)
	}
	kind, ok := paramspace.ParseKind(p.Type)
	if !ok {
		return paramspace.Descriptor{}, fmt.Errorf("parameter %s: invalid type %q (must be boolean, integer, continuous, or enum)", p.Name, p.Type)
	}

	switch kind {
	case paramspace.KindBoolean:
		return paramspace.NewBoolean(p.Name, effect)

	case paramspace.KindInteger:
		lo, hi, err := p.bounds()
		if err != nil {
			return paramspace.Descriptor{}, err
		}
		if lo != math.Trunc(lo) || hi != math.Trunc(hi) {
			return paramspace.Descriptor{}, fmt.Errorf("parameter %s: integer bounds must be whole numbers, got [%v, %v]", p.Name, lo, hi)
		}
		if lo < math.MinInt64 || hi >= math.MaxInt64 {
			return paramspace.Descriptor{}, fmt.Errorf("parameter %s: integer bounds out of range", p.Name)
		}
		return paramspace.NewInteger(p.Name, effect, int64(lo), int64(hi))

	case paramspace.KindContinuous:
		lo, hi, err := p.bounds()
		if err != nil {
			return paramspace.Descriptor{}, err
		}
		return paramspace.NewContinuous(p.Name, effect, lo, hi)

	default:
		return paramspace.NewEnum(p.Name, effect, p.Values...)
	}
}

func (p *ParameterSpec) bounds() (float64, float64, error) {
	if p.Min == nil || p.Max == nil {
		return 0, 0, fmt.Errorf("parameter %s: min and max are required for type %s", p.Name, p.Type)
	}
	return *p.Min, *p.Max, nil
}

// validateTuningConfig performs validation on the tuning configuration
func validateTuningConfig(cfg *TuningConfig) error {
	if _, ok := logger.ParseLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if err := validateSearch(&cfg.Search); err != nil {
		return fmt.Errorf("search validation failed: %w", err)
	}

	if len(cfg.Jobs) == 0 {
		return fmt.Errorf("at least one job must be defined")
	}
	jobIDs := make(map[int]bool)
	for i := range cfg.Jobs {
		job := &cfg.Jobs[i]
		if job.ID < 0 {
			return fmt.Errorf("job %d: id cannot be negative", job.ID)
		}
		if jobIDs[job.ID] {
			return fmt.Errorf("duplicate job id: %d", job.ID)
		}
		jobIDs[job.ID] = true

		if err := validateJob(job); err != nil {
			return fmt.Errorf("job %d: %w", job.ID, err)
		}
	}

	return nil
}

// validateSearch validates the optional optimizer overrides
func validateSearch(s *SearchSpec) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"exploration_confidence", s.ExplorationConfidence},
		{"exploration_percentile", s.ExplorationPercentile},
		{"exploitation_confidence", s.ExploitationConfidence},
		{"exploitation_threshold", s.ExploitationThreshold},
		{"shrink_ratio", s.ShrinkRatio},
		{"termination_radius", s.TerminationRadius},
	}
	for _, f := range fields {
		if f.value == 0 {
			continue
		}
		if !(f.value > 0 && f.value < 1) {
			return fmt.Errorf("%s must be between 0 and 1, got %f", f.name, f.value)
		}
	}

	if s.TerminationRadius != 0 && s.ExplorationPercentile != 0 && s.TerminationRadius >= s.ExplorationPercentile {
		return fmt.Errorf("termination_radius %f must be below exploration_percentile %f", s.TerminationRadius, s.ExplorationPercentile)
	}

	deadline, err := s.GetDeadline()
	if err != nil {
		return fmt.Errorf("invalid deadline %s: %w", s.Deadline, err)
	}
	if deadline < 0 {
		return fmt.Errorf("deadline cannot be negative, got %s", s.Deadline)
	}

	return nil
}

// validateJob validates a job's parameters and profile
func validateJob(job *JobSpec) error {
	names := make(map[string]bool)
	for i := range job.Parameters {
		param := &job.Parameters[i]
		if param.Name == "" {
			return fmt.Errorf("parameter %d: name cannot be empty", i)
		}
		if names[param.Name] {
			return fmt.Errorf("duplicate parameter name: %s", param.Name)
		}
		names[param.Name] = true

		if _, err := param.Descriptor(); err != nil {
			return err
		}
	}

	if job.Profile != nil {
		if err := validateProfile(job.Profile); err != nil {
			return fmt.Errorf("profile validation failed: %w", err)
		}
	}

	return nil
}

// validateProfile rejects negative measurements and ratios outside their range
func validateProfile(p *ProfileSpec) error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"input_mb", p.InputMB},
		{"map_tasks", float64(p.MapTasks)},
		{"map_slots", float64(p.MapSlots)},
		{"reduce_slots", float64(p.ReduceSlots)},
		{"map_cpu_ms_per_mb", p.MapCPUMsPerMB},
		{"reduce_cpu_ms_per_mb", p.ReduceCPUMsPerMB},
		{"map_output_ratio", p.MapOutputRatio},
		{"records_per_mb", p.RecordsPerMB},
		{"compress_cpu_ms_per_mb", p.CompressCPUMsPerMB},
		{"disk_mb_per_sec", p.DiskMBPerSec},
		{"network_mb_per_sec", p.NetworkMBPerSec},
		{"task_startup_ms", p.TaskStartupMs},
		{"task_heap_mb", p.TaskHeapMB},
	}
	for _, f := range nonNegative {
		if f.value < 0 || math.IsNaN(f.value) {
			return fmt.Errorf("%s cannot be negative, got %v", f.name, f.value)
		}
	}

	if p.CompressionRatio < 0 || p.CompressionRatio > 1 {
		return fmt.Errorf("compression_ratio must be between 0 and 1, got %f", p.CompressionRatio)
	}

	return nil
}
