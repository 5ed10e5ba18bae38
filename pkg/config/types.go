package config

import "time"

// TuningConfig is the top-level document describing a tuning run
type TuningConfig struct {
	LogLevel string     `yaml:"log_level"`
	Seed     int64      `yaml:"seed"` // 0 draws a fresh seed per run
	Search   SearchSpec `yaml:"search"`
	Jobs     []JobSpec  `yaml:"jobs"`
}

// SearchSpec overrides the optimizer parameters. Zero values keep the defaults.
type SearchSpec struct {
	ExplorationConfidence  float64 `yaml:"exploration_confidence,omitempty"`  // p
	ExplorationPercentile  float64 `yaml:"exploration_percentile,omitempty"`  // r
	ExploitationConfidence float64 `yaml:"exploitation_confidence,omitempty"` // q
	ExploitationThreshold  float64 `yaml:"exploitation_threshold,omitempty"`  // v
	ShrinkRatio            float64 `yaml:"shrink_ratio,omitempty"`            // c
	TerminationRadius      float64 `yaml:"termination_radius,omitempty"`      // s_t
	Deadline               string  `yaml:"deadline,omitempty"`                // e.g., "30s"
}

// JobSpec describes one job of the workflow and its tunable parameters
type JobSpec struct {
	ID         int             `yaml:"id"`
	Name       string          `yaml:"name"`
	Profile    *ProfileSpec    `yaml:"profile,omitempty"`
	Parameters []ParameterSpec `yaml:"parameters"`
}

// ParameterSpec describes a single tunable parameter
type ParameterSpec struct {
	Name   string   `yaml:"name"`
	Effect string   `yaml:"effect"` // map, reduce, map_reduce, or empty
	Type   string   `yaml:"type"`   // boolean, integer, continuous, enum
	Min    *float64 `yaml:"min,omitempty"`
	Max    *float64 `yaml:"max,omitempty"`
	Values []string `yaml:"values,omitempty"`
}

// ProfileSpec holds the measured characteristics of a job used by the cost
// model. Zero values fall back to the model defaults.
type ProfileSpec struct {
	InputMB            float64 `yaml:"input_mb"`
	MapTasks           int     `yaml:"map_tasks"`
	MapSlots           int     `yaml:"map_slots"`
	ReduceSlots        int     `yaml:"reduce_slots"`
	MapCPUMsPerMB      float64 `yaml:"map_cpu_ms_per_mb"`
	ReduceCPUMsPerMB   float64 `yaml:"reduce_cpu_ms_per_mb"`
	MapOutputRatio     float64 `yaml:"map_output_ratio"`
	RecordsPerMB       float64 `yaml:"records_per_mb"`
	CompressionRatio   float64 `yaml:"compression_ratio"`
	CompressCPUMsPerMB float64 `yaml:"compress_cpu_ms_per_mb"`
	DiskMBPerSec       float64 `yaml:"disk_mb_per_sec"`
	NetworkMBPerSec    float64 `yaml:"network_mb_per_sec"`
	TaskStartupMs      float64 `yaml:"task_startup_ms"`
	TaskHeapMB         float64 `yaml:"task_heap_mb"`
}

// TuningResult is the rendered outcome of a tuning run
type TuningResult struct {
	RunID       string      `yaml:"run_id"`
	Mode        string      `yaml:"mode"`
	Seed        int64       `yaml:"seed"`
	Evaluations int         `yaml:"evaluations"`
	BestCost    float64     `yaml:"best_cost"`
	StopReason  string      `yaml:"stop_reason"`
	Duration    string      `yaml:"duration"`
	Costs       CostSummary `yaml:"costs"`
	Jobs        []JobResult `yaml:"jobs"`
}

// CostSummary summarizes every cost evaluated during a run
type CostSummary struct {
	Min    float64 `yaml:"min"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
}

// JobResult is the recommended configuration for one job
type JobResult struct {
	ID     int               `yaml:"id"`
	Name   string            `yaml:"name,omitempty"`
	Config map[string]string `yaml:"config"`
}

// GetDeadline parses the deadline string; an empty deadline yields 0
func (s *SearchSpec) GetDeadline() (time.Duration, error) {
	if s.Deadline == "" {
		return 0, nil
	}
	return time.ParseDuration(s.Deadline)
}
