package costmodel

import (
	"context"
	"fmt"
	"sync"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/paramspace"
)

// JobCostEngine predicts the runtime of a single job, in milliseconds
type JobCostEngine struct {
	Profile JobProfile
}

// Cost predicts the runtime of the job configured by point
func (e *JobCostEngine) Cost(ctx context.Context, point paramspace.Point) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return e.PredictConfig(point.ToConfig())
}

// PredictConfig predicts the runtime for a decoded configuration
func (e *JobCostEngine) PredictConfig(config map[string]string) (float64, error) {
	settings, err := ParseSettings(config)
	if err != nil {
		return 0, err
	}
	return e.Profile.Predict(settings).TotalMs(), nil
}

// UnknownJobError is returned when a point configures a job the engine has no profile for
type UnknownJobError struct {
	JobID int
}

func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("no profile registered for job %d", e.JobID)
}

// WorkflowCostEngine predicts the runtime of a workflow as the sum of its
// jobs' runtimes. Jobs run one after another.
type WorkflowCostEngine struct {
	mu    sync.RWMutex
	order []int
	jobs  map[int]*JobCostEngine
}

// NewWorkflowCostEngine creates an engine with no jobs
func NewWorkflowCostEngine() *WorkflowCostEngine {
	return &WorkflowCostEngine{
		jobs: make(map[int]*JobCostEngine),
	}
}

// SetProfile registers or replaces the profile of jobID
func (e *WorkflowCostEngine) SetProfile(jobID int, profile JobProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.jobs[jobID]; !ok {
		e.order = append(e.order, jobID)
	}
	e.jobs[jobID] = &JobCostEngine{Profile: profile}
}

// JobIDs returns the registered jobs in registration order
func (e *WorkflowCostEngine) JobIDs() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]int(nil), e.order...)
}

// Cost predicts the total runtime of every registered job under point.
// Jobs absent from point run with default settings.
func (e *WorkflowCostEngine) Cost(ctx context.Context, point paramspace.MultiJobPoint) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, id := range point.JobIDs() {
		if _, ok := e.jobs[id]; !ok {
			return 0, &UnknownJobError{JobID: id}
		}
	}

	total := 0.0
	for _, id := range e.order {
		ms, err := e.jobs[id].PredictConfig(point.JobSpacePoint(id).ToConfig())
		if err != nil {
			return 0, fmt.Errorf("job %d: %w", id, err)
		}
		total += ms
	}
	return total, nil
}
