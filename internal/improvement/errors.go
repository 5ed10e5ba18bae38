package improvement

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSpace is returned when FindBest is called without a search space
	ErrNilSpace = errors.New("search space is required")
	// ErrNilCostEngine is returned when FindBest is called without a cost engine
	ErrNilCostEngine = errors.New("cost engine is required")
	// ErrNaNCost is wrapped by CostEvaluationError when a cost engine returns NaN
	ErrNaNCost = errors.New("cost engine returned NaN")
)

// CostEvaluationError reports the point whose evaluation aborted a search
type CostEvaluationError struct {
	Point      string
	Evaluation int
	Err        error
}

func (e *CostEvaluationError) Error() string {
	return fmt.Sprintf("cost evaluation %d failed for point %s: %v", e.Evaluation, e.Point, e.Err)
}

func (e *CostEvaluationError) Unwrap() error {
	return e.Err
}

// InvalidConfigError indicates an out-of-range search parameter
type InvalidConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid search config %s=%v: %s", e.Field, e.Value, e.Reason)
}
