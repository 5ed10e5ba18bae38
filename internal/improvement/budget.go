package improvement

import (
	"fmt"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

const (
	maxEvaluationsCoefficient   = 150
	sinceImprovementCoefficient = 80
	budgetDimensionExponent     = 1.2
)

// Budget bounds how long the main exploration loop may run
type Budget struct {
	// MaxEvaluations caps the total number of cost evaluations
	MaxEvaluations int
	// MaxSinceImprovement caps evaluations since a local search last improved
	// the global best
	MaxSinceImprovement int
}

// BudgetForDimensions scales both caps with d^1.2
func BudgetForDimensions(dims int) Budget {
	return Budget{
		MaxEvaluations:      utils.CeilPow(maxEvaluationsCoefficient, float64(dims), budgetDimensionExponent),
		MaxSinceImprovement: utils.CeilPow(sinceImprovementCoefficient, float64(dims), budgetDimensionExponent),
	}
}

// Exhausted reports whether the search must stop, and why
func (b Budget) Exhausted(evaluations, lastImprovement int) (stop bool, reason string) {
	if evaluations >= b.MaxEvaluations {
		return true, fmt.Sprintf("evaluation budget of %d reached", b.MaxEvaluations)
	}

	since := evaluations - lastImprovement
	if since >= b.MaxSinceImprovement {
		return true, fmt.Sprintf("no improvement for %d evaluations (last improved at evaluation %d)", since, lastImprovement)
	}

	return false, ""
}
