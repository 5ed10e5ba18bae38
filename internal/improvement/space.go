package improvement

import (
	"context"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/paramspace"
)

// SearchSpace is the view of a parameter space consumed by the optimizer.
// Both paramspace.Space and paramspace.MultiJobSpace satisfy it directly.
type SearchSpace[P any] interface {
	// EmptyPoint returns the point with no assignments
	EmptyPoint() P
	// NumDimensions returns the number of tunable dimensions
	NumDimensions() int
	// NumUniquePoints returns the number of distinct points, or Unbounded
	NumUniquePoints() paramspace.Cardinality
	// RandomPoint samples the whole space uniformly
	RandomPoint() P
	// RandomPointNear samples within scale of center in every dimension
	RandomPointNear(center P, scale float64) (P, error)
	// Grid enumerates up to maxValuesPerDim values per dimension
	Grid(random bool, maxValuesPerDim int) ([]P, error)
}

// CostEngine predicts the cost of running with a candidate configuration.
// Lower is better. A returned error aborts the search.
type CostEngine[P any] interface {
	Cost(ctx context.Context, point P) (float64, error)
}

// CostFunc adapts a plain function to CostEngine
type CostFunc[P any] func(ctx context.Context, point P) (float64, error)

// Cost calls f
func (f CostFunc[P]) Cost(ctx context.Context, point P) (float64, error) {
	return f(ctx, point)
}

var (
	_ SearchSpace[paramspace.Point]         = (*paramspace.Space)(nil)
	_ SearchSpace[paramspace.MultiJobPoint] = (*paramspace.MultiJobSpace)(nil)
)
