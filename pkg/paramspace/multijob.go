package paramspace

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// MultiJobSpace composes one Space per job into a joint search space.
// Job spaces keep their registration order, which fixes grid enumeration order.
type MultiJobSpace struct {
	order  []int
	spaces map[int]*Space
	rng    *utils.RandSource
}

// NewMultiJobSpace creates an empty joint space
func NewMultiJobSpace() *MultiJobSpace {
	return &MultiJobSpace{spaces: make(map[int]*Space)}
}

// AddSpace registers the space for jobID. Re-adding an id replaces its space
// and keeps its original position. A nil space registers an empty one.
func (m *MultiJobSpace) AddSpace(jobID int, space *Space) {
	if space == nil {
		space, _ = NewSpace()
	}
	if _, exists := m.spaces[jobID]; !exists {
		m.order = append(m.order, jobID)
	}
	if m.rng != nil {
		space = space.WithRandSource(m.rng)
	}
	m.spaces[jobID] = space
}

// WithRandSource returns a copy whose job spaces all draw from src
func (m *MultiJobSpace) WithRandSource(src *utils.RandSource) *MultiJobSpace {
	cp := &MultiJobSpace{
		order:  append([]int(nil), m.order...),
		spaces: make(map[int]*Space, len(m.spaces)),
		rng:    src,
	}
	for id, s := range m.spaces {
		cp.spaces[id] = s.WithRandSource(src)
	}
	return cp
}

// JobIDs returns the registered job ids in registration order
func (m *MultiJobSpace) JobIDs() []int {
	return append([]int(nil), m.order...)
}

// Space returns the space registered for jobID
func (m *MultiJobSpace) Space(jobID int) (*Space, bool) {
	s, ok := m.spaces[jobID]
	return s, ok
}

// NumDimensions returns the sum of the job spaces' dimensions
func (m *MultiJobSpace) NumDimensions() int {
	total := 0
	for _, id := range m.order {
		total += m.spaces[id].NumDimensions()
	}
	return total
}

// NumUniquePoints returns the product of the job spaces' cardinalities
func (m *MultiJobSpace) NumUniquePoints() Cardinality {
	card := Finite(1)
	for _, id := range m.order {
		card = card.Mul(m.spaces[id].NumUniquePoints())
	}
	return card
}

// EmptyPoint returns a joint point holding one empty sub-point per job
func (m *MultiJobSpace) EmptyPoint() MultiJobPoint {
	points := make(map[int]Point, len(m.order))
	for _, id := range m.order {
		points[id] = EmptyPoint()
	}
	return newMultiJobPoint(m.order, points)
}

// RandomPoint samples every job space independently
func (m *MultiJobSpace) RandomPoint() MultiJobPoint {
	points := make(map[int]Point, len(m.order))
	for _, id := range m.order {
		points[id] = m.spaces[id].RandomPoint()
	}
	return newMultiJobPoint(m.order, points)
}

// RandomPointNear samples every job space near its sub-point in center
func (m *MultiJobSpace) RandomPointNear(center MultiJobPoint, scale float64) (MultiJobPoint, error) {
	if err := checkFraction("random point near", scale); err != nil {
		return MultiJobPoint{}, err
	}
	points := make(map[int]Point, len(m.order))
	for _, id := range m.order {
		p, err := m.spaces[id].RandomPointNear(center.JobSpacePoint(id), scale)
		if err != nil {
			return MultiJobPoint{}, fmt.Errorf("job %d: %w", id, err)
		}
		points[id] = p
	}
	return newMultiJobPoint(m.order, points), nil
}

// Grid enumerates the Cartesian product of every job space's own grid, across
// jobs in registration order. maxValuesPerDim bounds each descriptor, not the
// total number of points.
func (m *MultiJobSpace) Grid(random bool, maxValuesPerDim int) ([]MultiJobPoint, error) {
	if maxValuesPerDim < 1 {
		return nil, ErrInvalidGridSize
	}
	axes := make([][]Point, len(m.order))
	total := uint64(1)
	for i, id := range m.order {
		grid, err := m.spaces[id].Grid(random, maxValuesPerDim)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", id, err)
		}
		axes[i] = grid
		var overflow bool
		total, overflow = utils.MulUint64(total, uint64(len(grid)))
		if overflow || total > MaxGridPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrGridTooLarge, MaxGridPoints)
		}
	}

	out := make([]MultiJobPoint, 0, total)
	cursor := make([]int, len(axes))
	for {
		points := make(map[int]Point, len(m.order))
		for i, id := range m.order {
			points[id] = axes[i][cursor[i]]
		}
		out = append(out, newMultiJobPoint(m.order, points))
		if !advance(cursor, axes) {
			break
		}
	}
	return out, nil
}

// MultiJobPoint holds one sub-point per job of a MultiJobSpace
type MultiJobPoint struct {
	order  []int
	points map[int]Point
}

func newMultiJobPoint(order []int, points map[int]Point) MultiJobPoint {
	return MultiJobPoint{order: append([]int(nil), order...), points: points}
}

// JobSpacePoint returns the sub-point for jobID, or an empty point when the job
// is unknown or its space has no dimensions
func (p MultiJobPoint) JobSpacePoint(jobID int) Point {
	return p.points[jobID]
}

// JobIDs returns the job ids in registration order
func (p MultiJobPoint) JobIDs() []int {
	return append([]int(nil), p.order...)
}

// Equal reports whether both points hold equal sub-points for the same jobs
func (p MultiJobPoint) Equal(o MultiJobPoint) bool {
	if len(p.points) != len(o.points) {
		return false
	}
	for id, sub := range p.points {
		osub, ok := o.points[id]
		if !ok || !sub.Equal(osub) {
			return false
		}
	}
	return true
}

// ToConfigs converts every sub-point into string key/value configuration pairs
func (p MultiJobPoint) ToConfigs() map[int]map[string]string {
	out := make(map[int]map[string]string, len(p.points))
	for id, sub := range p.points {
		out[id] = sub.ToConfig()
	}
	return out
}

// String renders the point as {jobID={...}, ...} sorted by job id
func (p MultiJobPoint) String() string {
	ids := make([]int, 0, len(p.points))
	for id := range p.points {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(id))
		b.WriteByte('=')
		b.WriteString(p.points[id].String())
	}
	b.WriteByte('}')
	return b.String()
}
