package paramspace

import (
	"fmt"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

// MaxGridPoints bounds the number of points a single grid enumeration may return
const MaxGridPoints = 1 << 24

// Space is an ordered set of descriptors for one unit of configuration.
// It is built once before a search and only read afterwards.
type Space struct {
	descriptors []Descriptor
	index       map[string]int
	rng         *utils.RandSource
}

// NewSpace creates a space over the given descriptors. Names must be unique.
func NewSpace(descriptors ...Descriptor) (*Space, error) {
	s := &Space{index: make(map[string]int, len(descriptors))}
	for _, d := range descriptors {
		if err := s.add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Space) add(d Descriptor) error {
	if d.name == "" {
		return &InvalidDomainError{Reason: "parameter name cannot be empty"}
	}
	if _, exists := s.index[d.name]; exists {
		return &DuplicateParameterError{Name: d.name}
	}
	s.index[d.name] = len(s.descriptors)
	s.descriptors = append(s.descriptors, d)
	return nil
}

// WithRandSource returns a copy of the space that draws from src instead of
// the process-wide source
func (s *Space) WithRandSource(src *utils.RandSource) *Space {
	cp := *s
	cp.rng = src
	return &cp
}

func (s *Space) source() *utils.RandSource {
	if s.rng != nil {
		return s.rng
	}
	return utils.Default()
}

// Descriptors returns the descriptors in insertion order
func (s *Space) Descriptors() []Descriptor {
	return append([]Descriptor(nil), s.descriptors...)
}

// Descriptor looks up a descriptor by name
func (s *Space) Descriptor(name string) (Descriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}

// NumDimensions returns the number of descriptors
func (s *Space) NumDimensions() int {
	return len(s.descriptors)
}

// NumUniquePoints returns the product of the descriptors' cardinalities
func (s *Space) NumUniquePoints() Cardinality {
	card := Finite(1)
	for _, d := range s.descriptors {
		card = card.Mul(d.Cardinality())
	}
	return card
}

// EmptyPoint returns a point with no assignments
func (s *Space) EmptyPoint() Point {
	return EmptyPoint()
}

// RandomPoint samples every descriptor independently
func (s *Space) RandomPoint() Point {
	if len(s.descriptors) == 0 {
		return EmptyPoint()
	}
	rng := s.source()
	values := make(map[string]Value, len(s.descriptors))
	for _, d := range s.descriptors {
		values[d.name] = d.SampleRandom(rng)
	}
	return Point{values: values}
}

// RandomPointNear samples every descriptor near its value in center, using the
// same scale for every dimension. Descriptors missing from center are sampled
// uniformly.
func (s *Space) RandomPointNear(center Point, scale float64) (Point, error) {
	if err := checkFraction("random point near", scale); err != nil {
		return Point{}, err
	}
	if len(s.descriptors) == 0 {
		return EmptyPoint(), nil
	}
	rng := s.source()
	values := make(map[string]Value, len(s.descriptors))
	for _, d := range s.descriptors {
		c, ok := center.values[d.name]
		if !ok {
			values[d.name] = d.SampleRandom(rng)
			continue
		}
		v, err := d.SampleNear(rng, c, scale)
		if err != nil {
			return Point{}, err
		}
		values[d.name] = v
	}
	return Point{values: values}, nil
}

// Grid enumerates the Cartesian product of every descriptor's grid values.
// The first point takes each descriptor's first value; the last descriptor
// varies fastest. An empty space yields a single empty point.
func (s *Space) Grid(random bool, maxValuesPerDim int) ([]Point, error) {
	if maxValuesPerDim < 1 {
		return nil, ErrInvalidGridSize
	}
	rng := s.source()
	axes := make([][]Value, len(s.descriptors))
	total := uint64(1)
	for i, d := range s.descriptors {
		vals, err := d.GridValues(rng, maxValuesPerDim, random)
		if err != nil {
			return nil, fmt.Errorf("grid values for %s: %w", d.name, err)
		}
		axes[i] = vals
		var overflow bool
		total, overflow = utils.MulUint64(total, uint64(len(vals)))
		if overflow || total > MaxGridPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrGridTooLarge, MaxGridPoints)
		}
	}

	points := make([]Point, 0, total)
	cursor := make([]int, len(axes))
	for {
		points = append(points, s.pointAt(axes, cursor))
		if !advance(cursor, axes) {
			break
		}
	}
	return points, nil
}

func (s *Space) pointAt(axes [][]Value, cursor []int) Point {
	if len(axes) == 0 {
		return EmptyPoint()
	}
	values := make(map[string]Value, len(axes))
	for i, d := range s.descriptors {
		values[d.name] = axes[i][cursor[i]]
	}
	return Point{values: values}
}

// advance steps an odometer over the axes, last axis fastest.
// It returns false once every combination has been visited.
func advance[T any](cursor []int, axes [][]T) bool {
	for i := len(cursor) - 1; i >= 0; i-- {
		cursor[i]++
		if cursor[i] < len(axes[i]) {
			return true
		}
		cursor[i] = 0
	}
	return false
}
