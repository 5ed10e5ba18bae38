package paramspace

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

func mustSpace(t *testing.T, descriptors ...Descriptor) *Space {
	t.Helper()
	s, err := NewSpace(descriptors...)
	require.NoError(t, err)
	return s
}

func TestSpaceCardinality(t *testing.T) {
	tests := []struct {
		name      string
		space     *Space
		expected  Cardinality
		dimension int
	}{
		{"empty", mustSpace(t), Finite(1), 0},
		{"single boolean", mustSpace(t, mustBoolean(t, "b")), Finite(2), 1},
		{"boolean and integer", mustSpace(t, mustBoolean(t, "b"), mustInteger(t, "i", 2, 5)), Finite(8), 2},
		{"with continuous", mustSpace(t, mustBoolean(t, "b"), mustContinuous(t, "c", 0, 1)), Unbounded(), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dimension, tt.space.NumDimensions())
			assert.Equal(t, tt.expected, tt.space.NumUniquePoints())
		})
	}
}

func TestSpaceCardinalityOverflowClamps(t *testing.T) {
	var descs []Descriptor
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		descs = append(descs, mustInteger(t, name, 0, math.MaxInt32))
	}
	s := mustSpace(t, descs...)

	card := s.NumUniquePoints()
	assert.True(t, card.IsUnbounded())
	assert.Equal(t, math.MaxInt, card.Int())
}

func TestNewSpaceRejectsDuplicates(t *testing.T) {
	_, err := NewSpace(mustBoolean(t, "x"), mustInteger(t, "x", 0, 1))
	var dup *DuplicateParameterError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "x", dup.Name)
}

func TestSpaceEmptyGrid(t *testing.T) {
	s := mustSpace(t)
	grid, err := s.Grid(false, 10)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, "{}", grid[0].String())
	assert.Equal(t, 0, grid[0].Len())
}

func TestSpaceGridSingleBoolean(t *testing.T) {
	s := mustSpace(t, mustBoolean(t, "b"))
	for _, k := range []int{1, 2, 5, 100} {
		grid, err := s.Grid(false, k)
		require.NoError(t, err)
		assert.Len(t, grid, 2, "k=%d", k)
	}
}

func TestSpaceGridOrder(t *testing.T) {
	s := mustSpace(t, mustInteger(t, "z.int", 2, 4), mustBoolean(t, "a.flag"))
	grid, err := s.Grid(false, 16)
	require.NoError(t, err)
	require.Len(t, grid, 6)

	rendered := make([]string, len(grid))
	for i, p := range grid {
		rendered[i] = p.String()
	}
	assert.Equal(t, []string{
		"{a.flag=false, z.int=2}",
		"{a.flag=true, z.int=2}",
		"{a.flag=false, z.int=3}",
		"{a.flag=true, z.int=3}",
		"{a.flag=false, z.int=4}",
		"{a.flag=true, z.int=4}",
	}, rendered)
}

func TestSpaceGridTooLarge(t *testing.T) {
	var descs []Descriptor
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		descs = append(descs, mustContinuous(t, name, 0, 1))
	}
	_, err := mustSpace(t, descs...).Grid(false, 100)
	require.ErrorIs(t, err, ErrGridTooLarge)
}

func TestSpaceRandomPointIsFresh(t *testing.T) {
	s := mustSpace(t, mustInteger(t, "i", 0, 1000), mustContinuous(t, "c", 0, 1)).
		WithRandSource(utils.NewRandSource(9))

	p1 := s.RandomPoint()
	p2 := s.RandomPoint()
	require.Equal(t, 2, p1.Len())
	assert.False(t, p1.Equal(p2))
	assert.Equal(t, []string{"c", "i"}, p1.Names())
}

func TestSpaceRandomPointNear(t *testing.T) {
	s := mustSpace(t, mustInteger(t, "i", 0, 1000), mustContinuous(t, "c", 0, 1)).
		WithRandSource(utils.NewRandSource(9))
	center := NewPoint(map[string]Value{"i": IntValue(500), "c": FloatValue(0.5)})

	for n := 0; n < 100; n++ {
		p, err := s.RandomPointNear(center, 0.01)
		require.NoError(t, err)
		iv, _ := p.Get("i")
		cv, _ := p.Get("c")
		require.InDelta(t, 500, iv.Int(), 10)
		require.InDelta(t, 0.5, cv.Float(), 0.01)
	}

	_, err := s.RandomPointNear(center, 2)
	var fracErr *InvalidSamplingFractionError
	require.True(t, errors.As(err, &fracErr))
}

func TestSpaceRandomPointNearMissingCenterSamplesUniformly(t *testing.T) {
	s := mustSpace(t, mustInteger(t, "i", 0, 10))
	p, err := s.RandomPointNear(EmptyPoint(), 0.1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestSpaceSeededDefaultSource(t *testing.T) {
	prev := utils.ResetDefault(nil)
	t.Cleanup(func() { utils.ResetDefault(prev) })

	s := mustSpace(t, mustInteger(t, "i", 0, 1<<40), mustContinuous(t, "c", -1, 1))

	utils.SetSeed(1234)
	first := []Point{s.RandomPoint(), s.RandomPoint()}
	utils.SetSeed(1234)
	second := []Point{s.RandomPoint(), s.RandomPoint()}

	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "draw %d: %s vs %s", i, first[i], second[i])
	}
}

func TestPointConfigAndEquality(t *testing.T) {
	p := NewPoint(map[string]Value{
		"io.sort.mb":                 IntValue(100),
		"mapred.compress.map.output": BoolValue(true),
		"io.sort.spill.percent":      FloatValue(0.8),
	})

	assert.Equal(t, map[string]string{
		"io.sort.mb":                 "100",
		"mapred.compress.map.output": "true",
		"io.sort.spill.percent":      "0.8",
	}, p.ToConfig())
	assert.Equal(t, "{io.sort.mb=100, io.sort.spill.percent=0.8, mapred.compress.map.output=true}", p.String())

	q := NewPoint(map[string]Value{
		"io.sort.mb":                 IntValue(100),
		"mapred.compress.map.output": BoolValue(true),
		"io.sort.spill.percent":      FloatValue(0.8),
	})
	assert.True(t, p.Equal(q))
	assert.False(t, p.Equal(EmptyPoint()))
}
