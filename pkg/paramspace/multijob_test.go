package paramspace

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/jobtuner/pkg/utils"
)

const (
	flagName     = "mapred.compress.map.output"
	sortFactor   = "io.sort.factor"
	spillPercent = "io.sort.spill.percent"
)

func twoJobSpace(t *testing.T, second Descriptor) *MultiJobSpace {
	t.Helper()
	a := mustSpace(t, mustBoolean(t, flagName))
	b := mustSpace(t, mustBoolean(t, flagName), second)

	m := NewMultiJobSpace()
	m.AddSpace(0, a)
	m.AddSpace(1, b)
	return m
}

func TestMultiJobSpaceFiniteGrid(t *testing.T) {
	m := twoJobSpace(t, mustInteger(t, sortFactor, 2, 5))

	assert.Equal(t, 3, m.NumDimensions())
	assert.Equal(t, Finite(16), m.NumUniquePoints())

	grid, err := m.Grid(false, 16)
	require.NoError(t, err)
	require.Len(t, grid, 16)

	first := grid[0]
	assert.Equal(t, "{"+flagName+"=false}", first.JobSpacePoint(0).String())
	assert.Equal(t, "{"+sortFactor+"=2, "+flagName+"=false}", first.JobSpacePoint(1).String())
}

func TestMultiJobSpaceContinuousGrid(t *testing.T) {
	m := twoJobSpace(t, mustContinuous(t, spillPercent, 0, 1))

	assert.Equal(t, 3, m.NumDimensions())
	assert.True(t, m.NumUniquePoints().IsUnbounded())

	grid, err := m.Grid(false, 16)
	require.NoError(t, err)
	assert.Len(t, grid, 64)
}

func TestMultiJobSpaceGridIsDistinct(t *testing.T) {
	m := twoJobSpace(t, mustInteger(t, sortFactor, 2, 5))
	grid, err := m.Grid(false, 16)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, p := range grid {
		key := p.String()
		require.False(t, seen[key], "duplicate grid point %s", key)
		seen[key] = true
	}
}

func TestMultiJobSpaceAddSpaceReplaces(t *testing.T) {
	m := NewMultiJobSpace()
	m.AddSpace(7, mustSpace(t, mustBoolean(t, "a")))
	m.AddSpace(3, mustSpace(t, mustBoolean(t, "b")))
	m.AddSpace(7, mustSpace(t, mustInteger(t, "c", 0, 9), mustBoolean(t, "d")))

	assert.Equal(t, []int{7, 3}, m.JobIDs())
	assert.Equal(t, 3, m.NumDimensions())
	assert.Equal(t, Finite(40), m.NumUniquePoints())
}

func TestMultiJobSpaceZeroDimensionJob(t *testing.T) {
	m := NewMultiJobSpace()
	m.AddSpace(0, mustSpace(t))
	m.AddSpace(1, nil)

	assert.Equal(t, 0, m.NumDimensions())
	assert.Equal(t, Finite(1), m.NumUniquePoints())

	grid, err := m.Grid(false, 4)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, "{}", grid[0].JobSpacePoint(0).String())
	assert.Equal(t, "{0={}, 1={}}", grid[0].String())
}

func TestMultiJobSpaceEmptyPoint(t *testing.T) {
	m := twoJobSpace(t, mustInteger(t, sortFactor, 2, 5))
	p := m.EmptyPoint()

	assert.Equal(t, []int{0, 1}, p.JobIDs())
	assert.Equal(t, 0, p.JobSpacePoint(0).Len())
	assert.Equal(t, 0, p.JobSpacePoint(1).Len())
	assert.Equal(t, 0, p.JobSpacePoint(42).Len())
}

func TestMultiJobSpaceRandomPointNear(t *testing.T) {
	m := twoJobSpace(t, mustInteger(t, sortFactor, 0, 1000)).WithRandSource(utils.NewRandSource(17))
	center := m.RandomPoint()
	centerFactor, ok := center.JobSpacePoint(1).Get(sortFactor)
	require.True(t, ok)

	for n := 0; n < 50; n++ {
		p, err := m.RandomPointNear(center, 0.02)
		require.NoError(t, err)
		v, _ := p.JobSpacePoint(1).Get(sortFactor)
		require.InDelta(t, centerFactor.Int(), v.Int(), 20)
	}

	_, err := m.RandomPointNear(center, -1)
	require.Error(t, err)
}

func TestMultiJobSpaceWithRandSourceIsReproducible(t *testing.T) {
	base := twoJobSpace(t, mustContinuous(t, spillPercent, 0, 1))

	run := func() []string {
		m := base.WithRandSource(utils.NewRandSource(2024))
		out := make([]string, 5)
		for i := range out {
			out[i] = m.RandomPoint().String()
		}
		return out
	}

	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("seeded joint spaces diverged (-first +second):\n%s", diff)
	}
}

func TestMultiJobPointToConfigs(t *testing.T) {
	m := twoJobSpace(t, mustInteger(t, sortFactor, 2, 5))
	grid, err := m.Grid(false, 16)
	require.NoError(t, err)

	want := map[int]map[string]string{
		0: {flagName: "false"},
		1: {flagName: "false", sortFactor: "2"},
	}
	if diff := cmp.Diff(want, grid[0].ToConfigs()); diff != "" {
		t.Fatalf("decoded configuration mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, grid[0].Equal(grid[0]))
	assert.False(t, grid[0].Equal(grid[1]))
}
