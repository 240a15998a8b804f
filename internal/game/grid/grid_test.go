package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abyss/internal/game/grid"
)

func TestNew_Validation(t *testing.T) {
	assert.Panics(t, func() { grid.New(0, 5, 5) })
	assert.Panics(t, func() { grid.New(5, -1, 5) })
	assert.NotPanics(t, func() { grid.New(1, 1, 1) })
}

func TestGrid_IsValidCoordinate(t *testing.T) {
	g := grid.New(10, 5, 10)
	assert.True(t, g.IsValidCoordinate(grid.Coordinate{0, 0, 0}))
	assert.True(t, g.IsValidCoordinate(grid.Coordinate{9, 4, 9}))
	assert.False(t, g.IsValidCoordinate(grid.Coordinate{10, 0, 0}))
	assert.False(t, g.IsValidCoordinate(grid.Coordinate{0, 5, 0}))
	assert.False(t, g.IsValidCoordinate(grid.Coordinate{0, 0, -1}))
}

func TestGrid_IsValidCoordinate_Property_BoundsEquivalence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.IntRange(1, 12).Draw(rt, "w")
		h := rapid.IntRange(1, 12).Draw(rt, "h")
		d := rapid.IntRange(1, 12).Draw(rt, "d")
		g := grid.New(w, h, d)
		c := grid.Coordinate{
			X: rapid.IntRange(-2, 14).Draw(rt, "x"),
			Y: rapid.IntRange(-2, 14).Draw(rt, "y"),
			Z: rapid.IntRange(-2, 14).Draw(rt, "z"),
		}
		inBounds := c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h && c.Z >= 0 && c.Z < d
		assert.Equal(rt, inBounds, g.IsValidCoordinate(c))
	})
}

func TestGrid_Occupancy(t *testing.T) {
	g := grid.New(5, 5, 5)
	c := grid.Coordinate{2, 2, 2}

	assert.False(t, g.IsOccupied(c))
	g.SetOccupied(c)
	assert.True(t, g.IsOccupied(c))
	assert.Equal(t, 1, g.OccupiedCount())

	g.ClearOccupied(c)
	assert.False(t, g.IsOccupied(c))

	// Clearing an already-clear cell is a no-op.
	assert.NotPanics(t, func() { g.ClearOccupied(c) })
	assert.Equal(t, 0, g.OccupiedCount())
}

func TestGrid_SetOccupied_OutOfBoundsPanics(t *testing.T) {
	g := grid.New(3, 3, 3)
	assert.Panics(t, func() { g.SetOccupied(grid.Coordinate{3, 0, 0}) })
}

func TestGrid_ValidNeighbors(t *testing.T) {
	g := grid.New(3, 3, 3)

	corner := g.ValidNeighbors(grid.Coordinate{0, 0, 0})
	assert.Len(t, corner, 3)

	center := g.ValidNeighbors(grid.Coordinate{1, 1, 1})
	assert.Len(t, center, 6)

	for _, n := range center {
		assert.True(t, g.IsValidCoordinate(n))
	}
}

func TestGrid_CoordinatesInRange(t *testing.T) {
	g := grid.New(10, 10, 10)
	center := grid.Coordinate{5, 5, 5}

	inRange := g.CoordinatesInRange(center, 2)
	assert.Contains(t, inRange, center, "range is inclusive of center")
	for _, c := range inRange {
		assert.LessOrEqual(t, center.ManhattanDistance(c), 2)
		assert.True(t, g.IsValidCoordinate(c))
	}

	// Range 0 yields only the center.
	assert.Equal(t, []grid.Coordinate{center}, g.CoordinatesInRange(center, 0))

	assert.Panics(t, func() { g.CoordinatesInRange(center, -1) })
}

func TestGrid_CoordinatesInRange_ClipsAtBounds(t *testing.T) {
	g := grid.New(3, 3, 3)
	inRange := g.CoordinatesInRange(grid.Coordinate{0, 0, 0}, 10)
	assert.Len(t, inRange, 27, "a large range covers exactly the whole grid")
}

func TestGrid_AllCoordinates(t *testing.T) {
	g := grid.New(2, 3, 4)

	var count int
	seen := make(map[grid.Coordinate]bool)
	for c := range g.AllCoordinates() {
		require.True(t, g.IsValidCoordinate(c))
		require.False(t, seen[c], "coordinate %s enumerated twice", c)
		seen[c] = true
		count++
	}
	assert.Equal(t, g.Volume(), count)

	// The enumeration is restartable.
	var second int
	for range g.AllCoordinates() {
		second++
	}
	assert.Equal(t, count, second)
}

func TestGrid_AllCoordinates_EarlyStop(t *testing.T) {
	g := grid.New(4, 4, 4)
	var n int
	for range g.AllCoordinates() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}
