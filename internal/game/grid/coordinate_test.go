package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abyss/internal/game/grid"
)

func TestCoordinate_ManhattanDistance(t *testing.T) {
	tests := []struct {
		a, b grid.Coordinate
		want int
	}{
		{grid.Coordinate{0, 0, 0}, grid.Coordinate{0, 0, 0}, 0},
		{grid.Coordinate{0, 0, 0}, grid.Coordinate{1, 0, 0}, 1},
		{grid.Coordinate{2, 0, 2}, grid.Coordinate{3, 0, 2}, 1},
		{grid.Coordinate{2, 0, 2}, grid.Coordinate{9, 4, 9}, 18},
		{grid.Coordinate{-1, -2, -3}, grid.Coordinate{1, 2, 3}, 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.a.ManhattanDistance(tc.b), "%s -> %s", tc.a, tc.b)
	}
}

func TestCoordinate_ManhattanDistance_Property_Symmetric(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		coord := rapid.Custom(func(rt *rapid.T) grid.Coordinate {
			return grid.Coordinate{
				X: rapid.IntRange(-50, 50).Draw(rt, "x"),
				Y: rapid.IntRange(-50, 50).Draw(rt, "y"),
				Z: rapid.IntRange(-50, 50).Draw(rt, "z"),
			}
		})
		a := coord.Draw(rt, "a")
		b := coord.Draw(rt, "b")
		assert.Equal(rt, a.ManhattanDistance(b), b.ManhattanDistance(a))
		assert.GreaterOrEqual(rt, a.ManhattanDistance(b), 0)
	})
}

func TestCoordinate_Neighbors(t *testing.T) {
	c := grid.Coordinate{5, 5, 5}
	neighbors := c.Neighbors()
	assert.Len(t, neighbors, 6)

	seen := make(map[grid.Coordinate]bool)
	for _, n := range neighbors {
		assert.Equal(t, 1, c.ManhattanDistance(n), "neighbor %s not adjacent", n)
		assert.False(t, seen[n], "duplicate neighbor %s", n)
		seen[n] = true
	}
}

func TestCoordinate_MapKey(t *testing.T) {
	m := map[grid.Coordinate]string{}
	m[grid.Coordinate{1, 2, 3}] = "a"
	m[grid.Coordinate{1, 2, 3}] = "b"
	assert.Len(t, m, 1)
	assert.Equal(t, "b", m[grid.Coordinate{1, 2, 3}])
}

func TestSize_NewSize_Validation(t *testing.T) {
	assert.Panics(t, func() { grid.NewSize(0, 1, 1) })
	assert.Panics(t, func() { grid.NewSize(1, -1, 1) })
	assert.NotPanics(t, func() { grid.NewSize(2, 1, 3) })
}

func TestSize_Cells(t *testing.T) {
	s := grid.NewSize(2, 1, 2)
	anchor := grid.Coordinate{3, 0, 3}
	cells := s.Cells(anchor)
	assert.Len(t, cells, 4)
	assert.Equal(t, anchor, cells[0])
	assert.ElementsMatch(t, []grid.Coordinate{
		{3, 0, 3}, {4, 0, 3}, {3, 0, 4}, {4, 0, 4},
	}, cells)
}

func TestSize_CellCount_Property_MatchesCells(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := grid.NewSize(
			rapid.IntRange(1, 4).Draw(rt, "w"),
			rapid.IntRange(1, 4).Draw(rt, "h"),
			rapid.IntRange(1, 4).Draw(rt, "d"),
		)
		assert.Len(rt, s.Cells(grid.Coordinate{}), s.CellCount())
	})
}
