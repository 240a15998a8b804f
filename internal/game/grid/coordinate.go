// Package grid provides the bounded 3-axis coordinate space for the Abyss
// combat simulation: coordinate values, entity footprints, and the occupancy
// grid itself.
package grid

import "fmt"

// Coordinate is an integer position in the 3-axis grid. It is an immutable
// value type: equality and map-key hashing are by value.
type Coordinate struct {
	X int
	Y int
	Z int
}

// String returns a "(x, y, z)" display form.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// ManhattanDistance returns the sum of absolute per-axis differences between
// c and other — the movement-cost metric for orthogonal 6-directional grids.
//
// Postcondition: return value >= 0; symmetric in its arguments.
func (c Coordinate) ManhattanDistance(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y) + abs(c.Z-other.Z)
}

// Neighbors returns the 6 axis-aligned adjacent coordinates, with no bounds
// filtering. Diagonals are never neighbors.
//
// Postcondition: returns exactly 6 coordinates, each at Manhattan distance 1.
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		{c.X + 1, c.Y, c.Z},
		{c.X - 1, c.Y, c.Z},
		{c.X, c.Y + 1, c.Z},
		{c.X, c.Y - 1, c.Z},
		{c.X, c.Y, c.Z + 1},
		{c.X, c.Y, c.Z - 1},
	}
}

// Add returns the component-wise sum of c and other.
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{c.X + other.X, c.Y + other.Y, c.Z + other.Z}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
