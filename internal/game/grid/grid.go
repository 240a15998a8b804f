package grid

import (
	"fmt"
	"iter"
)

// Grid is the bounded 3-axis combat space with coordinate-level occupancy.
//
// The grid has no entity awareness: occupancy is a set of blocked
// coordinates, one entry per cell. Multi-cell entities occupy one entry per
// footprint cell; the registry keeps those entries synchronized with entity
// positions.
//
// Invariant: every occupied coordinate is within bounds.
type Grid struct {
	width    int
	height   int
	depth    int
	occupied map[Coordinate]struct{}
}

// New constructs a Grid with the given dimensions.
//
// Precondition: width, height, and depth must all be >= 1. Panics with
// "grid: invalid dimensions ..." on violation.
func New(width, height, depth int) *Grid {
	if width < 1 || height < 1 || depth < 1 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%dx%d: all must be >= 1", width, height, depth))
	}
	return &Grid{
		width:    width,
		height:   height,
		depth:    depth,
		occupied: make(map[Coordinate]struct{}),
	}
}

// Width returns the grid's extent along the x axis.
func (g *Grid) Width() int { return g.width }

// Height returns the grid's extent along the y axis.
func (g *Grid) Height() int { return g.height }

// Depth returns the grid's extent along the z axis.
func (g *Grid) Depth() int { return g.depth }

// Volume returns the total number of cells in the grid.
func (g *Grid) Volume() int { return g.width * g.height * g.depth }

// IsValidCoordinate reports whether c lies within the grid bounds.
//
// Postcondition: returns true iff 0 <= c.X < width, 0 <= c.Y < height, and
// 0 <= c.Z < depth.
func (g *Grid) IsValidCoordinate(c Coordinate) bool {
	return c.X >= 0 && c.X < g.width &&
		c.Y >= 0 && c.Y < g.height &&
		c.Z >= 0 && c.Z < g.depth
}

// IsOccupied reports whether c is currently blocked.
func (g *Grid) IsOccupied(c Coordinate) bool {
	_, ok := g.occupied[c]
	return ok
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	return len(g.occupied)
}

// SetOccupied marks c as blocked.
//
// Precondition: c must be within bounds. Panics with "grid: SetOccupied out
// of bounds ..." otherwise — occupancy writes come from the registry, so an
// out-of-bounds write is a caller bug, not a gameplay outcome.
func (g *Grid) SetOccupied(c Coordinate) {
	if !g.IsValidCoordinate(c) {
		panic(fmt.Sprintf("grid: SetOccupied out of bounds: %s on %dx%dx%d grid", c, g.width, g.height, g.depth))
	}
	g.occupied[c] = struct{}{}
}

// ClearOccupied unmarks c. Clearing an unoccupied coordinate is a no-op.
func (g *Grid) ClearOccupied(c Coordinate) {
	delete(g.occupied, c)
}

// ValidNeighbors returns the subset of c's 6 axis-aligned neighbors that lie
// within bounds. Occupancy is not considered.
//
// Postcondition: every returned coordinate satisfies IsValidCoordinate.
func (g *Grid) ValidNeighbors(c Coordinate) []Coordinate {
	neighbors := make([]Coordinate, 0, 6)
	for _, n := range c.Neighbors() {
		if g.IsValidCoordinate(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// CoordinatesInRange returns every in-bounds coordinate within Manhattan
// distance r of center, inclusive of center itself. A bounding-box prefilter
// keeps the scan proportional to the range, not the grid volume.
//
// Precondition: r >= 0. Panics with "grid: negative range" if r < 0.
// Postcondition: every member m satisfies IsValidCoordinate(m) and
// center.ManhattanDistance(m) <= r.
func (g *Grid) CoordinatesInRange(center Coordinate, r int) []Coordinate {
	if r < 0 {
		panic("grid: negative range")
	}
	var result []Coordinate
	minX, maxX := max(0, center.X-r), min(g.width-1, center.X+r)
	minY, maxY := max(0, center.Y-r), min(g.height-1, center.Y+r)
	minZ, maxZ := max(0, center.Z-r), min(g.depth-1, center.Z+r)
	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				c := Coordinate{x, y, z}
				if center.ManhattanDistance(c) <= r {
					result = append(result, c)
				}
			}
		}
	}
	return result
}

// AllCoordinates returns an iterator over every cell of the grid in
// x-then-y-then-z order. The iteration is finite and each call starts a
// fresh traversal.
func (g *Grid) AllCoordinates() iter.Seq[Coordinate] {
	return func(yield func(Coordinate) bool) {
		for z := 0; z < g.depth; z++ {
			for y := 0; y < g.height; y++ {
				for x := 0; x < g.width; x++ {
					if !yield(Coordinate{x, y, z}) {
						return
					}
				}
			}
		}
	}
}
