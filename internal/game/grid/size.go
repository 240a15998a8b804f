package grid

import "fmt"

// Size is an entity footprint: the dimensions of the axis-aligned box of
// cells the entity occupies, anchored at its position.
//
// Invariant: all dimensions are >= 1 for a Size built via NewSize.
type Size struct {
	Width  int
	Height int
	Depth  int
}

// SingleCell is the footprint of a standard 1x1x1 combatant.
var SingleCell = Size{Width: 1, Height: 1, Depth: 1}

// NewSize constructs a validated footprint.
//
// Precondition: width, height, and depth must all be >= 1. Panics with
// "grid: invalid footprint ..." on violation — footprints come from entity
// configuration, so a bad one is a caller bug.
func NewSize(width, height, depth int) Size {
	if width < 1 || height < 1 || depth < 1 {
		panic(fmt.Sprintf("grid: invalid footprint %dx%dx%d: all dimensions must be >= 1", width, height, depth))
	}
	return Size{Width: width, Height: height, Depth: depth}
}

// CellCount returns the number of cells the footprint covers.
//
// Postcondition: return value >= 1 for any Size built via NewSize.
func (s Size) CellCount() int {
	return s.Width * s.Height * s.Depth
}

// Cells enumerates every cell of the footprint box anchored at anchor,
// in x-then-y-then-z order. The anchor itself is always the first element.
//
// Postcondition: len(result) == s.CellCount().
func (s Size) Cells(anchor Coordinate) []Coordinate {
	cells := make([]Coordinate, 0, s.CellCount())
	for z := 0; z < s.Depth; z++ {
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				cells = append(cells, Coordinate{anchor.X + x, anchor.Y + y, anchor.Z + z})
			}
		}
	}
	return cells
}

// String returns a "WxHxD" display form.
func (s Size) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Width, s.Height, s.Depth)
}
