// Package pathfind implements breadth-first search over the combat grid:
// shortest paths, reachable-cell sets, and distance queries.
//
// The grid is an unweighted 6-connected graph, so BFS guarantees shortest
// paths. All queries are bounded by grid volume: O(V+E) with E <= 6V.
package pathfind

import "github.com/cory-johannsen/abyss/internal/game/grid"

// Pathfinder answers path and reachability queries against a single Grid.
// It holds no state beyond the grid reference; queries never mutate the grid.
//
// Invariant: g is non-nil.
type Pathfinder struct {
	g *grid.Grid
}

// New constructs a Pathfinder over g.
//
// Precondition: g must not be nil. Panics with "pathfind: nil grid" otherwise.
func New(g *grid.Grid) *Pathfinder {
	if g == nil {
		panic("pathfind: nil grid")
	}
	return &Pathfinder{g: g}
}

// FindPath returns the shortest path from start to end, inclusive of both
// endpoints.
//
// The destination is treated specially: it may be targeted even though every
// intermediate cell must be unoccupied. An occupied destination, an invalid
// endpoint, or an unreachable destination all yield an empty path. When
// start == end the path is the single-element slice [start].
//
// Postcondition: a non-empty result begins with start, ends with end, and
// every consecutive pair is grid-adjacent.
func (p *Pathfinder) FindPath(start, end grid.Coordinate) []grid.Coordinate {
	if !p.g.IsValidCoordinate(start) || !p.g.IsValidCoordinate(end) {
		return nil
	}
	if start == end {
		return []grid.Coordinate{start}
	}
	if p.g.IsOccupied(end) {
		return nil
	}

	parent := map[grid.Coordinate]grid.Coordinate{start: start}
	queue := []grid.Coordinate{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range p.g.ValidNeighbors(current) {
			if _, visited := parent[next]; visited {
				continue
			}
			// Intermediate cells must be free; the destination is exempt.
			if next != end && p.g.IsOccupied(next) {
				continue
			}
			parent[next] = current
			if next == end {
				return reconstruct(parent, start, end)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

// ReachablePositions returns every unoccupied cell within rng hops of start,
// excluding start itself. Occupied cells block traversal: cells beyond an
// obstruction are unreachable even when their straight-line distance is
// within range.
//
// Precondition: rng >= 0.
// Postcondition: the result never contains start or any occupied cell.
func (p *Pathfinder) ReachablePositions(start grid.Coordinate, rng int) []grid.Coordinate {
	if !p.g.IsValidCoordinate(start) || rng <= 0 {
		return nil
	}

	type node struct {
		at   grid.Coordinate
		hops int
	}
	visited := map[grid.Coordinate]struct{}{start: {}}
	queue := []node{{at: start, hops: 0}}
	var result []grid.Coordinate

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current.hops == rng {
			continue
		}
		for _, next := range p.g.ValidNeighbors(current.at) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			if p.g.IsOccupied(next) {
				continue
			}
			result = append(result, next)
			queue = append(queue, node{at: next, hops: current.hops + 1})
		}
	}
	return result
}

// PathDistance returns the number of steps on the shortest path from start
// to end, or -1 when no path exists.
//
// Postcondition: returns len(FindPath(start, end)) - 1, or -1 for an empty
// path.
func (p *Pathfinder) PathDistance(start, end grid.Coordinate) int {
	path := p.FindPath(start, end)
	if len(path) == 0 {
		return -1
	}
	return len(path) - 1
}

// PathExists reports whether any path connects start and end.
func (p *Pathfinder) PathExists(start, end grid.Coordinate) bool {
	return len(p.FindPath(start, end)) > 0
}

// reconstruct walks the parent links from end back to start and reverses.
func reconstruct(parent map[grid.Coordinate]grid.Coordinate, start, end grid.Coordinate) []grid.Coordinate {
	var path []grid.Coordinate
	for at := end; ; at = parent[at] {
		path = append(path, at)
		if at == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
