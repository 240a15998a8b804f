package ai

import (
	"github.com/cory-johannsen/abyss/internal/game/command"
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// State is the slice of match state the AI engine reads and acts through.
// The match facade implements it. Actions mutate only by submitting
// commands, so AI effects flow through the same validate-then-execute path
// and event stream as player input.
type State interface {
	// Opponents returns the living entities hostile to e, in registry
	// order.
	Opponents(e *entity.Entity) []*entity.Entity
	// ReachablePositions returns the cells e can reach this turn.
	ReachablePositions(e *entity.Entity) []grid.Coordinate
	// Submit validates and, on success, executes cmd.
	Submit(cmd command.Command) command.Result
}

// FootprintDistance returns the minimum Manhattan distance between any cell
// of a's footprint anchored at aPos and any cell of b's current footprint.
// Two touching footprints have distance 1; overlapping cells give 0.
func FootprintDistance(a *entity.Entity, aPos grid.Coordinate, b *entity.Entity) int {
	best := -1
	for _, ca := range a.Size().Cells(aPos) {
		for _, cb := range b.Cells() {
			d := ca.ManhattanDistance(cb)
			if best < 0 || d < best {
				best = d
			}
		}
	}
	return best
}
