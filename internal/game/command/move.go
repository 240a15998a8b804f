package command

import "github.com/cory-johannsen/abyss/internal/game/grid"

// Move relocates an entity to a reachable, unoccupied coordinate.
type Move struct {
	// EntityID is the acting entity.
	EntityID string
	// Target is the destination anchor coordinate.
	Target grid.Coordinate
}

func (Move) isCommand() {}

// Validate applies the move rules in order, short-circuiting on the first
// failure: game started, entity exists and is alive, entity is active,
// every footprint cell at the target is in bounds, the target differs from
// the current position, no footprint cell is blocked by another entity, and
// the target is in the entity's reachable set (which enforces range and
// obstacle avoidance at once).
func (m Move) Validate(s State) Result {
	if !s.Started() {
		return Fail("game has not started")
	}
	e, ok := s.EntityByID(m.EntityID)
	if !ok {
		return Fail("entity not found")
	}
	if !e.IsAlive() {
		return Fail("entity is dead")
	}
	if s.ActiveEntity() != e {
		return Fail("entity is not the active entity")
	}
	for _, c := range e.Size().Cells(m.Target) {
		if !s.IsValidCoordinate(c) {
			return Fail("target out of bounds")
		}
	}
	if m.Target == e.Position() {
		return Fail("already at target position")
	}
	for _, c := range e.Size().Cells(m.Target) {
		if s.IsBlockedFor(e, c) {
			return Fail("target is occupied")
		}
	}
	if !containsCoordinate(s.ReachablePositions(e), m.Target) {
		return Fail("target is unreachable")
	}
	return Ok()
}

// Execute relocates the entity; the registry synchronizes occupancy and
// publishes the move.
func (m Move) Execute(s State) {
	e, ok := s.EntityByID(m.EntityID)
	if !ok {
		panic("command: Move.Execute on unvalidated command")
	}
	s.MoveEntity(e, m.Target)
}

func containsCoordinate(cells []grid.Coordinate, c grid.Coordinate) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}
