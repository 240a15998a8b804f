// Package command implements the validate-then-execute action pipeline:
// move, attack, and end-turn commands validated against the aggregated match
// state before any mutation happens.
//
// Validation failure is a normal gameplay outcome carried in a Result value.
// Execution is only legal after a successful validation of the same command
// against the same state; the match facade enforces that ordering.
package command

import (
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// State is the slice of match state the pipeline validates against and
// mutates through. The match facade implements it.
type State interface {
	// Started reports whether the game has begun.
	Started() bool
	// EntityByID resolves an entity id.
	EntityByID(id string) (*entity.Entity, bool)
	// ActiveEntity returns the entity currently permitted to act, or nil.
	ActiveEntity() *entity.Entity
	// IsValidCoordinate reports whether c is within the grid bounds.
	IsValidCoordinate(c grid.Coordinate) bool
	// IsBlockedFor reports whether c is occupied by anything other than
	// e's own footprint.
	IsBlockedFor(e *entity.Entity, c grid.Coordinate) bool
	// ReachablePositions returns the cells e can reach this turn.
	ReachablePositions(e *entity.Entity) []grid.Coordinate
	// MoveEntity relocates e's anchor to target.
	MoveEntity(e *entity.Entity, target grid.Coordinate)
	// AttackEntity applies attacker's damage to target.
	AttackEntity(attacker, target *entity.Entity)
	// EndTurn advances the turn cycle past the active entity.
	EndTurn()
}

// Result is the outcome of a command validation: OK, or a human-readable
// refusal reason. Validation never panics and never returns a Go error —
// an illegal command is expected input, not a fault.
type Result struct {
	OK     bool
	Reason string
}

// Ok returns a successful Result.
func Ok() Result { return Result{OK: true} }

// Fail returns a failed Result carrying reason.
func Fail(reason string) Result { return Result{Reason: reason} }

// Command is one player- or AI-issued action. The variant set is closed:
// Move, Attack, and EndTurn are the whole vocabulary.
type Command interface {
	// Validate checks the command against s without mutating anything.
	Validate(s State) Result
	// Execute applies the command to s. It must only be called after a
	// successful Validate against the same state.
	Execute(s State)

	isCommand()
}
