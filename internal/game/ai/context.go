// Package ai implements the behavior-card decision engine for AI-controlled
// entities: condition/action cards drawn from weighted decks, producing one
// command-equivalent effect per AI turn.
//
// Cards are data. The condition and action vocabulary is finite and
// enumerable, so decks load from YAML files and tuning a monster never
// needs a recompile.
package ai

import (
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// Context is the per-decision scratch state a condition hands to the action
// that runs on its behalf. It is reset before every AI decision and
// discarded afterwards — never retained across turns.
type Context struct {
	// Target is the entity selected by the triggering condition.
	Target *entity.Entity
	// TargetPosition is the destination selected by the triggering
	// condition; nil when no movement was chosen.
	TargetPosition *grid.Coordinate
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Reset clears all scratch state in place.
func (c *Context) Reset() {
	c.Target = nil
	c.TargetPosition = nil
}
