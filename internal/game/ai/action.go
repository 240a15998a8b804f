package ai

import (
	"github.com/cory-johannsen/abyss/internal/game/command"
	"github.com/cory-johannsen/abyss/internal/game/entity"
)

// Action is one card effect. Actions read whatever the triggering condition
// wrote into ctx, and mutate only by submitting commands through the state —
// never directly. A stale or missing context target makes an action a
// silent no-op: AI decisions degrade gracefully rather than fault.
type Action interface {
	// Execute performs the effect against s.
	Execute(s State, self *entity.Entity, ctx *Context)
}

// AttackTarget attacks ctx.Target. No-op when no target was selected or it
// died since being selected.
type AttackTarget struct{}

// Execute submits an Attack command for ctx.Target.
func (AttackTarget) Execute(s State, self *entity.Entity, ctx *Context) {
	if ctx.Target == nil || !ctx.Target.IsAlive() {
		return
	}
	s.Submit(command.Attack{AttackerID: self.ID(), TargetID: ctx.Target.ID()})
}

// MoveToPosition moves to ctx.TargetPosition. No-op when no position was
// selected; a position that turned illegal since selection is absorbed by
// command validation.
type MoveToPosition struct{}

// Execute submits a Move command for ctx.TargetPosition.
func (MoveToPosition) Execute(s State, self *entity.Entity, ctx *Context) {
	if ctx.TargetPosition == nil {
		return
	}
	s.Submit(command.Move{EntityID: self.ID(), Target: *ctx.TargetPosition})
}

// Idle does nothing. It exists so fallback branches can be explicit about
// doing nothing.
type Idle struct{}

// Execute is a no-op.
func (Idle) Execute(State, *entity.Entity, *Context) {}
