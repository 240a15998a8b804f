package ai

import "github.com/cory-johannsen/abyss/internal/game/entity"

// Condition is one card-branch predicate. A condition that returns true may
// have written a selected target or position into ctx for the branch's
// actions to consume.
type Condition interface {
	// Evaluate reports whether the branch applies, given the current state.
	Evaluate(s State, self *entity.Entity, ctx *Context) bool
}

// TargetInRange is true when at least one living opponent is within self's
// attack range. The selector picks which of them lands in ctx.Target.
type TargetInRange struct {
	Selector Selector
}

// Evaluate collects the opponents within attack range and selects one into
// ctx.Target.
//
// Postcondition: returns true iff at least one candidate exists; on true,
// ctx.Target is non-nil.
func (c TargetInRange) Evaluate(s State, self *entity.Entity, ctx *Context) bool {
	var candidates []*entity.Entity
	for _, o := range s.Opponents(self) {
		if self.Position().ManhattanDistance(o.Position()) <= self.AttackRange() {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	ctx.Target = c.Selector.Select(self, candidates)
	return true
}

// CanMoveCloser is true when some reachable cell strictly reduces self's
// footprint-aware distance to some opponent. The best such cell lands in
// ctx.TargetPosition and the opponent it closes on in ctx.Target, so the AI
// never takes a move that gains nothing.
//
// The scan is reachable cells × opponents — bounded by grid volume and
// roster size, acceptable at this grid scale.
type CanMoveCloser struct{}

// Evaluate scans for the reachable cell minimizing the new distance to any
// opponent.
//
// Postcondition: returns true iff the minimum found is strictly less than
// the current distance to the closest opponent; on true, ctx.TargetPosition
// and ctx.Target are set.
func (CanMoveCloser) Evaluate(s State, self *entity.Entity, ctx *Context) bool {
	opponents := s.Opponents(self)
	if len(opponents) == 0 {
		return false
	}

	current := -1
	for _, o := range opponents {
		if d := FootprintDistance(self, self.Position(), o); current < 0 || d < current {
			current = d
		}
	}

	bestDist := current
	found := false
	for _, cell := range s.ReachablePositions(self) {
		for _, o := range opponents {
			d := FootprintDistance(self, cell, o)
			if d < bestDist {
				bestDist = d
				found = true
				ctx.Target = o
				pos := cell
				ctx.TargetPosition = &pos
			}
		}
	}
	return found
}
