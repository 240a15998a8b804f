package ai

import (
	"fmt"

	"github.com/cory-johannsen/abyss/internal/game/entity"
)

// Selector picks one target from a non-empty candidate list.
type Selector string

// The selector vocabulary.
const (
	// SelectNearest picks the candidate at minimum Manhattan distance from
	// the acting entity; ties go to the earlier candidate.
	SelectNearest Selector = "nearest"
	// SelectWeakest picks the candidate with the lowest current health.
	SelectWeakest Selector = "weakest"
	// SelectStrongest picks the candidate with the highest current health.
	SelectStrongest Selector = "strongest"
	// SelectFirst picks the first candidate in registry order.
	SelectFirst Selector = "first"
)

// Valid reports whether s is a known selector.
func (s Selector) Valid() bool {
	switch s {
	case SelectNearest, SelectWeakest, SelectStrongest, SelectFirst:
		return true
	default:
		return false
	}
}

// Select applies the selector to candidates.
//
// Precondition: candidates must be non-empty and s must be Valid. Panics
// with "ai: ..." on violation — selectors are validated at deck load time,
// so a bad one here is a programming error.
func (s Selector) Select(self *entity.Entity, candidates []*entity.Entity) *entity.Entity {
	if len(candidates) == 0 {
		panic("ai: Select on empty candidate list")
	}
	switch s {
	case SelectFirst:
		return candidates[0]
	case SelectNearest:
		best := candidates[0]
		bestDist := self.Position().ManhattanDistance(best.Position())
		for _, c := range candidates[1:] {
			if d := self.Position().ManhattanDistance(c.Position()); d < bestDist {
				best, bestDist = c, d
			}
		}
		return best
	case SelectWeakest:
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.CurrentHP() < best.CurrentHP() {
				best = c
			}
		}
		return best
	case SelectStrongest:
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.CurrentHP() > best.CurrentHP() {
				best = c
			}
		}
		return best
	default:
		panic(fmt.Sprintf("ai: unknown selector %q", s))
	}
}
