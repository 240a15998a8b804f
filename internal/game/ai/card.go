package ai

import "fmt"

// Branch pairs one condition with the actions that run when it is the first
// branch of its card to evaluate true.
type Branch struct {
	Condition Condition
	Actions   []Action
}

// Card is one AI decision unit: ordered condition→action branches plus a
// fallback action list that runs when no branch matches. An empty fallback
// means idle.
type Card struct {
	// ID names the card for logs and deck files.
	ID string
	// Branches are evaluated in declaration order; the first true condition
	// wins and evaluation stops.
	Branches []Branch
	// Fallback runs when no branch matched.
	Fallback []Action
}

// Validate checks the card's structural invariants.
//
// Postcondition: nil return guarantees a non-empty ID and a non-nil
// condition with at least one action in every branch.
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("ai: card with empty ID")
	}
	for i, b := range c.Branches {
		if b.Condition == nil {
			return fmt.Errorf("ai: card %q branch %d has no condition", c.ID, i)
		}
		if len(b.Actions) == 0 {
			return fmt.Errorf("ai: card %q branch %d has no actions", c.ID, i)
		}
	}
	return nil
}
