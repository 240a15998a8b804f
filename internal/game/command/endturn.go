package command

// EndTurn ends the issuing entity's turn, advancing the phase cycle.
type EndTurn struct {
	// EntityID is the entity whose turn is being ended.
	EntityID string
}

func (EndTurn) isCommand() {}

// Validate applies the end-turn rules in order: game started, an active
// entity exists, and it matches the issuing entity.
func (e EndTurn) Validate(s State) Result {
	if !s.Started() {
		return Fail("game has not started")
	}
	active := s.ActiveEntity()
	if active == nil {
		return Fail("no active entity")
	}
	if active.ID() != e.EntityID {
		return Fail("not this entity's turn")
	}
	return Ok()
}

// Execute triggers the phase-advance transition.
func (e EndTurn) Execute(s State) {
	s.EndTurn()
}
