package command

// Attack applies the attacker's damage to a living target within reach.
type Attack struct {
	// AttackerID is the acting entity.
	AttackerID string
	// TargetID is the entity being attacked.
	TargetID string
}

func (Attack) isCommand() {}

// Validate applies the attack rules in order, short-circuiting on the first
// failure: game started, attacker exists and is alive, attacker is active,
// target exists and is alive, attacker and target differ, and the Manhattan
// distance between them is within the attacker's attack range.
func (a Attack) Validate(s State) Result {
	if !s.Started() {
		return Fail("game has not started")
	}
	attacker, ok := s.EntityByID(a.AttackerID)
	if !ok {
		return Fail("attacker not found")
	}
	if !attacker.IsAlive() {
		return Fail("attacker is dead")
	}
	if s.ActiveEntity() != attacker {
		return Fail("attacker is not the active entity")
	}
	target, ok := s.EntityByID(a.TargetID)
	if !ok {
		return Fail("target not found")
	}
	if !target.IsAlive() {
		return Fail("target is dead")
	}
	if attacker == target {
		return Fail("cannot attack self")
	}
	if attacker.Position().ManhattanDistance(target.Position()) > attacker.AttackRange() {
		return Fail("target out of attack range")
	}
	return Ok()
}

// Execute applies the damage; death handling lives in the entity itself.
func (a Attack) Execute(s State) {
	attacker, ok := s.EntityByID(a.AttackerID)
	if !ok {
		panic("command: Attack.Execute on unvalidated command")
	}
	target, ok := s.EntityByID(a.TargetID)
	if !ok {
		panic("command: Attack.Execute on unvalidated command")
	}
	s.AttackEntity(attacker, target)
}
