// Package turn implements the turn and phase state machine: whose turn it
// is, in which phase, across repeating turn cycles.
package turn

import (
	"fmt"

	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/event"
)

// Phase is one state of the per-turn cycle.
type Phase int

const (
	// PhaseTurnStart is the transient opening state of each turn.
	PhaseTurnStart Phase = iota
	// PhasePlayerAction is the phase in which player-controlled entities act.
	PhasePlayerAction
	// PhaseEnemyAction is the phase in which AI-controlled entities act.
	PhaseEnemyAction
	// PhaseTurnEnd is the transient closing state of each turn.
	PhaseTurnEnd
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTurnStart:
		return "turn_start"
	case PhasePlayerAction:
		return "player_action"
	case PhaseEnemyAction:
		return "enemy_action"
	case PhaseTurnEnd:
		return "turn_end"
	default:
		return "unknown"
	}
}

// Roster supplies the living entities used to rebuild the turn order at the
// start of every turn. The registry satisfies this.
type Roster interface {
	// AliveByKind returns the living entities of the given kind in
	// registry order.
	AliveByKind(k entity.Kind) []*entity.Entity
}

// Controller orchestrates the turn/phase cycle for one match.
//
// The turn roster is rebuilt at the start of every turn: all living
// player-controlled entities first, then all living AI-controlled entities,
// in registry order. Dead entities are never added, so they are skipped
// without special-casing.
//
// Invariant: after Start, Turn() >= 1; before Start any transition panics.
type Controller struct {
	roster  Roster
	bus     *event.Bus
	started bool
	turn    int
	phase   Phase
	order   []*entity.Entity
	active  *entity.Entity
}

// New constructs a Controller.
//
// Precondition: roster and bus must not be nil. Panics with "turn: ..."
// otherwise.
func New(roster Roster, bus *event.Bus) *Controller {
	if roster == nil {
		panic("turn: nil roster")
	}
	if bus == nil {
		panic("turn: nil event bus")
	}
	return &Controller{roster: roster, bus: bus}
}

// Started reports whether Start has been called.
func (c *Controller) Started() bool { return c.started }

// Turn returns the current turn number: 0 before Start, 1 from the first
// turn on.
func (c *Controller) Turn() int { return c.turn }

// Phase returns the current phase. Meaningless before Start.
func (c *Controller) Phase() Phase { return c.phase }

// Active returns the entity currently permitted to act, or nil at phase
// boundaries.
func (c *Controller) Active() *entity.Entity { return c.active }

// Order returns the roster for the current turn in action order.
func (c *Controller) Order() []*entity.Entity {
	out := make([]*entity.Entity, len(c.order))
	copy(out, c.order)
	return out
}

// Start begins the first turn.
//
// Precondition: Start must be called exactly once. Panics with
// "turn: already started" on a second call.
func (c *Controller) Start() {
	if c.started {
		panic("turn: already started")
	}
	c.started = true
	c.beginTurn()
}

// Advance ends the active entity's turn and moves the cycle forward:
// the next living entity of the current phase's kind, then the next phase,
// then the next turn.
//
// Precondition: Start must have been called. Panics with
// "turn: Advance before Start" otherwise — driving the cycle before the
// game begins is a caller bug.
func (c *Controller) Advance() {
	if !c.started {
		panic("turn: Advance before Start")
	}
	switch c.phase {
	case PhasePlayerAction:
		if next := c.nextLiving(entity.KindPlayer); next != nil {
			c.setActive(next)
			return
		}
		c.enterEnemyPhase()
	case PhaseEnemyAction:
		if next := c.nextLiving(entity.KindMonster); next != nil {
			c.setActive(next)
			return
		}
		c.endTurn()
	default:
		panic(fmt.Sprintf("turn: Advance in transient phase %s", c.phase))
	}
}

// beginTurn rebuilds the roster, fires turn-began, and advances into
// PlayerAction with the first living player selected.
func (c *Controller) beginTurn() {
	c.turn++
	c.phase = PhaseTurnStart
	players := c.roster.AliveByKind(entity.KindPlayer)
	monsters := c.roster.AliveByKind(entity.KindMonster)
	c.order = make([]*entity.Entity, 0, len(players)+len(monsters))
	c.order = append(c.order, players...)
	c.order = append(c.order, monsters...)

	c.bus.Publish(event.Event{Type: event.TypeTurnStarted, Turn: c.turn})

	c.setPhase(PhasePlayerAction)
	if len(players) > 0 {
		c.setActive(players[0])
		return
	}
	c.enterEnemyPhase()
}

// enterEnemyPhase selects the first living monster, or ends the turn when
// none exist.
func (c *Controller) enterEnemyPhase() {
	c.setPhase(PhaseEnemyAction)
	monsters := c.roster.AliveByKind(entity.KindMonster)
	if len(monsters) > 0 {
		c.setActive(monsters[0])
		return
	}
	c.endTurn()
}

// endTurn clears the active entity, fires turn-ended, and begins the next
// turn. When no living entities remain the controller parks in TurnEnd
// instead of cycling empty turns; the facade detects that state as game
// over before it is ever reached in normal play.
func (c *Controller) endTurn() {
	c.setActive(nil)
	c.setPhase(PhaseTurnEnd)
	c.bus.Publish(event.Event{Type: event.TypeTurnEnded, Turn: c.turn})

	if len(c.roster.AliveByKind(entity.KindPlayer)) == 0 &&
		len(c.roster.AliveByKind(entity.KindMonster)) == 0 {
		return
	}
	c.beginTurn()
}

// nextLiving scans the current roster past the active entity for the next
// living entity of kind k.
func (c *Controller) nextLiving(k entity.Kind) *entity.Entity {
	start := 0
	if c.active != nil {
		for i, e := range c.order {
			if e == c.active {
				start = i + 1
				break
			}
		}
	}
	for _, e := range c.order[start:] {
		if e.Kind() == k && e.IsAlive() {
			return e
		}
	}
	return nil
}

func (c *Controller) setPhase(p Phase) {
	c.phase = p
	c.bus.Publish(event.Event{Type: event.TypePhaseChanged, Turn: c.turn, Phase: p.String()})
}

func (c *Controller) setActive(e *entity.Entity) {
	c.active = e
	ev := event.Event{Type: event.TypeActiveEntityChanged, Turn: c.turn}
	if e != nil {
		ev.EntityID = e.ID()
		ev.EntityName = e.Name()
	}
	c.bus.Publish(ev)
}
