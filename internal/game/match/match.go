// Package match composes the grid, registry, pathfinder, turn controller,
// command pipeline, and AI engine behind one facade and one event stream.
//
// A Match is the unit of isolation: it is single-threaded and synchronous,
// owned by one goroutine at a time. Servers hosting many matches keep one
// Match per game and never share grids, registries, or turn state between
// them.
package match

import (
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/cory-johannsen/abyss/internal/game/ai"
	"github.com/cory-johannsen/abyss/internal/game/command"
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/grid"
	"github.com/cory-johannsen/abyss/internal/game/pathfind"
	"github.com/cory-johannsen/abyss/internal/game/registry"
	"github.com/cory-johannsen/abyss/internal/game/rng"
	"github.com/cory-johannsen/abyss/internal/game/turn"
)

// Winner values carried by the game-over event.
const (
	WinnerPlayer  = "player"
	WinnerMonster = "monster"
	WinnerNone    = "none"
)

// Config holds the construction parameters for a Match.
type Config struct {
	// Width, Height, Depth are the grid dimensions. All must be >= 1.
	Width  int
	Height int
	Depth  int
	// Source is the randomness source for AI card draws. Nil falls back to
	// crypto randomness; pass a seeded source for reproducible matches.
	Source rng.Source
	// Logger receives structured simulation logs. Nil means no logging.
	Logger *zap.Logger
	// DefaultDeck is the shared AI deck for monsters without an assigned
	// deck. Nil falls back to the built-in default.
	DefaultDeck *ai.Deck
}

// Match is the authoritative state of one battle.
type Match struct {
	id     string
	logger *zap.Logger
	g      *grid.Grid
	bus    *event.Bus
	reg    *registry.Registry
	pf     *pathfind.Pathfinder
	ctrl   *turn.Controller
	engine *ai.Engine

	over    bool
	winner  string
	driving bool
}

// New constructs a Match from cfg.
//
// Precondition: grid dimensions must be >= 1 (the grid panics otherwise).
func New(cfg Config) *Match {
	src := cfg.Source
	if src == nil {
		src = rng.NewCrypto()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	deck := cfg.DefaultDeck
	if deck == nil {
		deck = ai.DefaultDeck()
	}

	g := grid.New(cfg.Width, cfg.Height, cfg.Depth)
	bus := event.NewBus()
	reg := registry.New(g, bus)
	m := &Match{
		id:     uuid.NewString(),
		logger: logger,
		g:      g,
		bus:    bus,
		reg:    reg,
		pf:     pathfind.New(g),
		ctrl:   turn.New(reg, bus),
		engine: ai.NewEngine(deck, src, logger),
	}
	return m
}

// ID returns the match's unique identifier.
func (m *Match) ID() string { return m.id }

// Events returns the match's event bus for subscription.
func (m *Match) Events() *event.Bus { return m.bus }

// AddSubmarine creates and registers a player-controlled submarine.
//
// Precondition: the position and footprint must be legal (the registry
// panics on setup bugs).
func (m *Match) AddSubmarine(cfg entity.Config) *entity.Entity {
	e := entity.NewSubmarine(cfg)
	m.reg.Add(e)
	return e
}

// AddMonster creates and registers an AI-controlled monster.
func (m *Match) AddMonster(cfg entity.Config) *entity.Entity {
	e := entity.NewMonster(cfg)
	m.reg.Add(e)
	return e
}

// AssignDeck gives a monster its own behavior deck instead of the shared
// default.
func (m *Match) AssignDeck(entityID string, deck *ai.Deck) {
	m.engine.AssignDeck(entityID, deck)
}

// Start begins the first turn. If the opening phase lands on an
// AI-controlled entity (a match with no submarines), the AI acts
// immediately.
//
// Precondition: Start must be called exactly once (the controller panics on
// a second call).
func (m *Match) Start() {
	m.ctrl.Start()
	m.logger.Info("match started",
		zap.String("match_id", m.id),
		zap.Int("entities", len(m.reg.All())),
	)
	m.driveAI()
}

// Submit validates cmd and, on success, executes it. Validation failure is
// a normal outcome carried in the Result; execution happens only after a
// successful validation. After a player command resolves, any AI turns it
// triggered (by ending the player phase) run to completion before Submit
// returns.
func (m *Match) Submit(cmd command.Command) command.Result {
	if m.over {
		return command.Fail("game is over")
	}
	res := cmd.Validate(m)
	if !res.OK {
		m.logger.Debug("command rejected",
			zap.String("match_id", m.id),
			zap.String("reason", res.Reason),
		)
		return res
	}
	cmd.Execute(m)
	m.checkGameOver()
	m.driveAI()
	return res
}

// Over reports whether the match has ended.
func (m *Match) Over() bool { return m.over }

// Winner returns WinnerPlayer, WinnerMonster, or WinnerNone. Meaningless
// before Over() is true.
func (m *Match) Winner() string { return m.winner }

// Turn returns the current turn number.
func (m *Match) Turn() int { return m.ctrl.Turn() }

// Phase returns the current phase.
func (m *Match) Phase() turn.Phase { return m.ctrl.Phase() }

// Started reports whether the game has begun.
func (m *Match) Started() bool { return m.ctrl.Started() }

// ActiveEntity returns the entity currently permitted to act, or nil.
func (m *Match) ActiveEntity() *entity.Entity { return m.ctrl.Active() }

// EntityByID resolves an entity id.
func (m *Match) EntityByID(id string) (*entity.Entity, bool) {
	return m.reg.Get(id)
}

// EntityAt returns the living entity whose footprint covers c.
func (m *Match) EntityAt(c grid.Coordinate) (*entity.Entity, bool) {
	return m.reg.EntityAt(c)
}

// Entities returns the full roster in registry order, dead entries included.
func (m *Match) Entities() []*entity.Entity {
	return m.reg.All()
}

// IsValidCoordinate reports whether c is within the grid bounds.
func (m *Match) IsValidCoordinate(c grid.Coordinate) bool {
	return m.g.IsValidCoordinate(c)
}

// IsBlockedFor reports whether c is occupied by anything other than e's own
// footprint.
func (m *Match) IsBlockedFor(e *entity.Entity, c grid.Coordinate) bool {
	if !m.g.IsOccupied(c) {
		return false
	}
	for _, own := range e.Cells() {
		if own == c {
			return false
		}
	}
	return true
}

// ReachablePositions returns the cells e can move to this turn: within e's
// movement range by hop count, with occupied cells blocking traversal. The
// entity's own footprint never blocks itself. A dead entity reaches
// nothing.
//
// Postcondition: grid occupancy is unchanged. The query lifts e's own
// cells for the scan and restores them, which is only sound while e is
// alive and occupying them; the dead case never touches the grid.
func (m *Match) ReachablePositions(e *entity.Entity) []grid.Coordinate {
	if !e.IsAlive() {
		return nil
	}
	own := e.Cells()
	for _, c := range own {
		m.g.ClearOccupied(c)
	}
	reachable := m.pf.ReachablePositions(e.Position(), e.MoveRange())
	for _, c := range own {
		m.g.SetOccupied(c)
	}
	return reachable
}

// AttackableTargets returns the living opponents within e's attack range.
func (m *Match) AttackableTargets(e *entity.Entity) []*entity.Entity {
	var out []*entity.Entity
	for _, o := range m.Opponents(e) {
		if e.Position().ManhattanDistance(o.Position()) <= e.AttackRange() {
			out = append(out, o)
		}
	}
	return out
}

// Opponents returns the living entities hostile to e, in registry order.
func (m *Match) Opponents(e *entity.Entity) []*entity.Entity {
	if e.IsPlayer() {
		return m.reg.AliveByKind(entity.KindMonster)
	}
	return m.reg.AliveByKind(entity.KindPlayer)
}

// Path returns the shortest path between two coordinates, or nil when none
// exists.
func (m *Match) Path(start, end grid.Coordinate) []grid.Coordinate {
	return m.pf.FindPath(start, end)
}

// MoveEntity relocates e; occupancy and events follow through the registry.
func (m *Match) MoveEntity(e *entity.Entity, target grid.Coordinate) {
	m.reg.Move(e, target)
}

// AttackEntity publishes the attack and applies the damage; damage and
// death notifications follow from the entity hooks.
func (m *Match) AttackEntity(attacker, target *entity.Entity) {
	m.bus.Publish(event.Event{
		Type:       event.TypeEntityAttacked,
		EntityID:   target.ID(),
		EntityName: target.Name(),
		AttackerID: attacker.ID(),
		Damage:     attacker.AttackDamage(),
	})
	target.TakeDamage(attacker.AttackDamage())
}

// EndTurn advances the turn cycle past the active entity.
func (m *Match) EndTurn() {
	m.ctrl.Advance()
}

// checkGameOver ends the match when a side that ever fielded entities has
// none left alive. A side that was never populated (a monster-free drill,
// say) does not end the game by being empty.
func (m *Match) checkGameOver() {
	if m.over || !m.ctrl.Started() {
		return
	}
	var totalPlayers, totalMonsters int
	for _, e := range m.reg.All() {
		if e.IsPlayer() {
			totalPlayers++
		} else {
			totalMonsters++
		}
	}
	playersAlive := len(m.reg.AliveByKind(entity.KindPlayer))
	monstersAlive := len(m.reg.AliveByKind(entity.KindMonster))

	switch {
	case totalPlayers > 0 && playersAlive == 0 && totalMonsters > 0 && monstersAlive == 0:
		m.finish(WinnerNone)
	case totalPlayers > 0 && playersAlive == 0 && totalMonsters > 0:
		m.finish(WinnerMonster)
	case totalMonsters > 0 && monstersAlive == 0 && totalPlayers > 0:
		m.finish(WinnerPlayer)
	}
}

func (m *Match) finish(winner string) {
	m.over = true
	m.winner = winner
	m.logger.Info("match over",
		zap.String("match_id", m.id),
		zap.String("winner", winner),
		zap.Int("turn", m.ctrl.Turn()),
	)
	m.bus.Publish(event.Event{Type: event.TypeGameOver, Winner: winner, Turn: m.ctrl.Turn()})
}

// driveAI runs AI turns while the active entity is AI-controlled: one card
// decision, then an end-turn through the same command pipeline as player
// input. The guard keeps command submissions made by AI actions from
// re-entering the loop.
func (m *Match) driveAI() {
	if m.driving || m.over || !m.ctrl.Started() {
		return
	}
	m.driving = true
	defer func() { m.driving = false }()

	for !m.over {
		active := m.ctrl.Active()
		if active == nil || active.IsPlayer() {
			return
		}
		if len(m.Opponents(active)) == 0 {
			// A monsters-only match would cycle forever; park instead.
			return
		}
		m.engine.TakeTurn(m, active)
		m.checkGameOver()
		if m.over {
			return
		}
		end := command.EndTurn{EntityID: active.ID()}
		if res := end.Validate(m); res.OK {
			end.Execute(m)
			m.checkGameOver()
		} else {
			// The decision already advanced or invalidated the turn;
			// nothing further to end.
			return
		}
	}
}
