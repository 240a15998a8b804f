// Package entity defines the combat unit model for Abyss: player-controlled
// submarines and AI-controlled monsters, their stats, and the health and
// position invariants the rest of the core relies on.
package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// Kind distinguishes player-controlled entities from AI-controlled ones.
// Behavior differences between the two are data (stat defaults and which
// driver submits their commands), not virtual dispatch.
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Entity is one combat unit on the grid.
//
// Invariant: 0 <= CurrentHP() <= MaxHP(); IsAlive() iff CurrentHP() > 0.
// Once CurrentHP reaches 0 it never changes again: dead entities ignore
// further damage and healing.
type Entity struct {
	id           string
	name         string
	kind         Kind
	position     grid.Coordinate
	currentHP    int
	maxHP        int
	moveRange    int
	attackRange  int
	attackDamage int
	size         grid.Size

	// Registry-owned notification hooks. External code never sees these;
	// the registry installs them on Add to keep occupancy and the event
	// stream synchronized with entity state.
	onMoved   func(e *Entity, from, to grid.Coordinate)
	onDamaged func(e *Entity, amount int)
	onDied    func(e *Entity)
}

// Config holds the validated construction parameters for an Entity.
type Config struct {
	// ID uniquely identifies the entity; empty means generate a UUID.
	ID string
	// Name is the display name.
	Name string
	// Position is the anchor coordinate of the entity's footprint.
	Position grid.Coordinate
	// MaxHP is the maximum (and starting) health. Must be > 0.
	MaxHP int
	// MoveRange is the movement range in cells per turn. Must be >= 0.
	MoveRange int
	// AttackRange is the attack reach in Manhattan distance. Must be >= 0.
	AttackRange int
	// AttackDamage is the flat damage dealt per attack. Must be >= 0.
	AttackDamage int
	// Size is the footprint; zero value means a single cell.
	Size grid.Size
}

// Stat defaults per variant. Balancing lives with the caller; these only
// keep zero-config entities playable.
const (
	defaultSubmarineHP     = 100
	defaultSubmarineMove   = 4
	defaultSubmarineReach  = 2
	defaultSubmarineDamage = 25

	defaultMonsterHP     = 200
	defaultMonsterMove   = 3
	defaultMonsterReach  = 1
	defaultMonsterDamage = 30
)

// New constructs a validated Entity of the given kind.
//
// Precondition: cfg.MaxHP > 0; cfg.MoveRange, cfg.AttackRange, and
// cfg.AttackDamage >= 0; cfg.Size dimensions all >= 1 (or all zero for the
// single-cell default). Panics with "entity: ..." on violation — a bad
// configuration is a caller bug, not a gameplay outcome.
// Postcondition: CurrentHP() == MaxHP(); IsAlive() is true.
func New(kind Kind, cfg Config) *Entity {
	if cfg.MaxHP <= 0 {
		panic(fmt.Sprintf("entity: MaxHP must be > 0, got %d", cfg.MaxHP))
	}
	if cfg.MoveRange < 0 {
		panic(fmt.Sprintf("entity: MoveRange must be >= 0, got %d", cfg.MoveRange))
	}
	if cfg.AttackRange < 0 {
		panic(fmt.Sprintf("entity: AttackRange must be >= 0, got %d", cfg.AttackRange))
	}
	if cfg.AttackDamage < 0 {
		panic(fmt.Sprintf("entity: AttackDamage must be >= 0, got %d", cfg.AttackDamage))
	}
	size := cfg.Size
	if size == (grid.Size{}) {
		size = grid.SingleCell
	}
	if size.Width < 1 || size.Height < 1 || size.Depth < 1 {
		panic(fmt.Sprintf("entity: invalid footprint %s", cfg.Size))
	}
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	return &Entity{
		id:           id,
		name:         cfg.Name,
		kind:         kind,
		position:     cfg.Position,
		currentHP:    cfg.MaxHP,
		maxHP:        cfg.MaxHP,
		moveRange:    cfg.MoveRange,
		attackRange:  cfg.AttackRange,
		attackDamage: cfg.AttackDamage,
		size:         size,
	}
}

// NewSubmarine constructs a player-controlled submarine, filling unset
// combat stats with the submarine defaults.
//
// Postcondition: Kind() == KindPlayer.
func NewSubmarine(cfg Config) *Entity {
	if cfg.MaxHP == 0 {
		cfg.MaxHP = defaultSubmarineHP
	}
	if cfg.MoveRange == 0 {
		cfg.MoveRange = defaultSubmarineMove
	}
	if cfg.AttackRange == 0 {
		cfg.AttackRange = defaultSubmarineReach
	}
	if cfg.AttackDamage == 0 {
		cfg.AttackDamage = defaultSubmarineDamage
	}
	return New(KindPlayer, cfg)
}

// NewMonster constructs an AI-controlled monster, filling unset combat stats
// with the monster defaults.
//
// Postcondition: Kind() == KindMonster.
func NewMonster(cfg Config) *Entity {
	if cfg.MaxHP == 0 {
		cfg.MaxHP = defaultMonsterHP
	}
	if cfg.MoveRange == 0 {
		cfg.MoveRange = defaultMonsterMove
	}
	if cfg.AttackRange == 0 {
		cfg.AttackRange = defaultMonsterReach
	}
	if cfg.AttackDamage == 0 {
		cfg.AttackDamage = defaultMonsterDamage
	}
	return New(KindMonster, cfg)
}

// ID returns the entity's unique identifier.
func (e *Entity) ID() string { return e.id }

// Name returns the display name.
func (e *Entity) Name() string { return e.name }

// Kind returns the control discriminant.
func (e *Entity) Kind() Kind { return e.kind }

// IsPlayer reports whether the entity is player-controlled.
func (e *Entity) IsPlayer() bool { return e.kind == KindPlayer }

// Position returns the anchor coordinate of the entity's footprint.
func (e *Entity) Position() grid.Coordinate { return e.position }

// CurrentHP returns current health.
func (e *Entity) CurrentHP() int { return e.currentHP }

// MaxHP returns maximum health.
func (e *Entity) MaxHP() int { return e.maxHP }

// MoveRange returns the movement range in cells per turn.
func (e *Entity) MoveRange() int { return e.moveRange }

// AttackRange returns the attack reach in Manhattan distance.
func (e *Entity) AttackRange() int { return e.attackRange }

// AttackDamage returns the flat damage dealt per attack.
func (e *Entity) AttackDamage() int { return e.attackDamage }

// Size returns the entity's footprint.
func (e *Entity) Size() grid.Size { return e.size }

// Cells returns every grid cell the entity's footprint currently covers.
//
// Postcondition: len(result) == Size().CellCount(); result[0] == Position().
func (e *Entity) Cells() []grid.Coordinate {
	return e.size.Cells(e.position)
}

// IsAlive reports whether the entity can still act.
//
// Postcondition: returns true iff CurrentHP() > 0.
func (e *Entity) IsAlive() bool { return e.currentHP > 0 }

// TakeDamage reduces health by amount, flooring at zero. Damage to a dead
// entity is ignored; the death hook fires exactly once, on the transition to
// zero health.
//
// Precondition: amount >= 0. Panics with "entity: negative damage" otherwise.
// Postcondition: CurrentHP() is monotonically non-increasing across calls
// and never below 0.
func (e *Entity) TakeDamage(amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("entity: negative damage %d to %s", amount, e.id))
	}
	if !e.IsAlive() {
		return
	}
	e.currentHP -= amount
	if e.currentHP < 0 {
		e.currentHP = 0
	}
	if e.onDamaged != nil {
		e.onDamaged(e, amount)
	}
	if e.currentHP == 0 && e.onDied != nil {
		e.onDied(e)
	}
}

// Heal raises health by amount, capping at MaxHP. Healing a dead entity is
// ignored: death is permanent.
//
// Precondition: amount >= 0. Panics with "entity: negative heal" otherwise.
func (e *Entity) Heal(amount int) {
	if amount < 0 {
		panic(fmt.Sprintf("entity: negative heal %d to %s", amount, e.id))
	}
	if !e.IsAlive() {
		return
	}
	e.currentHP += amount
	if e.currentHP > e.maxHP {
		e.currentHP = e.maxHP
	}
}

// MoveTo relocates the entity's anchor to c and fires the moved hook.
// Occupancy bookkeeping belongs to the registry, which installs the hook.
func (e *Entity) MoveTo(c grid.Coordinate) {
	from := e.position
	e.position = c
	if e.onMoved != nil {
		e.onMoved(e, from, c)
	}
}

// SetHooks installs the registry-owned notification hooks. Any of the three
// may be nil.
func (e *Entity) SetHooks(
	onMoved func(e *Entity, from, to grid.Coordinate),
	onDamaged func(e *Entity, amount int),
	onDied func(e *Entity),
) {
	e.onMoved = onMoved
	e.onDamaged = onDamaged
	e.onDied = onDied
}
