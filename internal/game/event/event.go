// Package event defines the typed domain events emitted by the simulation
// core and the subscription bus consumers attach to.
//
// The core knows nothing about its subscribers; presentation, AI drivers,
// and network relays all attach through Bus and detach explicitly, which
// keeps reference cycles out of the core.
package event

import "github.com/cory-johannsen/abyss/internal/game/grid"

// Type identifies a domain event variant.
type Type string

// Domain event types.
const (
	TypeEntityAdded         Type = "entity_added"
	TypeEntityRemoved       Type = "entity_removed"
	TypeEntityMoved         Type = "entity_moved"
	TypeEntityAttacked      Type = "entity_attacked"
	TypeEntityDamaged       Type = "entity_damaged"
	TypeEntityDied          Type = "entity_died"
	TypeTurnStarted         Type = "turn_started"
	TypeTurnEnded           Type = "turn_ended"
	TypePhaseChanged        Type = "phase_changed"
	TypeActiveEntityChanged Type = "active_entity_changed"
	TypeGameOver            Type = "game_over"
)

// Event is one domain event. Exactly one of the optional payload groups is
// meaningful per Type; unused fields hold zero values.
type Event struct {
	Type Type `json:"type"`

	// EntityID identifies the subject entity for entity-scoped events and
	// the newly active entity for TypeActiveEntityChanged (empty when the
	// active slot was cleared).
	EntityID string `json:"entity_id,omitempty"`
	// EntityName is the subject entity's display name.
	EntityName string `json:"entity_name,omitempty"`

	// From and To carry the old and new anchor coordinates for
	// TypeEntityMoved.
	From grid.Coordinate `json:"from,omitzero"`
	To   grid.Coordinate `json:"to,omitzero"`

	// AttackerID and Damage describe TypeEntityAttacked and
	// TypeEntityDamaged. EntityID is the target.
	AttackerID string `json:"attacker_id,omitempty"`
	Damage     int    `json:"damage,omitempty"`

	// Turn is the turn number for turn- and phase-scoped events.
	Turn int `json:"turn,omitempty"`
	// Phase is the new phase name for TypePhaseChanged.
	Phase string `json:"phase,omitempty"`

	// Winner is the winning side for TypeGameOver: "player" or "monster".
	Winner string `json:"winner,omitempty"`
}
