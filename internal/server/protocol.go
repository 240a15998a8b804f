// Package server exposes a running battle over WebSocket: it relays the
// simulation event stream to connected clients and accepts JSON command
// envelopes from them.
package server

import (
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// Frame kinds sent to clients.
const (
	FrameEvent    = "event"
	FrameResult   = "result"
	FrameSnapshot = "snapshot"
	FrameError    = "error"
)

// Envelope is one inbound client command.
type Envelope struct {
	// Type is "move", "attack", or "end_turn".
	Type string `json:"type"`
	// EntityID is the acting entity.
	EntityID string `json:"entity_id"`
	// Target is the destination cell for "move".
	Target grid.Coordinate `json:"target,omitzero"`
	// TargetID is the victim for "attack".
	TargetID string `json:"target_id,omitempty"`
}

// Frame is one outbound message.
type Frame struct {
	Kind string `json:"kind"`
	// Event is set for FrameEvent frames.
	Event *event.Event `json:"event,omitempty"`
	// OK and Reason are set for FrameResult frames.
	OK     bool   `json:"ok,omitempty"`
	Reason string `json:"reason,omitempty"`
	// Snapshot is set for FrameSnapshot frames.
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	// Message is set for FrameError frames.
	Message string `json:"message,omitempty"`
}

// EntityState is one entity in a snapshot.
type EntityState struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Position  grid.Coordinate `json:"position"`
	CurrentHP int             `json:"current_hp"`
	MaxHP     int             `json:"max_hp"`
	Alive     bool            `json:"alive"`
}

// Snapshot is the full observable match state, sent once on connect.
type Snapshot struct {
	MatchID  string        `json:"match_id"`
	Turn     int           `json:"turn"`
	Phase    string        `json:"phase"`
	ActiveID string        `json:"active_id,omitempty"`
	Over     bool          `json:"over"`
	Winner   string        `json:"winner,omitempty"`
	Entities []EntityState `json:"entities"`
}
