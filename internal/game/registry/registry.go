// Package registry owns the entity roster for a match and keeps grid
// occupancy synchronized with entity position and lifecycle.
//
// Death does not remove: a dead entity persists as a non-occupying roster
// entry, which keeps identifiers resolvable for event consumers and
// replays. Remove is the explicit despawn path for callers that really
// want an entity gone.
package registry

import (
	"fmt"

	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

// Registry tracks all entities of one match in insertion order.
//
// Invariant: every occupied grid cell corresponds to exactly one cell of one
// alive registered entity's footprint, and vice versa.
type Registry struct {
	g        *grid.Grid
	bus      *event.Bus
	byID     map[string]*entity.Entity
	ordered  []*entity.Entity
}

// New constructs a Registry over g, publishing entity notifications to bus.
//
// Precondition: g and bus must not be nil. Panics with "registry: ..."
// otherwise.
func New(g *grid.Grid, bus *event.Bus) *Registry {
	if g == nil {
		panic("registry: nil grid")
	}
	if bus == nil {
		panic("registry: nil event bus")
	}
	return &Registry{
		g:    g,
		bus:  bus,
		byID: make(map[string]*entity.Entity),
	}
}

// Add registers e, occupies its footprint cells, and installs the
// notification hooks that keep occupancy synchronized for the rest of the
// entity's life.
//
// Precondition: e's ID must be unused and every footprint cell must be in
// bounds and unoccupied. Violations panic — adding an entity somewhere
// illegal is a setup bug, not a gameplay outcome.
// Postcondition: Get(e.ID()) returns e; every cell of e's footprint is
// occupied.
func (r *Registry) Add(e *entity.Entity) {
	if _, exists := r.byID[e.ID()]; exists {
		panic(fmt.Sprintf("registry: duplicate entity id %q", e.ID()))
	}
	cells := e.Cells()
	for _, c := range cells {
		if !r.g.IsValidCoordinate(c) {
			panic(fmt.Sprintf("registry: entity %q footprint cell %s out of bounds", e.ID(), c))
		}
		if r.g.IsOccupied(c) {
			panic(fmt.Sprintf("registry: entity %q footprint cell %s already occupied", e.ID(), c))
		}
	}
	for _, c := range cells {
		r.g.SetOccupied(c)
	}

	e.SetHooks(r.onMoved, r.onDamaged, r.onDied)
	r.byID[e.ID()] = e
	r.ordered = append(r.ordered, e)

	r.bus.Publish(event.Event{
		Type:       event.TypeEntityAdded,
		EntityID:   e.ID(),
		EntityName: e.Name(),
		To:         e.Position(),
	})
}

// Remove despawns the entity with the given id: its footprint cells are
// released, it leaves the roster, and an entity-removed event is published.
//
// Precondition: id must be registered. Panics with "registry: unknown
// entity" otherwise.
// Postcondition: Get(id) returns false; none of the entity's former cells
// are occupied by it.
func (r *Registry) Remove(id string) {
	e, ok := r.byID[id]
	if !ok {
		panic(fmt.Sprintf("registry: unknown entity %q", id))
	}
	if e.IsAlive() {
		for _, c := range e.Cells() {
			r.g.ClearOccupied(c)
		}
	}
	delete(r.byID, id)
	for i, other := range r.ordered {
		if other == e {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			break
		}
	}
	r.bus.Publish(event.Event{
		Type:       event.TypeEntityRemoved,
		EntityID:   e.ID(),
		EntityName: e.Name(),
		From:       e.Position(),
	})
}

// Get returns the entity with the given id.
//
// Postcondition: returns (entity, true) if registered, (nil, false) otherwise.
func (r *Registry) Get(id string) (*entity.Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// All returns the roster in insertion order, dead entities included.
func (r *Registry) All() []*entity.Entity {
	out := make([]*entity.Entity, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// AliveByKind returns the living entities of kind k in insertion order.
//
// Postcondition: every returned entity satisfies IsAlive().
func (r *Registry) AliveByKind(k entity.Kind) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range r.ordered {
		if e.Kind() == k && e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// EntityAt returns the living entity whose footprint covers c.
//
// Postcondition: returns (entity, true) if some alive entity's footprint
// contains c, (nil, false) otherwise.
func (r *Registry) EntityAt(c grid.Coordinate) (*entity.Entity, bool) {
	for _, e := range r.ordered {
		if !e.IsAlive() {
			continue
		}
		for _, cell := range e.Cells() {
			if cell == c {
				return e, true
			}
		}
	}
	return nil, false
}

// Move relocates e's anchor to target. Validation of the destination
// (bounds, occupancy, reachability) belongs to the command pipeline; Move is
// the mutation primitive it invokes after a successful validation.
//
// Precondition: e must be registered. Panics with "registry: unknown entity"
// otherwise.
func (r *Registry) Move(e *entity.Entity, target grid.Coordinate) {
	if _, ok := r.byID[e.ID()]; !ok {
		panic(fmt.Sprintf("registry: unknown entity %q", e.ID()))
	}
	e.MoveTo(target)
}

// onMoved clears the footprint cells at from, occupies them at to, and
// publishes the move.
func (r *Registry) onMoved(e *entity.Entity, from, to grid.Coordinate) {
	for _, c := range e.Size().Cells(from) {
		r.g.ClearOccupied(c)
	}
	for _, c := range e.Size().Cells(to) {
		r.g.SetOccupied(c)
	}
	r.bus.Publish(event.Event{
		Type:       event.TypeEntityMoved,
		EntityID:   e.ID(),
		EntityName: e.Name(),
		From:       from,
		To:         to,
	})
}

// onDamaged publishes the damage notification.
func (r *Registry) onDamaged(e *entity.Entity, amount int) {
	r.bus.Publish(event.Event{
		Type:       event.TypeEntityDamaged,
		EntityID:   e.ID(),
		EntityName: e.Name(),
		Damage:     amount,
	})
}

// onDied clears the dead entity's footprint and publishes the death. The
// entity stays on the roster as a dead, non-occupying entry.
func (r *Registry) onDied(e *entity.Entity) {
	for _, c := range e.Cells() {
		r.g.ClearOccupied(c)
	}
	r.bus.Publish(event.Event{
		Type:       event.TypeEntityDied,
		EntityID:   e.ID(),
		EntityName: e.Name(),
	})
}
