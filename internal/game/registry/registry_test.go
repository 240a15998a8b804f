package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/grid"
	"github.com/cory-johannsen/abyss/internal/game/registry"
)

func newTestRegistry(t *testing.T) (*grid.Grid, *event.Bus, *registry.Registry) {
	t.Helper()
	g := grid.New(10, 5, 10)
	bus := event.NewBus()
	return g, bus, registry.New(g, bus)
}

func TestAdd_OccupiesFootprint(t *testing.T) {
	g, _, reg := newTestRegistry(t)

	e := entity.NewSubmarine(entity.Config{ID: "sub", Position: grid.Coordinate{X: 2, Y: 0, Z: 2}})
	reg.Add(e)

	assert.True(t, g.IsOccupied(grid.Coordinate{X: 2, Y: 0, Z: 2}))
	got, ok := reg.Get("sub")
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestAdd_MultiCellFootprint(t *testing.T) {
	g, _, reg := newTestRegistry(t)

	m := entity.NewMonster(entity.Config{
		ID:       "kraken",
		Position: grid.Coordinate{X: 4, Y: 0, Z: 4},
		Size:     grid.NewSize(2, 1, 2),
	})
	reg.Add(m)

	assert.Equal(t, 4, g.OccupiedCount())
	for _, c := range m.Cells() {
		assert.True(t, g.IsOccupied(c), "footprint cell %s not occupied", c)
	}
}

func TestAdd_PanicsOnSetupBugs(t *testing.T) {
	_, _, reg := newTestRegistry(t)

	reg.Add(entity.NewSubmarine(entity.Config{ID: "sub", Position: grid.Coordinate{X: 0, Y: 0, Z: 0}}))

	assert.Panics(t, func() {
		reg.Add(entity.NewSubmarine(entity.Config{ID: "sub", Position: grid.Coordinate{X: 1, Y: 0, Z: 0}}))
	}, "duplicate id")
	assert.Panics(t, func() {
		reg.Add(entity.NewSubmarine(entity.Config{ID: "other", Position: grid.Coordinate{X: 0, Y: 0, Z: 0}}))
	}, "occupied cell")
	assert.Panics(t, func() {
		reg.Add(entity.NewSubmarine(entity.Config{ID: "oob", Position: grid.Coordinate{X: 99, Y: 0, Z: 0}}))
	}, "out of bounds")
	assert.Panics(t, func() {
		// Footprint pokes past the boundary even though the anchor is legal.
		reg.Add(entity.NewMonster(entity.Config{
			ID:       "big",
			Position: grid.Coordinate{X: 9, Y: 4, Z: 9},
			Size:     grid.NewSize(2, 1, 1),
		}))
	}, "footprint out of bounds")
}

func TestMove_SyncsOccupancy(t *testing.T) {
	g, _, reg := newTestRegistry(t)

	e := entity.NewSubmarine(entity.Config{ID: "sub", Position: grid.Coordinate{X: 2, Y: 0, Z: 2}})
	reg.Add(e)

	reg.Move(e, grid.Coordinate{X: 5, Y: 0, Z: 5})

	assert.False(t, g.IsOccupied(grid.Coordinate{X: 2, Y: 0, Z: 2}), "old cell must be cleared")
	assert.True(t, g.IsOccupied(grid.Coordinate{X: 5, Y: 0, Z: 5}))
	assert.Equal(t, grid.Coordinate{X: 5, Y: 0, Z: 5}, e.Position())
}

func TestDeath_ClearsOccupancyKeepsRosterEntry(t *testing.T) {
	g, _, reg := newTestRegistry(t)

	m := entity.NewMonster(entity.Config{ID: "mon", MaxHP: 10, Position: grid.Coordinate{X: 3, Y: 0, Z: 3}})
	reg.Add(m)
	m.TakeDamage(10)

	assert.False(t, g.IsOccupied(grid.Coordinate{X: 3, Y: 0, Z: 3}), "dead entities do not occupy")
	_, ok := reg.Get("mon")
	assert.True(t, ok, "dead entities stay on the roster")
	assert.Len(t, reg.All(), 1)
	assert.Empty(t, reg.AliveByKind(entity.KindMonster))
}

func TestRemove_DespawnsEntity(t *testing.T) {
	g, bus, reg := newTestRegistry(t)

	var removed []event.Event
	bus.Subscribe(func(ev event.Event) {
		if ev.Type == event.TypeEntityRemoved {
			removed = append(removed, ev)
		}
	})

	m := entity.NewMonster(entity.Config{
		ID:       "kraken",
		Position: grid.Coordinate{X: 4, Y: 0, Z: 4},
		Size:     grid.NewSize(2, 1, 2),
	})
	reg.Add(m)
	reg.Remove("kraken")

	assert.Equal(t, 0, g.OccupiedCount())
	_, ok := reg.Get("kraken")
	assert.False(t, ok)
	assert.Empty(t, reg.All())
	require.Len(t, removed, 1)
	assert.Equal(t, "kraken", removed[0].EntityID)

	assert.Panics(t, func() { reg.Remove("kraken") }, "unknown id")
}

func TestAliveByKind_OrderAndFiltering(t *testing.T) {
	_, _, reg := newTestRegistry(t)

	s1 := entity.NewSubmarine(entity.Config{ID: "s1", Position: grid.Coordinate{X: 0, Y: 0, Z: 0}})
	m1 := entity.NewMonster(entity.Config{ID: "m1", MaxHP: 5, Position: grid.Coordinate{X: 1, Y: 0, Z: 0}})
	s2 := entity.NewSubmarine(entity.Config{ID: "s2", Position: grid.Coordinate{X: 2, Y: 0, Z: 0}})
	reg.Add(s1)
	reg.Add(m1)
	reg.Add(s2)

	subs := reg.AliveByKind(entity.KindPlayer)
	require.Len(t, subs, 2)
	assert.Equal(t, "s1", subs[0].ID())
	assert.Equal(t, "s2", subs[1].ID())

	m1.TakeDamage(5)
	assert.Empty(t, reg.AliveByKind(entity.KindMonster))
}

func TestEntityAt_FootprintAware(t *testing.T) {
	_, _, reg := newTestRegistry(t)

	m := entity.NewMonster(entity.Config{
		ID:       "kraken",
		Position: grid.Coordinate{X: 4, Y: 0, Z: 4},
		Size:     grid.NewSize(2, 1, 2),
	})
	reg.Add(m)

	got, ok := reg.EntityAt(grid.Coordinate{X: 5, Y: 0, Z: 5})
	require.True(t, ok, "non-anchor footprint cell resolves the entity")
	assert.Same(t, m, got)

	_, ok = reg.EntityAt(grid.Coordinate{X: 6, Y: 0, Z: 6})
	assert.False(t, ok)

	m.TakeDamage(m.MaxHP())
	_, ok = reg.EntityAt(grid.Coordinate{X: 4, Y: 0, Z: 4})
	assert.False(t, ok, "dead entities are not found at their last position")
}

func TestRegistry_PublishesEntityEvents(t *testing.T) {
	g := grid.New(10, 5, 10)
	bus := event.NewBus()
	reg := registry.New(g, bus)

	var types []event.Type
	bus.Subscribe(func(ev event.Event) { types = append(types, ev.Type) })

	m := entity.NewMonster(entity.Config{ID: "mon", MaxHP: 10, Position: grid.Coordinate{X: 1, Y: 0, Z: 1}})
	reg.Add(m)
	reg.Move(m, grid.Coordinate{X: 2, Y: 0, Z: 1})
	m.TakeDamage(10)

	assert.Equal(t, []event.Type{
		event.TypeEntityAdded,
		event.TypeEntityMoved,
		event.TypeEntityDamaged,
		event.TypeEntityDied,
	}, types)
}

func TestOccupancy_Property_CellCountMatchesAliveFootprints(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := grid.New(12, 3, 12)
		bus := event.NewBus()
		reg := registry.New(g, bus)

		// Place entities on a coarse lattice so footprints never collide.
		n := rapid.IntRange(0, 8).Draw(rt, "n")
		var all []*struct {
			e    *entity.Entity
			dead bool
		}
		for i := 0; i < n; i++ {
			pos := grid.Coordinate{X: (i % 4) * 3, Y: 0, Z: (i / 4) * 3}
			e := entity.NewMonster(entity.Config{
				ID:       pos.String(),
				MaxHP:    10,
				Position: pos,
				Size:     grid.NewSize(rapid.IntRange(1, 2).Draw(rt, "w"), 1, 1),
			})
			reg.Add(e)
			all = append(all, &struct {
				e    *entity.Entity
				dead bool
			}{e: e})
		}

		// Kill an arbitrary subset.
		for _, rec := range all {
			if rapid.Bool().Draw(rt, "kill") {
				rec.e.TakeDamage(10)
				rec.dead = true
			}
		}

		want := 0
		for _, rec := range all {
			if !rec.dead {
				want += rec.e.Size().CellCount()
			}
		}
		assert.Equal(rt, want, g.OccupiedCount())
	})
}
