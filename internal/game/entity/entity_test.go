package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/grid"
)

func TestNew_Validation(t *testing.T) {
	assert.Panics(t, func() { entity.New(entity.KindPlayer, entity.Config{MaxHP: 0}) })
	assert.Panics(t, func() { entity.New(entity.KindPlayer, entity.Config{MaxHP: 10, MoveRange: -1}) })
	assert.Panics(t, func() { entity.New(entity.KindPlayer, entity.Config{MaxHP: 10, AttackRange: -1}) })
	assert.Panics(t, func() { entity.New(entity.KindPlayer, entity.Config{MaxHP: 10, AttackDamage: -1}) })
	assert.Panics(t, func() {
		entity.New(entity.KindPlayer, entity.Config{MaxHP: 10, Size: grid.Size{Width: -1, Height: 1, Depth: 1}})
	})
}

func TestNew_Defaults(t *testing.T) {
	e := entity.New(entity.KindMonster, entity.Config{Name: "Leviathan", MaxHP: 50})

	assert.NotEmpty(t, e.ID(), "ID is generated when not supplied")
	assert.Equal(t, 50, e.CurrentHP())
	assert.Equal(t, 50, e.MaxHP())
	assert.True(t, e.IsAlive())
	assert.Equal(t, grid.SingleCell, e.Size())
	assert.Equal(t, entity.KindMonster, e.Kind())
	assert.False(t, e.IsPlayer())
}

func TestNew_ExplicitID(t *testing.T) {
	e := entity.New(entity.KindPlayer, entity.Config{ID: "sub-1", MaxHP: 10})
	assert.Equal(t, "sub-1", e.ID())
}

func TestNewSubmarine_StatDefaults(t *testing.T) {
	s := entity.NewSubmarine(entity.Config{Name: "Nautilus"})
	assert.True(t, s.IsPlayer())
	assert.Equal(t, 100, s.MaxHP())
	assert.Equal(t, 4, s.MoveRange())
	assert.Equal(t, 2, s.AttackRange())
	assert.Equal(t, 25, s.AttackDamage())
}

func TestNewMonster_StatDefaults(t *testing.T) {
	m := entity.NewMonster(entity.Config{Name: "Leviathan"})
	assert.False(t, m.IsPlayer())
	assert.Equal(t, 200, m.MaxHP())
	assert.Equal(t, 3, m.MoveRange())
	assert.Equal(t, 1, m.AttackRange())
	assert.Equal(t, 30, m.AttackDamage())
}

func TestTakeDamage(t *testing.T) {
	e := entity.New(entity.KindMonster, entity.Config{MaxHP: 30})

	e.TakeDamage(10)
	assert.Equal(t, 20, e.CurrentHP())

	e.TakeDamage(25)
	assert.Equal(t, 0, e.CurrentHP(), "health floors at zero")
	assert.False(t, e.IsAlive())

	// Dead entities ignore further damage.
	e.TakeDamage(5)
	assert.Equal(t, 0, e.CurrentHP())
}

func TestTakeDamage_NegativePanics(t *testing.T) {
	e := entity.New(entity.KindMonster, entity.Config{MaxHP: 30})
	assert.Panics(t, func() { e.TakeDamage(-1) })
}

func TestTakeDamage_DeathHookFiresOnce(t *testing.T) {
	e := entity.New(entity.KindMonster, entity.Config{MaxHP: 10})
	var deaths, damages int
	e.SetHooks(nil,
		func(*entity.Entity, int) { damages++ },
		func(*entity.Entity) { deaths++ },
	)

	e.TakeDamage(10)
	e.TakeDamage(10)
	e.TakeDamage(10)

	assert.Equal(t, 1, deaths, "death notification must fire exactly once")
	assert.Equal(t, 1, damages, "damage to a dead entity raises no notification")
}

func TestTakeDamage_Property_MonotonicFlooredAtZero(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 500).Draw(rt, "max_hp")
		hits := rapid.SliceOfN(rapid.IntRange(0, 200), 0, 12).Draw(rt, "hits")
		e := entity.New(entity.KindMonster, entity.Config{MaxHP: maxHP})

		prev := e.CurrentHP()
		for _, h := range hits {
			e.TakeDamage(h)
			assert.LessOrEqual(rt, e.CurrentHP(), prev)
			assert.GreaterOrEqual(rt, e.CurrentHP(), 0)
			prev = e.CurrentHP()
		}
	})
}

func TestHeal(t *testing.T) {
	e := entity.New(entity.KindPlayer, entity.Config{MaxHP: 50})
	e.TakeDamage(30)

	e.Heal(10)
	assert.Equal(t, 30, e.CurrentHP())

	e.Heal(100)
	assert.Equal(t, 50, e.CurrentHP(), "healing caps at MaxHP")

	assert.Panics(t, func() { e.Heal(-1) })
}

func TestHeal_DeadEntityStaysDead(t *testing.T) {
	e := entity.New(entity.KindPlayer, entity.Config{MaxHP: 20})
	e.TakeDamage(20)
	e.Heal(20)
	assert.Equal(t, 0, e.CurrentHP())
	assert.False(t, e.IsAlive())
}

func TestMoveTo_FiresHook(t *testing.T) {
	start := grid.Coordinate{X: 1, Y: 0, Z: 1}
	e := entity.New(entity.KindPlayer, entity.Config{MaxHP: 10, Position: start})

	var gotFrom, gotTo grid.Coordinate
	e.SetHooks(func(_ *entity.Entity, from, to grid.Coordinate) {
		gotFrom, gotTo = from, to
	}, nil, nil)

	dest := grid.Coordinate{X: 3, Y: 0, Z: 2}
	e.MoveTo(dest)

	require.Equal(t, dest, e.Position())
	assert.Equal(t, start, gotFrom)
	assert.Equal(t, dest, gotTo)
}

func TestCells_MultiCellFootprint(t *testing.T) {
	e := entity.New(entity.KindMonster, entity.Config{
		MaxHP:    100,
		Position: grid.Coordinate{X: 2, Y: 0, Z: 2},
		Size:     grid.NewSize(2, 1, 2),
	})
	cells := e.Cells()
	assert.Len(t, cells, 4)
	assert.Equal(t, e.Position(), cells[0])
}
