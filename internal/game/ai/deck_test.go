package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/abyss/internal/game/ai"
	"github.com/cory-johannsen/abyss/internal/game/rng"
)

func idleCard(id string) *ai.Card {
	return &ai.Card{ID: id, Fallback: []ai.Action{ai.Idle{}}}
}

func TestDeck_WeightAsMultiplicity(t *testing.T) {
	deck := ai.NewDeck("test")
	deck.AddCard(idleCard("a"), 3)
	deck.AddCard(idleCard("b"), 1)

	assert.Equal(t, 4, deck.Len())

	// With 4 entries, draws land on "a" 3 times out of 4 over the index
	// space.
	counts := map[string]int{}
	for i := 0; i < 4; i++ {
		counts[deck.Draw(fixedSource(i)).ID]++
	}
	assert.Equal(t, 3, counts["a"])
	assert.Equal(t, 1, counts["b"])
}

func TestDeck_Validation(t *testing.T) {
	assert.Panics(t, func() { ai.NewDeck("") })

	deck := ai.NewDeck("test")
	assert.Panics(t, func() { deck.AddCard(idleCard("a"), 0) }, "weight < 1")
	assert.Panics(t, func() { deck.AddCard(&ai.Card{}, 1) }, "invalid card")
	assert.Panics(t, func() { deck.Draw(rng.NewSeeded(1)) }, "empty deck")
}

func TestDeck_Draw_DeterministicUnderSeed(t *testing.T) {
	build := func() *ai.Deck {
		d := ai.NewDeck("test")
		d.AddCard(idleCard("a"), 2)
		d.AddCard(idleCard("b"), 5)
		d.AddCard(idleCard("c"), 1)
		return d
	}
	a, b := build(), build()
	srcA, srcB := rng.NewSeeded(99), rng.NewSeeded(99)
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Draw(srcA).ID, b.Draw(srcB).ID, "draw %d diverged", i)
	}
}

func TestDeck_Draw_Property_AlwaysAMember(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		deck := ai.NewDeck("p")
		ids := map[string]bool{}
		n := rapid.IntRange(1, 5).Draw(rt, "cards")
		for i := 0; i < n; i++ {
			id := string(rune('a' + i))
			ids[id] = true
			deck.AddCard(idleCard(id), rapid.IntRange(1, 4).Draw(rt, "weight"))
		}
		src := rng.NewSeeded(rapid.Int64().Draw(rt, "seed"))
		assert.True(rt, ids[deck.Draw(src).ID])
	})
}

// fixedSource returns a Source that always yields v (modulo n).
type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }
