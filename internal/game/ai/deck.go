package ai

import (
	"fmt"

	"github.com/cory-johannsen/abyss/internal/game/rng"
)

// Deck is a weighted multiset of cards. Weight is realized as repeated
// entries: a card added with weight N appears N times, so a uniform draw
// over the entries gives it probability N / total.
type Deck struct {
	// ID names the deck for assignment and deck files.
	ID string

	entries []*Card
}

// NewDeck creates an empty deck.
//
// Precondition: id must be non-empty. Panics with "ai: empty deck id"
// otherwise.
func NewDeck(id string) *Deck {
	if id == "" {
		panic("ai: empty deck id")
	}
	return &Deck{ID: id}
}

// AddCard inserts card weight times.
//
// Precondition: card must pass Validate and weight must be >= 1. Panics on
// violation — decks are assembled from validated load-time data, so a bad
// insert is a programming error.
func (d *Deck) AddCard(card *Card, weight int) {
	if err := card.Validate(); err != nil {
		panic(fmt.Sprintf("ai: AddCard: %v", err))
	}
	if weight < 1 {
		panic(fmt.Sprintf("ai: card %q weight must be >= 1, got %d", card.ID, weight))
	}
	for i := 0; i < weight; i++ {
		d.entries = append(d.entries, card)
	}
}

// Len returns the number of entries (cards counted with multiplicity).
func (d *Deck) Len() int {
	return len(d.entries)
}

// Draw picks one card uniformly at random over the entries.
//
// Precondition: the deck must be non-empty and src non-nil. Panics with
// "ai: draw from empty deck" on an empty deck.
func (d *Deck) Draw(src rng.Source) *Card {
	if len(d.entries) == 0 {
		panic(fmt.Sprintf("ai: draw from empty deck %q", d.ID))
	}
	return d.entries[src.Intn(len(d.entries))]
}
