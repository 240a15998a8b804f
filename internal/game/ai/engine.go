package ai

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/rng"
)

// Engine drives one AI-controlled entity's decision per turn: draw a card
// from the entity's deck (or the shared default), evaluate its branches in
// declaration order, and run the first matching branch's actions.
//
// Invariant: src is non-nil; defaultDeck is non-nil and non-empty.
type Engine struct {
	defaultDeck *Deck
	decks       map[string]*Deck
	src         rng.Source
	logger      *zap.Logger
}

// NewEngine constructs an Engine with the given shared default deck.
//
// Precondition: defaultDeck must be non-nil and non-empty; src must be
// non-nil. Panics with "ai: ..." on violation. A nil logger falls back to
// zap.NewNop.
func NewEngine(defaultDeck *Deck, src rng.Source, logger *zap.Logger) *Engine {
	if defaultDeck == nil || defaultDeck.Len() == 0 {
		panic("ai: default deck must be non-nil and non-empty")
	}
	if src == nil {
		panic("ai: nil randomness source")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		defaultDeck: defaultDeck,
		decks:       make(map[string]*Deck),
		src:         src,
		logger:      logger,
	}
}

// AssignDeck gives the entity with the given id its own deck instead of the
// shared default.
//
// Precondition: deck must be non-nil and non-empty. Panics otherwise.
func (e *Engine) AssignDeck(entityID string, deck *Deck) {
	if deck == nil || deck.Len() == 0 {
		panic("ai: assigned deck must be non-nil and non-empty")
	}
	e.decks[entityID] = deck
}

// DeckFor returns the deck the given entity draws from.
func (e *Engine) DeckFor(entityID string) *Deck {
	if d, ok := e.decks[entityID]; ok {
		return d
	}
	return e.defaultDeck
}

// TakeTurn makes one decision for self: reset context, draw, evaluate the
// card's branches in order, execute the first matching branch's actions (or
// the fallback when none match). Effects flow through s.Submit, so an
// action whose target vanished degrades to a silent no-op.
//
// Precondition: self must be alive and AI-controlled; the facade only calls
// with the active entity.
func (e *Engine) TakeTurn(s State, self *entity.Entity) {
	ctx := NewContext()
	deck := e.DeckFor(self.ID())
	card := deck.Draw(e.src)

	log := e.logger.With(
		zap.String("entity_id", self.ID()),
		zap.String("deck_id", deck.ID),
		zap.String("card_id", card.ID),
	)

	for i, branch := range card.Branches {
		if branch.Condition.Evaluate(s, self, ctx) {
			log.Debug("ai branch matched", zap.Int("branch", i))
			runActions(branch.Actions, s, self, ctx)
			return
		}
	}
	log.Debug("ai fallback", zap.Int("actions", len(card.Fallback)))
	runActions(card.Fallback, s, self, ctx)
}

func runActions(actions []Action, s State, self *entity.Entity, ctx *Context) {
	for _, a := range actions {
		a.Execute(s, self, ctx)
	}
}

// DefaultDeck returns the built-in shared deck: close distance when out of
// reach, strike the nearest target when in reach, otherwise idle.
func DefaultDeck() *Deck {
	deck := NewDeck("default")
	deck.AddCard(&Card{
		ID: "hunt",
		Branches: []Branch{
			{Condition: TargetInRange{Selector: SelectNearest}, Actions: []Action{AttackTarget{}}},
			{Condition: CanMoveCloser{}, Actions: []Action{MoveToPosition{}}},
		},
		Fallback: []Action{Idle{}},
	}, 3)
	deck.AddCard(&Card{
		ID: "opportunist",
		Branches: []Branch{
			{Condition: TargetInRange{Selector: SelectWeakest}, Actions: []Action{AttackTarget{}}},
			{Condition: CanMoveCloser{}, Actions: []Action{MoveToPosition{}}},
		},
		Fallback: []Action{Idle{}},
	}, 1)
	return deck
}
