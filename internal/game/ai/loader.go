package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Deck file YAML schema:
//
//	deck:
//	  id: default
//	  cards:
//	    - id: aggressive
//	      weight: 3
//	      branches:
//	        - condition: {type: target_in_range, selector: weakest}
//	          actions: [{type: attack}]
//	        - condition: {type: can_move_closer}
//	          actions: [{type: move_to_target}]
//	      fallback: [{type: idle}]

// Condition and action type names accepted in deck files.
const (
	condTargetInRange = "target_in_range"
	condCanMoveCloser = "can_move_closer"

	actionAttack       = "attack"
	actionMoveToTarget = "move_to_target"
	actionIdle         = "idle"
)

type yamlDeckFile struct {
	Deck *yamlDeck `yaml:"deck"`
}

type yamlDeck struct {
	ID    string      `yaml:"id"`
	Cards []*yamlCard `yaml:"cards"`
}

type yamlCard struct {
	ID       string        `yaml:"id"`
	Weight   int           `yaml:"weight"`
	Branches []*yamlBranch `yaml:"branches"`
	Fallback []*yamlAction `yaml:"fallback"`
}

type yamlBranch struct {
	Condition *yamlCondition `yaml:"condition"`
	Actions   []*yamlAction  `yaml:"actions"`
}

type yamlCondition struct {
	Type     string   `yaml:"type"`
	Selector Selector `yaml:"selector"`
}

type yamlAction struct {
	Type string `yaml:"type"`
}

// LoadDecks reads all *.yaml files from dir and returns the parsed,
// validated decks.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns an error if any file fails to parse or validate
// (unknown condition/action types, bad selectors, weights < 1, duplicate
// card or deck ids). Returns (nil, nil) when dir holds no .yaml files;
// callers that require decks should treat an empty result as a
// configuration error.
func LoadDecks(dir string) ([]*Deck, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadDecks: reading %q: %w", dir, err)
	}
	var decks []*Deck
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDecks: reading %s: %w", e.Name(), err)
		}
		deck, err := ParseDeck(data)
		if err != nil {
			return nil, fmt.Errorf("ai.LoadDecks: %s: %w", e.Name(), err)
		}
		if prev, dup := seen[deck.ID]; dup {
			return nil, fmt.Errorf("ai.LoadDecks: duplicate deck id %q in %s (first seen in %s)", deck.ID, e.Name(), prev)
		}
		seen[deck.ID] = e.Name()
		decks = append(decks, deck)
	}
	return decks, nil
}

// ParseDeck parses and compiles one YAML deck document.
//
// Postcondition: a nil error guarantees a non-empty deck whose cards all
// passed Card.Validate.
func ParseDeck(data []byte) (*Deck, error) {
	var f yamlDeckFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing deck: %w", err)
	}
	if f.Deck == nil {
		return nil, fmt.Errorf("missing top-level 'deck' key")
	}
	if f.Deck.ID == "" {
		return nil, fmt.Errorf("deck has empty id")
	}
	if len(f.Deck.Cards) == 0 {
		return nil, fmt.Errorf("deck %q has no cards", f.Deck.ID)
	}

	deck := NewDeck(f.Deck.ID)
	cardIDs := make(map[string]struct{}, len(f.Deck.Cards))
	for _, yc := range f.Deck.Cards {
		if yc.ID == "" {
			return nil, fmt.Errorf("deck %q: card with empty id", deck.ID)
		}
		if _, dup := cardIDs[yc.ID]; dup {
			return nil, fmt.Errorf("deck %q: duplicate card id %q", deck.ID, yc.ID)
		}
		cardIDs[yc.ID] = struct{}{}

		weight := yc.Weight
		if weight == 0 {
			weight = 1
		}
		if weight < 1 {
			return nil, fmt.Errorf("deck %q card %q: weight must be >= 1, got %d", deck.ID, yc.ID, yc.Weight)
		}

		card, err := compileCard(yc)
		if err != nil {
			return nil, fmt.Errorf("deck %q: %w", deck.ID, err)
		}
		deck.AddCard(card, weight)
	}
	return deck, nil
}

func compileCard(yc *yamlCard) (*Card, error) {
	card := &Card{ID: yc.ID}
	for i, yb := range yc.Branches {
		if yb.Condition == nil {
			return nil, fmt.Errorf("card %q branch %d: missing condition", yc.ID, i)
		}
		cond, err := compileCondition(yb.Condition)
		if err != nil {
			return nil, fmt.Errorf("card %q branch %d: %w", yc.ID, i, err)
		}
		if len(yb.Actions) == 0 {
			return nil, fmt.Errorf("card %q branch %d: no actions", yc.ID, i)
		}
		actions, err := compileActions(yb.Actions)
		if err != nil {
			return nil, fmt.Errorf("card %q branch %d: %w", yc.ID, i, err)
		}
		card.Branches = append(card.Branches, Branch{Condition: cond, Actions: actions})
	}
	fallback, err := compileActions(yc.Fallback)
	if err != nil {
		return nil, fmt.Errorf("card %q fallback: %w", yc.ID, err)
	}
	card.Fallback = fallback
	return card, nil
}

func compileCondition(yc *yamlCondition) (Condition, error) {
	switch yc.Type {
	case condTargetInRange:
		sel := yc.Selector
		if sel == "" {
			sel = SelectNearest
		}
		if !sel.Valid() {
			return nil, fmt.Errorf("unknown selector %q", yc.Selector)
		}
		return TargetInRange{Selector: sel}, nil
	case condCanMoveCloser:
		return CanMoveCloser{}, nil
	default:
		return nil, fmt.Errorf("unknown condition type %q", yc.Type)
	}
}

func compileActions(yas []*yamlAction) ([]Action, error) {
	var actions []Action
	for _, ya := range yas {
		switch ya.Type {
		case actionAttack:
			actions = append(actions, AttackTarget{})
		case actionMoveToTarget:
			actions = append(actions, MoveToPosition{})
		case actionIdle:
			actions = append(actions, Idle{})
		default:
			return nil, fmt.Errorf("unknown action type %q", ya.Type)
		}
	}
	return actions, nil
}
