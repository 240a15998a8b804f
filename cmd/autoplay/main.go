// Package main provides the autoplay binary: it runs a headless match with
// a scripted submarine against AI monsters and prints the event log as JSON
// lines. Re-running with the same seed reproduces the log byte for byte.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/abyss/internal/config"
	"github.com/cory-johannsen/abyss/internal/game/ai"
	"github.com/cory-johannsen/abyss/internal/game/command"
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/event"
	"github.com/cory-johannsen/abyss/internal/game/grid"
	"github.com/cory-johannsen/abyss/internal/game/match"
	"github.com/cory-johannsen/abyss/internal/game/rng"
	"github.com/cory-johannsen/abyss/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	seed := flag.Int64("seed", 42, "randomness seed; overrides the config value")
	maxTurns := flag.Int("max-turns", 0, "turn cap; 0 = use the config value")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	if *maxTurns > 0 {
		cfg.Simulation.MaxTurns = *maxTurns
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var defaultDeck *ai.Deck
	if cfg.Simulation.DecksDir != "" {
		loaded, err := ai.LoadDecks(cfg.Simulation.DecksDir)
		if err != nil {
			logger.Fatal("loading decks", zap.Error(err))
		}
		for _, d := range loaded {
			if d.ID == "default" {
				defaultDeck = d
			}
		}
	}

	m := match.New(match.Config{
		Width:       cfg.Grid.Width,
		Height:      cfg.Grid.Height,
		Depth:       cfg.Grid.Depth,
		Source:      rng.NewSeeded(*seed),
		Logger:      logger,
		DefaultDeck: defaultDeck,
	})

	enc := json.NewEncoder(os.Stdout)
	m.Events().Subscribe(func(ev event.Event) {
		if err := enc.Encode(ev); err != nil {
			logger.Fatal("encoding event", zap.Error(err))
		}
	})

	sub := m.AddSubmarine(entity.Config{
		ID:       "nautilus",
		Name:     "Nautilus",
		Position: grid.Coordinate{X: 2, Y: 0, Z: 2},
	})
	m.AddMonster(entity.Config{
		ID:       "leviathan",
		Name:     "Leviathan",
		Position: grid.Coordinate{X: 7, Y: 0, Z: 7},
	})
	m.AddMonster(entity.Config{
		ID:       "kraken",
		Name:     "Kraken",
		MaxHP:    150,
		Size:     grid.Size{Width: 2, Height: 1, Depth: 2},
		Position: grid.Coordinate{X: 5, Y: 4, Z: 5},
	})
	m.Start()

	for !m.Over() && (cfg.Simulation.MaxTurns == 0 || m.Turn() <= cfg.Simulation.MaxTurns) {
		playTurn(m, sub)
	}

	fmt.Fprintf(os.Stderr, "turns=%d winner=%s\n", m.Turn(), m.Winner())
}

// playTurn drives the submarine greedily: attack the first target in reach,
// otherwise move toward the nearest monster, then end the turn.
func playTurn(m *match.Match, sub *entity.Entity) {
	if !sub.IsAlive() {
		m.Submit(command.EndTurn{EntityID: sub.ID()})
		return
	}

	if targets := m.AttackableTargets(sub); len(targets) > 0 {
		m.Submit(command.Attack{AttackerID: sub.ID(), TargetID: targets[0].ID()})
	} else if dst, ok := closingMove(m, sub); ok {
		m.Submit(command.Move{EntityID: sub.ID(), Target: dst})
	}

	m.Submit(command.EndTurn{EntityID: sub.ID()})
}

// closingMove picks the reachable cell nearest to any living monster.
func closingMove(m *match.Match, sub *entity.Entity) (grid.Coordinate, bool) {
	opponents := m.Opponents(sub)
	if len(opponents) == 0 {
		return grid.Coordinate{}, false
	}

	best := grid.Coordinate{}
	bestDist := -1
	for _, c := range m.ReachablePositions(sub) {
		for _, opp := range opponents {
			d := ai.FootprintDistance(sub, c, opp)
			if bestDist == -1 || d < bestDist {
				best, bestDist = c, d
			}
		}
	}
	if bestDist == -1 {
		return grid.Coordinate{}, false
	}
	return best, true
}
