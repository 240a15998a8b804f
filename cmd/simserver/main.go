// Package main provides the simulation server binary: it hosts one match
// and relays its event stream to WebSocket clients.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/abyss/internal/config"
	"github.com/cory-johannsen/abyss/internal/game/ai"
	"github.com/cory-johannsen/abyss/internal/game/entity"
	"github.com/cory-johannsen/abyss/internal/game/grid"
	"github.com/cory-johannsen/abyss/internal/game/match"
	"github.com/cory-johannsen/abyss/internal/game/rng"
	"github.com/cory-johannsen/abyss/internal/observability"
	"github.com/cory-johannsen/abyss/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file; empty = built-in defaults")
	flag.Parse()

	ctx := context.Background()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src rng.Source
	if cfg.Simulation.Seed != 0 {
		src = rng.NewSeeded(cfg.Simulation.Seed)
	} else {
		src = rng.NewCrypto()
	}

	decks := map[string]*ai.Deck{}
	if cfg.Simulation.DecksDir != "" {
		deckStart := time.Now()
		loaded, err := ai.LoadDecks(cfg.Simulation.DecksDir)
		if err != nil {
			logger.Fatal("loading decks", zap.Error(err))
		}
		for _, d := range loaded {
			decks[d.ID] = d
		}
		logger.Info("decks loaded",
			zap.Int("count", len(loaded)),
			zap.Duration("elapsed", time.Since(deckStart)),
		)
	}

	m := match.New(match.Config{
		Width:       cfg.Grid.Width,
		Height:      cfg.Grid.Height,
		Depth:       cfg.Grid.Depth,
		Source:      src,
		Logger:      logger,
		DefaultDeck: decks["default"],
	})

	seedEncounter(m)
	for _, e := range m.Entities() {
		if deck, ok := decks[e.ID()]; ok && e.Kind() == entity.KindMonster {
			m.AssignDeck(e.ID(), deck)
		}
	}
	m.Start()

	logger.Info("match started",
		zap.String("match_id", m.ID()),
		zap.Int("entities", len(m.Entities())),
		zap.Duration("startup", time.Since(start)),
	)

	srv := server.New(cfg.Server, m, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// seedEncounter places the demo battle: one submarine against two monsters.
func seedEncounter(m *match.Match) {
	m.AddSubmarine(entity.Config{
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
}
