// Package main prints a showcase of generated cards and a simulated
// Starter-21 skirmish between two factions.
package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/config"
	"github.com/cory-johannsen/cardforge/internal/exporter"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/game/preview"
	"github.com/cory-johannsen/cardforge/internal/game/ruleset"
	"github.com/cory-johannsen/cardforge/internal/observability"
)

func main() {
	defaults := preview.DefaultOptions()

	configPath := flag.String("config", "", "path to configuration file (defaults and CARDFORGE_* environment when empty)")
	dir := flag.String("dir", "", "directory holding the generated files (overrides generator.out_dir)")
	seed := flag.String("seed", defaults.Seed.String(), "skirmish seed")
	left := flag.String("left", string(defaults.Left), "left faction")
	right := flag.String("right", string(defaults.Right), "right faction")
	turns := flag.Int("turns", defaults.Turns, "maximum turns (at least 1)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *dir != "" {
		cfg.Generator.OutDir = *dir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	out, err := exporter.Load(cfg.Generator.OutDir)
	if err != nil {
		logger.Fatal("loading generated outputs", zap.Error(err), zap.String("dir", cfg.Generator.OutDir))
	}

	text, err := preview.Text(out.Cards, out.DeckPacks, preview.Options{
		Left:  ruleset.Faction(*left),
		Right: ruleset.Faction(*right),
		Seed:  dice.ParseSeed(*seed),
		Turns: *turns,
	})
	if err != nil {
		logger.Fatal("building preview", zap.Error(err))
	}
	fmt.Println(text)
}
