// Package main generates the card set, deck packs, prompts listing and
// report for one seed and writes them to the output directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/config"
	"github.com/cory-johannsen/cardforge/internal/exporter"
	"github.com/cory-johannsen/cardforge/internal/game/dice"
	"github.com/cory-johannsen/cardforge/internal/generator"
	"github.com/cory-johannsen/cardforge/internal/observability"
	"github.com/cory-johannsen/cardforge/internal/schema"
)

// maxListedWarnings caps the warnings echoed to stdout.
const maxListedWarnings = 10

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and CARDFORGE_* environment when empty)")
	seedFlag := flag.String("seed", "", `seed: an integer, any text, or "random" (overrides generator.seed)`)
	outDir := flag.String("out", "", "output directory (overrides generator.out_dir)")
	countsFile := flag.String("counts", "", "JSON or YAML faction counts file (overrides generator.counts_file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seedFlag != "" {
		cfg.Generator.Seed = *seedFlag
	}
	if *outDir != "" {
		cfg.Generator.OutDir = *outDir
	}
	if *countsFile != "" {
		cfg.Generator.CountsFile = *countsFile
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	seed := dice.ParseSeed(cfg.Generator.Seed)
	if cfg.Generator.Seed == config.RandomSeed {
		seed = dice.RandomSeed(dice.NewCryptoSource())
	}

	layers := []map[string]any{cfg.Generator.Counts}
	if cfg.Generator.CountsFile != "" {
		fileCounts, err := generator.ReadCountsFile(cfg.Generator.CountsFile)
		if err != nil {
			logger.Fatal("loading counts", zap.Error(err))
		}
		layers = append(layers, fileCounts)
	}
	counts := generator.MergeCounts(layers...)

	content, err := generator.LoadContent(cfg.Generator.AbilitiesFile, cfg.Generator.TemplatesDir)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("abilities", content.Abilities.Len()),
		zap.String("abilities_file", cfg.Generator.AbilitiesFile),
		zap.String("templates_dir", cfg.Generator.TemplatesDir),
	)

	validator, err := schema.New()
	if err != nil {
		logger.Fatal("loading schemas", zap.Error(err))
	}

	res, err := generator.New(content, logger).Generate(seed, counts)
	if err != nil {
		logger.Fatal("generating cards", zap.Error(err))
	}

	if err := exporter.New(validator, os.Stderr).Write(res, cfg.Generator.OutDir); err != nil {
		logger.Fatal("writing outputs", zap.Error(err))
	}

	fmt.Printf("Generated %d cards with seed %s\n", len(res.Cards), seed)
	fmt.Printf("Outputs written to %s\n", cfg.Generator.OutDir)
	if n := len(res.Warnings); n > 0 {
		fmt.Printf("Warnings: %d\n", n)
		for _, w := range res.Warnings[:min(n, maxListedWarnings)] {
			fmt.Printf("- %s\n", w)
		}
		if n > maxListedWarnings {
			fmt.Printf("- ...and %d more\n", n-maxListedWarnings)
		}
	}

	logger.Info("generate finished", zap.Duration("elapsed", time.Since(start)))
}
