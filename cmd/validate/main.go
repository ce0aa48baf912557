// Package main checks a generated output directory against the embedded
// JSON Schemas, the structural card and deck-pack rules, and the prompts
// listing layout.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/config"
	"github.com/cory-johannsen/cardforge/internal/exporter"
	"github.com/cory-johannsen/cardforge/internal/observability"
	"github.com/cory-johannsen/cardforge/internal/schema"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults and CARDFORGE_* environment when empty)")
	dir := flag.String("dir", "", "directory holding the generated files (overrides generator.out_dir)")
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

	validator, err := schema.New()
	if err != nil {
		logger.Fatal("loading schemas", zap.Error(err))
	}

	v, err := exporter.Verify(validator, cfg.Generator.OutDir)
	if err != nil {
		logger.Fatal("reading outputs", zap.Error(err))
	}

	if len(v.Failures) > 0 {
		fmt.Fprintln(os.Stderr, "Validation failed:")
		for _, f := range v.Failures {
			fmt.Fprintf(os.Stderr, "- %s\n", f)
		}
		logger.Error("validation failed", zap.Int("failures", len(v.Failures)))
		_ = logger.Sync()
		os.Exit(1)
	}

	fmt.Printf("Validation passed for %d cards and deckpacks in %s\n", len(v.Cards), cfg.Generator.OutDir)
}
