// Package main serves the web prototype and generated data over HTTP with
// caching disabled.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cardforge/internal/config"
	"github.com/cory-johannsen/cardforge/internal/observability"
	"github.com/cory-johannsen/cardforge/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (defaults and CARDFORGE_* environment when empty)")
	host := flag.String("host", "", "bind host (overrides server.host)")
	port := flag.Int("port", 0, "bind port (overrides server.port)")
	root := flag.String("root", "", "directory to serve (overrides server.root)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *root != "" {
		cfg.Server.Root = *root
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("validating flags: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	handler, err := server.NewStaticHandler(cfg.Server.Root, cfg.Server.Index, logger)
	if err != nil {
		logger.Fatal("preparing file handler", zap.Error(err))
	}

	lc := server.NewLifecycle(logger)
	lc.Add("preview-http", server.NewHTTPService(cfg.Server.Addr(), handler, cfg.Server.ShutdownTimeout, logger))

	logger.Info("serving web prototype",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("root", cfg.Server.Root),
		zap.String("index", cfg.Server.Index),
	)
	if err := lc.Run(context.Background()); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
