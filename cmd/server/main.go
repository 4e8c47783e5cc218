// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package main is the entry point for the Wagarakan server.
//
// Wagarakan is a self-hosted kimono pattern (wagara) recommendation and
// gallery service. It serves categorical outfit recommendations over a
// JSON pattern catalog, manages an image gallery with uploads and
// name-to-image links, and exposes everything over a REST API.
//
// Startup order:
//
//  1. Configuration: koanf v2 layered load (defaults, config.yaml, env)
//  2. Logging: zerolog global logger
//  3. Catalog: pattern records from data/patterns.json (invalid skipped)
//  4. Gallery: image index scan plus the name-to-image link index
//  5. Recommender: weighted matcher over the catalog
//  6. Supervisor tree: gallery watcher (data layer), HTTP server (api layer)
//
// Shutdown is graceful on SIGINT/SIGTERM: the HTTP server drains in-flight
// requests within the configured timeout before the tree stops.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hisame-dev/wagarakan/internal/api"
	"github.com/hisame-dev/wagarakan/internal/catalog"
	"github.com/hisame-dev/wagarakan/internal/config"
	"github.com/hisame-dev/wagarakan/internal/gallery"
	"github.com/hisame-dev/wagarakan/internal/logging"
	"github.com/hisame-dev/wagarakan/internal/recommend"
	"github.com/hisame-dev/wagarakan/internal/supervisor"
	"github.com/hisame-dev/wagarakan/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("data_file", cfg.Paths.DataFile).
		Str("patterns_dir", cfg.Paths.PatternsDir).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Wagarakan")

	logger := logging.Logger()

	// Catalog
	cat := catalog.New(cfg.Paths.DataFile, logger)
	stats, err := cat.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load pattern catalog")
	}
	logging.Info().
		Int("loaded", stats.Loaded).
		Int("skipped", stats.Skipped).
		Msg("Pattern catalog loaded")

	// Gallery
	store := gallery.NewStore(cfg.Paths.PatternsDir, cfg.Paths.BackgroundsDir, logger)
	if _, err := store.Rescan(); err != nil {
		logging.Warn().Err(err).Msg("Initial gallery scan failed")
	}
	index := gallery.NewImageIndex(cfg.Paths.ImageIndexFile)
	if err := index.Load(); err != nil {
		logging.Warn().Err(err).Msg("Failed to load image link index")
	}
	resolver := gallery.NewResolver(store, index,
		"/api/v1/images", "/api/v1/gallery/background/image")

	// Recommender
	engine := recommend.New(
		recommend.WeightsFromConfig(cfg.Recommend),
		cfg.Recommend.TopK,
		resolver,
		logger,
	)

	// HTTP surface
	handler := api.NewHandler(cfg, cat, engine, store, index, resolver)
	router := api.NewRouter(cfg, handler)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	// Supervisor tree
	slogger := logging.NewSlogLogger()
	tree := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddDataService(gallery.NewWatcher(store, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Wagarakan stopped gracefully")
}
