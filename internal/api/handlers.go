// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package api exposes the HTTP surface: recommendations, catalog CRUD,
// gallery and upload endpoints, image serving, and health/metrics.
package api

import (
	"net/http"
	"time"

	"github.com/hisame-dev/wagarakan/internal/cache"
	"github.com/hisame-dev/wagarakan/internal/catalog"
	"github.com/hisame-dev/wagarakan/internal/config"
	"github.com/hisame-dev/wagarakan/internal/gallery"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/recommend"
)

// Handler bundles the domain components behind the HTTP endpoints.
type Handler struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	engine   *recommend.Engine
	store    *gallery.Store
	index    *gallery.ImageIndex
	resolver *gallery.Resolver
	rcache   *cache.Cache
	started  time.Time
}

// NewHandler wires the handler. All dependencies are required. When
// recommend.cache_ttl is positive, recommendation responses are cached and
// the cache is cleared on every catalog mutation.
func NewHandler(
	cfg *config.Config,
	cat *catalog.Catalog,
	engine *recommend.Engine,
	store *gallery.Store,
	index *gallery.ImageIndex,
	resolver *gallery.Resolver,
) *Handler {
	h := &Handler{
		cfg:      cfg,
		catalog:  cat,
		engine:   engine,
		store:    store,
		index:    index,
		resolver: resolver,
		started:  time.Now(),
	}
	if cfg.Recommend.CacheTTL > 0 {
		h.rcache = cache.New(cfg.Recommend.CacheTTL)
	}
	return h
}

// invalidateRecommendations drops cached recommendation responses. Called
// after any mutation that can change scoring inputs or resolved images.
func (h *Handler) invalidateRecommendations() {
	if h.rcache != nil {
		h.rcache.Clear()
	}
}

// HealthResponse is the health endpoint payload.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Patterns      int    `json:"patterns"`
	GalleryImages int    `json:"gallery_images"`
}

// Health reports liveness plus catalog and gallery sizes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondOK(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Patterns:      h.catalog.Len(),
		GalleryImages: h.store.Len(),
	}, start)
}

// Enumerations returns the attribute dimensions and their allowed values,
// for building query UIs.
func (h *Handler) Enumerations(w http.ResponseWriter, r *http.Request) {
	respondOK(w, http.StatusOK, models.Enumerations, time.Now())
}
