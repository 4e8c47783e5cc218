// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hisame-dev/wagarakan/internal/config"
	"github.com/hisame-dev/wagarakan/internal/middleware"
)

// NewRouter assembles the full HTTP surface on a chi router.
func NewRouter(cfg *config.Config, h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Security.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.Security.RateLimitDisabled {
			r.Use(httprate.LimitByIP(cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow))
		}
		r.Use(middleware.Prometheus)
		r.Use(middleware.Compression)

		r.Get("/health", h.Health)
		r.Get("/enumerations", h.Enumerations)
		r.Get("/recommendations", h.Recommendations)

		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", h.ListPatterns)
			r.Post("/", h.CreatePattern)
			r.Delete("/", h.WipePatterns)
			r.Post("/import", h.ImportPatterns)
			r.Get("/export", h.ExportPatterns)
			r.Post("/seed", h.SeedPatterns)
			r.Get("/{id}", h.GetPattern)
			r.Delete("/{id}", h.DeletePattern)
		})

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", h.Gallery)
			r.Delete("/", h.WipeGallery)
			r.Post("/rescan", h.RescanGallery)
			r.Post("/upload", h.Upload)
			r.Get("/background", h.Background)
			r.Get("/background/image", h.BackgroundImage)
		})

		r.Route("/links", func(r chi.Router) {
			r.Get("/", h.Links)
			r.Post("/", h.CreateLink)
			r.Delete("/{name}", h.DeleteLink)
		})

		r.Get("/images/{file}", h.ServeImage)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
