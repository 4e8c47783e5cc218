// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package metrics provides Prometheus instrumentation for the HTTP API,
// the catalog, the recommender, and the image gallery. Metrics register on
// the default registry and are exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Catalog metrics
	CatalogRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Current number of pattern records in the catalog",
		},
	)

	CatalogLoadSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_load_skips_total",
			Help: "Total number of invalid records skipped during catalog loads",
		},
	)

	CatalogImports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_import_records_total",
			Help: "Total number of bulk-imported records by outcome",
		},
		[]string{"outcome"}, // "created", "updated", "skipped"
	)

	// Recommender metrics
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation queries",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation scoring in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_cache_lookups_total",
			Help: "Total recommendation cache lookups by outcome",
		},
		[]string{"outcome"}, // "hit", "miss", "expired"
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_cache_entries",
			Help: "Current number of cached recommendation responses",
		},
	)

	// Gallery metrics
	ImageResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_image_resolutions_total",
			Help: "Total image resolutions by source step",
		},
		[]string{"source"}, // "linked", "indexed", "fuzzy", "placeholder"
	)

	GalleryIndexSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gallery_index_files",
			Help: "Current number of image files in the gallery index",
		},
	)

	GalleryRescans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gallery_rescans_total",
			Help: "Total number of gallery directory rescans",
		},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_uploads_total",
			Help: "Total number of image uploads by outcome",
		},
		[]string{"outcome"}, // "accepted", "rejected"
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, path string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordImageResolution records which resolution step produced an image.
func RecordImageResolution(source string) {
	ImageResolutions.WithLabelValues(source).Inc()
}
