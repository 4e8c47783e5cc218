// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

/*
Package middleware provides the HTTP middleware stack shared by all API
routes: request ID tracking, Prometheus instrumentation, and gzip
compression.

The middlewares use the standard func(http.Handler) http.Handler shape so
they compose with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Prometheus)
	r.Use(middleware.Compression)

Request IDs honor an upstream X-Request-ID header, are echoed back in the
response, and flow into the logging context so every log line of a request
carries the same id.
*/
package middleware
