// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package models

import "time"

// APIResponse is the standardized response wrapper used by every HTTP
// endpoint. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Invalid mood value",
//	    "details": {"field": "mood"}
//	  },
//	  "metadata": {"timestamp": "2026-08-30T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability. QueryTimeMS is the
// handler-side processing time in milliseconds and may be zero for trivial
// lookups.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, NAME_CONFLICT, UPLOAD_ERROR,
// IMPORT_ERROR, CATALOG_ERROR, RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
