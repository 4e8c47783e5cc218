// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/hisame-dev/wagarakan/internal/catalog"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/validation"
)

// maxPatternBody caps catalog request bodies. Import payloads of a few
// thousand records fit comfortably.
const maxPatternBody = 8 << 20

// ListPatterns serves GET /api/v1/patterns.
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondOK(w, http.StatusOK, h.catalog.List(), start)
}

// GetPattern serves GET /api/v1/patterns/{id}.
func (h *Handler) GetPattern(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	rec, err := h.catalog.Get(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "pattern not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "lookup failed", err)
		return
	}
	respondOK(w, http.StatusOK, rec, start)
}

// CreatePattern serves POST /api/v1/patterns. The upsert query flag turns
// a name collision into an update instead of a conflict.
func (h *Handler) CreatePattern(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPatternBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable body", err)
		return
	}
	var rec models.PatternRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON", err)
		return
	}

	upsert, _ := strconv.ParseBool(r.URL.Query().Get("upsert"))
	added, err := h.catalog.Add(rec, upsert)
	if err != nil {
		var verr *validation.RequestValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(w, verr)
		case errors.Is(err, catalog.ErrNameConflict):
			respondError(w, http.StatusConflict, "NAME_CONFLICT",
				"a pattern of that name already exists", nil)
		default:
			respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "save failed", err)
		}
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusCreated, added, start)
}

// DeletePattern serves DELETE /api/v1/patterns/{id}.
func (h *Handler) DeletePattern(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	if err := h.catalog.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "pattern not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "delete failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string]string{"deleted": id}, start)
}

// WipePatterns serves DELETE /api/v1/patterns.
func (h *Handler) WipePatterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.catalog.Wipe(); err != nil {
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "wipe failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string]int{"patterns": 0}, start)
}

// ImportPatterns serves POST /api/v1/patterns/import. Invalid entries are
// skipped and reported in the stats, so the response is 200 even when some
// records were rejected.
func (h *Handler) ImportPatterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPatternBody))
	if err != nil {
		respondError(w, http.StatusBadRequest, "IMPORT_ERROR", "unreadable body", err)
		return
	}
	stats, err := h.catalog.Import(body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "IMPORT_ERROR", err.Error(), err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, stats, start)
}

// ExportPatterns serves GET /api/v1/patterns/export as a raw JSON array
// suitable for re-import.
func (h *Handler) ExportPatterns(w http.ResponseWriter, r *http.Request) {
	data, err := h.catalog.Export()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "export failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="patterns.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "write failed", err)
	}
}

// SeedPatterns serves POST /api/v1/patterns/seed.
func (h *Handler) SeedPatterns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.catalog.Seed()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "seed failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, stats, start)
}
