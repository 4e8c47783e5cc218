// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package api

import (
	"net/http"
	"time"

	"github.com/hisame-dev/wagarakan/internal/cache"
	"github.com/hisame-dev/wagarakan/internal/recommend"
)

const maxRecommendK = 50

// Recommendations serves GET /api/v1/recommendations. Every query
// parameter is optional; absent dimensions are wildcards. Values outside
// their enumeration are a 400, not a silent no-match.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := recommend.Query{K: getIntParam(r, "k", 0)}
	if q.K < 0 || q.K > maxRecommendK {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"k must be between 0 and 50", nil)
		return
	}

	params := []struct {
		key       string
		dimension string
		dst       *string
	}{
		{"gender", "genders", &q.Gender},
		{"mood", "moods", &q.Mood},
		{"season", "seasons", &q.Season},
		{"formality", "formality", &q.Formality},
		{"motif", "motifs", &q.Motif},
		{"contrast", "contrast", &q.Contrast},
	}
	for _, p := range params {
		value, err := getEnumParam(r, p.key, p.dimension)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
			return
		}
		*p.dst = value
	}

	if h.rcache != nil {
		key := cache.Key("recommendations", q)
		if cached, ok := h.rcache.Get(key); ok {
			respondOK(w, http.StatusOK, cached.([]recommend.Result), start)
			return
		}
		results := h.engine.Recommend(h.catalog.List(), q)
		h.rcache.Set(key, results)
		respondOK(w, http.StatusOK, results, start)
		return
	}

	results := h.engine.Recommend(h.catalog.List(), q)
	respondOK(w, http.StatusOK, results, start)
}
