// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package recommend scores catalog patterns against a categorical outfit
// query and returns the top matches with human-readable reasons and a
// coordinated color suggestion.
//
// Scoring is a weighted sum over matched dimensions. Sorting is stable, so
// ties keep catalog insertion order and results are fully deterministic.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hisame-dev/wagarakan/internal/config"
	"github.com/hisame-dev/wagarakan/internal/metrics"
	"github.com/hisame-dev/wagarakan/internal/models"
)

// Weights tune how much each matched query dimension contributes to a
// record's score.
type Weights struct {
	Gender    float64
	Mood      float64
	Season    float64
	Formality float64
	Motif     float64
	Contrast  float64
}

// DefaultWeights mirror the catalog's tuning: mood counts slightly more
// than gender and formality, contrast the least.
func DefaultWeights() Weights {
	return Weights{
		Gender:    1.0,
		Mood:      1.1,
		Season:    0.9,
		Formality: 1.0,
		Motif:     0.8,
		Contrast:  0.6,
	}
}

// WeightsFromConfig builds Weights from the recommend config section.
func WeightsFromConfig(rc config.RecommendConfig) Weights {
	return Weights{
		Gender:    rc.GenderWeight,
		Mood:      rc.MoodWeight,
		Season:    rc.SeasonWeight,
		Formality: rc.FormalityWeight,
		Motif:     rc.MotifWeight,
		Contrast:  rc.ContrastWeight,
	}
}

// Query is a set of categorical preferences. Empty fields are wildcards
// and neither score nor filter.
type Query struct {
	Gender    string `json:"gender"`
	Mood      string `json:"mood"`
	Season    string `json:"season"`
	Formality string `json:"formality"`
	Motif     string `json:"motif"`
	Contrast  string `json:"contrast"`
	K         int    `json:"k"`
}

// seed returns a stable textual form of the query used to vary palette
// selection between different queries.
func (q Query) seed() string {
	return strings.Join([]string{q.Gender, q.Mood, q.Season, q.Formality, q.Motif, q.Contrast}, "|")
}

// Result is one recommended pattern with its score breakdown.
type Result struct {
	ID      string     `json:"id"`
	Pattern string     `json:"pattern"`
	Motifs  []string   `json:"motifs,omitempty"`
	Notes   string     `json:"notes,omitempty"`
	Score   float64    `json:"score"`
	Reasons []string   `json:"reasons"`
	Colors  ColorCombo `json:"colors"`
	Image   string     `json:"image,omitempty"`
}

// ImageResolver maps a pattern record to a servable image URL path. The
// gallery package provides the production implementation.
type ImageResolver interface {
	Resolve(rec *models.PatternRecord) string
}

// Engine ranks catalog records for queries. It holds no pattern state of
// its own and is safe for concurrent use.
type Engine struct {
	weights  Weights
	topK     int
	resolver ImageResolver
	logger   zerolog.Logger
}

// New creates an engine. resolver may be nil, in which case results carry
// no image path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(weights Weights, topK int, resolver ImageResolver, logger zerolog.Logger) *Engine {
	if topK <= 0 {
		topK = 3
	}
	return &Engine{
		weights:  weights,
		topK:     topK,
		resolver: resolver,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// score sums the weights of the dimensions the record matches. Unisex
// records match any gender query and all-year records match any season
// query.
func (e *Engine) score(rec *models.PatternRecord, q Query) float64 {
	s := 0.0
	if q.Gender != "" && rec.HasGender(q.Gender) {
		s += e.weights.Gender
	}
	if q.Mood != "" && rec.HasMood(q.Mood) {
		s += e.weights.Mood
	}
	if q.Season != "" && rec.HasSeason(q.Season) {
		s += e.weights.Season
	}
	if q.Formality != "" && rec.HasFormality(q.Formality) {
		s += e.weights.Formality
	}
	if q.Motif != "" && rec.HasMotif(q.Motif) {
		s += e.weights.Motif
	}
	if q.Contrast != "" && rec.HasContrast(q.Contrast) {
		s += e.weights.Contrast
	}
	return s
}

// buildReasons explains the match in display order. Gender matches are
// deliberately not called out. A record matching nothing still gets a
// friendly catch-all line.
func buildReasons(rec *models.PatternRecord, q Query) []string {
	var reasons []string
	if q.Mood != "" && rec.HasMood(q.Mood) {
		reasons = append(reasons, fmt.Sprintf("Matches mood '%s'", q.Mood))
	}
	if q.Season != "" && rec.HasSeason(q.Season) {
		reasons = append(reasons, fmt.Sprintf("Works for '%s'", q.Season))
	}
	if q.Formality != "" && rec.HasFormality(q.Formality) {
		reasons = append(reasons, fmt.Sprintf("Appropriate for '%s'", q.Formality))
	}
	if q.Motif != "" && rec.HasMotif(q.Motif) {
		reasons = append(reasons, fmt.Sprintf("Motif '%s' included", q.Motif))
	}
	if q.Contrast != "" && rec.HasContrast(q.Contrast) {
		reasons = append(reasons, fmt.Sprintf("Good for contrast '%s'", q.Contrast))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Versatile and easy to coordinate")
	}
	return reasons
}

// Recommend ranks records and returns the top q.K matches (engine default
// when q.K <= 0). An empty catalog yields an empty, non-nil slice.
func (e *Engine) Recommend(records []models.PatternRecord, q Query) []Result {
	start := time.Now()
	metrics.RecommendRequests.Inc()
	defer func() {
		metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	}()

	k := q.K
	if k <= 0 {
		k = e.topK
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, len(records))
	for i := range records {
		ranked[i] = scored{idx: i, score: e.score(&records[i], q)}
	}
	// SliceStable keeps insertion order among equal scores.
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})
	if k > len(ranked) {
		k = len(ranked)
	}

	seed := q.seed()
	results := make([]Result, 0, k)
	for _, sc := range ranked[:k] {
		rec := &records[sc.idx]
		r := Result{
			ID:      rec.ID,
			Pattern: rec.Name,
			Motifs:  rec.Motifs,
			Notes:   rec.Notes,
			Score:   sc.score,
			Reasons: buildReasons(rec, q),
			Colors:  pickCombo(rec.Name, rec.Palettes, seed, q.Contrast),
		}
		if e.resolver != nil {
			r.Image = e.resolver.Resolve(rec)
		}
		results = append(results, r)
	}

	e.logger.Debug().
		Int("candidates", len(records)).
		Int("returned", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("Recommendation query served")
	return results
}
