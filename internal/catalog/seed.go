// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package catalog

import (
	"github.com/google/uuid"

	"github.com/hisame-dev/wagarakan/internal/metrics"
	"github.com/hisame-dev/wagarakan/internal/models"
)

// SamplePatterns returns the built-in starter set of ten classic wagara.
// Records are returned without IDs so Seed can merge them by name.
func SamplePatterns() []models.PatternRecord {
	return []models.PatternRecord{
		{
			Name:      "Seigaiha (Blue Ocean Waves)",
			Motifs:    []string{"Geometric", "Classic", "Nature"},
			Seasons:   []string{"Spring", "Summer", "Autumn", "All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Calm", "Elegant", "Refreshing"},
			Genders:   []string{"Male", "Female", "Unisex"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#0F4C81", "#E6EDF7", "#F2C75C"},
				{"#2C3E50", "#BDC3C7", "#F39C12"},
			},
			Notes: "Waves symbolizing peace and everlasting happiness.",
		},
		{
			Name:      "Asanoha (Hemp Leaf)",
			Motifs:    []string{"Geometric", "Classic"},
			Seasons:   []string{"Spring", "Summer", "All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Bright", "Sharp", "Refreshing"},
			Genders:   []string{"Male", "Female", "Unisex"},
			Contrast:  []string{"Medium", "High"},
			Palettes: [][]string{
				{"#EF476F", "#FFD166", "#06D6A0"},
				{"#264653", "#2A9D8F", "#E9C46A"},
			},
			Notes: "Dynamic hemp leaf pattern symbolizing growth and protection.",
		},
		{
			Name:      "Shippō (Seven Treasures)",
			Motifs:    []string{"Geometric", "Classic", "Lucky symbol"},
			Seasons:   []string{"All year"},
			Formality: []string{"Semi-formal", "Formal"},
			Moods:     []string{"Elegant", "Graceful", "Soft"},
			Genders:   []string{"Female", "Unisex"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#8E7CC3", "#F6F2FF", "#D4AF37"},
				{"#984447", "#F5E6CA", "#3A6EA5"},
			},
			Notes: "Circular motif symbolizing harmony and good fortune.",
		},
		{
			Name:      "Yagasuri (Arrow Feathers)",
			Motifs:    []string{"Geometric", "Classic"},
			Seasons:   []string{"All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Sharp", "Strong", "Calm"},
			Genders:   []string{"Female", "Unisex"},
			Contrast:  []string{"Medium", "High"},
			Palettes: [][]string{
				{"#800020", "#FFF1E6", "#1B1B1B"},
				{"#0D3B66", "#FAF0CA", "#F95738"},
			},
			Notes: "Arrow feather pattern representing determination and direction.",
		},
		{
			Name:      "Ichimatsu (Checkerboard)",
			Motifs:    []string{"Geometric", "Modern", "Classic"},
			Seasons:   []string{"All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Playful", "Bold", "Bright"},
			Genders:   []string{"Male", "Female", "Unisex"},
			Contrast:  []string{"Medium", "High"},
			Palettes: [][]string{
				{"#2D3142", "#BFC0C0", "#EF8354"},
				{"#1B998B", "#EDEBED", "#E71D36"},
			},
			Notes: "Checker pattern representing balance, prosperity, and modern style.",
		},
		{
			Name:      "Kikkō (Tortoise Shell)",
			Motifs:    []string{"Geometric", "Classic", "Lucky symbol"},
			Seasons:   []string{"All year"},
			Formality: []string{"Semi-formal", "Formal"},
			Moods:     []string{"Elegant", "Calm"},
			Genders:   []string{"Male", "Female", "Unisex"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#1C2331", "#D1D8E0", "#C0A062"},
				{"#4C5B5C", "#EAEAEA", "#8AA29E"},
			},
			Notes: "Hexagonal tortoise shell pattern symbolizing longevity and stability.",
		},
		{
			Name:      "Karakusa (Arabesque Vines)",
			Motifs:    []string{"Nature", "Classic"},
			Seasons:   []string{"All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Graceful", "Soft", "Elegant"},
			Genders:   []string{"Female", "Unisex"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#356859", "#F1FAEE", "#B56576"},
				{"#355070", "#E56B6F", "#E0FBFC"},
			},
			Notes: "Curving vine motif symbolizing vitality and continuity.",
		},
		{
			Name:      "Tsurukame (Crane & Tortoise)",
			Motifs:    []string{"Nature", "Lucky symbol", "Classic"},
			Seasons:   []string{"All year"},
			Formality: []string{"Formal"},
			Moods:     []string{"Elegant", "Traditional", "Refined"},
			Genders:   []string{"Unisex"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#C0A062", "#F5F3E7", "#6C757D"},
				{"#D4AF37", "#E9E9E9", "#5D5D5D"},
			},
			Notes: "Crane and tortoise, symbols of longevity and celebration.",
		},
		{
			Name:      "Sakura (Cherry Blossoms)",
			Motifs:    []string{"Nature", "Seasonal"},
			Seasons:   []string{"Spring"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Bright", "Feminine", "Soft"},
			Genders:   []string{"Female"},
			Contrast:  []string{"Low", "Medium"},
			Palettes: [][]string{
				{"#FFC1CC", "#F9E2E7", "#B56576"},
				{"#FFD7E0", "#FFFFFF", "#A45D7E"},
			},
			Notes: "Cherry blossoms representing beauty, transience, and renewal.",
		},
		{
			Name:      "Namichidori (Plovers over Waves)",
			Motifs:    []string{"Nature", "Dynamic"},
			Seasons:   []string{"All year"},
			Formality: []string{"Casual", "Semi-formal"},
			Moods:     []string{"Playful", "Dynamic", "Resilient"},
			Genders:   []string{"Unisex"},
			Contrast:  []string{"Medium", "High"},
			Palettes: [][]string{
				{"#0077B6", "#CAF0F8", "#FFD166"},
				{"#023E8A", "#ADE8F4", "#FF9F1C"},
			},
			Notes: "Waves and plovers, overcoming hardships together with vitality.",
		},
	}
}

// Seed merges the sample patterns into the catalog by name. Patterns the
// user already renamed or customized under a different name are untouched.
func (c *Catalog) Seed() (*ImportStats, error) {
	samples := SamplePatterns()
	stats := &ImportStats{Total: len(samples)}

	c.mu.Lock()
	for _, rec := range samples {
		if idx, ok := c.byName[rec.Name]; ok {
			rec.ID = c.records[idx].ID
			c.records[idx] = rec
			stats.Updated++
			continue
		}
		rec.ID = uuid.New().String()
		c.records = append(c.records, rec)
		c.byName[rec.Name] = len(c.records) - 1
		c.byID[rec.ID] = len(c.records) - 1
		stats.Created++
	}
	size := len(c.records)
	c.mu.Unlock()

	if err := c.Save(); err != nil {
		return stats, err
	}
	metrics.CatalogRecords.Set(float64(size))
	c.logger.Info().Int("created", stats.Created).Int("updated", stats.Updated).Msg("Seeded sample patterns")
	return stats, nil
}
