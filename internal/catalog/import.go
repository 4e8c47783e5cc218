// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package catalog

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/hisame-dev/wagarakan/internal/metrics"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/validation"
)

// ImportStats summarizes a bulk import. Skipped entries are reported with
// their reasons and never abort the rest of the batch.
type ImportStats struct {
	Total   int      `json:"total"`
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Import merges a JSON array of pattern records into the catalog. Existing
// names are updated in place, new names are appended; entries that fail to
// parse or validate are skipped and reported. The catalog file is written
// once at the end.
func (c *Catalog) Import(data []byte) (*ImportStats, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("import payload must be a JSON array of pattern objects: %w", err)
	}

	stats := &ImportStats{Total: len(raw)}

	c.mu.Lock()
	for i, msg := range raw {
		var rec models.PatternRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		if verr := validation.ValidatePattern(&rec); verr != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("entry %d (%s): %v", i, rec.Name, verr))
			continue
		}

		if idx, ok := c.byName[rec.Name]; ok {
			rec.ID = c.records[idx].ID
			c.records[idx] = rec
			stats.Updated++
		} else {
			if _, taken := c.byID[rec.ID]; rec.ID == "" || taken {
				rec.ID = uuid.New().String()
			}
			c.records = append(c.records, rec)
			c.byName[rec.Name] = len(c.records) - 1
			c.byID[rec.ID] = len(c.records) - 1
			stats.Created++
		}
	}
	size := len(c.records)
	c.mu.Unlock()

	if err := c.Save(); err != nil {
		return stats, err
	}

	metrics.CatalogRecords.Set(float64(size))
	metrics.CatalogImports.WithLabelValues("created").Add(float64(stats.Created))
	metrics.CatalogImports.WithLabelValues("updated").Add(float64(stats.Updated))
	metrics.CatalogImports.WithLabelValues("skipped").Add(float64(stats.Skipped))

	c.logger.Info().
		Int("total", stats.Total).
		Int("created", stats.Created).
		Int("updated", stats.Updated).
		Int("skipped", stats.Skipped).
		Msg("Bulk import finished")
	return stats, nil
}
