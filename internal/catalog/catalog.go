// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package catalog maintains the in-memory pattern catalog backed by a JSON
// data file. The catalog is loaded once at startup; mutations (add, import,
// delete, wipe) rewrite the file atomically. Invalid records found during a
// load are skipped and reported, never fatal.
//
// Records keep their insertion order, which the recommender relies on for
// stable tie-breaking.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hisame-dev/wagarakan/internal/metrics"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/validation"
)

var (
	// ErrNotFound is returned when no record carries the requested ID or name.
	ErrNotFound = errors.New("pattern not found")

	// ErrNameConflict is returned by Add when a record of the same name
	// exists and upserting was not requested.
	ErrNameConflict = errors.New("pattern name already exists")
)

// LoadStats summarizes a catalog load.
type LoadStats struct {
	Loaded  int      `json:"loaded"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Catalog is the set of pattern records in insertion order plus lookup
// indexes by ID and name. All methods are safe for concurrent use; methods
// returning records hand out deep copies.
type Catalog struct {
	mu      sync.RWMutex
	path    string
	records []models.PatternRecord
	byID    map[string]int
	byName  map[string]int
	logger  zerolog.Logger
}

// New creates an empty catalog persisting to path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(path string, logger zerolog.Logger) *Catalog {
	return &Catalog{
		path:   path,
		byID:   make(map[string]int),
		byName: make(map[string]int),
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Load reads the data file and replaces the in-memory records. A missing
// file yields an empty catalog. Records failing validation are skipped,
// counted, and logged; the load itself only fails on unreadable or
// malformed JSON.
func (c *Catalog) Load() (*LoadStats, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn().Str("path", c.path).Msg("Catalog file not found, starting empty")
			c.mu.Lock()
			c.reset(nil)
			c.mu.Unlock()
			return &LoadStats{}, nil
		}
		return nil, fmt.Errorf("read catalog %s: %w", c.path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", c.path, err)
	}

	stats := &LoadStats{}
	records := make([]models.PatternRecord, 0, len(raw))
	for i, msg := range raw {
		var rec models.PatternRecord
		if err := json.Unmarshal(msg, &rec); err != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("entry %d: %v", i, err))
			c.logger.Warn().Int("index", i).Err(err).Msg("Skipping unparsable catalog entry")
			continue
		}
		if verr := validation.ValidatePattern(&rec); verr != nil {
			stats.Skipped++
			stats.Errors = append(stats.Errors, fmt.Sprintf("entry %d (%s): %v", i, rec.Name, verr))
			c.logger.Warn().Int("index", i).Str("name", rec.Name).Err(verr).Msg("Skipping invalid catalog entry")
			continue
		}
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		records = append(records, rec)
		stats.Loaded++
	}

	c.mu.Lock()
	c.reset(records)
	c.mu.Unlock()

	metrics.CatalogRecords.Set(float64(stats.Loaded))
	if stats.Skipped > 0 {
		metrics.CatalogLoadSkips.Add(float64(stats.Skipped))
	}
	c.logger.Info().Int("loaded", stats.Loaded).Int("skipped", stats.Skipped).Msg("Catalog loaded")
	return stats, nil
}

// reset replaces records and rebuilds indexes. Caller holds c.mu.
func (c *Catalog) reset(records []models.PatternRecord) {
	c.records = records
	c.byID = make(map[string]int, len(records))
	c.byName = make(map[string]int, len(records))
	for i := range records {
		c.byID[records[i].ID] = i
		c.byName[records[i].Name] = i
	}
}

// Save rewrites the data file atomically (temp file, then rename).
func (c *Catalog) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.records, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create catalog dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".patterns-*.json")
	if err != nil {
		return fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace catalog %s: %w", c.path, err)
	}
	return nil
}

// Add validates and appends a record. When upsert is true an existing
// record of the same name is replaced in place (keeping its position and,
// when the incoming record has none, its ID); otherwise a duplicate name
// returns ErrNameConflict. The updated catalog is persisted before Add
// returns; on any failure the in-memory state is unchanged.
func (c *Catalog) Add(rec models.PatternRecord, upsert bool) (models.PatternRecord, error) {
	if verr := validation.ValidatePattern(&rec); verr != nil {
		return models.PatternRecord{}, verr
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	c.mu.Lock()
	idx, exists := c.byName[rec.Name]
	if exists && !upsert {
		c.mu.Unlock()
		return models.PatternRecord{}, fmt.Errorf("%w: %s", ErrNameConflict, rec.Name)
	}

	var prev models.PatternRecord
	if exists {
		prev = c.records[idx]
		// The stable identifier survives upserts; an incoming ID is
		// discarded so it can never alias another record's index entry.
		rec.ID = prev.ID
		c.records[idx] = rec
	} else {
		if _, taken := c.byID[rec.ID]; taken {
			// Client-supplied ID already names a different record.
			rec.ID = uuid.New().String()
		}
		c.records = append(c.records, rec)
		idx = len(c.records) - 1
		c.byName[rec.Name] = idx
	}
	c.byID[rec.ID] = idx
	size := len(c.records)
	c.mu.Unlock()

	if err := c.Save(); err != nil {
		// Roll back so the catalog mirrors the file.
		c.mu.Lock()
		if exists {
			c.records[idx] = prev
		} else {
			c.records = c.records[:len(c.records)-1]
			delete(c.byName, rec.Name)
			delete(c.byID, rec.ID)
		}
		c.mu.Unlock()
		return models.PatternRecord{}, err
	}

	metrics.CatalogRecords.Set(float64(size))
	c.logger.Info().Str("name", rec.Name).Str("id", rec.ID).Bool("updated", exists).Msg("Pattern saved")
	return rec.Clone(), nil
}

// Get returns a copy of the record with the given ID.
func (c *Catalog) Get(id string) (models.PatternRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byID[id]
	if !ok {
		return models.PatternRecord{}, fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	return c.records[idx].Clone(), nil
}

// GetByName returns a copy of the record with the given name.
func (c *Catalog) GetByName(name string) (models.PatternRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.byName[name]
	if !ok {
		return models.PatternRecord{}, fmt.Errorf("%w: name %s", ErrNotFound, name)
	}
	return c.records[idx].Clone(), nil
}

// Delete removes the record with the given ID and persists the catalog.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	idx, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: id %s", ErrNotFound, id)
	}
	name := c.records[idx].Name
	c.records = append(c.records[:idx], c.records[idx+1:]...)
	c.reset(c.records)
	size := len(c.records)
	c.mu.Unlock()

	if err := c.Save(); err != nil {
		return err
	}
	metrics.CatalogRecords.Set(float64(size))
	c.logger.Info().Str("name", name).Str("id", id).Msg("Pattern deleted")
	return nil
}

// Wipe removes every record and persists the empty catalog.
func (c *Catalog) Wipe() error {
	c.mu.Lock()
	c.reset(nil)
	c.mu.Unlock()

	if err := c.Save(); err != nil {
		return err
	}
	metrics.CatalogRecords.Set(0)
	c.logger.Info().Msg("Catalog wiped")
	return nil
}

// List returns copies of all records in insertion order.
func (c *Catalog) List() []models.PatternRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.PatternRecord, len(c.records))
	for i := range c.records {
		out[i] = c.records[i].Clone()
	}
	return out
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Export renders the catalog as indented JSON, suitable for download and
// later re-import.
func (c *Catalog) Export() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.records) == 0 {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(c.records, "", "  ")
}
