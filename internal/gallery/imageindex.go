// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// ImageIndex maps pattern names to linked image filenames, persisted as a
// JSON object. Paths are stored as bare filenames; resolution against the
// patterns directory happens at read time.
type ImageIndex struct {
	mu    sync.RWMutex
	path  string
	links map[string][]string
}

// NewImageIndex creates an empty index persisting to path.
func NewImageIndex(path string) *ImageIndex {
	return &ImageIndex{
		path:  path,
		links: make(map[string][]string),
	}
}

// Load reads the index file. Missing or unreadable files yield an empty
// index, matching the forgiving load behavior of the catalog's image links.
func (ix *ImageIndex) Load() error {
	data, err := os.ReadFile(ix.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read image index %s: %w", ix.path, err)
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse image index %s: %w", ix.path, err)
	}

	// Stored paths may be absolute from older versions; keep basenames only.
	links := make(map[string][]string, len(raw))
	for name, paths := range raw {
		for _, p := range paths {
			links[name] = append(links[name], filepath.Base(p))
		}
	}

	ix.mu.Lock()
	ix.links = links
	ix.mu.Unlock()
	return nil
}

// Save writes the index atomically.
func (ix *ImageIndex) Save() error {
	ix.mu.RLock()
	data, err := json.MarshalIndent(ix.links, "", "  ")
	ix.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal image index: %w", err)
	}

	dir := filepath.Dir(ix.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".images-*.json")
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp index: %w", err)
	}
	if err := os.Rename(tmpName, ix.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

// Link associates image filenames with a pattern name, skipping duplicates,
// and persists the index.
func (ix *ImageIndex) Link(name string, files ...string) error {
	ix.mu.Lock()
	existing := ix.links[name]
	for _, f := range files {
		f = filepath.Base(f)
		dup := false
		for _, e := range existing {
			if e == f {
				dup = true
				break
			}
		}
		if !dup {
			existing = append(existing, f)
		}
	}
	ix.links[name] = existing
	ix.mu.Unlock()
	return ix.Save()
}

// Unlink removes all image links for a pattern name and persists.
func (ix *ImageIndex) Unlink(name string) error {
	ix.mu.Lock()
	delete(ix.links, name)
	ix.mu.Unlock()
	return ix.Save()
}

// Get returns the linked filenames for a pattern name.
func (ix *ImageIndex) Get(name string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]string(nil), ix.links[name]...)
}

// Names returns the linked pattern names, sorted.
func (ix *ImageIndex) Names() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	names := make([]string, 0, len(ix.links))
	for n := range ix.links {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clear drops every link and persists the empty index.
func (ix *ImageIndex) Clear() error {
	ix.mu.Lock()
	ix.links = make(map[string][]string)
	ix.mu.Unlock()
	return ix.Save()
}
