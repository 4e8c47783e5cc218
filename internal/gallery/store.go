// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package gallery manages the image side of the service: the filename index
// over the patterns directory, the name-to-image link index, uploads, and
// the resolver that turns a pattern record into a servable image path.
package gallery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hisame-dev/wagarakan/internal/metrics"
)

// imageExts are the recognized gallery file extensions, compared
// case-insensitively.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

// heroCandidates is the background lookup order.
var heroCandidates = []string{"hero_placeholder.png", "hero.jpg", "hero.png", "hero.jpeg"}

// IsImageFile reports whether name carries a recognized image extension.
func IsImageFile(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Store is the scanned filename index over the patterns directory plus the
// backgrounds directory. Safe for concurrent use; Rescan replaces the index
// wholesale.
type Store struct {
	mu             sync.RWMutex
	patternsDir    string
	backgroundsDir string
	files          []string
	logger         zerolog.Logger
}

// NewStore creates a store over the two asset directories. Call Rescan to
// populate it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(patternsDir, backgroundsDir string, logger zerolog.Logger) *Store {
	return &Store{
		patternsDir:    patternsDir,
		backgroundsDir: backgroundsDir,
		logger:         logger.With().Str("component", "gallery").Logger(),
	}
}

// PatternsDir returns the directory uploads and scans operate on.
func (s *Store) PatternsDir() string { return s.patternsDir }

// Rescan rebuilds the filename index from the patterns directory. A missing
// directory yields an empty index, not an error.
func (s *Store) Rescan() (int, error) {
	entries, err := os.ReadDir(s.patternsDir)
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.files = nil
			s.mu.Unlock()
			metrics.GalleryIndexSize.Set(0)
			return 0, nil
		}
		return 0, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsImageFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	s.mu.Lock()
	s.files = files
	s.mu.Unlock()

	metrics.GalleryIndexSize.Set(float64(len(files)))
	metrics.GalleryRescans.Inc()
	s.logger.Debug().Int("files", len(files)).Msg("Gallery index rebuilt")
	return len(files), nil
}

// Files returns the indexed image filenames, sorted.
func (s *Store) Files() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.files...)
}

// Len returns the index size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Contains reports whether the index holds the exact filename.
func (s *Store) Contains(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f == name {
			return true
		}
	}
	return false
}

// Background returns the hero image filename, trying the candidates in
// order. The second return is false when none exists.
func (s *Store) Background() (string, bool) {
	for _, cand := range heroCandidates {
		if _, err := os.Stat(filepath.Join(s.backgroundsDir, cand)); err == nil {
			return cand, true
		}
	}
	return "", false
}

// WipeImages removes every indexed image file from the patterns directory
// and clears the index. Returns the number of files removed.
func (s *Store) WipeImages() (int, error) {
	s.mu.Lock()
	files := s.files
	s.files = nil
	s.mu.Unlock()

	removed := 0
	for _, f := range files {
		if err := os.Remove(filepath.Join(s.patternsDir, f)); err != nil {
			s.logger.Warn().Err(err).Str("file", f).Msg("Failed to remove image")
			continue
		}
		removed++
	}
	metrics.GalleryIndexSize.Set(0)
	s.logger.Info().Int("removed", removed).Msg("Gallery images wiped")
	return removed, nil
}
