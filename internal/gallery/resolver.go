// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/hisame-dev/wagarakan/internal/metrics"
	"github.com/hisame-dev/wagarakan/internal/models"
)

// Resolver turns a pattern record into a servable image URL path. The
// chain, in order: the record's explicit ImagePath when the file exists,
// the first linked image from the image index, a fuzzy filename match over
// the scanned gallery, and finally the placeholder. Resolve never fails.
type Resolver struct {
	store       *Store
	index       *ImageIndex
	baseURL     string
	placeholder string
}

// NewResolver creates a resolver serving image URLs under baseURL (e.g.
// "/api/v1/images"). placeholder is the URL returned when nothing matches.
func NewResolver(store *Store, index *ImageIndex, baseURL, placeholder string) *Resolver {
	return &Resolver{
		store:       store,
		index:       index,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		placeholder: placeholder,
	}
}

func (r *Resolver) imageURL(file string) string {
	return r.baseURL + "/" + path.Clean(file)
}

// Resolve returns the image URL for a record.
func (r *Resolver) Resolve(rec *models.PatternRecord) string {
	if rec != nil {
		if rec.ImagePath != "" {
			file := filepath.Base(rec.ImagePath)
			if r.store.Contains(file) {
				metrics.RecordImageResolution("linked")
				return r.imageURL(file)
			}
		}
		if linked := r.index.Get(rec.Name); len(linked) > 0 {
			for _, file := range linked {
				if r.store.Contains(file) {
					metrics.RecordImageResolution("indexed")
					return r.imageURL(file)
				}
			}
		}
		if file, ok := r.fuzzyMatch(rec.Name); ok {
			metrics.RecordImageResolution("fuzzy")
			return r.imageURL(file)
		}
	}
	metrics.RecordImageResolution("placeholder")
	return r.placeholder
}

// ResolveAll returns every linked, existing image URL for a record, for
// multi-image previews. Falls back to the single Resolve result.
func (r *Resolver) ResolveAll(rec *models.PatternRecord) []string {
	if rec != nil {
		var urls []string
		for _, file := range r.index.Get(rec.Name) {
			if r.store.Contains(file) {
				urls = append(urls, r.imageURL(file))
			}
		}
		if len(urls) > 0 {
			return urls
		}
	}
	return []string{r.Resolve(rec)}
}

// fuzzyMatch finds the gallery file best matching a pattern name. The
// parenthetical gloss is stripped first ("Seigaiha (Blue Ocean Waves)"
// searches as "Seigaiha"), then an exact substring check short-circuits
// before fuzzy ranking.
func (r *Resolver) fuzzyMatch(name string) (string, bool) {
	key := searchKey(name)
	if key == "" {
		return "", false
	}

	files := r.store.Files()
	for _, f := range files {
		if strings.Contains(strings.ToLower(f), key) {
			return f, true
		}
	}

	lowered := make([]string, len(files))
	for i, f := range files {
		lowered[i] = strings.ToLower(f)
	}
	matches := fuzzy.Find(key, lowered)
	if len(matches) == 0 {
		return "", false
	}
	return files[matches[0].Index], true
}

// searchKey lowercases a pattern name and drops any parenthetical suffix.
func searchKey(name string) string {
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.ToLower(strings.TrimSpace(name))
}
