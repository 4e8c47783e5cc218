// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package api

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/hisame-dev/wagarakan/internal/gallery"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/validation"
)

// GalleryEntry is one gallery listing item.
type GalleryEntry struct {
	File string `json:"file"`
	URL  string `json:"url"`
}

// Gallery serves GET /api/v1/gallery: every indexed image with its URL.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	files := h.store.Files()
	entries := make([]GalleryEntry, len(files))
	for i, f := range files {
		entries[i] = GalleryEntry{File: f, URL: "/api/v1/images/" + f}
	}
	respondOK(w, http.StatusOK, entries, start)
}

// RescanGallery serves POST /api/v1/gallery/rescan.
func (h *Handler) RescanGallery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n, err := h.store.Rescan()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "rescan failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string]int{"images": n}, start)
}

// WipeGallery serves DELETE /api/v1/gallery: removes every image file and
// clears the link index.
func (h *Handler) WipeGallery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	removed, err := h.store.WipeImages()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "wipe failed", err)
		return
	}
	if err := h.index.Clear(); err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "clear links failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string]int{"removed": removed}, start)
}

// Background serves GET /api/v1/gallery/background: the hero image URL, or
// null data when no candidate exists.
func (h *Handler) Background(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	file, ok := h.store.Background()
	if !ok {
		respondOK(w, http.StatusOK, nil, start)
		return
	}
	respondOK(w, http.StatusOK, map[string]string{
		"file": file,
		"url":  "/api/v1/gallery/background/image",
	}, start)
}

// BackgroundImage serves GET /api/v1/gallery/background/image.
func (h *Handler) BackgroundImage(w http.ResponseWriter, r *http.Request) {
	file, ok := h.store.Background()
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no background image", nil)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.cfg.Paths.BackgroundsDir, file))
}

// UploadResponse is the upload endpoint payload.
type UploadResponse struct {
	File    string                `json:"file"`
	URL     string                `json:"url"`
	Pattern *models.PatternRecord `json:"pattern,omitempty"`
}

// Upload serves POST /api/v1/gallery/upload. The multipart form must carry
// the image under "file". Optional simple-add fields create or update a
// catalog record in the same request: "pattern" names the record, the
// attribute fields (mood, season, ...) may each list values, and the
// palette is auto-extracted from the upload when none is given.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(h.cfg.Upload.MaxBytes); err != nil {
		respondError(w, http.StatusBadRequest, "UPLOAD_ERROR", "invalid multipart form", err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "UPLOAD_ERROR", `missing "file" part`, err)
		return
	}
	defer file.Close()

	overwrite, _ := strconv.ParseBool(r.FormValue("overwrite"))
	overwrite = overwrite || h.cfg.Upload.AllowOverwrite
	name, err := h.store.SaveUpload(header.Filename, file, h.cfg.Upload.MaxBytes, overwrite)
	if err != nil {
		switch {
		case errors.Is(err, gallery.ErrUploadExists):
			respondError(w, http.StatusConflict, "UPLOAD_ERROR", err.Error(), nil)
		case errors.Is(err, gallery.ErrUploadType), errors.Is(err, gallery.ErrUploadTooLarge):
			respondError(w, http.StatusBadRequest, "UPLOAD_ERROR", err.Error(), nil)
		default:
			respondError(w, http.StatusInternalServerError, "UPLOAD_ERROR", "store failed", err)
		}
		return
	}
	// The fsnotify watcher will also catch this, but rescan now so the
	// response and immediate follow-up requests see the file.
	if _, err := h.store.Rescan(); err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "rescan failed", err)
		return
	}

	resp := UploadResponse{File: name, URL: "/api/v1/images/" + name}

	if patternName := strings.TrimSpace(r.FormValue("pattern")); patternName != "" {
		rec, err := h.simpleAdd(patternName, name, r)
		if err != nil {
			var verr *validation.RequestValidationError
			if errors.As(err, &verr) {
				respondValidationError(w, verr)
				return
			}
			respondError(w, http.StatusInternalServerError, "CATALOG_ERROR", "pattern save failed", err)
			return
		}
		resp.Pattern = &rec
	}

	h.invalidateRecommendations()
	respondOK(w, http.StatusCreated, resp, start)
}

// simpleAdd upserts a pattern record for an uploaded image, links the
// image, and fills the palette from the image when the form gave none.
func (h *Handler) simpleAdd(patternName, file string, r *http.Request) (models.PatternRecord, error) {
	rec := models.PatternRecord{
		Name:      patternName,
		Motifs:    r.Form["motif"],
		Seasons:   r.Form["season"],
		Formality: r.Form["formality"],
		Moods:     r.Form["mood"],
		Genders:   r.Form["gender"],
		Contrast:  r.Form["contrast"],
		ImagePath: file,
		Notes:     strings.TrimSpace(r.FormValue("notes")),
	}
	if existing, err := h.catalog.GetByName(patternName); err == nil {
		if len(rec.Palettes) == 0 {
			rec.Palettes = existing.Palettes
		}
	}
	if len(rec.Palettes) == 0 {
		palette := gallery.ExtractPalette(filepath.Join(h.store.PatternsDir(), file))
		rec.Palettes = [][]string{palette}
	}

	added, err := h.catalog.Add(rec, true)
	if err != nil {
		return models.PatternRecord{}, err
	}
	if err := h.index.Link(patternName, file); err != nil {
		return models.PatternRecord{}, err
	}
	return added, nil
}

// LinkRequest is the POST /api/v1/links body.
type LinkRequest struct {
	Pattern string   `json:"pattern" validate:"required"`
	Files   []string `json:"files" validate:"required,min=1"`
}

// Links serves GET /api/v1/links: the full name-to-images link index.
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	out := make(map[string][]string)
	for _, name := range h.index.Names() {
		out[name] = h.index.Get(name)
	}
	respondOK(w, http.StatusOK, out, start)
}

// CreateLink serves POST /api/v1/links. Files must already be in the
// gallery index.
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}
	for _, f := range req.Files {
		if !h.store.Contains(filepath.Base(f)) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"unknown gallery file: "+sanitizeLogValue(f), nil)
			return
		}
	}

	if err := h.index.Link(req.Pattern, req.Files...); err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "link failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string][]string{req.Pattern: h.index.Get(req.Pattern)}, start)
}

// DeleteLink serves DELETE /api/v1/links/{name}.
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	name := chi.URLParam(r, "name")
	if err := h.index.Unlink(name); err != nil {
		respondError(w, http.StatusInternalServerError, "GALLERY_ERROR", "unlink failed", err)
		return
	}
	h.invalidateRecommendations()
	respondOK(w, http.StatusOK, map[string]string{"unlinked": name}, start)
}

// ServeImage serves GET /api/v1/images/{file}. Only files inside the
// scanned gallery index are served; the index check blocks traversal out
// of the patterns directory.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	file := filepath.Base(chi.URLParam(r, "file"))
	if !gallery.IsImageFile(file) || !h.store.Contains(file) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "image not found", nil)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, filepath.Join(h.store.PatternsDir(), file))
}
