// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package models defines the core data types shared across Wagarakan:
// the pattern record, its attribute enumerations, and the API response
// envelope used by all HTTP endpoints.
package models

import "strings"

// Attribute values for the gender dimension.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderUnisex = "Unisex"
)

// Attribute values for the season dimension.
const (
	SeasonSpring  = "Spring"
	SeasonSummer  = "Summer"
	SeasonAutumn  = "Autumn"
	SeasonWinter  = "Winter"
	SeasonAllYear = "All year"
)

// Attribute enumerations. A record may carry any subset of an enumeration;
// an empty set means the dimension is unspecified.
var (
	Genders = []string{GenderMale, GenderFemale, GenderUnisex}

	Moods = []string{
		"Bright", "Calm", "Elegant", "Sharp", "Playful", "Serene",
		"Graceful", "Soft", "Dynamic", "Refined", "Bold", "Refreshing", "Feminine",
		"Strong", "Traditional", "Resilient",
	}

	Seasons = []string{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonAllYear}

	FormalityLevels = []string{"Casual", "Semi-formal", "Formal"}

	Motifs = []string{
		"Geometric", "Nature", "Classic", "Modern", "Lucky symbol", "Dynamic", "Seasonal",
	}

	ContrastLevels = []string{"Low", "Medium", "High"}
)

// Enumerations maps a dimension name to its value set. The keys double as
// the parameter of the `wagaraenum` validation tag.
var Enumerations = map[string][]string{
	"genders":   Genders,
	"moods":     Moods,
	"seasons":   Seasons,
	"formality": FormalityLevels,
	"motifs":    Motifs,
	"contrast":  ContrastLevels,
}

// InEnum reports whether value belongs to the enumeration, ignoring case.
func InEnum(value string, enum []string) bool {
	for _, v := range enum {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// CanonicalEnumValue returns the canonical spelling of value within enum,
// matching case-insensitively. The second return is false when the value
// is not part of the enumeration.
func CanonicalEnumValue(value string, enum []string) (string, bool) {
	for _, v := range enum {
		if strings.EqualFold(v, value) {
			return v, true
		}
	}
	return "", false
}

// PatternRecord is a single wagara (traditional Japanese pattern) entry in
// the catalog. The JSON field names match the on-disk catalog file so that
// data files written by earlier versions of the application load unchanged.
//
// Every attribute slice holds values from its fixed enumeration; validation
// lives in internal/validation. Records are created on catalog load, via
// simple-add uploads, or through bulk import, and are never mutated
// concurrently with a read of the same copy (handlers operate on copies
// handed out by the catalog).
type PatternRecord struct {
	// ID uniquely identifies the record. Assigned (UUID v4) on create or
	// import when the incoming record carries none.
	ID string `json:"id,omitempty"`

	// Name is the display name, e.g. "Seigaiha (Blue Ocean Waves)".
	// Catalog upserts key on it.
	Name string `json:"name" validate:"required"`

	// Motifs categorizes the design, e.g. Geometric, Nature.
	Motifs []string `json:"motifs,omitempty" validate:"omitempty,dive,wagaraenum=motifs"`

	// Seasons the pattern suits. "All year" matches any season query.
	Seasons []string `json:"seasons,omitempty" validate:"omitempty,dive,wagaraenum=seasons"`

	// Formality levels the pattern is appropriate for.
	Formality []string `json:"formality,omitempty" validate:"omitempty,dive,wagaraenum=formality"`

	// Moods the pattern conveys.
	Moods []string `json:"mood,omitempty" validate:"omitempty,dive,wagaraenum=moods"`

	// Genders the pattern is styled for. "Unisex" matches any gender query.
	Genders []string `json:"genders,omitempty" validate:"omitempty,dive,wagaraenum=genders"`

	// Contrast lists the contrast levels the pattern works well at.
	Contrast []string `json:"contrast_pref,omitempty" validate:"omitempty,dive,wagaraenum=contrast"`

	// Palettes holds suggested color palettes as hex strings.
	Palettes [][]string `json:"color_palettes,omitempty" validate:"omitempty,dive,dive,hexcolor"`

	// ImagePath is an optional explicit image link, relative to the
	// patterns directory or absolute.
	ImagePath string `json:"image_path,omitempty"`

	// Notes is free-form text shown on recommendation cards.
	Notes string `json:"notes,omitempty"`
}

// HasGender reports whether the record applies to the queried gender.
// Records tagged Unisex apply to every gender.
func (p *PatternRecord) HasGender(gender string) bool {
	return InEnum(gender, p.Genders) || InEnum(GenderUnisex, p.Genders)
}

// HasSeason reports whether the record suits the queried season.
// Records tagged "All year" suit every season.
func (p *PatternRecord) HasSeason(season string) bool {
	return InEnum(season, p.Seasons) || InEnum(SeasonAllYear, p.Seasons)
}

// HasMood reports whether the record carries the queried mood.
func (p *PatternRecord) HasMood(mood string) bool { return InEnum(mood, p.Moods) }

// HasFormality reports whether the record suits the queried formality level.
func (p *PatternRecord) HasFormality(level string) bool { return InEnum(level, p.Formality) }

// HasMotif reports whether the record includes the queried motif category.
func (p *PatternRecord) HasMotif(motif string) bool { return InEnum(motif, p.Motifs) }

// HasContrast reports whether the record works at the queried contrast level.
func (p *PatternRecord) HasContrast(level string) bool { return InEnum(level, p.Contrast) }

// Clone returns a deep copy so callers can hand records across API
// boundaries without sharing slices with the catalog.
func (p *PatternRecord) Clone() PatternRecord {
	c := *p
	c.Motifs = append([]string(nil), p.Motifs...)
	c.Seasons = append([]string(nil), p.Seasons...)
	c.Formality = append([]string(nil), p.Formality...)
	c.Moods = append([]string(nil), p.Moods...)
	c.Genders = append([]string(nil), p.Genders...)
	c.Contrast = append([]string(nil), p.Contrast...)
	if p.Palettes != nil {
		c.Palettes = make([][]string, len(p.Palettes))
		for i, pal := range p.Palettes {
			c.Palettes[i] = append([]string(nil), pal...)
		}
	}
	return c
}
