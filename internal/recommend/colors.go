// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package recommend

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// ColorCombo is a coordinated outfit color suggestion derived from a
// pattern's palette: the kimono base with two accents, plus obi, obijime,
// and obiage picked for the requested contrast level.
type ColorCombo struct {
	KimonoBase    string `json:"kimono_base"`
	KimonoAccent1 string `json:"kimono_accent1"`
	KimonoAccent2 string `json:"kimono_accent2"`
	Obi           string `json:"obi"`
	Obijime       string `json:"obijime"`
	Obiage        string `json:"obiage"`
}

// Contrast ratio bands per WCAG contrast levels. A desired band outside
// this table falls back to medium.
var contrastBands = map[string][2]float64{
	"Low":    {1.1, 1.8},
	"Medium": {1.8, 3.5},
	"High":   {3.5, 21.0},
}

var fallbackPalette = []string{"#222222", "#dddddd", "#aaaaaa"}

func hexToRGB(h string) (r, g, b float64, ok bool) {
	h = strings.TrimPrefix(h, "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(h[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(h[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(h[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return float64(rv), float64(gv), float64(bv), true
}

// relLuminance computes WCAG relative luminance for a hex color.
// Unparseable colors are treated as black.
func relLuminance(hex string) float64 {
	r, g, b, ok := hexToRGB(hex)
	if !ok {
		return 0
	}
	lin := func(c float64) float64 {
		c /= 255.0
		if c <= 0.04045 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(r) + 0.7152*lin(g) + 0.0722*lin(b)
}

// contrastRatio returns the WCAG contrast ratio between two hex colors,
// always >= 1.
func contrastRatio(a, b string) float64 {
	l1, l2 := relLuminance(a), relLuminance(b)
	hi, lo := math.Max(l1, l2), math.Min(l1, l2)
	return (hi + 0.05) / (lo + 0.05)
}

// pickContrasting chooses the palette color whose contrast against base
// falls inside the desired band, preferring the one closest to the band's
// midpoint. When nothing lands in the band it picks the overall closest.
func pickContrasting(base string, palette []string, desired string) string {
	band, ok := contrastBands[desired]
	if !ok {
		band = contrastBands["Medium"]
	}
	mid := (band[0] + band[1]) / 2

	best, bestDist := "", math.Inf(1)
	inBand, inBandDist := "", math.Inf(1)
	for _, c := range palette {
		cr := contrastRatio(base, c)
		dist := math.Abs(cr - mid)
		if c != base && cr >= band[0] && cr <= band[1] && dist < inBandDist {
			inBand, inBandDist = c, dist
		}
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if inBand != "" {
		return inBand
	}
	return best
}

// paletteIndex deterministically selects one of a pattern's palettes from
// the pattern name and the query, so the same request always yields the
// same combo while different queries vary the suggestion.
func paletteIndex(name, querySeed string, n int) int {
	if n <= 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	h.Write([]byte(querySeed))
	return int(h.Sum32() % uint32(n))
}

// pickCombo builds the outfit color suggestion for a pattern.
func pickCombo(name string, palettes [][]string, querySeed, desiredContrast string) ColorCombo {
	palette := fallbackPalette
	if len(palettes) > 0 {
		palette = palettes[paletteIndex(name, querySeed, len(palettes))]
	}
	if len(palette) == 0 {
		palette = fallbackPalette
	}

	base := palette[0]
	accent1, accent2 := base, base
	if len(palette) > 1 {
		accent1 = palette[1]
	}
	if len(palette) > 2 {
		accent2 = palette[2]
	}
	if desiredContrast == "" {
		desiredContrast = "Medium"
	}

	obiCandidates := make([]string, 0, len(palette)+2)
	obiCandidates = append(obiCandidates, palette...)
	obiCandidates = append(obiCandidates, "#FFFFFF", "#000000")

	obi := pickContrasting(base, obiCandidates, desiredContrast)
	obijime := pickContrasting(obi, palette, "Medium")

	return ColorCombo{
		KimonoBase:    base,
		KimonoAccent1: accent1,
		KimonoAccent2: accent2,
		Obi:           obi,
		Obijime:       obijime,
		Obiage:        accent2,
	}
}
