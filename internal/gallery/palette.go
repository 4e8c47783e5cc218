// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
)

// errorPalette is returned when an image cannot be decoded or carries no
// usable colors.
var errorPalette = []string{"#333333", "#DDDDDD", "#999999"}

const (
	paletteThumbSize = 150
	paletteSize      = 3
)

// ExtractPalette returns the dominant distinct colors of an image file as
// hex strings, padded to three entries. Decode failures fall back to a
// neutral palette rather than erroring; the caller only wants a plausible
// starting point for the record's palette.
func ExtractPalette(path string) []string {
	img, err := imaging.Open(path)
	if err != nil {
		return append([]string(nil), errorPalette...)
	}
	return paletteFromImage(img)
}

func paletteFromImage(img image.Image) []string {
	thumb := imaging.Fit(img, paletteThumbSize, paletteThumbSize, imaging.NearestNeighbor)
	bounds := thumb.Bounds()

	counts := make(map[string]int)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := thumb.At(x, y).RGBA()
			hx := fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
			counts[hx]++
		}
	}
	if len(counts) == 0 {
		return append([]string(nil), errorPalette...)
	}

	type cc struct {
		hex   string
		count int
	}
	ranked := make([]cc, 0, len(counts))
	for hx, n := range counts {
		ranked = append(ranked, cc{hx, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].hex < ranked[j].hex
	})

	hexes := make([]string, 0, paletteSize)
	for _, c := range ranked {
		hexes = append(hexes, c.hex)
		if len(hexes) >= paletteSize {
			break
		}
	}
	for len(hexes) < paletteSize {
		hexes = append(hexes, "#CCCCCC")
	}
	return hexes
}
