// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestPaletteFromSolidImage(t *testing.T) {
	img := solidImage(20, 20, color.NRGBA{R: 0x0F, G: 0x4C, B: 0x81, A: 0xFF})
	got := paletteFromImage(img)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != "#0F4C81" {
		t.Errorf("dominant = %s, want #0F4C81", got[0])
	}
	// A single color pads with the neutral filler.
	if got[1] != "#CCCCCC" || got[2] != "#CCCCCC" {
		t.Errorf("padding = %v, want #CCCCCC", got[1:])
	}
}

func TestPaletteDominantOrdering(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			// 70 red pixels, 30 blue.
			c := color.NRGBA{R: 0xFF, A: 0xFF}
			if y >= 7 {
				c = color.NRGBA{B: 0xFF, A: 0xFF}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	got := paletteFromImage(img)
	if got[0] != "#FF0000" {
		t.Errorf("dominant = %s, want #FF0000", got[0])
	}
	if got[1] != "#0000FF" {
		t.Errorf("second = %s, want #0000FF", got[1])
	}
}

func TestExtractPaletteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solid.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solidImage(8, 8, color.NRGBA{G: 0xAA, A: 0xFF})); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got := ExtractPalette(path)
	if got[0] != "#00AA00" {
		t.Errorf("dominant = %s, want #00AA00", got[0])
	}
}

func TestExtractPaletteUnreadableFile(t *testing.T) {
	got := ExtractPalette(filepath.Join(t.TempDir(), "missing.png"))
	want := []string{"#333333", "#DDDDDD", "#999999"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
