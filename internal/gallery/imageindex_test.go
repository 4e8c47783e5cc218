// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package gallery

import (
	"os"
	"path/filepath"
	"testing"
)

func TestImageIndexLoadMissingFile(t *testing.T) {
	ix := NewImageIndex(filepath.Join(t.TempDir(), "images.json"))
	if err := ix.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ix.Get("anything"); len(got) != 0 {
		t.Errorf("Get = %v, want empty", got)
	}
}

func TestImageIndexLinkUnlinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	ix := NewImageIndex(path)

	if err := ix.Link("Seigaiha", "a.png", "b.png", "a.png"); err != nil {
		t.Fatalf("Link: %v", err)
	}
	got := ix.Get("Seigaiha")
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.png" {
		t.Errorf("Get = %v, want deduped [a.png b.png]", got)
	}

	reloaded := NewImageIndex(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Get("Seigaiha"); len(got) != 2 {
		t.Errorf("reloaded Get = %v", got)
	}

	if err := ix.Unlink("Seigaiha"); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if got := ix.Get("Seigaiha"); len(got) != 0 {
		t.Errorf("Get after unlink = %v", got)
	}
}

func TestImageIndexStripsAbsolutePaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	data := `{"Asanoha": ["/old/install/assets/patterns/asanoha.png"]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	ix := NewImageIndex(path)
	if err := ix.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := ix.Get("Asanoha")
	if len(got) != 1 || got[0] != "asanoha.png" {
		t.Errorf("Get = %v, want [asanoha.png]", got)
	}
}

func TestImageIndexClear(t *testing.T) {
	ix := NewImageIndex(filepath.Join(t.TempDir(), "images.json"))
	_ = ix.Link("A", "a.png")
	_ = ix.Link("B", "b.png")
	if err := ix.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if names := ix.Names(); len(names) != 0 {
		t.Errorf("Names = %v, want empty", names)
	}
}

func TestImageIndexNamesSorted(t *testing.T) {
	ix := NewImageIndex(filepath.Join(t.TempDir(), "images.json"))
	_ = ix.Link("Zebra", "z.png")
	_ = ix.Link("Apple", "a.png")
	names := ix.Names()
	if len(names) != 2 || names[0] != "Apple" || names[1] != "Zebra" {
		t.Errorf("Names = %v, want sorted", names)
	}
}
