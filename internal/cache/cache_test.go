// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("a", 42)
	got, ok := c.Get("a")
	if !ok {
		t.Fatal("expected hit for key a")
	}
	if got.(int) != 42 {
		t.Fatalf("got %v, want 42", got)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	defer c.Close()

	c.Set("a", "v")
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected entry to expire")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not removed, len = %d", c.Len())
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len after clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss after clear")
	}
}

func TestSweep(t *testing.T) {
	c := New(5 * time.Millisecond)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	c.sweep()
	if c.Len() != 0 {
		t.Fatalf("len after sweep = %d, want 0", c.Len())
	}
}

func TestKeyStability(t *testing.T) {
	type query struct {
		Mood   string
		Season string
	}
	a := Key("recommendations", query{Mood: "Calm", Season: "Summer"})
	b := Key("recommendations", query{Mood: "Calm", Season: "Summer"})
	if a != b {
		t.Fatalf("equal params produced different keys: %s vs %s", a, b)
	}
	c := Key("recommendations", query{Mood: "Bold", Season: "Summer"})
	if a == c {
		t.Fatal("different params produced the same key")
	}
	if a == Key("patterns", query{Mood: "Calm", Season: "Summer"}) {
		t.Fatal("method name not part of the key")
	}
}

func TestCloseIdempotent(t *testing.T) {
	c := New(time.Minute)
	c.Close()
	c.Close()
}
