// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package catalog

import (
	"testing"
)

func TestImportValidPlusInvalid(t *testing.T) {
	c := testCatalog(t)

	payload := `[
		{"name":"Seigaiha","mood":["Calm"],"genders":["Unisex"]},
		{"name":"Asanoha","mood":["Bright"],"seasons":["Spring"]},
		{"name":"Broken","mood":["Gloomy"]},
		{"name":"Ichimatsu","contrast_pref":["High"]}
	]`
	stats, err := c.Import([]byte(payload))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Created != 3 {
		t.Errorf("Created = %d, want 3", stats.Created)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("Errors = %v, want 1 entry", stats.Errors)
	}
	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3", c.Len())
	}
}

func TestImportMergesByName(t *testing.T) {
	c := testCatalog(t)
	first, err := c.Add(validRecord("Seigaiha"), false)
	if err != nil {
		t.Fatal(err)
	}

	payload := `[
		{"name":"Seigaiha","notes":"updated","mood":["Elegant"]},
		{"name":"Kikko","mood":["Calm"]}
	]`
	stats, err := c.Import([]byte(payload))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.Updated != 1 || stats.Created != 1 {
		t.Errorf("stats = %+v, want 1 updated 1 created", stats)
	}

	got, err := c.GetByName("Seigaiha")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != first.ID {
		t.Errorf("merge changed ID: %s -> %s", first.ID, got.ID)
	}
	if got.Notes != "updated" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestImportRemapsTakenID(t *testing.T) {
	c := testCatalog(t)
	asanoha, err := c.Add(validRecord("Asanoha"), false)
	if err != nil {
		t.Fatal(err)
	}

	payload := `[{"id":"` + asanoha.ID + `","name":"Sakura","mood":["Soft"]}]`
	stats, err := c.Import([]byte(payload))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if stats.Created != 1 {
		t.Errorf("Created = %d, want 1", stats.Created)
	}

	got, err := c.Get(asanoha.ID)
	if err != nil {
		t.Fatalf("Asanoha unreachable after import: %v", err)
	}
	if got.Name != "Asanoha" {
		t.Errorf("Get(%s) = %q, want Asanoha", asanoha.ID, got.Name)
	}
	sakura, err := c.GetByName("Sakura")
	if err != nil {
		t.Fatal(err)
	}
	if sakura.ID == asanoha.ID || sakura.ID == "" {
		t.Errorf("imported record ID = %q, want fresh ID", sakura.ID)
	}
}

func TestImportRejectsNonArray(t *testing.T) {
	c := testCatalog(t)
	if _, err := c.Import([]byte(`{"name":"x"}`)); err == nil {
		t.Error("expected error for non-array payload")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	c := testCatalog(t)

	stats, err := c.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if stats.Created != 10 {
		t.Errorf("Created = %d, want 10", stats.Created)
	}
	if c.Len() != 10 {
		t.Errorf("Len = %d, want 10", c.Len())
	}

	again, err := c.Seed()
	if err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	if again.Updated != 10 || again.Created != 0 {
		t.Errorf("second seed stats = %+v, want 10 updated", again)
	}
	if c.Len() != 10 {
		t.Errorf("Len after reseed = %d, want 10", c.Len())
	}
}

func TestSamplePatternsValidate(t *testing.T) {
	c := testCatalog(t)
	for _, rec := range SamplePatterns() {
		if _, err := c.Add(rec, true); err != nil {
			t.Errorf("%s: %v", rec.Name, err)
		}
	}
}
