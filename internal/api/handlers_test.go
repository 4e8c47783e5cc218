// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/hisame-dev/wagarakan/internal/catalog"
	"github.com/hisame-dev/wagarakan/internal/config"
	"github.com/hisame-dev/wagarakan/internal/gallery"
	"github.com/hisame-dev/wagarakan/internal/models"
	"github.com/hisame-dev/wagarakan/internal/recommend"
)

// minimal valid 1x1 PNG
var tinyPNG = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53,
	0xDE, 0x00, 0x00, 0x00, 0x0C, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9C, 0x62, 0xF8, 0xCF, 0xC0, 0x00,
	0x00, 0x00, 0x03, 0x00, 0x01, 0x9A, 0x60, 0xE1,
	0xD5, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4E,
	0x44, 0xAE, 0x42, 0x60, 0x82,
}

func testServer(t *testing.T) (http.Handler, *catalog.Catalog, *gallery.Store) {
	t.Helper()
	base := t.TempDir()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8543, Timeout: 30 * time.Second},
		Paths: config.PathsConfig{
			DataFile:       filepath.Join(base, "data", "patterns.json"),
			ImageIndexFile: filepath.Join(base, "data", "images.json"),
			PatternsDir:    filepath.Join(base, "assets", "patterns"),
			BackgroundsDir: filepath.Join(base, "assets", "backgrounds"),
			Placeholder:    "hero_placeholder.png",
		},
		Upload:    config.UploadConfig{MaxBytes: 1 << 20},
		Recommend: config.RecommendConfig{TopK: 3, CacheTTL: time.Minute, GenderWeight: 1.0, MoodWeight: 1.1, SeasonWeight: 0.9, FormalityWeight: 1.0, MotifWeight: 0.8, ContrastWeight: 0.6},
		Security:  config.SecurityConfig{RateLimitDisabled: true, CORSOrigins: []string{"*"}},
	}

	logger := zerolog.Nop()
	cat := catalog.New(cfg.Paths.DataFile, logger)
	store := gallery.NewStore(cfg.Paths.PatternsDir, cfg.Paths.BackgroundsDir, logger)
	index := gallery.NewImageIndex(cfg.Paths.ImageIndexFile)
	resolver := gallery.NewResolver(store, index, "/api/v1/images", "/api/v1/gallery/background/image")
	engine := recommend.New(recommend.WeightsFromConfig(cfg.Recommend), cfg.Recommend.TopK, resolver, logger)

	h := NewHandler(cfg, cat, engine, store, index, resolver)
	return NewRouter(cfg, h), cat, store
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
	return resp
}

func doJSON(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, r)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestPatternLifecycle(t *testing.T) {
	srv, _, _ := testServer(t)

	body := `{"name":"Seigaiha","mood":["Calm"],"genders":["Unisex"]}`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	created := decodeResponse(t, rec)
	data, _ := json.Marshal(created.Data)
	var saved models.PatternRecord
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" {
		t.Fatal("no ID assigned")
	}

	// Duplicate name without upsert conflicts.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/patterns", body)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	// Upsert succeeds and keeps the ID.
	rec = doJSON(t, srv, http.MethodPost, "/api/v1/patterns?upsert=true", body)
	if rec.Code != http.StatusCreated {
		t.Errorf("upsert status = %d", rec.Code)
	}

	// Fetch by ID.
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/patterns/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	// Delete, then 404.
	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/patterns/"+saved.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/patterns/"+saved.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", rec.Code)
	}
}

func TestCreatePatternRejectsBadEnum(t *testing.T) {
	srv, cat, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns", `{"name":"Bad","mood":["Gloomy"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v", resp.Error)
	}
	if cat.Len() != 0 {
		t.Errorf("catalog grew to %d", cat.Len())
	}
}

func TestImportEndpointSkipsInvalid(t *testing.T) {
	srv, cat, _ := testServer(t)
	body := `[
		{"name":"A","mood":["Calm"]},
		{"name":"B","seasons":["Spring"]},
		{"name":"C","mood":["Nonsense"]}
	]`
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns/import", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var stats catalog.ImportStats
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Created != 2 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 2 created 1 skipped", stats)
	}
	if cat.Len() != 2 {
		t.Errorf("catalog len = %d, want 2", cat.Len())
	}
}

func TestSeedAndExport(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns/seed", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("seed status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/patterns/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	var exported []models.PatternRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &exported); err != nil {
		t.Fatalf("export not a JSON array: %v", err)
	}
	if len(exported) != 10 {
		t.Errorf("exported %d records, want 10", len(exported))
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns/seed", ""); rec.Code != http.StatusOK {
		t.Fatal("seed failed")
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/recommendations?mood=Calm&season=Summer&gender=Unisex", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	data, _ := json.Marshal(resp.Data)
	var results []recommend.Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Pattern != "Seigaiha (Blue Ocean Waves)" {
		t.Errorf("top = %q, want Seigaiha", results[0].Pattern)
	}
	if len(results[0].Reasons) == 0 {
		t.Error("no reasons")
	}
}

func TestRecommendationsCacheInvalidation(t *testing.T) {
	srv, _, _ := testServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns/seed", ""); rec.Code != http.StatusOK {
		t.Fatal("seed failed")
	}

	recommendations := func() []recommend.Result {
		t.Helper()
		rec := doJSON(t, srv, http.MethodGet, "/api/v1/recommendations?mood=Bold&formality=Formal&k=1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		resp := decodeResponse(t, rec)
		data, _ := json.Marshal(resp.Data)
		var results []recommend.Result
		if err := json.Unmarshal(data, &results); err != nil {
			t.Fatal(err)
		}
		return results
	}

	first := recommendations()
	second := recommendations() // served from cache
	if len(first) != 1 || len(second) != 1 || first[0].Pattern != second[0].Pattern {
		t.Fatalf("cached response diverged: %v vs %v", first, second)
	}

	// A dominant new pattern must show up despite the warm cache.
	// Only record matching both mood Bold and formality Formal, so it must
	// outrank every seeded pattern once the cache is dropped.
	body := `{"name":"Test Bold","mood":["Bold"],"genders":["Unisex"],"seasons":["All year"],` +
		`"formality":["Formal"],"motifs":["Modern"],"contrast_pref":["High"]}`
	if rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns", body); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	after := recommendations()
	if len(after) != 1 || after[0].Pattern != "Test Bold" {
		t.Fatalf("got %v, want Test Bold after invalidation", after)
	}
}

func TestRecommendationsRejectsBadValues(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/recommendations?mood=Gloomy", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad mood status = %d, want 400", rec.Code)
	}
	rec = doJSON(t, srv, http.MethodGet, "/api/v1/recommendations?k=-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad k status = %d, want 400", rec.Code)
	}
}

func TestRecommendationsCaseInsensitiveParams(t *testing.T) {
	srv, _, _ := testServer(t)
	if rec := doJSON(t, srv, http.MethodPost, "/api/v1/patterns/seed", ""); rec.Code != http.StatusOK {
		t.Fatal("seed failed")
	}
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/recommendations?mood=calm", "")
	if rec.Code != http.StatusOK {
		t.Errorf("lowercase mood status = %d, want 200", rec.Code)
	}
}

func uploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	r := httptest.NewRequest(http.MethodPost, "/api/v1/gallery/upload", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestUploadAndServeImage(t *testing.T) {
	srv, _, store := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "seigaiha_waves.png", tinyPNG, nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	if !store.Contains("seigaiha_waves.png") {
		t.Fatal("upload not indexed")
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/images/seigaiha_waves.png", "")
	if rec.Code != http.StatusOK {
		t.Errorf("serve status = %d", rec.Code)
	}
	if !bytes.Equal(rec.Body.Bytes(), tinyPNG) {
		t.Error("served bytes differ from upload")
	}
}

func TestUploadRejectsTextFile(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "fake.png", []byte("just text content here"), nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadSimpleAddCreatesPattern(t *testing.T) {
	srv, cat, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "kikko.png", tinyPNG, map[string]string{
		"pattern": "Kikko (Tortoise Shell)",
		"mood":    "Calm",
		"season":  "All year",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	saved, err := cat.GetByName("Kikko (Tortoise Shell)")
	if err != nil {
		t.Fatalf("pattern not created: %v", err)
	}
	if len(saved.Palettes) == 0 || len(saved.Palettes[0]) != 3 {
		t.Errorf("palette not extracted: %v", saved.Palettes)
	}
	if saved.ImagePath != "kikko.png" {
		t.Errorf("ImagePath = %q", saved.ImagePath)
	}
}

func TestLinkEndpoints(t *testing.T) {
	srv, _, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "asanoha.png", tinyPNG, nil))
	if rec.Code != http.StatusCreated {
		t.Fatal("upload failed")
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/links", `{"pattern":"Asanoha","files":["asanoha.png"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("link status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/v1/links", `{"pattern":"Asanoha","files":["missing.png"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown file status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/links", "")
	if rec.Code != http.StatusOK {
		t.Errorf("list links status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/api/v1/links/Asanoha", "")
	if rec.Code != http.StatusOK {
		t.Errorf("unlink status = %d", rec.Code)
	}
}

func TestServeImageBlocksTraversal(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/images/..%2F..%2Fdata%2Fpatterns.json", "")
	if rec.Code == http.StatusOK {
		t.Error("traversal path served")
	}
}

func TestBackgroundEndpointWithoutHero(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/api/v1/gallery/background", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Data != nil {
		t.Errorf("data = %v, want null", resp.Data)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/gallery/background/image", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("image status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _, _ := testServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_active_requests") {
		t.Error("expected api metrics in output")
	}
}
