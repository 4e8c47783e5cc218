// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package supervisor

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

// countingService records how many times it was started and blocks until
// canceled.
type countingService struct {
	starts atomic.Int32
}

func (s *countingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return "counting-service" }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v", cfg.FailureThreshold)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestNewTreeAppliesDefaults(t *testing.T) {
	tree := NewTree(testLogger(), TreeConfig{})
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %v, want default", tree.config.FailureThreshold)
	}
	if tree.config.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %v, want default", tree.config.FailureBackoff)
	}
}

func TestTreeStartsAndStopsServices(t *testing.T) {
	tree := NewTree(testLogger(), DefaultTreeConfig())
	dataSvc := &countingService{}
	apiSvc := &countingService{}
	tree.AddDataService(dataSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for dataSvc.starts.Load() == 0 || apiSvc.starts.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("services never started")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("tree did not stop")
	}
}
