// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockHTTPServer is a test double for the HTTPServer interface.
type mockHTTPServer struct {
	listenAndServeErr   error
	listenAndServeBlock bool
	shutdownErr         error
	shutdownCount       atomic.Int32
	stopCh              chan struct{}
}

func newMockHTTPServer() *mockHTTPServer {
	return &mockHTTPServer{stopCh: make(chan struct{})}
}

func (m *mockHTTPServer) ListenAndServe() error {
	if m.listenAndServeErr != nil {
		return m.listenAndServeErr
	}
	if m.listenAndServeBlock {
		<-m.stopCh
		return http.ErrServerClosed
	}
	return nil
}

func (m *mockHTTPServer) Shutdown(ctx context.Context) error {
	m.shutdownCount.Add(1)
	close(m.stopCh)
	return m.shutdownErr
}

func TestHTTPServerServiceImplementsSutureService(t *testing.T) {
	var _ suture.Service = (*HTTPServerService)(nil)
}

func TestServeReturnsServerError(t *testing.T) {
	server := newMockHTTPServer()
	server.listenAndServeErr = errors.New("bind: address already in use")
	svc := NewHTTPServerService(server, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, server.listenAndServeErr) {
		t.Errorf("err = %v, want wrapped bind error", err)
	}
}

func TestServeGracefulShutdownOnCancel(t *testing.T) {
	server := newMockHTTPServer()
	server.listenAndServeBlock = true
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if server.shutdownCount.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", server.shutdownCount.Load())
	}
}

func TestServeShutdownErrorPropagates(t *testing.T) {
	server := newMockHTTPServer()
	server.listenAndServeBlock = true
	server.shutdownErr = errors.New("connections still active")
	svc := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err == nil || !errors.Is(err, server.shutdownErr) {
			t.Errorf("err = %v, want shutdown error", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return")
	}
}

func TestDefaultShutdownTimeout(t *testing.T) {
	svc := NewHTTPServerService(newMockHTTPServer(), 0)
	if svc.shutdownTimeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s default", svc.shutdownTimeout)
	}
	if svc.String() != "http-server" {
		t.Errorf("String() = %q", svc.String())
	}
}
