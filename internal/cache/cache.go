// Wagarakan - Kimono Pattern Recommendation and Gallery
// Copyright 2026 Hisame Dev (hisame-dev)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hisame-dev/wagarakan

// Package cache provides a small thread-safe in-memory TTL cache used to
// short-circuit repeated recommendation queries between catalog mutations.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/hisame-dev/wagarakan/internal/metrics"
)

const cleanupInterval = 5 * time.Minute

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is an in-memory key/value store where every entry expires after the
// configured TTL. Expired entries are dropped lazily on Get and swept by a
// background loop.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache whose entries live for ttl. The background sweep
// goroutine runs until Close is called.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Get returns the cached value for key, or (nil, false) when absent or
// expired. An expired entry is removed on the spot.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return e.data, true
}

// Set stores value under key with the cache-wide TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{data: value, expiresAt: time.Now().Add(c.ttl)}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// Clear drops every entry. Called after any catalog mutation so stale
// recommendations never outlive the data they were scored against.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	metrics.CacheEntries.Set(0)
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the background sweep loop. Safe to call more than once.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	metrics.CacheEntries.Set(float64(len(c.entries)))
	c.mu.Unlock()
}

// Key builds a stable cache key from a method name and its parameters. The
// parameters are serialized and hashed so structurally equal queries map to
// the same key.
func Key(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, sum[:16])
}
