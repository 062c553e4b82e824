// cache.go: a minimal in-memory host cache for exercising the spill tier
//
// Adapted from agilira-balios/cache.go and config.go: a cut-down Config
// shape (MaxSize, Logger, OnEvict, plus an OnMiss hook) and a plain
// hit/miss/eviction Stats accessor survive. The teacher's
// lock-free SeqLock entry storage and W-TinyLFU frequency sketch do
// not — see DESIGN.md for why. This cache is a plain mutex-protected
// map with capacity-triggered, oldest-first eviction; its only job is
// to fire OnEvict (the spec's pre-eviction edge) and OnMiss (the
// spec's pre-miss edge) at the right moments.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package hostkit

import (
	"sync"
	"time"
)

// Logger is the minimal logging surface Cache uses.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...interface{}) {}
func (NoOpLogger) Info(string, ...interface{})  {}
func (NoOpLogger) Warn(string, ...interface{})  {}
func (NoOpLogger) Error(string, ...interface{}) {}

// Config configures a Cache.
type Config struct {
	// MaxSize is the maximum number of live entries before Set starts
	// evicting. Must be > 0. Default: DefaultMaxSize.
	MaxSize int

	// Logger receives diagnostics. Default: NoOpLogger.
	Logger Logger

	// OnEvict fires when Set makes room by evicting the oldest entry,
	// whether or not its TTL has already passed (spec.md's pre-eviction
	// edge). Must be fast and non-blocking.
	OnEvict func(key string)

	// OnMiss fires when Get targets a key absent from RAM, before Get
	// returns its not-found result (spec.md's pre-miss edge). Must be
	// fast and non-blocking.
	OnMiss func(key string)
}

// DefaultMaxSize is applied when Config.MaxSize is unset.
const DefaultMaxSize = 10_000

type entry struct {
	value    interface{}
	expireAt time.Time // zero means no expiry
	seq      uint64     // insertion order, for oldest-first eviction
}

// Cache is a small mutex-protected in-memory cache standing in for the
// host server spec.md treats as an external collaborator.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
	cfg     Config

	hits, misses, evictions uint64
}

// New creates a Cache with the given configuration.
func New(cfg Config) *Cache {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Logger == nil {
		cfg.Logger = NoOpLogger{}
	}
	return &Cache{
		entries: make(map[string]*entry, cfg.MaxSize),
		cfg:     cfg,
	}
}

// Get returns the value stored for key. If key is absent, OnMiss fires
// (if set) before Get returns found=false, giving a spill tier the
// chance to rehydrate it first.
func (c *Cache) Get(key string) (value interface{}, found bool) {
	c.mu.Lock()
	e, ok := c.liveEntryLocked(key)
	if ok {
		c.hits++
		value = e.value
		c.mu.Unlock()
		return value, true
	}
	c.misses++
	c.mu.Unlock()

	if c.cfg.OnMiss != nil {
		c.cfg.OnMiss(key)
	}

	// Give a rehydrating spill tier one more look without recursing
	// into OnMiss again.
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok = c.liveEntryLocked(key)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// liveEntryLocked returns the non-expired entry for key, deleting it
// first if it has expired. Caller must hold c.mu.
func (c *Cache) liveEntryLocked(key string) (*entry, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expireAt.IsZero() && !time.Now().Before(e.expireAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e, true
}

// Set stores value under key with the given TTL (0 meaning no expiry),
// evicting the oldest live entry first if the cache is at capacity.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cfg.MaxSize {
		c.evictOldestLocked()
	}

	c.seq++
	e := &entry{value: value, seq: c.seq}
	if ttl > 0 {
		e.expireAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
}

// evictOldestLocked evicts the entry with the smallest seq and fires
// OnEvict for it. Caller must hold c.mu; OnEvict is invoked without the
// lock held to avoid a callback re-entering the cache under lock.
func (c *Cache) evictOldestLocked() {
	var victim string
	var oldest uint64
	first := true
	for k, e := range c.entries {
		if first || e.seq < oldest {
			victim = k
			oldest = e.seq
			first = false
		}
	}
	if first {
		return
	}

	// Fire OnEvict while victim is still present, so a spill tier's
	// pre-eviction handler can still read it from the host (spec.md:
	// the callback fires "just before a key is removed from RAM").
	if c.cfg.OnEvict != nil {
		c.mu.Unlock()
		c.cfg.OnEvict(victim)
		c.mu.Lock()
	}

	delete(c.entries, victim)
	c.evictions++
}

// Delete removes key, if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// PTTL returns key's remaining time-to-live in milliseconds: >0 a
// finite TTL, -1 no expiry, -2 key not present. Mirrors
// spilltier.ExpiryNone / spilltier.ExpiryAbsent without importing the
// parent package (hostkit must stay host-agnostic).
func (c *Cache) PTTL(key string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.liveEntryLocked(key)
	if !ok {
		return -2
	}
	if e.expireAt.IsZero() {
		return -1
	}
	remaining := time.Until(e.expireAt).Milliseconds()
	if remaining <= 0 {
		return -2
	}
	return remaining
}

// Stats reports simple hit/miss/eviction counters for tests.
type Stats struct {
	Hits, Misses, Evictions uint64
	Size                    int
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Evictions: c.evictions, Size: len(c.entries)}
}
