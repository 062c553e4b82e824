// sweeper.go: C4 background sweeper — periodically deletes logically
// expired entries the pre-miss path never touches
//
// Grounded on Krishna8167-tempuscache/janitor.go's ticker + stopChan
// lifecycle (interval<=0 disables the goroutine entirely; Stop closes
// stopChan rather than sending on it), generalized from an in-memory
// LRU scan to a forward iteration over the embedded store.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import (
	"context"
	"strconv"
	"time"
)

// sweeper runs sweepOnce on a fixed interval until stopped.
type sweeper struct {
	m        *Manager
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

// newSweeper builds a sweeper for m. An intervalSeconds of 0 disables
// the periodic sweep goroutine; the cleanup command and Sweep still
// run sweeps on demand, and restores still delete expired entries.
func newSweeper(m *Manager, intervalSeconds int64) *sweeper {
	return &sweeper{
		m:        m,
		interval: time.Duration(intervalSeconds) * time.Second,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// start launches the sweeper goroutine, if enabled.
func (s *sweeper) start() {
	if s.interval <= 0 {
		close(s.doneChan)
		return
	}

	ticker := time.NewTicker(s.interval)
	go func() {
		defer close(s.doneChan)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, _, err := s.m.sweepOnce(context.Background()); err != nil {
					s.m.cfg.Logger.Warn("spill: sweep failed", "error", err)
				}
			case <-s.stopChan:
				return
			}
		}
	}()
}

// stop signals the sweeper goroutine to exit and waits for it.
func (s *sweeper) stop() {
	close(s.stopChan)
	<-s.doneChan
}

// sweepOnce walks the store once, deleting every entry whose expiry
// has passed (spec.md §4.4's active-expiration pass). scanned counts
// every entry visited; cleaned counts entries deleted.
func (m *Manager) sweepOnce(ctx context.Context) (scanned, cleaned uint64, err error) {
	if !m.isOpen() {
		return 0, 0, NewErrStoreNotOpen()
	}

	it, err := m.store.NewIterator(ctx)
	if err != nil {
		return 0, 0, NewErrStoreIOFailed("iterate", "", err)
	}
	defer it.Close()

	now := m.cfg.TimeProvider.NowMillis()

	// Collect expired keys first: deleting while a SQLite query is
	// still iterating its result set is unsafe with this driver.
	var expired [][]byte
	for it.Next() {
		scanned++
		expiryMs, _, ok := decodeEntry(it.Value())
		if !ok {
			continue
		}
		if !isLive(expiryMs, now) {
			key := make([]byte, len(it.Key()))
			copy(key, it.Key())
			expired = append(expired, key)
		}
	}
	if err := it.Err(); err != nil {
		return scanned, 0, NewErrStoreIOFailed("iterate", "", err)
	}

	for _, key := range expired {
		if delErr := m.store.Delete(ctx, key); delErr != nil {
			m.cfg.Logger.Warn("spill: sweep delete failed", "key", string(key), "error", delErr)
			continue
		}
		cleaned++
	}

	m.stats.recordSweep(cleaned, m.cfg.TimeProvider.NowSeconds())
	return scanned, cleaned, nil
}

// cleanupCommand implements the explicit "cleanup" command (spec.md
// §4.4/§6.3), running one sweep synchronously and reporting both the
// scanned and cleaned counts as a four-element array:
// ["num_keys_scanned", scanned, "num_keys_cleaned", cleaned].
func (m *Manager) cleanupCommand(ctx context.Context, args []string) Reply {
	scanned, cleaned, err := m.sweepOnce(ctx)
	if err != nil {
		return ErrReply(err)
	}
	return ArrayReply(
		"num_keys_scanned", strconv.FormatUint(scanned, 10),
		"num_keys_cleaned", strconv.FormatUint(cleaned, 10),
	)
}
