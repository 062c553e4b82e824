// module.go: C1 config & lifecycle — owns the store handle, registers
// callbacks and commands, and drives startup/teardown.
//
// Grounded on agilira-balios/hot-reload.go's watcher start/stop
// discipline and calvinalkan-agent-task/internal/store/index_sqlite.go's
// open-then-pragma-then-schema sequencing, generalized from "one
// watcher" to "one store plus one sweeper goroutine."
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dicelayer/spilltier/internal/store"
)

// lifecycleState values for Manager, per spec.md §3's store handle
// invariant: uninitialized → open → closed.
const (
	stateUninitialized int32 = iota
	stateOpen
	stateClosed
)

// Manager owns a spill tier's store handle, stats and sweeper, and is
// the thing a host registers its callbacks and commands against.
type Manager struct {
	cfg   Config
	host  Host
	store *store.Store
	stats Stats

	state     int32 // atomic, one of the state* constants
	sweeper   *sweeper
	closeOnce sync.Once
}

// Open parses/validates cfg, opens the embedded store, performs the
// startup reconciliation scan, registers callbacks and commands with
// host, and starts the periodic sweeper if enabled. On any failure it
// unwinds whatever it already acquired and returns a fatal-load error.
func Open(cfg Config, host Host) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Manager{cfg: cfg, host: host}

	st, err := store.Open(cfg.Path, store.Options{
		MaxMemoryBytes:  cfg.MaxMemory,
		VerifyChecksums: cfg.VerifyChecksums,
	})
	if err != nil {
		return nil, NewErrStoreOpenFailed(cfg.Path, err)
	}
	m.store = st

	atomic.StoreInt32(&m.state, stateOpen)

	if err := m.reconcileOnStartup(context.Background()); err != nil {
		cfg.Logger.Warn("startup reconciliation scan failed", "error", err)
	}

	if host != nil {
		host.Subscribe(EventPreEviction, m.onPreEviction)
		host.Subscribe(EventPreMiss, m.onPreMiss)

		if err := host.CreateCommand("restore", m.restoreCommand, 1, 1, 1); err != nil {
			_ = m.Close()
			return nil, err
		}
		if err := host.CreateCommand("cleanup", m.cleanupCommand, 0, 0, 0); err != nil {
			_ = m.Close()
			return nil, err
		}
		host.RegisterInfoFunc(m.infoHook)
	}

	m.sweeper = newSweeper(m, cfg.CleanupInterval)
	m.sweeper.start()

	return m, nil
}

// isOpen reports whether the store is in the open state; callbacks
// observing a non-open state no-op per spec.md invariant 5.
func (m *Manager) isOpen() bool {
	return atomic.LoadInt32(&m.state) == stateOpen
}

// reconcileOnStartup scans the store forward once, seeding
// num_keys_stored with the count of entries that are not logically
// expired, per spec.md §4.1's startup reconciliation.
func (m *Manager) reconcileOnStartup(ctx context.Context) error {
	it, err := m.store.NewIterator(ctx)
	if err != nil {
		return err
	}
	defer it.Close()

	now := m.cfg.TimeProvider.NowMillis()
	var live int64
	for it.Next() {
		expiryMs, _, ok := decodeEntry(it.Value())
		if !ok {
			continue
		}
		if isLive(expiryMs, now) {
			live++
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	m.stats.seedNumKeysStored(live)
	return nil
}

// Close signals the sweeper to stop, joins it, and closes the store.
// It is safe to call even if Open returned an error partway through
// (spec.md §4.1's "teardown must be safe even if init failed"), and
// safe to call more than once.
func (m *Manager) Close() error {
	var err error
	m.closeOnce.Do(func() {
		atomic.StoreInt32(&m.state, stateClosed)
		if m.sweeper != nil {
			m.sweeper.stop()
		}
		if m.store != nil {
			err = m.store.Close()
		}
	})
	return err
}

// Stats returns a snapshot of the manager's counters.
func (m *Manager) Stats() StatsSnapshot {
	return m.stats.Snapshot()
}

// Sweep runs one on-demand sweep synchronously, for hosts that embed
// the manager directly instead of going through the cleanup command
// (SPEC_FULL.md's supplemental export).
func (m *Manager) Sweep(ctx context.Context) (scanned, cleaned uint64, err error) {
	return m.sweepOnce(ctx)
}
