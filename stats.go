// stats.go: atomic counters and introspection for the spill tier
//
// Grounded on agilira-balios/cache.go's atomic counter fields (hits,
// misses, sets, deletes, evictions) and its Stats() accessor shape,
// generalized to the counter set spec.md §3 names for a spill tier.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import "sync/atomic"

// Stats holds process-wide counters for a Manager. All fields are
// mutated with atomic adds or stores and read with atomic loads, so
// the info hook never contends with the encoder, decoder or sweeper
// (spec.md §4.5, §5).
type Stats struct {
	numKeysStored       int64
	totalKeysWritten     uint64
	totalKeysRestored    uint64
	totalKeysCleaned     uint64
	lastNumKeysCleaned   uint64
	lastCleanupAtSeconds int64
	totalBytesWritten    uint64
	totalBytesRead       uint64
	totalHostCallErrors  uint64
}

// StatsSnapshot is a point-in-time, non-atomic copy of Stats for
// reporting (info hook, tests).
type StatsSnapshot struct {
	NumKeysStored      int64
	TotalKeysWritten   uint64
	TotalKeysRestored  uint64
	TotalKeysCleaned   uint64
	LastNumKeysCleaned uint64
	LastCleanupAt      int64
	TotalBytesWritten  uint64
	TotalBytesRead     uint64
	TotalHostCallErrors uint64
}

// Snapshot returns a consistent-enough copy of the counters. Individual
// fields may be observed at slightly different instants under
// concurrent writers; spec.md invariant 3 only requires eventual
// consistency.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		NumKeysStored:       atomic.LoadInt64(&s.numKeysStored),
		TotalKeysWritten:    atomic.LoadUint64(&s.totalKeysWritten),
		TotalKeysRestored:   atomic.LoadUint64(&s.totalKeysRestored),
		TotalKeysCleaned:    atomic.LoadUint64(&s.totalKeysCleaned),
		LastNumKeysCleaned:  atomic.LoadUint64(&s.lastNumKeysCleaned),
		LastCleanupAt:       atomic.LoadInt64(&s.lastCleanupAtSeconds),
		TotalBytesWritten:   atomic.LoadUint64(&s.totalBytesWritten),
		TotalBytesRead:      atomic.LoadUint64(&s.totalBytesRead),
		TotalHostCallErrors: atomic.LoadUint64(&s.totalHostCallErrors),
	}
}

func (s *Stats) recordWrite(isNewKey bool, bytesWritten int) {
	atomic.AddUint64(&s.totalKeysWritten, 1)
	atomic.AddUint64(&s.totalBytesWritten, uint64(bytesWritten))
	if isNewKey {
		atomic.AddInt64(&s.numKeysStored, 1)
	}
}

func (s *Stats) recordRestore(bytesRead int) {
	atomic.AddUint64(&s.totalKeysRestored, 1)
	atomic.AddUint64(&s.totalBytesRead, uint64(bytesRead))
	atomic.AddInt64(&s.numKeysStored, -1)
}

func (s *Stats) recordExpiredDelete() {
	atomic.AddInt64(&s.numKeysStored, -1)
}

func (s *Stats) recordSweep(cleaned uint64, nowSeconds int64) {
	if cleaned > 0 {
		atomic.AddUint64(&s.totalKeysCleaned, cleaned)
		atomic.AddInt64(&s.numKeysStored, -int64(cleaned))
	}
	atomic.StoreUint64(&s.lastNumKeysCleaned, cleaned)
	atomic.StoreInt64(&s.lastCleanupAtSeconds, nowSeconds)
}

func (s *Stats) recordHostCallError() {
	atomic.AddUint64(&s.totalHostCallErrors, 1)
}

func (s *Stats) seedNumKeysStored(count int64) {
	atomic.StoreInt64(&s.numKeysStored, count)
}
