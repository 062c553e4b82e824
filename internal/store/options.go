// options.go: LSM tuning surface mapped onto SQLite pragmas
//
// spec.md §4.1 describes an LSM-tree's tuning knobs (block cache,
// write buffers, compression, bloom filter bits, mmap, compaction
// threads, target file size, dynamic level bytes, block-based table
// options). SQLite has no native LSM levels, so the knobs that have no
// direct pragma analogue are approximated; see SPEC_FULL.md's DOMAIN
// STACK section for the full mapping rationale and
// calvinalkan-agent-task/internal/store/index_sqlite.go for the
// pragma-application pattern this follows.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Options configures a Store's resource budget and durability/latency
// tradeoffs.
type Options struct {
	// MaxMemoryBytes is the total RAM budget handed to the store.
	MaxMemoryBytes int64

	// VerifyChecksums selects PRAGMA synchronous = FULL instead of OFF
	// (SPEC_FULL.md's VerifyChecksums knob). Reads are not checksum-
	// verified either way. Default false.
	VerifyChecksums bool

	// EstimatedKeys sizes the bloom filter's bit array. Default
	// defaultEstimatedKeys.
	EstimatedKeys int

	// BloomBitsPerKey is the bloom filter's bits-per-key budget.
	// Default 10, matching spec.md's "10-bit/key bloom filter."
	BloomBitsPerKey int
}

const (
	defaultEstimatedKeys  = 100_000
	defaultBloomBitsPerKey = 10

	// store is intentionally decoupled from the parent spilltier
	// package so it stays usable standalone; these tuning constants
	// live here rather than being threaded through Options.
	storeBlockCacheBytes int64 = 8 << 20
	writeBufferNumerator        = 2
	writeBufferDenominator      = 3
)

func (o Options) withDefaults() Options {
	if o.EstimatedKeys <= 0 {
		o.EstimatedKeys = defaultEstimatedKeys
	}
	if o.BloomBitsPerKey <= 0 {
		o.BloomBitsPerKey = defaultBloomBitsPerKey
	}
	return o
}

// applyPragmas maps Options onto the pragmas described in
// SPEC_FULL.md's DOMAIN STACK section.
func applyPragmas(ctx context.Context, db *sql.DB, opts Options) error {
	cacheBudget := storeBlockCacheBytes
	writeBufferBudget := int64(0)
	if opts.MaxMemoryBytes > storeBlockCacheBytes {
		remaining := opts.MaxMemoryBytes - storeBlockCacheBytes
		writeBufferBudget = remaining * writeBufferNumerator / writeBufferDenominator
	}

	// PRAGMA cache_size takes a negative number of KiB, or a positive
	// number of pages; negative better matches "a byte budget."
	cacheKiB := -(cacheBudget / 1024)

	statements := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA mmap_size = 0", // mmap I/O off, per spec.md §4.1
		fmt.Sprintf("PRAGMA cache_size = %d", cacheKiB),
		"PRAGMA temp_store = MEMORY",
	}

	if opts.VerifyChecksums {
		// Closest SQLite analogue to "verify checksums on read":
		// fsync-durable writes so a crash can't leave a torn page that
		// silently validates.
		statements = append(statements, "PRAGMA synchronous = FULL")
	} else {
		statements = append(statements, "PRAGMA synchronous = OFF")
	}

	if writeBufferBudget > 0 {
		// wal_autocheckpoint is counted in pages (default page size
		// 4096 bytes); convert the byte budget accordingly so a larger
		// write-buffer share checkpoints less often, trading durability
		// latency for write throughput the way larger LSM memtables do.
		pages := writeBufferBudget / 4096
		if pages < 1 {
			pages = 1
		}
		statements = append(statements, fmt.Sprintf("PRAGMA wal_autocheckpoint = %d", pages))
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply pragma %q: %w", stmt, err)
		}
	}
	return nil
}
