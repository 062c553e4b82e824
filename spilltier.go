// spilltier.go: package-wide constants — version, size defaults, and
// the wire-format sentinels shared by entry.go, config.go and the rest
// of package spilltier (internal/store defines its own constants).
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

const (
	// Version of the spilltier module.
	Version = "v0.1.0-dev"

	// DefaultMaxMemoryBytes is the default store RAM budget (256 MiB).
	DefaultMaxMemoryBytes int64 = 256 << 20

	// MinMaxMemoryBytes is the smallest accepted RAM budget (20 MiB).
	MinMaxMemoryBytes int64 = 20 << 20

	// DefaultCleanupIntervalSeconds is the default sweeper period.
	DefaultCleanupIntervalSeconds int64 = 300
)

// headerSize is the width in bytes of the expiry_ms prefix stored ahead
// of every payload.
const headerSize = 8

// Sentinel expiry values carried verbatim from the host's TTL probe.
const (
	// ExpiryNone means the key has no expiration.
	ExpiryNone int64 = -1
	// ExpiryAbsent means the host reported the key as absent when probed.
	ExpiryAbsent int64 = -2
)
