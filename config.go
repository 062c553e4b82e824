// config.go: configuration for the spill tier
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import (
	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for a spill tier Manager.
//
// Config is parsed once at load (see ParseLoadArgs); Path is owned for
// the lifetime of the process once Open succeeds.
type Config struct {
	// Path is the filesystem directory for the embedded store. Required.
	Path string

	// MaxMemory is the store's RAM budget in bytes. Must be at least
	// MinMaxMemoryBytes. Default: DefaultMaxMemoryBytes.
	MaxMemory int64

	// CleanupInterval is the sweeper period in seconds. Zero disables
	// the periodic sweeper (on-demand cleanup still works). Negative is
	// a configuration error. Default: DefaultCleanupIntervalSeconds.
	CleanupInterval int64

	// VerifyChecksums, if true, opens the store with PRAGMA
	// synchronous = FULL (fsync-durable writes) instead of OFF. No
	// checksum is verified on the restore path either way. Default:
	// false.
	VerifyChecksums bool

	// Logger is used for callback-path diagnostics that must never
	// raise. If nil, NoOpLogger is used.
	Logger Logger

	// TimeProvider supplies now_ms()/now_seconds() to the encoder,
	// decoder, sweeper and stats. If nil, a go-timecache-backed
	// implementation is used.
	TimeProvider TimeProvider
}

// Validate applies defaults and rejects invalid configuration. It
// returns a *ConfigError (see errors.go) describing the first problem
// found, or nil.
func (c *Config) Validate() error {
	if c.Path == "" {
		return NewErrMissingPath()
	}

	if c.MaxMemory == 0 {
		c.MaxMemory = DefaultMaxMemoryBytes
	} else if c.MaxMemory < MinMaxMemoryBytes {
		return NewErrMaxMemoryTooSmall(c.MaxMemory)
	}

	if c.CleanupInterval < 0 {
		return NewErrNegativeCleanupInterval(c.CleanupInterval)
	}
	// CleanupInterval == 0 is left as-is: it explicitly disables the
	// periodic sweeper. Callers who want the package default go through
	// DefaultConfig or ParseLoadArgs, not Validate.

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults and no
// Path set (Path has no sensible default and must be supplied).
func DefaultConfig() Config {
	return Config{
		MaxMemory:       DefaultMaxMemoryBytes,
		CleanupInterval: DefaultCleanupIntervalSeconds,
		Logger:          NoOpLogger{},
		TimeProvider:    &systemTimeProvider{},
	}
}

// systemTimeProvider is the default time provider, backed by
// go-timecache for fast, low-allocation time access on the hot path.
type systemTimeProvider struct{}

func (t *systemTimeProvider) NowMillis() int64 {
	return timecache.CachedTimeNano() / 1_000_000
}

func (t *systemTimeProvider) NowSeconds() int64 {
	return timecache.CachedTimeNano() / 1_000_000_000
}
