// config_test.go: unit tests for spill tier configuration
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import "testing"

func TestConfig_Validate_MissingPath(t *testing.T) {
	cfg := Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing path")
	}
	if !IsConfigError(err) {
		t.Errorf("expected a config error, got %v", err)
	}
	if GetErrorCode(err) != ErrCodeMissingPath {
		t.Errorf("expected %s, got %s", ErrCodeMissingPath, GetErrorCode(err))
	}
}

func TestConfig_Validate_DefaultsApplied(t *testing.T) {
	cfg := Config{Path: "/tmp/spill"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxMemory != DefaultMaxMemoryBytes {
		t.Errorf("expected default MaxMemory=%d, got %d", DefaultMaxMemoryBytes, cfg.MaxMemory)
	}
	if cfg.Logger == nil {
		t.Error("expected a default Logger")
	}
	if cfg.TimeProvider == nil {
		t.Error("expected a default TimeProvider")
	}
}

func TestConfig_Validate_MaxMemoryTooSmall(t *testing.T) {
	cfg := Config{Path: "/tmp/spill", MaxMemory: 1024}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for too-small max_memory")
	}
	if GetErrorCode(err) != ErrCodeMaxMemoryTooSmall {
		t.Errorf("expected %s, got %s", ErrCodeMaxMemoryTooSmall, GetErrorCode(err))
	}
}

func TestConfig_Validate_NegativeCleanupInterval(t *testing.T) {
	cfg := Config{Path: "/tmp/spill", CleanupInterval: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for negative cleanup_interval")
	}
	if GetErrorCode(err) != ErrCodeNegativeInterval {
		t.Errorf("expected %s, got %s", ErrCodeNegativeInterval, GetErrorCode(err))
	}
}

func TestConfig_Validate_ZeroCleanupIntervalAllowed(t *testing.T) {
	cfg := Config{Path: "/tmp/spill", CleanupInterval: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("cleanup_interval=0 should be valid (disables the sweeper): %v", err)
	}
	if cfg.CleanupInterval != 0 {
		t.Errorf("expected CleanupInterval to remain 0, got %d", cfg.CleanupInterval)
	}
}

func TestConfig_Validate_PreservesExplicitFields(t *testing.T) {
	cfg := Config{
		Path:            "/tmp/spill",
		MaxMemory:       64 << 20,
		CleanupInterval: 120,
		VerifyChecksums: true,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxMemory != 64<<20 {
		t.Errorf("MaxMemory overwritten: got %d", cfg.MaxMemory)
	}
	if cfg.CleanupInterval != 120 {
		t.Errorf("CleanupInterval overwritten: got %d", cfg.CleanupInterval)
	}
	if !cfg.VerifyChecksums {
		t.Error("VerifyChecksums overwritten")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Path != "" {
		t.Errorf("expected empty Path in DefaultConfig, got %q", cfg.Path)
	}
	if cfg.MaxMemory != DefaultMaxMemoryBytes {
		t.Errorf("expected MaxMemory=%d, got %d", DefaultMaxMemoryBytes, cfg.MaxMemory)
	}
	if cfg.CleanupInterval != DefaultCleanupIntervalSeconds {
		t.Errorf("expected CleanupInterval=%d, got %d", DefaultCleanupIntervalSeconds, cfg.CleanupInterval)
	}
}

func TestSystemTimeProvider(t *testing.T) {
	tp := &systemTimeProvider{}
	ms := tp.NowMillis()
	secs := tp.NowSeconds()
	if ms <= 0 {
		t.Errorf("expected positive NowMillis, got %d", ms)
	}
	if secs <= 0 {
		t.Errorf("expected positive NowSeconds, got %d", secs)
	}
	if ms/1000 < secs-1 || ms/1000 > secs+1 {
		t.Errorf("NowMillis and NowSeconds disagree: %d ms vs %d s", ms, secs)
	}
}
