// argload_test.go: tests for flat load-argument parsing
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import "testing"

func TestParseLoadArgs_Defaults(t *testing.T) {
	cfg, err := ParseLoadArgs([]string{"path", "/var/lib/spill"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != "/var/lib/spill" {
		t.Errorf("expected path to be set, got %q", cfg.Path)
	}
	if cfg.MaxMemory != DefaultMaxMemoryBytes {
		t.Errorf("expected default MaxMemory, got %d", cfg.MaxMemory)
	}
	if cfg.CleanupInterval != DefaultCleanupIntervalSeconds {
		t.Errorf("expected default CleanupInterval, got %d", cfg.CleanupInterval)
	}
}

func TestParseLoadArgs_AllFields(t *testing.T) {
	cfg, err := ParseLoadArgs([]string{
		"path", "/var/lib/spill",
		"max-memory", "67108864",
		"cleanup-interval", "60",
		"verify-checksums", "true",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Path != "/var/lib/spill" {
		t.Errorf("path: got %q", cfg.Path)
	}
	if cfg.MaxMemory != 67108864 {
		t.Errorf("max-memory: got %d", cfg.MaxMemory)
	}
	if cfg.CleanupInterval != 60 {
		t.Errorf("cleanup-interval: got %d", cfg.CleanupInterval)
	}
	if !cfg.VerifyChecksums {
		t.Error("expected verify-checksums=true")
	}
}

func TestParseLoadArgs_UnknownKeyIgnored(t *testing.T) {
	cfg, err := ParseLoadArgs([]string{"path", "/var/lib/spill", "bogus-key", "value"})
	if err != nil {
		t.Fatalf("unexpected error: unknown keys must be ignored, got %v", err)
	}
	if cfg.Path != "/var/lib/spill" {
		t.Errorf("expected recognized keys to still apply, got path %q", cfg.Path)
	}
}

func TestParseLoadArgs_UnderscoreAliases(t *testing.T) {
	cfg, err := ParseLoadArgs([]string{
		"path", "/var/lib/spill",
		"max_memory", "67108864",
		"cleanup_interval", "60",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxMemory != 67108864 {
		t.Errorf("max_memory alias: got %d", cfg.MaxMemory)
	}
	if cfg.CleanupInterval != 60 {
		t.Errorf("cleanup_interval alias: got %d", cfg.CleanupInterval)
	}
}

func TestParseLoadArgs_OddLength(t *testing.T) {
	_, err := ParseLoadArgs([]string{"path"})
	if err == nil {
		t.Fatal("expected an error for an odd-length argument list")
	}
}
