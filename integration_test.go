// integration_test.go: end-to-end coverage driving the spill tier
// through internal/hostkit's reference host, the way a real server
// would.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier_test

import (
	"context"
	"testing"
	"time"

	"github.com/dicelayer/spilltier"
	"github.com/dicelayer/spilltier/internal/hostkit"
)

func TestEndToEnd_EvictThenRestoreOnMiss(t *testing.T) {
	host := hostkit.NewHost(2) // tiny so a 3rd Set evicts the oldest

	m, err := spilltier.Open(spilltier.Config{
		Path:            t.TempDir(),
		CleanupInterval: 0,
	}, host)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	cache := host.Cache()
	cache.Set("a", "value-a", 0)
	cache.Set("b", "value-b", 0)
	cache.Set("c", "value-c", 0) // evicts "a"

	if _, found := cache.Get("a"); found {
		t.Fatal("expected a to have been evicted from RAM")
	}

	// The eviction's pre-eviction callback ran synchronously inside the
	// Set call above, so the spilled entry should already be on disk;
	// the immediately following Get's pre-miss callback restores it.
	value, found := cache.Get("a")
	if !found {
		t.Fatal("expected a to be restored from the spill tier on miss")
	}
	if value != "value-a" {
		t.Errorf("expected restored value %q, got %q", "value-a", value)
	}

	snap := m.Stats()
	if snap.TotalKeysWritten == 0 {
		t.Error("expected at least one key written to the store")
	}
	if snap.TotalKeysRestored == 0 {
		t.Error("expected at least one key restored from the store")
	}
}

func TestEndToEnd_ExpiredEntryNotRestored(t *testing.T) {
	host := hostkit.NewHost(1)

	m, err := spilltier.Open(spilltier.Config{
		Path:            t.TempDir(),
		CleanupInterval: 0,
	}, host)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	cache := host.Cache()
	cache.Set("short-lived", "v1", 5*time.Millisecond)
	cache.Set("other", "v2", 0) // evicts short-lived, spilling it with its TTL

	time.Sleep(20 * time.Millisecond) // outlive the TTL

	if _, found := cache.Get("short-lived"); found {
		t.Error("expected an expired spilled entry not to be restored")
	}
}

func TestEndToEnd_RestoreCommand(t *testing.T) {
	host := hostkit.NewHost(1)

	m, err := spilltier.Open(spilltier.Config{
		Path:            t.TempDir(),
		CleanupInterval: 0,
	}, host)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	cache := host.Cache()
	cache.Set("x", "v1", 0)
	cache.Set("y", "v2", 0) // evicts x

	reply, err := host.Dispatch(context.Background(), "restore", []string{"x"})
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if !reply.OK {
		t.Fatalf("expected OK reply, got %+v", reply)
	}

	if _, found := cache.Get("x"); !found {
		t.Error("expected x to be back in the host cache after an explicit restore")
	}
}

func TestEndToEnd_InfoReportsStats(t *testing.T) {
	host := hostkit.NewHost(1)

	m, err := spilltier.Open(spilltier.Config{
		Path:            t.TempDir(),
		CleanupInterval: 0,
	}, host)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	cache := host.Cache()
	cache.Set("x", "v1", 0)
	cache.Set("y", "v2", 0)

	info := host.Info()
	if info.Stats["total_keys_written"] == "" {
		t.Error("expected total_keys_written in the stats section")
	}
	if info.Config["path"] == "" {
		t.Error("expected path in the config section")
	}
}

func TestEndToEnd_SweepViaCleanupCommand(t *testing.T) {
	host := hostkit.NewHost(1)

	m, err := spilltier.Open(spilltier.Config{
		Path:            t.TempDir(),
		CleanupInterval: 0,
	}, host)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer m.Close()

	cache := host.Cache()
	cache.Set("short-lived", "v1", 5*time.Millisecond)
	cache.Set("other", "v2", 0) // evicts short-lived

	time.Sleep(20 * time.Millisecond)

	reply, err := host.Dispatch(context.Background(), "cleanup", nil)
	if err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	if reply.Err != nil {
		t.Fatalf("cleanup command failed: %v", reply.Err)
	}
	want := []string{"num_keys_scanned", "1", "num_keys_cleaned", "1"}
	if len(reply.Array) != len(want) {
		t.Fatalf("expected a 4-element reply array, got %v", reply.Array)
	}
	for i, w := range want {
		if reply.Array[i] != w {
			t.Errorf("reply.Array[%d]: got %q, want %q", i, reply.Array[i], w)
		}
	}
}
