// Command spilltierd is a small demo host that wires internal/hostkit
// up to the spill tier so its behavior can be driven end to end from a
// terminal: SET/GET a handful of keys, evict under a tiny cache size,
// and watch values come back from the embedded store on the next GET.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dicelayer/spilltier"
	"github.com/dicelayer/spilltier/internal/hostkit"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "spilltierd:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loadArgs := []string{"path", defaultSpillDir(), "cleanup-interval", "5"}
	if len(args) > 0 {
		loadArgs = args
	}

	cfg, err := spilltier.ParseLoadArgs(loadArgs)
	if err != nil {
		return fmt.Errorf("parse load args: %w", err)
	}

	host := hostkit.NewHost(4) // tiny capacity so Set quickly triggers eviction
	m, err := spilltier.Open(cfg, host)
	if err != nil {
		return fmt.Errorf("open spill tier: %w", err)
	}
	defer m.Close()

	ctx := context.Background()
	cache := host.Cache()

	fmt.Println("filling the host cache past capacity...")
	for i := 0; i < 8; i++ {
		key := fmt.Sprintf("session:%d", i)
		cache.Set(key, fmt.Sprintf("payload-%d", i), 0)
		fmt.Printf("  set %s\n", key)
	}

	// Give the pre-eviction callback, which runs synchronously inside
	// Set, time to finish writing to the store.
	time.Sleep(10 * time.Millisecond)

	fmt.Println("reading an evicted key back (triggers pre-miss restore)...")
	if value, found := cache.Get("session:0"); found {
		fmt.Printf("  session:0 restored: %v\n", value)
	} else {
		fmt.Println("  session:0 still missing")
	}

	fmt.Println("running an on-demand cleanup via the registered command...")
	reply, err := host.Dispatch(ctx, "cleanup", nil)
	if err != nil {
		return fmt.Errorf("dispatch cleanup: %w", err)
	}
	if reply.Err != nil {
		return fmt.Errorf("cleanup command: %w", reply.Err)
	}
	fmt.Printf("  cleaned: %v\n", reply.Array)

	snap := m.Stats()
	fmt.Printf("stats: keys_stored=%d written=%d restored=%d cleaned=%d\n",
		snap.NumKeysStored, snap.TotalKeysWritten, snap.TotalKeysRestored, snap.TotalKeysCleaned)

	return nil
}

func defaultSpillDir() string {
	dir, err := os.MkdirTemp("", "spilltierd-")
	if err != nil {
		return "./spilltierd-data"
	}
	return dir
}
