// Package spilltier implements a spill tier plugin for an in-memory
// key-value cache: it intercepts a host's pre-eviction and pre-miss
// callbacks, persists evicted values to an embedded on-disk store with
// an expiry header, and restores them transparently on a later miss.
//
// # Overview
//
// A host cache runs with a hard RAM budget and evicts keys under
// memory pressure or TTL expiry. Without a spill tier, an evicted key
// is gone for good even if it is requested again moments later. This
// package plugs into two host lifecycle edges:
//
//   - pre-eviction: just before the host drops a key from RAM, the
//     spill tier serializes its value and writes it to the embedded
//     store alongside its remaining TTL.
//   - pre-miss: just before the host finalizes a "key not found" reply,
//     the spill tier checks the embedded store and, if the key is
//     there and not expired, rehydrates it back into the host's RAM.
//
// A background sweeper also walks the store on a configurable
// interval, deleting entries whose TTL has passed even if they are
// never looked up again.
//
// # Quick start
//
//	cfg := spilltier.Config{
//	    Path:            "/var/lib/myapp/spill",
//	    MaxMemory:       256 << 20,
//	    CleanupInterval: 300,
//	}
//
//	m, err := spilltier.Open(cfg, host)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	stats := m.Stats()
//	fmt.Printf("keys stored: %d\n", stats.NumKeysStored)
//
// host must implement the Host interface: it is the hook surface this
// package expects a server to expose (Subscribe, CreateCommand,
// RegisterInfoFunc, Serialize, Materialize, PTTL). internal/hostkit
// ships a small reference implementation good enough to exercise the
// whole package in tests without a real server.
//
// # Commands
//
// Open registers two commands against host, per the host's own
// command-dispatch conventions:
//
//   - restore <key>: forces an on-demand restore of key from the
//     embedded store, replying OK, null (not spilled), or an error.
//   - cleanup: runs one sweep synchronously, replying with a
//     four-element array: ["num_keys_scanned", scanned,
//     "num_keys_cleaned", cleaned].
//
// # Errors
//
// All errors returned by this package carry a structured ErrorCode
// (see errors.go) via github.com/agilira/go-errors; callback paths
// (pre-eviction, pre-miss, the sweeper) never propagate errors to the
// host — they log through Config.Logger and fall through as no-ops,
// per the "a spill tier must never make the cache less available"
// policy.
package spilltier
