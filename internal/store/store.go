// store.go: the embedded ordered key-value store
//
// Treated by the rest of spilltier as an opaque collaborator (spec.md
// §1, §6.2): point get/put/delete and forward iteration over ordered
// byte-string keys, backed by SQLite. Pragma sequencing is grounded on
// calvinalkan-agent-task/internal/store/index_sqlite.go.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // embedded store driver
)

// ErrNotFound is returned by Get when key has no entry.
var ErrNotFound = errors.New("store: key not found")

// Store is an ordered byte-string key-value store with point
// get/put/delete and forward iteration, backed by a single SQLite
// table. Its own WAL provides the crash safety spec.md asks the
// embedded store to supply; Store adds no locking of its own around
// operations (spec.md §5's "the module does not add locks around
// operations").
type Store struct {
	db     *sql.DB
	opts   Options
	filter *bloomFilter
}

// Open opens (creating if missing) the store rooted at dir with the
// given tuning options.
func Open(dir string, opts Options) (*Store, error) {
	opts = opts.withDefaults()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	path := dbPath(dir)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if err := applyPragmas(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := createSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:     db,
		opts:   opts,
		filter: newBloomFilter(opts.EstimatedKeys, opts.BloomBitsPerKey),
	}

	if err := s.primeFilter(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS entries (
		key   BLOB PRIMARY KEY,
		value BLOB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// primeFilter loads every existing key into the bloom filter so a
// process restart doesn't reopen the store with a cold (and therefore
// falsely-never-present) filter.
func (s *Store) primeFilter(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM entries`)
	if err != nil {
		return fmt.Errorf("prime filter: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key []byte
		if err := rows.Scan(&key); err != nil {
			return fmt.Errorf("prime filter scan: %w", err)
		}
		s.filter.add(key)
	}
	return rows.Err()
}

// Get returns the stored value for key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	if !s.filter.mightContain(key) {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE key = ?`, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get: %w", err)
	}
	return value, nil
}

// Put writes value under key, overwriting any prior entry. existed
// reports whether key already had an entry (used by callers to decide
// whether num_keys_stored should be incremented).
func (s *Store) Put(ctx context.Context, key, value []byte) (existed bool, err error) {
	existed = s.filter.mightContain(key)
	if existed {
		// The filter can false-positive; confirm with a real lookup so
		// counters stay accurate (spec.md invariant 3: no increment on
		// overwrite).
		_, err := s.Get(ctx, key)
		existed = err == nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries(key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return existed, fmt.Errorf("put: %w", err)
	}
	s.filter.add(key)
	return existed, nil
}

// Delete removes key's entry, if present. Deleting an absent key is
// not an error.
func (s *Store) Delete(ctx context.Context, key []byte) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Close releases the store's resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// dbPath returns the on-disk database file path for dir.
func dbPath(dir string) string {
	return filepath.Join(dir, "spill.sqlite")
}
