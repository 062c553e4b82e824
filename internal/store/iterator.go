// iterator.go: forward iteration over the store, ordered by key
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Iterator walks every entry in key order. It holds a single open
// cursor; Close must be called once the caller is done (or has
// errored out) to release the underlying rows.
type Iterator struct {
	rows *sql.Rows
	key  []byte
	val  []byte
	err  error
}

// NewIterator opens a forward iterator positioned before the first
// entry; call Next to advance to it.
func (s *Store) NewIterator(ctx context.Context) (*Iterator, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM entries ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("new iterator: %w", err)
	}
	return &Iterator{rows: rows}, nil
}

// Next advances to the next entry, returning false at end-of-store or
// on error (check Err to distinguish).
func (it *Iterator) Next() bool {
	if !it.rows.Next() {
		return false
	}
	if err := it.rows.Scan(&it.key, &it.val); err != nil {
		it.err = err
		return false
	}
	return true
}

// Key returns the current entry's key. Valid only after Next returns true.
func (it *Iterator) Key() []byte { return it.key }

// Value returns the current entry's value. Valid only after Next returns true.
func (it *Iterator) Value() []byte { return it.val }

// Err returns any error encountered during iteration.
func (it *Iterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

// Close releases the iterator's cursor.
func (it *Iterator) Close() error {
	return it.rows.Close()
}
