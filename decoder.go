// decoder.go: C3 restore decoder — shared by the pre-miss callback and
// the explicit restore command
//
// Grounded on agilira-balios/loading.go's GetOrLoad: same shape (check
// presence, try to produce a value, rehydrate on success, leave state
// untouched on failure), adapted from "call a loader function" to
// "decode a spilled entry and ask the host to materialize it."
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import (
	"context"

	"github.com/dicelayer/spilltier/internal/store"
)

// restoreOutcome is the shared decision the pre-miss callback and the
// restore command both translate into their own reply shape.
type restoreOutcome int

const (
	outcomeRestored restoreOutcome = iota
	outcomeNotFound
	outcomeExpired
	outcomeCorrupted
	outcomeStoreNotOpen
	outcomeStoreError
	outcomeHostError
)

// restoreKey runs the algorithm in spec.md §4.3 against key, returning
// the outcome and (for error outcomes) the underlying error.
func (m *Manager) restoreKey(ctx context.Context, key string) (restoreOutcome, error) {
	if !m.isOpen() {
		return outcomeStoreNotOpen, NewErrStoreNotOpen()
	}

	raw, err := m.store.Get(ctx, []byte(key))
	if err != nil {
		if err == store.ErrNotFound {
			return outcomeNotFound, nil
		}
		return outcomeStoreError, NewErrStoreIOFailed("get", key, err)
	}

	expiryMs, payload, ok := decodeEntry(raw)
	if !ok {
		return outcomeCorrupted, NewErrCorruptedData(key, len(raw))
	}

	now := m.cfg.TimeProvider.NowMillis()
	if !isLive(expiryMs, now) {
		if delErr := m.store.Delete(ctx, []byte(key)); delErr != nil {
			m.cfg.Logger.Warn("spill: failed to delete expired entry", "key", key, "error", delErr)
		} else {
			m.stats.recordExpiredDelete()
		}
		return outcomeExpired, NewErrExpired(key, expiryMs)
	}

	ttlMillis := restoreTTLMillis(expiryMs, now)

	if err := m.host.Materialize(ctx, key, payload, ttlMillis); err != nil {
		m.stats.recordHostCallError()
		return outcomeHostError, NewErrHostMaterializeFailed(key, err)
	}

	if err := m.store.Delete(ctx, []byte(key)); err != nil {
		// The host already has the key; leaving a stray store entry is
		// a later sweep's problem, not a restore failure.
		m.cfg.Logger.Warn("spill: failed to delete restored entry", "key", key, "error", err)
	}
	m.stats.recordRestore(len(raw))

	return outcomeRestored, nil
}

// onPreMiss is subscribed to EventPreMiss. It never raises: a host
// materialization failure is logged and otherwise silent (spec.md
// §4.3 step 8 / Open Question 3), tracked only via
// total_host_call_errors.
func (m *Manager) onPreMiss(ctx context.Context, key string) {
	outcome, err := m.restoreKey(ctx, key)
	switch outcome {
	case outcomeRestored, outcomeNotFound:
		return
	case outcomeExpired:
		m.cfg.Logger.Info("spill: discarded expired entry on pre-miss", "key", key)
	case outcomeCorrupted:
		m.cfg.Logger.Warn("spill: corrupted entry on pre-miss", "key", key, "error", err)
	case outcomeStoreError, outcomeHostError:
		m.cfg.Logger.Warn("spill: restore failed on pre-miss", "key", key, "error", err)
	case outcomeStoreNotOpen:
		// Nothing to log; this is the expected shape during teardown.
	}
}

// restoreCommand implements the explicit "restore <key>" command
// (spec.md §4.3/§6.3).
func (m *Manager) restoreCommand(ctx context.Context, args []string) Reply {
	if len(args) != 1 || args[0] == "" {
		return ErrReply(NewErrCorruptedData("", 0))
	}
	key := args[0]

	outcome, err := m.restoreKey(ctx, key)
	switch outcome {
	case outcomeRestored:
		return OKReply()
	case outcomeNotFound:
		return NullReply()
	case outcomeExpired:
		return ErrReply(err)
	case outcomeCorrupted:
		return ErrReply(err)
	case outcomeStoreNotOpen:
		return ErrReply(err)
	case outcomeStoreError:
		return ErrReply(err)
	case outcomeHostError:
		return ErrReply(err)
	default:
		return ErrReply(NewErrStoreIOFailed("restore", key, nil))
	}
}
