// encoder.go: C2 spill encoder — the pre-eviction path
//
// Grounded on agilira-balios/cache.go's populateEntry/Set pattern of
// computing an expiry once per operation and writing it atomically
// alongside the value, generalized from a single cache-wide TTL to a
// per-call TTL read from the host.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import "context"

// onPreEviction is subscribed to EventPreEviction. It never raises:
// failures are logged and the event is otherwise a no-op, per spec.md
// §7's callback propagation policy.
func (m *Manager) onPreEviction(ctx context.Context, key string) {
	if !m.isOpen() {
		return
	}

	payload, ok, err := m.host.Serialize(ctx, key)
	if err != nil {
		m.stats.recordHostCallError()
		m.cfg.Logger.Warn("spill: host serialize failed", "key", key, "error", err)
		return
	}
	if !ok {
		m.cfg.Logger.Warn("spill: host declined to serialize key", "key", key)
		return
	}

	pttl, err := m.host.PTTL(ctx, key)
	if err != nil {
		// Treat a failed TTL probe as "unknown," per spec.md §4.2 step 2.
		pttl = ExpiryNone
	}

	now := m.cfg.TimeProvider.NowMillis()
	expiryMs := absoluteExpiry(pttl, now)

	framed := encodeEntry(expiryMs, payload)

	existed, err := m.store.Put(ctx, []byte(key), framed)
	if err != nil {
		m.cfg.Logger.Warn("spill: store put failed", "key", key, "error", err)
		return
	}

	m.stats.recordWrite(!existed, len(framed))
}
