// entry.go: the spilled-entry wire format
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import "encoding/binary"

// encodeEntry frames expiryMs and payload as the stored value:
// [expiry_ms (8 bytes, little-endian) ‖ payload]. See SPEC_FULL.md's
// Open Question resolution OQ4: byte order is fixed little-endian
// regardless of host architecture, so a store directory is portable
// across machines, superseding spec.md's "host byte order."
func encodeEntry(expiryMs int64, payload Payload) []byte {
	buf := make([]byte, headerSize+len(payload))
	binary.LittleEndian.PutUint64(buf[:headerSize], uint64(expiryMs))
	copy(buf[headerSize:], payload)
	return buf
}

// decodeEntry splits a stored value back into its expiry and payload.
// ok is false if v is shorter than headerSize (invariant 1 of
// spec.md §3 violated — corrupted data).
func decodeEntry(v []byte) (expiryMs int64, payload Payload, ok bool) {
	if len(v) < headerSize {
		return 0, nil, false
	}
	expiryMs = int64(binary.LittleEndian.Uint64(v[:headerSize]))
	payload = Payload(v[headerSize:])
	return expiryMs, payload, true
}

// isLive reports whether expiryMs (as stored) denotes an entry that is
// not logically expired as of nowMs. expiryMs == 0 or <= 0 sentinels
// (ExpiryNone/ExpiryAbsent) mean "no expiry," never expired by this
// check; only a positive expiryMs can expire.
func isLive(expiryMs, nowMs int64) bool {
	return expiryMs <= 0 || expiryMs > nowMs
}

// restoreTTLMillis computes the TTL argument handed to Host.Materialize
// for a live entry, per spec.md §4.3 step 5: floor of 1ms to preserve
// "has TTL" semantics against races.
func restoreTTLMillis(expiryMs, nowMs int64) int64 {
	if expiryMs <= 0 {
		return 0
	}
	ttl := expiryMs - nowMs
	if ttl < 1 {
		ttl = 1
	}
	return ttl
}

// absoluteExpiry computes the expiry_ms to store for a freshly captured
// key, given the host's PTTL reply, per spec.md §4.2 step 3.
func absoluteExpiry(pttlMillis, nowMs int64) int64 {
	if pttlMillis > 0 {
		return nowMs + pttlMillis
	}
	return pttlMillis
}
