// info.go: C5 info hook — formats the stats and config sections a host
// surfaces through its own info/status command
//
// Grounded on agilira-balios/interfaces.go's CacheStats/HitRatio
// accessor: a plain value-typed snapshot exposed for read-only
// reporting, generalized from one struct to spec.md §4.5/§6.5's two
// named sections (stats, config) of string key-value pairs.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import "strconv"

// infoHook implements the func() InfoSections signature handed to
// Host.RegisterInfoFunc, reporting the manager's counters and
// effective configuration.
func (m *Manager) infoHook() InfoSections {
	snap := m.stats.Snapshot()

	return InfoSections{
		Stats: map[string]string{
			"num_keys_stored":         strconv.FormatInt(snap.NumKeysStored, 10),
			"total_keys_written":      strconv.FormatUint(snap.TotalKeysWritten, 10),
			"total_keys_restored":     strconv.FormatUint(snap.TotalKeysRestored, 10),
			"total_keys_cleaned":      strconv.FormatUint(snap.TotalKeysCleaned, 10),
			"last_num_keys_cleaned":   strconv.FormatUint(snap.LastNumKeysCleaned, 10),
			"last_cleanup_at_seconds": strconv.FormatInt(snap.LastCleanupAt, 10),
			"total_bytes_written":     strconv.FormatUint(snap.TotalBytesWritten, 10),
			"total_bytes_read":        strconv.FormatUint(snap.TotalBytesRead, 10),
			"total_host_call_errors":  strconv.FormatUint(snap.TotalHostCallErrors, 10),
		},
		Config: map[string]string{
			"path":             m.cfg.Path,
			"max_memory":       strconv.FormatInt(m.cfg.MaxMemory, 10),
			"cleanup_interval": strconv.FormatInt(m.cfg.CleanupInterval, 10),
			"verify_checksums": strconv.FormatBool(m.cfg.VerifyChecksums),
		},
	}
}
