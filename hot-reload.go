// hot-reload.go: dynamic reconfiguration of cleanup_interval via Argus
//
// Adapted from the teacher's own hot-reload.go: same Argus
// UniversalConfigWatcherWithConfig wiring and Start/Stop/GetConfig
// shape, narrowed to the one knob a live spill tier can actually
// change without reopening its store: the sweeper's interval.
// max_memory and path are load-time-only per spec.md §6.4 (changing
// either would mean reopening the embedded store), so a reload only
// reads cleanup_interval_seconds and any other key in the file is
// ignored without being logged.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig watches a configuration file for changes to cleanup_interval
// and applies them to a running Manager without a restart.
type HotConfig struct {
	manager *Manager
	watcher *argus.Watcher
	mu      sync.RWMutex
	current int64 // last-applied cleanup interval, seconds

	// OnReload is called after a reload is successfully applied. Must be
	// fast and non-blocking.
	OnReload func(oldIntervalSeconds, newIntervalSeconds int64)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after a reload is successfully applied.
	OnReload func(oldIntervalSeconds, newIntervalSeconds int64)

	// Logger for hot reload operations. If nil, the manager's own
	// logger is used.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable watcher for m's cleanup
// interval on opts.ConfigPath. The watcher is not running until Start
// is called.
//
// Supported configuration key:
//   - spill.cleanup_interval_seconds (int): sweeper period in seconds
func NewHotConfig(m *Manager, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = m.cfg.Logger
	}

	hc := &HotConfig{
		manager: m,
		OnReload: opts.OnReload,
		current:  m.cfg.CleanupInterval,
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// CurrentInterval returns the last-applied cleanup interval, in seconds.
func (hc *HotConfig) CurrentInterval() int64 {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.current
}

// handleConfigChange is invoked by Argus when the watched file changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	newInterval, ok := extractCleanupInterval(configData)
	if !ok {
		return
	}

	hc.mu.Lock()
	oldInterval := hc.current
	if newInterval == oldInterval {
		hc.mu.Unlock()
		return
	}
	hc.current = newInterval
	hc.mu.Unlock()

	hc.manager.reloadCleanupInterval(newInterval)

	if hc.OnReload != nil {
		hc.OnReload(oldInterval, newInterval)
	}
}

// extractCleanupInterval pulls spill.cleanup_interval_seconds out of
// the raw config data, tolerating both a nested "spill" section and a
// flat top-level key (Argus's format-agnostic decoders may produce
// either depending on source format).
func extractCleanupInterval(data map[string]interface{}) (int64, bool) {
	section, ok := data["spill"].(map[string]interface{})
	if !ok {
		section = data
	}

	switch v := section["cleanup_interval_seconds"].(type) {
	case int:
		if v >= 0 {
			return int64(v), true
		}
	case int64:
		if v >= 0 {
			return v, true
		}
	case float64:
		if v >= 0 {
			return int64(v), true
		}
	}
	return 0, false
}

// reloadCleanupInterval stops the running sweeper and starts a new one
// at the given interval, per spec.md §6.4's hot-reloadable knobs.
func (m *Manager) reloadCleanupInterval(intervalSeconds int64) {
	if m.sweeper != nil {
		m.sweeper.stop()
	}
	m.cfg.CleanupInterval = intervalSeconds
	m.sweeper = newSweeper(m, intervalSeconds)
	m.sweeper.start()
}
