// argload.go: parses the flat load-argument list a host passes a
// plugin at load time into a Config
//
// spec.md §6.4 describes load arguments as a flat list of key/value
// pairs (e.g. "path", "/var/lib/spill", "max-memory", "268435456", ...)
// rather than a conventional argv. ParseLoadArgs drops unrecognized
// keys, re-shapes the rest into "--key=value" tokens and hands them to
// github.com/agilira/flash-flags, so the parsing and type coercion
// come from the library instead of a hand-rolled switch statement.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import (
	"fmt"

	flashflags "github.com/agilira/flash-flags"
)

// ParseLoadArgs parses a flat key/value argument list into a Config.
// An odd-length list is a fatal-load error; an unrecognized key is
// silently ignored (spec.md §6.4: "Unknown keys are ignored."). Two
// options accept both a dash and an underscore spelling
// (max-memory/max_memory, cleanup-interval/cleanup_interval); both are
// normalized to the dash form before being handed to the flag parser.
func ParseLoadArgs(args []string) (Config, error) {
	if len(args)%2 != 0 {
		return Config{}, NewErrUnknownArgValue(lastOf(args), "")
	}

	fs := flashflags.New("spilltier")
	path := fs.String("path", "", "embedded store directory")
	maxMemory := fs.Int64("max-memory", DefaultMaxMemoryBytes, "store RAM budget in bytes")
	cleanupInterval := fs.Int64("cleanup-interval", DefaultCleanupIntervalSeconds, "sweeper period in seconds")
	verifyChecksums := fs.Bool("verify-checksums", false, "verify checksums on restore")

	tokens := make([]string, 0, len(args))
	for i := 0; i < len(args); i += 2 {
		key, value := normalizeLoadArgKey(args[i]), args[i+1]
		if !isKnownLoadArg(key) {
			continue
		}
		tokens = append(tokens, fmt.Sprintf("--%s=%s", key, value))
	}

	if err := fs.Parse(tokens); err != nil {
		return Config{}, NewErrUnknownArgValue(err.Error(), "")
	}

	cfg := Config{
		Path:            *path,
		MaxMemory:       *maxMemory,
		CleanupInterval: *cleanupInterval,
		VerifyChecksums: *verifyChecksums,
	}
	return cfg, nil
}

// normalizeLoadArgKey maps the underscore spelling of an aliased
// option to its dash spelling; every other key passes through as-is.
func normalizeLoadArgKey(key string) string {
	switch key {
	case "max_memory":
		return "max-memory"
	case "cleanup_interval":
		return "cleanup-interval"
	default:
		return key
	}
}

func isKnownLoadArg(key string) bool {
	switch key {
	case "path", "max-memory", "cleanup-interval", "verify-checksums":
		return true
	default:
		return false
	}
}

func lastOf(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}
