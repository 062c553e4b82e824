// host.go: the abstract host interface the spill tier plugs into
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import "context"

// EventKind identifies a host lifecycle edge the spill tier subscribes to.
type EventKind string

const (
	// EventPreEviction fires just before the host removes a key from
	// RAM under its own eviction policy or an explicit eviction
	// command.
	EventPreEviction EventKind = "pre-eviction"

	// EventPreMiss fires when a read targets a key absent from RAM,
	// before the host finalizes the miss reply.
	EventPreMiss EventKind = "pre-miss"
)

// Payload is the opaque serialized representation of a live key's
// value, as produced by the host. The spill tier never interprets its
// bytes.
type Payload []byte

// Host is the minimum surface spec.md §6.1 requires of the server this
// module plugs into: synchronous call-and-reply from inside a
// callback, a way to subscribe to the two edges above, command
// registration, and an info hook.
//
// internal/hostkit ships a reference implementation good enough to
// drive this interface end to end in tests; production hosts implement
// their own.
type Host interface {
	// Subscribe registers handler for the given event kind. Only one
	// handler per kind is supported; a second Subscribe for the same
	// kind replaces the first.
	Subscribe(kind EventKind, handler func(ctx context.Context, key string))

	// CreateCommand registers a command the host's dispatcher will
	// route to handler. firstKey/lastKey/keyStep describe which
	// positional arguments are key names, per the host's own
	// conventions; spilltier only ever registers 0- or 1-key commands.
	CreateCommand(name string, handler CommandHandler, firstKey, lastKey, keyStep int) error

	// RegisterInfoFunc registers hook to be invoked when the host
	// assembles its introspection/info output.
	RegisterInfoFunc(hook func() InfoSections)

	// Serialize asks the host to produce the opaque payload for key's
	// current in-RAM value. ok is false if key is not present or the
	// host declines to serialize it.
	Serialize(ctx context.Context, key string) (payload Payload, ok bool, err error)

	// Materialize asks the host to reconstruct key in RAM from payload,
	// with the given TTL in milliseconds (0 meaning no expiry),
	// replacing any existing in-memory value for key.
	Materialize(ctx context.Context, key string, payload Payload, ttlMillis int64) error

	// PTTL asks the host for key's remaining time-to-live in
	// milliseconds. Interpretation: >0 a finite TTL, ExpiryNone (-1) no
	// expiry, ExpiryAbsent (-2) key not present.
	PTTL(ctx context.Context, key string) (millis int64, err error)
}

// CommandHandler handles an explicit command invocation. args excludes
// the command name itself.
type CommandHandler func(ctx context.Context, args []string) Reply

// Reply is the host's standard command-reply shape: exactly one of the
// fields is meaningful, matching spec.md §6.3's OK/null/error/array
// outcomes.
type Reply struct {
	OK    bool
	Null  bool
	Err   error
	Array []string
}

// OKReply builds a simple "OK" reply.
func OKReply() Reply { return Reply{OK: true} }

// NullReply builds the null-indicator reply.
func NullReply() Reply { return Reply{Null: true} }

// ErrReply builds an error reply.
func ErrReply(err error) Reply { return Reply{Err: err} }

// ArrayReply builds an array reply (used by the cleanup command).
func ArrayReply(items ...string) Reply { return Reply{Array: items} }

// InfoSections is the two-section payload the info hook returns, per
// spec.md §4.5/§6.5.
type InfoSections struct {
	Stats  map[string]string
	Config map[string]string
}

// Logger defines a minimal logging interface with zero overhead.
// Callback paths use it instead of raising, per spec.md §7's
// propagation policy.
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid
// nil checks.
type NoOpLogger struct{}

func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}
func (NoOpLogger) Info(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Warn(msg string, keyvals ...interface{})  {}
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider supplies the current time to the encoder, decoder,
// sweeper and stats, letting tests substitute a deterministic clock
// instead of real sleeps.
type TimeProvider interface {
	// NowMillis returns the current wall-clock time in milliseconds
	// since epoch.
	NowMillis() int64

	// NowSeconds returns the current wall-clock time in seconds since
	// epoch.
	NowSeconds() int64
}
