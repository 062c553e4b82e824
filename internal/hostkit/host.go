// host.go: wires Cache up to the spilltier.Host interface
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package hostkit

import (
	"context"
	"fmt"
	"time"

	"github.com/dicelayer/spilltier"
)

// Host adapts Cache to spilltier.Host, closing the two edges spec.md
// names: Set fires OnEvict on capacity eviction (pre-eviction), Get
// fires OnMiss on a cold read (pre-miss).
type Host struct {
	cache *Cache

	handlers map[spilltier.EventKind]func(ctx context.Context, key string)
	commands map[string]spilltier.CommandHandler
	infoHook func() spilltier.InfoSections
}

// NewHost creates a Host wrapping a freshly constructed Cache with the
// given capacity.
func NewHost(maxSize int) *Host {
	h := &Host{
		handlers: make(map[spilltier.EventKind]func(ctx context.Context, key string)),
		commands: make(map[string]spilltier.CommandHandler),
	}
	h.cache = New(Config{
		MaxSize: maxSize,
		OnEvict: func(key string) { h.fire(spilltier.EventPreEviction, key) },
		OnMiss:  func(key string) { h.fire(spilltier.EventPreMiss, key) },
	})
	return h
}

func (h *Host) fire(kind spilltier.EventKind, key string) {
	if handler, ok := h.handlers[kind]; ok && handler != nil {
		handler(context.Background(), key)
	}
}

// Cache exposes the underlying cache for direct Get/Set/Delete use in
// tests and demos.
func (h *Host) Cache() *Cache { return h.cache }

// Subscribe implements spilltier.Host.
func (h *Host) Subscribe(kind spilltier.EventKind, handler func(ctx context.Context, key string)) {
	h.handlers[kind] = handler
}

// CreateCommand implements spilltier.Host.
func (h *Host) CreateCommand(name string, handler spilltier.CommandHandler, firstKey, lastKey, keyStep int) error {
	h.commands[name] = handler
	return nil
}

// Dispatch invokes a registered command by name, as a real host's
// command dispatcher would.
func (h *Host) Dispatch(ctx context.Context, name string, args []string) (spilltier.Reply, error) {
	handler, ok := h.commands[name]
	if !ok {
		return spilltier.Reply{}, fmt.Errorf("unknown command %q", name)
	}
	return handler(ctx, args), nil
}

// RegisterInfoFunc implements spilltier.Host.
func (h *Host) RegisterInfoFunc(hook func() spilltier.InfoSections) {
	h.infoHook = hook
}

// Info invokes the registered info hook, as a real host's INFO command
// would.
func (h *Host) Info() spilltier.InfoSections {
	if h.infoHook == nil {
		return spilltier.InfoSections{}
	}
	return h.infoHook()
}

// Serialize implements spilltier.Host.
func (h *Host) Serialize(ctx context.Context, key string) (spilltier.Payload, bool, error) {
	value, found := h.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	payload, err := encodeValue(value)
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Materialize implements spilltier.Host.
func (h *Host) Materialize(ctx context.Context, key string, payload spilltier.Payload, ttlMillis int64) error {
	value, err := decodeValue(payload)
	if err != nil {
		return err
	}
	var ttl time.Duration
	if ttlMillis > 0 {
		ttl = time.Duration(ttlMillis) * time.Millisecond
	}
	h.cache.Set(key, value, ttl)
	return nil
}

// PTTL implements spilltier.Host.
func (h *Host) PTTL(ctx context.Context, key string) (int64, error) {
	return h.cache.PTTL(key), nil
}
