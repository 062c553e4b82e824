// host_test.go: tests for the Host adapter wiring Cache to spilltier.Host
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package hostkit

import (
	"context"
	"testing"
	"time"

	"github.com/dicelayer/spilltier"
)

func TestHost_SerializeMaterializeRoundTrip(t *testing.T) {
	h := NewHost(10)
	ctx := context.Background()

	h.Cache().Set("k1", "value-1", 0)

	payload, ok, err := h.Serialize(ctx, "k1")
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true for a present key")
	}

	if err := h.Materialize(ctx, "k1", payload, 0); err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}

	v, found := h.Cache().Get("k1")
	if !found || v != "value-1" {
		t.Errorf("expected value-1 after materialize, got %v found=%v", v, found)
	}
}

func TestHost_SerializeAbsentKey(t *testing.T) {
	h := NewHost(10)
	_, ok, err := h.Serialize(context.Background(), "absent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for an absent key")
	}
}

func TestHost_PTTLDelegatesToCache(t *testing.T) {
	h := NewHost(10)
	h.Cache().Set("k1", "v", time.Second)

	pttl, err := h.PTTL(context.Background(), "k1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pttl <= 0 {
		t.Errorf("expected a positive pttl, got %d", pttl)
	}
}

func TestHost_SubscribeAndFire(t *testing.T) {
	h := NewHost(1)

	var firedEvictKey, firedMissKey string
	h.Subscribe(spilltier.EventPreEviction, func(ctx context.Context, key string) { firedEvictKey = key })
	h.Subscribe(spilltier.EventPreMiss, func(ctx context.Context, key string) { firedMissKey = key })

	h.Cache().Set("a", "v1", 0)
	h.Cache().Set("b", "v2", 0) // evicts "a" at capacity 1

	if firedEvictKey != "a" {
		t.Errorf("expected pre-eviction fired for a, got %q", firedEvictKey)
	}

	h.Cache().Get("missing-key")
	if firedMissKey != "missing-key" {
		t.Errorf("expected pre-miss fired for missing-key, got %q", firedMissKey)
	}
}

func TestHost_CreateCommandAndDispatch(t *testing.T) {
	h := NewHost(10)

	err := h.CreateCommand("ping", func(ctx context.Context, args []string) spilltier.Reply {
		return spilltier.OKReply()
	}, 0, 0, 0)
	if err != nil {
		t.Fatalf("CreateCommand failed: %v", err)
	}

	reply, err := h.Dispatch(context.Background(), "ping", nil)
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !reply.OK {
		t.Errorf("expected OK reply, got %+v", reply)
	}

	if _, err := h.Dispatch(context.Background(), "unknown", nil); err == nil {
		t.Error("expected an error dispatching an unregistered command")
	}
}

func TestHost_InfoHook(t *testing.T) {
	h := NewHost(10)
	h.RegisterInfoFunc(func() spilltier.InfoSections {
		return spilltier.InfoSections{Stats: map[string]string{"x": "1"}}
	})

	info := h.Info()
	if info.Stats["x"] != "1" {
		t.Errorf("expected info hook result, got %+v", info)
	}
}

func TestHost_InfoHookUnset(t *testing.T) {
	h := NewHost(10)
	info := h.Info()
	if info.Stats != nil || info.Config != nil {
		t.Errorf("expected zero-value InfoSections with no hook registered, got %+v", info)
	}
}
