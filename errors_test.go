// errors_test.go: tests for the spill tier error taxonomy
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0

package spilltier

import (
	goerrors "errors"
	"testing"

	"github.com/agilira/go-errors"
)

func assertErrorCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.HasCode(err, code) {
		t.Errorf("expected code %s, got %s", code, GetErrorCode(err))
	}
	if err.Error() == "" {
		t.Error("error message should not be empty")
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name        string
		errFunc     func() error
		code        errors.ErrorCode
		shouldRetry bool
	}{
		{"MissingPath", func() error { return NewErrMissingPath() }, ErrCodeMissingPath, false},
		{"MaxMemoryTooSmall", func() error { return NewErrMaxMemoryTooSmall(1024) }, ErrCodeMaxMemoryTooSmall, false},
		{"NegativeCleanupInterval", func() error { return NewErrNegativeCleanupInterval(-5) }, ErrCodeNegativeInterval, false},
		{"UnknownArgValue", func() error { return NewErrUnknownArgValue("bogus", "x") }, ErrCodeUnknownArg, false},
		{"StoreOpenFailed", func() error { return NewErrStoreOpenFailed("/tmp/x", goerrors.New("disk full")) }, ErrCodeStoreOpenFailed, false},
		{"StoreNotOpen", func() error { return NewErrStoreNotOpen() }, ErrCodeStoreNotOpen, false},
		{"StoreIOFailed", func() error { return NewErrStoreIOFailed("get", "k", goerrors.New("io")) }, ErrCodeStoreIOFailed, true},
		{"CorruptedData", func() error { return NewErrCorruptedData("k", 3) }, ErrCodeCorruptedData, false},
		{"Expired", func() error { return NewErrExpired("k", 100) }, ErrCodeExpired, false},
		{"HostSerializeFailed", func() error { return NewErrHostSerializeFailed("k", goerrors.New("x")) }, ErrCodeHostSerializeFailed, false},
		{"HostMaterializeFailed", func() error { return NewErrHostMaterializeFailed("k", goerrors.New("x")) }, ErrCodeHostMaterializeFailed, false},
		{"HostPTTLFailed", func() error { return NewErrHostPTTLFailed("k", goerrors.New("x")) }, ErrCodeHostPTTLFailed, true},
		{"AllocationFailed", func() error { return NewErrAllocationFailed("k", 64) }, ErrCodeAllocationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.errFunc()
			assertErrorCode(t, err, tt.code)
			if IsRetryable(err) != tt.shouldRetry {
				t.Errorf("expected retryable=%v, got %v", tt.shouldRetry, IsRetryable(err))
			}
		})
	}
}

func TestErrorContext(t *testing.T) {
	err := NewErrMaxMemoryTooSmall(1024)
	ctx := GetErrorContext(err)
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	if ctx["provided_bytes"] != int64(1024) {
		t.Errorf("expected provided_bytes=1024, got %v", ctx["provided_bytes"])
	}
	if ctx["minimum_bytes"] != MinMaxMemoryBytes {
		t.Errorf("expected minimum_bytes=%d, got %v", MinMaxMemoryBytes, ctx["minimum_bytes"])
	}
}

func TestIsConfigError(t *testing.T) {
	configErrs := []error{
		NewErrMissingPath(),
		NewErrMaxMemoryTooSmall(1),
		NewErrNegativeCleanupInterval(-1),
		NewErrUnknownArgValue("k", "v"),
	}
	for _, err := range configErrs {
		if !IsConfigError(err) {
			t.Errorf("expected %v to be a config error", err)
		}
	}

	if IsConfigError(NewErrStoreNotOpen()) {
		t.Error("store-not-open should not be a config error")
	}
	if IsConfigError(nil) {
		t.Error("nil should not be a config error")
	}
}

func TestIsNotOpen(t *testing.T) {
	if !IsNotOpen(NewErrStoreNotOpen()) {
		t.Error("expected IsNotOpen to match")
	}
	if IsNotOpen(NewErrMissingPath()) {
		t.Error("expected IsNotOpen not to match an unrelated error")
	}
}

func TestIsExpired(t *testing.T) {
	if !IsExpired(NewErrExpired("k", 1)) {
		t.Error("expected IsExpired to match")
	}
	if IsExpired(NewErrCorruptedData("k", 1)) {
		t.Error("expected IsExpired not to match an unrelated error")
	}
}

func TestIsCorrupted(t *testing.T) {
	if !IsCorrupted(NewErrCorruptedData("k", 1)) {
		t.Error("expected IsCorrupted to match")
	}
	if IsCorrupted(NewErrExpired("k", 1)) {
		t.Error("expected IsCorrupted not to match an unrelated error")
	}
}

func TestWrappedErrorPreservesCause(t *testing.T) {
	cause := goerrors.New("disk offline")
	err := NewErrStoreOpenFailed("/tmp/spill", cause)
	if !goerrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to the original cause")
	}
}

func TestGetErrorCode_NilAndPlainError(t *testing.T) {
	if GetErrorCode(nil) != "" {
		t.Error("expected empty code for nil error")
	}
	if GetErrorCode(goerrors.New("plain")) != "" {
		t.Error("expected empty code for a plain stdlib error")
	}
}
