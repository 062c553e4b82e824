// errors.go: error taxonomy for spill tier operations
//
// This file provides structured error types using the go-errors library,
// mapping directly onto the error taxonomy in SPEC_FULL.md/spec.md §7:
// ConfigError, StoreOpenError, StoreIOError, CorruptedData, Expired,
// HostCallError, AllocationError.
//
// Copyright (c) 2025 spilltier contributors
// SPDX-License-Identifier: MPL-2.0
package spilltier

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for spill tier operations.
const (
	// Configuration errors — fatal at load.
	ErrCodeMissingPath       errors.ErrorCode = "SPILL_MISSING_PATH"
	ErrCodeMaxMemoryTooSmall errors.ErrorCode = "SPILL_MAX_MEMORY_TOO_SMALL"
	ErrCodeNegativeInterval  errors.ErrorCode = "SPILL_NEGATIVE_CLEANUP_INTERVAL"
	ErrCodeUnknownArg        errors.ErrorCode = "SPILL_UNKNOWN_LOAD_ARG"

	// Store lifecycle errors.
	ErrCodeStoreOpenFailed errors.ErrorCode = "SPILL_STORE_OPEN_FAILED"
	ErrCodeStoreNotOpen    errors.ErrorCode = "SPILL_STORE_NOT_OPEN"
	ErrCodeStoreIOFailed   errors.ErrorCode = "SPILL_STORE_IO_FAILED"

	// Data errors.
	ErrCodeCorruptedData errors.ErrorCode = "SPILL_CORRUPTED_DATA"
	ErrCodeExpired        errors.ErrorCode = "SPILL_KEY_EXPIRED"

	// Host collaboration errors.
	ErrCodeHostSerializeFailed   errors.ErrorCode = "SPILL_HOST_SERIALIZE_FAILED"
	ErrCodeHostMaterializeFailed errors.ErrorCode = "SPILL_HOST_MATERIALIZE_FAILED"
	ErrCodeHostPTTLFailed        errors.ErrorCode = "SPILL_HOST_PTTL_FAILED"

	// Resource errors.
	ErrCodeAllocationFailed errors.ErrorCode = "SPILL_ALLOCATION_FAILED"
)

// Common error messages.
const (
	msgMissingPath       = "path is required"
	msgMaxMemoryTooSmall = "max_memory below the 20 MiB minimum"
	msgNegativeInterval  = "cleanup_interval must not be negative"
	msgUnknownArg        = "unrecognized load argument value"
	msgStoreOpenFailed   = "embedded store failed to open"
	msgStoreNotOpen      = "store not initialized"
	msgStoreIOFailed     = "store operation failed"
	msgCorruptedData     = "corrupted data"
	msgExpired           = "key has expired"
	msgHostSerialize     = "host failed to serialize key"
	msgHostMaterialize   = "host failed to materialize key"
	msgHostPTTL          = "host failed to report remaining TTL"
	msgAllocationFailed  = "failed to allocate framing buffer"
)

// ---- Configuration errors ----

// NewErrMissingPath creates the fatal-load error for an absent path.
func NewErrMissingPath() error {
	return errors.New(ErrCodeMissingPath, msgMissingPath)
}

// NewErrMaxMemoryTooSmall creates the fatal-load error for a too-small budget.
func NewErrMaxMemoryTooSmall(provided int64) error {
	return errors.NewWithContext(ErrCodeMaxMemoryTooSmall, msgMaxMemoryTooSmall, map[string]interface{}{
		"provided_bytes": provided,
		"minimum_bytes":  MinMaxMemoryBytes,
	})
}

// NewErrNegativeCleanupInterval creates the fatal-load error for a
// negative cleanup interval.
func NewErrNegativeCleanupInterval(provided int64) error {
	return errors.NewWithContext(ErrCodeNegativeInterval, msgNegativeInterval, map[string]interface{}{
		"provided_seconds": provided,
	})
}

// NewErrUnknownArgValue creates a load-argument parse error.
func NewErrUnknownArgValue(key, value string) error {
	return errors.NewWithContext(ErrCodeUnknownArg, msgUnknownArg, map[string]interface{}{
		"key":   key,
		"value": value,
	})
}

// ---- Store lifecycle errors ----

// NewErrStoreOpenFailed wraps the underlying store open failure.
func NewErrStoreOpenFailed(path string, cause error) error {
	return errors.Wrap(cause, ErrCodeStoreOpenFailed, msgStoreOpenFailed).
		WithContext("path", path)
}

// NewErrStoreNotOpen signals an operation attempted outside the open state.
func NewErrStoreNotOpen() error {
	return errors.New(ErrCodeStoreNotOpen, msgStoreNotOpen)
}

// NewErrStoreIOFailed wraps a put/get/delete/iterate failure.
func NewErrStoreIOFailed(op, key string, cause error) error {
	return errors.Wrap(cause, ErrCodeStoreIOFailed, msgStoreIOFailed).
		WithContext("op", op).
		WithContext("key", key).
		AsRetryable()
}

// ---- Data errors ----

// NewErrCorruptedData signals a stored value shorter than the header.
func NewErrCorruptedData(key string, length int) error {
	return errors.NewWithContext(ErrCodeCorruptedData, msgCorruptedData, map[string]interface{}{
		"key":       key,
		"value_len": length,
		"min_len":   headerSize,
	})
}

// NewErrExpired signals an entry observed past its expiry at read time.
func NewErrExpired(key string, expiryMs int64) error {
	return errors.NewWithContext(ErrCodeExpired, msgExpired, map[string]interface{}{
		"key":       key,
		"expiry_ms": expiryMs,
	})
}

// ---- Host collaboration errors ----

// NewErrHostSerializeFailed wraps a host serialize failure.
func NewErrHostSerializeFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeHostSerializeFailed, msgHostSerialize).
		WithContext("key", key)
}

// NewErrHostMaterializeFailed wraps a host materialize failure.
func NewErrHostMaterializeFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeHostMaterializeFailed, msgHostMaterialize).
		WithContext("key", key)
}

// NewErrHostPTTLFailed wraps a host TTL-probe failure.
func NewErrHostPTTLFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeHostPTTLFailed, msgHostPTTL).
		WithContext("key", key).
		AsRetryable()
}

// ---- Resource errors ----

// NewErrAllocationFailed signals the framing buffer could not be allocated.
func NewErrAllocationFailed(key string, size int) error {
	return errors.NewWithContext(ErrCodeAllocationFailed, msgAllocationFailed, map[string]interface{}{
		"key":  key,
		"size": size,
	})
}

// ---- Error checking helpers ----

// IsNotOpen reports whether err is a "store not initialized" error.
func IsNotOpen(err error) bool {
	return errors.HasCode(err, ErrCodeStoreNotOpen)
}

// IsExpired reports whether err is a "key has expired" error.
func IsExpired(err error) bool {
	return errors.HasCode(err, ErrCodeExpired)
}

// IsCorrupted reports whether err is a "corrupted data" error.
func IsCorrupted(err error) bool {
	return errors.HasCode(err, ErrCodeCorruptedData)
}

// IsConfigError reports whether err originated from Config.Validate or
// ParseLoadArgs.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		switch coder.ErrorCode() {
		case ErrCodeMissingPath, ErrCodeMaxMemoryTooSmall, ErrCodeNegativeInterval, ErrCodeUnknownArg:
			return true
		}
	}
	return false
}

// IsRetryable reports whether err can be retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error, or "" if it has none.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts structured context from an error, or nil.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var spillErr *errors.Error
	if goerrors.As(err, &spillErr) {
		return spillErr.Context
	}
	return nil
}
