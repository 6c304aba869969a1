// Package apperrors defines the sentinel errors shared across the service,
// repository, and API layers.
package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSnapshotNotFound indicates that no portfolio snapshot has been recorded yet.
	ErrSnapshotNotFound = errors.New("portfolio snapshot not found")

	// ErrSettingNotFound indicates that a system setting with the given key does not exist.
	ErrSettingNotFound = errors.New("system setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrQuoteFetchFailed indicates that a market-data lookup failed after
	// exhausting its retries.
	ErrQuoteFetchFailed = errors.New("quote fetch failed")

	// ErrEncryptionUnavailable indicates that an encrypted setting was
	// requested but no fernet key is configured.
	ErrEncryptionUnavailable = errors.New("encryption key not configured")
)
