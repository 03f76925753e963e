package core

import "errors"

var (
	// ErrStorageFull: the local quota rejected a write. Surfaced to the
	// caller; recoverable by deleting memories or backing up and clearing.
	ErrStorageFull = errors.New("storage full")

	// ErrAuthRequired: no valid remote credentials for the backup store.
	ErrAuthRequired = errors.New("remote auth required")

	// ErrSyncFailed: transport-level backup failure.
	ErrSyncFailed = errors.New("sync failed")

	// ErrBackupNotFound: restore requested but no remote backup exists.
	// Distinct from ErrSyncFailed so the caller can tell "no backup yet"
	// from a transport failure.
	ErrBackupNotFound = errors.New("no backup found")
)
