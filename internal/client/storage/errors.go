package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session has been persisted
	ErrSessionNotFound = errors.New("session not found")

	// ErrProfileNotFound indicates that no user profile is cached
	ErrProfileNotFound = errors.New("profile not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
