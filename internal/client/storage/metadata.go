package storage

import "context"

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// DeviceID returns the identifier of this installation, creating it on first use.
	// The value survives logout.
	DeviceID(ctx context.Context) (string, error)
}
