package boltdb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const keyDeviceID = "device_id"

// DeviceID returns the installation identifier, generating and saving it on first call.
// The read-or-create runs in a single write transaction so concurrent callers agree.
func (s *Storage) DeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if existing := bucket.Get([]byte(keyDeviceID)); existing != nil {
			deviceID = string(existing)
			return nil
		}

		// Первый запуск на этом устройстве
		deviceID = uuid.New().String()
		if err := bucket.Put([]byte(keyDeviceID), []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}

	return deviceID, nil
}
