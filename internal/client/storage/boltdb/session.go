package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/dabi61/opensky/internal/client/storage"
)

var currentKey = []byte("current")

// SaveSession stores the token state
func (s *Storage) SaveSession(ctx context.Context, data *storage.SessionData) error {
	if data == nil {
		return fmt.Errorf("session data is nil")
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		// Сериализуем данные в JSON
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal session data: %w", err)
		}

		if err := bucket.Put(currentKey, raw); err != nil {
			return fmt.Errorf("failed to save session data: %w", err)
		}

		return nil
	})
}

// LoadSession retrieves stored token state
func (s *Storage) LoadSession(ctx context.Context) (*storage.SessionData, error) {
	var data *storage.SessionData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		raw := bucket.Get(currentKey)
		if raw == nil {
			return storage.ErrSessionNotFound
		}

		data = &storage.SessionData{}
		if err := json.Unmarshal(raw, data); err != nil {
			return fmt.Errorf("failed to unmarshal session data: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// DeleteSession removes token state and cached profile in one transaction (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketSession, bucketProfile} {
			bucket := tx.Bucket(name)
			if bucket == nil {
				return fmt.Errorf("%s bucket not found", name)
			}
			if err := bucket.Delete(currentKey); err != nil {
				return fmt.Errorf("failed to delete %s data: %w", name, err)
			}
		}
		return nil
	})
}

// SaveProfile stores the cached user profile, nil removes it
func (s *Storage) SaveProfile(ctx context.Context, profile *storage.ProfileData) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		if profile == nil {
			return bucket.Delete(currentKey)
		}

		raw, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		if err := bucket.Put(currentKey, raw); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return nil
	})
}

// LoadProfile retrieves the cached user profile
func (s *Storage) LoadProfile(ctx context.Context) (*storage.ProfileData, error) {
	var profile *storage.ProfileData

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProfile)
		if bucket == nil {
			return fmt.Errorf("profile bucket not found")
		}

		raw := bucket.Get(currentKey)
		if raw == nil {
			return storage.ErrProfileNotFound
		}

		profile = &storage.ProfileData{}
		if err := json.Unmarshal(raw, profile); err != nil {
			return fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}
