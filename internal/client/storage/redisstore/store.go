// Package redisstore keeps the durable session mirror in Redis.
// It is meant for deployments where several client processes for one device
// share session state, e.g. a kiosk fleet behind one account.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dabi61/opensky/internal/client/storage"
)

const keyPrefix = "opensky:"

// Store implements storage.SessionStorage on top of a Redis client
type Store struct {
	rdb      redis.UniversalClient
	deviceID string
	ttl      time.Duration
}

var _ storage.SessionStorage = (*Store)(nil)

// New creates a Redis backed session storage.
// Keys are scoped per device; ttl of zero keeps keys until deleted.
func New(rdb redis.UniversalClient, deviceID string, ttl time.Duration) (*Store, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device id cannot be empty")
	}
	return &Store{
		rdb:      rdb,
		deviceID: deviceID,
		ttl:      ttl,
	}, nil
}

func (s *Store) sessionKey() string { return keyPrefix + "session:" + s.deviceID }
func (s *Store) profileKey() string { return keyPrefix + "profile:" + s.deviceID }

// SaveSession stores the token state as one JSON value
func (s *Store) SaveSession(ctx context.Context, data *storage.SessionData) error {
	if data == nil {
		return fmt.Errorf("session data is nil")
	}
	return s.set(ctx, s.sessionKey(), data)
}

// LoadSession retrieves stored token state
func (s *Store) LoadSession(ctx context.Context) (*storage.SessionData, error) {
	data := &storage.SessionData{}
	if err := s.get(ctx, s.sessionKey(), data); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return data, nil
}

// DeleteSession removes session and profile atomically
func (s *Store) DeleteSession(ctx context.Context) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.sessionKey(), s.profileKey())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SaveProfile stores the cached profile, nil removes it
func (s *Store) SaveProfile(ctx context.Context, profile *storage.ProfileData) error {
	if profile == nil {
		if err := s.rdb.Del(ctx, s.profileKey()).Err(); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
		return nil
	}
	return s.set(ctx, s.profileKey(), profile)
}

// LoadProfile retrieves the cached profile
func (s *Store) LoadProfile(ctx context.Context) (*storage.ProfileData, error) {
	profile := &storage.ProfileData{}
	if err := s.get(ctx, s.profileKey(), profile); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func (s *Store) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, dst any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}
