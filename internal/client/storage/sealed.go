package storage

import (
	"context"
	"fmt"

	"github.com/dabi61/opensky/internal/crypto"
)

// Sealed implements SessionStorage and provides an encryption layer between
// the session store and a backend. It seals tokens before saving
// and opens them when loading. Expiries and the profile are stored as-is.
type Sealed struct {
	backend SessionStorage
	key     []byte
}

// Compile-time check that Sealed implements SessionStorage
var _ SessionStorage = (*Sealed)(nil)

// NewSealed creates the encryption layer.
// key must be exactly crypto.KeySize bytes (see crypto.DeriveSealingKey).
func NewSealed(backend SessionStorage, key []byte) (*Sealed, error) {
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("sealing key must be %d bytes, got %d", crypto.KeySize, len(key))
	}
	return &Sealed{
		backend: backend,
		key:     key,
	}, nil
}

// SaveSession шифрует токены и передает данные в backend
func (s *Sealed) SaveSession(ctx context.Context, data *SessionData) error {
	if data == nil {
		return fmt.Errorf("session data is nil")
	}

	sealedAccess, err := s.seal(data.AccessToken)
	if err != nil {
		return fmt.Errorf("failed to seal access token: %w", err)
	}
	sealedRefresh, err := s.seal(data.RefreshToken)
	if err != nil {
		return fmt.Errorf("failed to seal refresh token: %w", err)
	}

	dataCopy := *data // копируем, чтобы не менять входящую структуру
	dataCopy.AccessToken = sealedAccess
	dataCopy.RefreshToken = sealedRefresh

	return s.backend.SaveSession(ctx, &dataCopy)
}

// LoadSession загружает данные из backend и расшифровывает токены
func (s *Sealed) LoadSession(ctx context.Context) (*SessionData, error) {
	stored, err := s.backend.LoadSession(ctx)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.open(stored.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open access token: %w", err)
	}
	refreshToken, err := s.open(stored.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to open refresh token: %w", err)
	}

	data := *stored
	data.AccessToken = accessToken
	data.RefreshToken = refreshToken

	return &data, nil
}

// DeleteSession удаляет данные
func (s *Sealed) DeleteSession(ctx context.Context) error {
	return s.backend.DeleteSession(ctx)
}

// LoadProfile passes through: the profile is not secret
func (s *Sealed) LoadProfile(ctx context.Context) (*ProfileData, error) {
	return s.backend.LoadProfile(ctx)
}

// SaveProfile passes through
func (s *Sealed) SaveProfile(ctx context.Context, profile *ProfileData) error {
	return s.backend.SaveProfile(ctx, profile)
}

// Пустой токен остается пустым: отсутствие сессии не шифруется
func (s *Sealed) seal(token string) (string, error) {
	if token == "" {
		return "", nil
	}
	return crypto.SealToBase64(token, s.key)
}

func (s *Sealed) open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	return crypto.OpenFromBase64(sealed, s.key)
}
