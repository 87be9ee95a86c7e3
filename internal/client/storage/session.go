package storage

import (
	"context"
)

//go:generate moq -out session_mock.go . SessionStorage

// SessionStorage is the durable mirror of the in-memory session.
// It is a passive store: it is written through on every session mutation
// and read back once at process start. It performs no validation of its own.
type SessionStorage interface {
	// LoadSession returns the persisted token state.
	// Returns ErrSessionNotFound if nothing was saved or the session was deleted.
	LoadSession(ctx context.Context) (*SessionData, error)

	// SaveSession replaces the persisted token state as a whole
	SaveSession(ctx context.Context, data *SessionData) error

	// DeleteSession removes token state and the cached profile (logout).
	// Deleting a missing session is not an error.
	DeleteSession(ctx context.Context) error

	// LoadProfile returns the cached user profile.
	// Returns ErrProfileNotFound if no profile is cached.
	LoadProfile(ctx context.Context) (*ProfileData, error)

	// SaveProfile replaces the cached profile; nil removes it
	SaveProfile(ctx context.Context, profile *ProfileData) error
}

// SessionData represents the four token fields as they are kept in storage.
// Depending on the layer the tokens are plaintext (session package) or
// sealed base64 ciphertext (after storage.Sealed).
type SessionData struct {
	AccessToken        string `json:"access_token"`
	RefreshToken       string `json:"refresh_token"`
	AccessTokenExpiry  int64  `json:"access_token_expiry"`  // unix seconds, 0 = unknown
	RefreshTokenExpiry int64  `json:"refresh_token_expiry"` // unix seconds, 0 = unknown
}

// ProfileData is the cached profile of the signed-in user
type ProfileData struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
