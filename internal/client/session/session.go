// Package session holds the authoritative authentication state of the client.
package session

import (
	"time"

	"github.com/dabi61/opensky/internal/client/storage"
)

// UserProfile is the cached profile of the signed-in user.
// Values are treated as immutable once handed to the Store.
type UserProfile struct {
	ID        string
	Username  string
	FullName  string
	Email     string
	Phone     string
	AvatarURL string
}

// Session is an immutable snapshot of the authentication state.
// An empty token means "absent"; a zero expiry means "unknown".
type Session struct {
	User               *UserProfile
	AccessToken        string
	RefreshToken       string
	AccessTokenExpiry  int64 // unix seconds (UTC)
	RefreshTokenExpiry int64 // unix seconds (UTC)
}

// LoggedIn reports whether both tokens are present
func (s Session) LoggedIn() bool {
	return s.AccessToken != "" && s.RefreshToken != ""
}

// AccessExpiresAt returns the access token expiry as time, zero when unknown
func (s Session) AccessExpiresAt() time.Time {
	if s.AccessTokenExpiry == 0 {
		return time.Time{}
	}
	return time.Unix(s.AccessTokenExpiry, 0).UTC()
}

// partial reports a state with exactly one token, which is never allowed to persist
func (s Session) partial() bool {
	return (s.AccessToken == "") != (s.RefreshToken == "")
}

func (s Session) toData() *storage.SessionData {
	return &storage.SessionData{
		AccessToken:        s.AccessToken,
		RefreshToken:       s.RefreshToken,
		AccessTokenExpiry:  s.AccessTokenExpiry,
		RefreshTokenExpiry: s.RefreshTokenExpiry,
	}
}

func fromData(d *storage.SessionData) Session {
	return Session{
		AccessToken:        d.AccessToken,
		RefreshToken:       d.RefreshToken,
		AccessTokenExpiry:  d.AccessTokenExpiry,
		RefreshTokenExpiry: d.RefreshTokenExpiry,
	}
}

func (p *UserProfile) toData() *storage.ProfileData {
	if p == nil {
		return nil
	}
	return &storage.ProfileData{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
	}
}

func profileFromData(d *storage.ProfileData) *UserProfile {
	if d == nil {
		return nil
	}
	return &UserProfile{
		ID:        d.ID,
		Username:  d.Username,
		FullName:  d.FullName,
		Email:     d.Email,
		Phone:     d.Phone,
		AvatarURL: d.AvatarURL,
	}
}
