package session

import (
	"time"

	"golang.org/x/oauth2"
)

type tokenSource struct {
	store *Store
}

// TokenSource exposes the current access token to oauth2-aware clients.
// It does not refresh on its own: pair it with the refreshing transport,
// which rotates the token the source then reads.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

// Token implements oauth2.TokenSource
func (ts tokenSource) Token() (*oauth2.Token, error) {
	snap := ts.store.Snapshot()
	if !snap.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	tok := &oauth2.Token{
		AccessToken:  snap.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: snap.RefreshToken,
	}
	if snap.AccessTokenExpiry != 0 {
		tok.Expiry = time.Unix(snap.AccessTokenExpiry, 0)
	}
	return tok, nil
}
