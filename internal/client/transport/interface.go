// Package transport attaches credentials to outgoing API requests and
// recovers from expired access tokens.
package transport

import (
	"context"
	"time"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/session"
	apimodel "github.com/dabi61/opensky/pkg/api"
)

//go:generate moq -out refresh_mock.go . RefreshClient

// RefreshClient calls the refresh endpoint.
// It must not be built on the refreshing transport itself.
type RefreshClient interface {
	Refresh(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse]
}

// SessionStore is the part of session.Store the transport needs
type SessionStore interface {
	Snapshot() session.Session
	AccessToken() string
	IsAccessExpiringSoon(cushion time.Duration) bool
	Update(ctx context.Context, next *session.Session) error
	Clear(ctx context.Context) error
}

// Publisher receives session lifecycle events
type Publisher interface {
	Publish(e events.Event)
}

var (
	_ SessionStore  = (*session.Store)(nil)
	_ Publisher     = (*events.Bus)(nil)
	_ RefreshClient = (*api.Client)(nil)
)
