package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/session"
	"github.com/dabi61/opensky/internal/client/storage"
	apimodel "github.com/dabi61/opensky/pkg/api"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// nopStorage accepts every write
func nopStorage() *storage.SessionStorageMock {
	return &storage.SessionStorageMock{
		SaveSessionFunc: func(ctx context.Context, data *storage.SessionData) error {
			return nil
		},
		DeleteSessionFunc: func(ctx context.Context) error {
			return nil
		},
		SaveProfileFunc: func(ctx context.Context, profile *storage.ProfileData) error {
			return nil
		},
	}
}

func newTestStore(t *testing.T, access string, opts ...session.Option) *session.Store {
	t.Helper()
	store := session.NewStore(nopStorage(), discardLogger(), opts...)
	if access != "" {
		require.NoError(t, store.Update(context.Background(), &session.Session{
			AccessToken:        access,
			RefreshToken:       "refresh-1",
			AccessTokenExpiry:  time.Now().Add(time.Hour).Unix(),
			RefreshTokenExpiry: 1900000000,
		}))
	}
	return store
}

// sleepRecorder replaces the backoff sleep and records requested delays
type sleepRecorder struct {
	delays []time.Duration
	mu     sync.Mutex
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	return nil
}

func (s *sleepRecorder) recorded() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

func noJitter() time.Duration { return 0 }

func refreshOK(token string, expiry time.Time) api.Result[apimodel.RefreshResponse] {
	return api.Success(apimodel.RefreshResponse{AccessToken: token, AccessTokenExpiry: expiry})
}

func refreshStatus(code int) api.Result[apimodel.RefreshResponse] {
	return api.Failure[apimodel.RefreshResponse](&api.HTTPError{StatusCode: code})
}

func newTestRefresher(store SessionStore, client RefreshClient, bus *events.Bus, sleeper *sleepRecorder) *Refresher {
	return NewRefresher(store, client, bus, discardLogger(),
		WithSleep(sleeper.sleep),
		WithJitter(noJitter),
	)
}

// unauthorized builds a 401 for a request sent with token
func unauthorized(t *testing.T, ctx context.Context, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, "GET", "http://api.test/api/v1/bookings", nil)
	require.NoError(t, err)
	if token != "" {
		setBearer(req, token)
	}
	return &http.Response{
		StatusCode: http.StatusUnauthorized,
		Request:    req,
		Body:       http.NoBody,
	}
}

// collectEvents reads everything currently buffered on ch
func collectEvents(ch <-chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func sessionClock(now time.Time) session.Option {
	return session.WithClock(func() time.Time { return now })
}

func expiringSession(expiry int64) *session.Session {
	return &session.Session{
		AccessToken:        "old",
		RefreshToken:       "refresh-1",
		AccessTokenExpiry:  expiry,
		RefreshTokenExpiry: 1900000000,
	}
}
