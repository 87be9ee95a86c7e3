package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/events"
	apimodel "github.com/dabi61/opensky/pkg/api"
)

func TestBackoffDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 1 * time.Second},
		{attempt: 2, want: 2 * time.Second},
		{attempt: 3, want: 4 * time.Second},
		{attempt: 4, want: 8 * time.Second},
		{attempt: 5, want: 8 * time.Second},
		{attempt: 10, want: 8 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, backoffDelay(tt.attempt, noJitter), "attempt %d", tt.attempt)
	}

	for i := 0; i < 1000; i++ {
		j := randomJitter()
		require.GreaterOrEqual(t, j, time.Duration(0))
		require.LessOrEqual(t, j, 250*time.Millisecond)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want outcome
	}{
		{name: "success", want: outcomeSuccess},
		{name: "bad request", err: &api.HTTPError{StatusCode: 400}, want: outcomeTerminal},
		{name: "unauthorized", err: &api.HTTPError{StatusCode: 401}, want: outcomeTerminal},
		{name: "forbidden", err: &api.HTTPError{StatusCode: 403}, want: outcomeTerminal},
		{name: "too many requests", err: &api.HTTPError{StatusCode: 429}, want: outcomeRetryable},
		{name: "server error", err: &api.HTTPError{StatusCode: 502}, want: outcomeRetryable},
		{name: "network error", err: errors.New("connection refused"), want: outcomeRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestRefresher_Success(t *testing.T) {
	store := newTestStore(t, "old")
	before := store.Snapshot()
	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			assert.Equal(t, "refresh-1", refreshToken)
			return refreshOK("new", expiry)
		},
	}
	bus := events.NewBus()
	evs, cancel := bus.Subscribe(4)
	defer cancel()

	r := newTestRefresher(store, client, bus, &sleepRecorder{})
	next := r.Authenticate(unauthorized(t, context.Background(), "old"))

	require.NotNil(t, next)
	assert.Equal(t, "Bearer new", next.Header.Get("Authorization"))
	assert.Equal(t, 1, priorResponses(next.Context()))
	assert.Len(t, client.RefreshCalls(), 1)

	after := store.Snapshot()
	assert.Equal(t, "new", after.AccessToken)
	assert.Equal(t, expiry.Unix(), after.AccessTokenExpiry)
	// refresh token не ротируется, срок сохраняется
	assert.Equal(t, before.RefreshToken, after.RefreshToken)
	assert.Equal(t, before.RefreshTokenExpiry, after.RefreshTokenExpiry)

	assert.Empty(t, collectEvents(evs))
}

func TestRefresher_FastPath(t *testing.T) {
	store := newTestStore(t, "current")
	client := &RefreshClientMock{}

	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})
	next := r.Authenticate(unauthorized(t, context.Background(), "stale"))

	require.NotNil(t, next)
	assert.Equal(t, "Bearer current", next.Header.Get("Authorization"))
	assert.Empty(t, client.RefreshCalls())
}

func TestRefresher_FastPathAfterClear(t *testing.T) {
	store := newTestStore(t, "")
	client := &RefreshClientMock{}
	bus := events.NewBus()
	evs, cancel := bus.Subscribe(4)
	defer cancel()

	r := newTestRefresher(store, client, bus, &sleepRecorder{})
	next := r.Authenticate(unauthorized(t, context.Background(), "stale"))

	assert.Nil(t, next)
	assert.Empty(t, client.RefreshCalls())
	assert.Empty(t, collectEvents(evs))
}

func TestRefresher_RequestSentWithoutToken(t *testing.T) {
	t.Run("store already holds a token", func(t *testing.T) {
		// Запрос ушел до завершения логина
		store := newTestStore(t, "fresh")
		client := &RefreshClientMock{}
		bus := events.NewBus()
		evs, cancel := bus.Subscribe(4)
		defer cancel()

		r := newTestRefresher(store, client, bus, &sleepRecorder{})
		next := r.Authenticate(unauthorized(t, context.Background(), ""))

		require.NotNil(t, next)
		assert.Equal(t, "Bearer fresh", next.Header.Get("Authorization"))
		assert.Equal(t, 1, priorResponses(next.Context()))
		assert.Empty(t, client.RefreshCalls())
		assert.Empty(t, collectEvents(evs))
	})

	t.Run("no session", func(t *testing.T) {
		store := newTestStore(t, "")
		client := &RefreshClientMock{}
		bus := events.NewBus()
		evs, cancel := bus.Subscribe(4)
		defer cancel()

		r := newTestRefresher(store, client, bus, &sleepRecorder{})
		next := r.Authenticate(unauthorized(t, context.Background(), ""))

		assert.Nil(t, next)
		assert.Empty(t, client.RefreshCalls())
		assert.False(t, store.Snapshot().LoggedIn())

		got := collectEvents(evs)
		require.Len(t, got, 1)
		assert.Equal(t, events.SessionExpired, got[0].Kind)
		assert.Equal(t, "no refresh token", got[0].Reason)
	})
}

func TestRefresher_BackoffSchedule(t *testing.T) {
	store := newTestStore(t, "old")
	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			return refreshStatus(http.StatusServiceUnavailable)
		},
	}
	bus := events.NewBus()
	evs, cancel := bus.Subscribe(4)
	defer cancel()
	sleeper := &sleepRecorder{}

	r := newTestRefresher(store, client, bus, sleeper)
	next := r.Authenticate(unauthorized(t, context.Background(), "old"))

	assert.Nil(t, next)
	assert.Len(t, client.RefreshCalls(), 3)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.recorded())

	assert.False(t, store.Snapshot().LoggedIn())
	got := collectEvents(evs)
	require.Len(t, got, 1)
	assert.Equal(t, events.SessionExpired, got[0].Kind)
}

func TestRefresher_BackoffWithJitter(t *testing.T) {
	store := newTestStore(t, "old")
	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			return api.Failure[apimodel.RefreshResponse](errors.New("connection reset"))
		},
	}
	sleeper := &sleepRecorder{}

	r := NewRefresher(store, client, events.NewBus(), discardLogger(), WithSleep(sleeper.sleep))
	r.Authenticate(unauthorized(t, context.Background(), "old"))

	delays := sleeper.recorded()
	require.Len(t, delays, 3)
	for i, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		assert.GreaterOrEqual(t, delays[i], base)
		assert.LessOrEqual(t, delays[i], base+250*time.Millisecond)
	}
}

func TestRefresher_SuccessAfterRetry(t *testing.T) {
	store := newTestStore(t, "old")
	calls := 0
	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			calls++
			if calls == 1 {
				return refreshStatus(http.StatusTooManyRequests)
			}
			return refreshOK("new", time.Now().Add(15*time.Minute))
		},
	}
	sleeper := &sleepRecorder{}

	r := newTestRefresher(store, client, events.NewBus(), sleeper)
	next := r.Authenticate(unauthorized(t, context.Background(), "old"))

	require.NotNil(t, next)
	assert.Equal(t, "Bearer new", next.Header.Get("Authorization"))
	assert.Equal(t, []time.Duration{time.Second}, sleeper.recorded())
	assert.Equal(t, "new", store.AccessToken())
}

func TestRefresher_RejectionIsTerminal(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			store := newTestStore(t, "old")
			client := &RefreshClientMock{
				RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
					return refreshStatus(code)
				},
			}
			bus := events.NewBus()
			evs, cancel := bus.Subscribe(4)
			defer cancel()
			sleeper := &sleepRecorder{}

			r := newTestRefresher(store, client, bus, sleeper)
			next := r.Authenticate(unauthorized(t, context.Background(), "old"))

			assert.Nil(t, next)
			assert.Len(t, client.RefreshCalls(), 1)
			assert.Empty(t, sleeper.recorded())
			assert.Empty(t, store.AccessToken())
			assert.Empty(t, store.Snapshot().RefreshToken)

			got := collectEvents(evs)
			require.Len(t, got, 1)
			assert.Equal(t, events.SessionExpired, got[0].Kind)
			assert.Equal(t, "refresh token rejected", got[0].Reason)
		})
	}
}

func TestRefresher_LoopGuard(t *testing.T) {
	for _, prior := range []int{1, 2, 5} {
		store := newTestStore(t, "old")
		client := &RefreshClientMock{}

		r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})
		ctx := withPriorResponses(context.Background(), prior)
		next := r.Authenticate(unauthorized(t, ctx, "old"))

		assert.Nil(t, next, "prior %d", prior)
		assert.Empty(t, client.RefreshCalls())
		// Сессия не трогается
		assert.Equal(t, "old", store.AccessToken())
	}
}

func TestRefresher_WaiterCancelled(t *testing.T) {
	store := newTestStore(t, "old")
	client := &RefreshClientMock{}
	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})

	// Блокировку держит другой refresh
	require.True(t, r.acquire(context.Background()))
	defer r.release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Nil(t, r.Authenticate(unauthorized(t, ctx, "old")))
	assert.Empty(t, client.RefreshCalls())
	assert.Equal(t, "old", store.AccessToken())
}

func TestRefresher_DetachedFromCallerCancellation(t *testing.T) {
	store := newTestStore(t, "old")
	ctx, cancel := context.WithCancel(context.Background())

	client := &RefreshClientMock{
		RefreshFunc: func(refreshCtx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			cancel()
			assert.NoError(t, refreshCtx.Err())
			_, hasDeadline := refreshCtx.Deadline()
			assert.True(t, hasDeadline)
			return refreshOK("new", time.Now().Add(time.Hour))
		},
	}

	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})
	r.Authenticate(unauthorized(t, ctx, "old"))

	assert.Equal(t, "new", store.AccessToken())
}

func TestRefresher_ReplaysBody(t *testing.T) {
	store := newTestStore(t, "old")
	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			return refreshOK("new", time.Now().Add(time.Hour))
		},
	}
	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})

	t.Run("replayable body", func(t *testing.T) {
		req, err := http.NewRequest("POST", "http://api.test/api/v1/bookings", bytes.NewReader([]byte(`{"roomId":"r1"}`)))
		require.NoError(t, err)
		setBearer(req, "stale")
		_, _ = io.ReadAll(req.Body)

		next := r.Authenticate(&http.Response{StatusCode: http.StatusUnauthorized, Request: req})
		require.NotNil(t, next)
		body, err := io.ReadAll(next.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"roomId":"r1"}`, string(body))
	})

	t.Run("body without GetBody is not reissued", func(t *testing.T) {
		req, err := http.NewRequest("POST", "http://api.test/api/v1/bookings", io.NopCloser(bytes.NewReader([]byte("x"))))
		require.NoError(t, err)
		req.GetBody = nil
		setBearer(req, "stale")

		assert.Nil(t, r.Authenticate(&http.Response{StatusCode: http.StatusUnauthorized, Request: req}))
	})
}

func TestRefresher_SessionClearedDuringRefresh(t *testing.T) {
	store := newTestStore(t, "old")
	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			// Пользователь вышел, пока шел запрос
			require.NoError(t, store.Clear(context.Background()))
			return refreshOK("new", time.Now().Add(time.Hour))
		},
	}

	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})
	assert.Nil(t, r.Authenticate(unauthorized(t, context.Background(), "old")))
	assert.False(t, store.Snapshot().LoggedIn())
}

func TestRefresher_RefreshIfExpiring(t *testing.T) {
	now := time.Unix(1700000000, 0)
	store := newTestStore(t, "", sessionClock(now))
	require.NoError(t, store.Update(context.Background(), expiringSession(now.Unix()+30)))

	client := &RefreshClientMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) api.Result[apimodel.RefreshResponse] {
			return refreshOK("fresh", now.Add(15*time.Minute))
		},
	}
	r := newTestRefresher(store, client, events.NewBus(), &sleepRecorder{})

	r.RefreshIfExpiring(context.Background(), DefaultCushion)
	assert.Equal(t, "fresh", store.AccessToken())
	assert.Len(t, client.RefreshCalls(), 1)

	// Свежий токен повторно не обновляется
	r.RefreshIfExpiring(context.Background(), DefaultCushion)
	assert.Len(t, client.RefreshCalls(), 1)
}
