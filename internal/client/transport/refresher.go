package transport

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/session"
	apimodel "github.com/dabi61/opensky/pkg/api"
)

const (
	// maxChainedResponses is the loop guard ceiling: the first 401 may be
	// retried once, a 401 on the retry is returned to the caller.
	maxChainedResponses = 2

	defaultMaxAttempts    = 3
	defaultAttemptTimeout = 30 * time.Second

	backoffBase = time.Second
	backoffMax  = 8 * time.Second
	jitterMax   = 250 * time.Millisecond
)

// RefreshAttempt is the state of one coordinated refresh
type RefreshAttempt struct {
	StaleToken string
	Attempt    int
	Delay      time.Duration
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryable
	outcomeTerminal
)

// Refresher obtains a new access token after a 401.
// At most one refresh call is in flight at any time; requests that fail
// concurrently wait for it and reuse its token.
type Refresher struct {
	store     SessionStore
	client    RefreshClient
	publisher Publisher
	logger    *slog.Logger

	// lock is a one-slot semaphore; unlike sync.Mutex a waiter can give up
	// when its request context is cancelled.
	lock chan struct{}

	sleep          func(ctx context.Context, d time.Duration) error
	jitter         func() time.Duration
	now            func() time.Time
	attemptTimeout time.Duration
	maxAttempts    int
}

// RefresherOption configures a Refresher
type RefresherOption func(*Refresher)

// WithAttemptTimeout bounds a single refresh call
func WithAttemptTimeout(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		if d > 0 {
			r.attemptTimeout = d
		}
	}
}

// WithSleep replaces the backoff sleep
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) RefresherOption {
	return func(r *Refresher) {
		r.sleep = sleep
	}
}

// WithJitter replaces the jitter source
func WithJitter(jitter func() time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.jitter = jitter
	}
}

// WithRefresherClock replaces the time source of published events
func WithRefresherClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		r.now = now
	}
}

// NewRefresher creates a refresh coordinator
func NewRefresher(store SessionStore, client RefreshClient, publisher Publisher, logger *slog.Logger, opts ...RefresherOption) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Refresher{
		store:          store,
		client:         client,
		publisher:      publisher,
		logger:         logger,
		lock:           make(chan struct{}, 1),
		sleep:          sleepContext,
		jitter:         randomJitter,
		now:            time.Now,
		attemptTimeout: defaultAttemptTimeout,
		maxAttempts:    defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Authenticate reacts to a 401 response. It returns the original request
// re-authorized with a fresh token, or nil when the request must not be retried.
func (r *Refresher) Authenticate(resp *http.Response) *http.Request {
	req := resp.Request
	if req == nil {
		return nil
	}
	ctx := req.Context()

	// Шаг 1: защита от циклов 401 -> refresh -> 401
	if chain := priorResponses(ctx) + 1; chain >= maxChainedResponses {
		r.logger.WarnContext(ctx, "giving up on repeated 401",
			"path", req.URL.Path,
			"chained_responses", chain,
		)
		return nil
	}

	// Пустой stale тоже валиден: токен мог появиться после отправки,
	// а без сессии шаг 4 завершит ее и опубликует SessionExpired
	stale := bearerToken(req)

	// Шаг 2: быстрый путь без блокировки
	if next, done := r.fastPath(req, stale); done {
		return next
	}

	// Шаг 3: медленный путь, один refresh за раз
	if !r.acquire(ctx) {
		return nil
	}
	defer r.release()

	if next, done := r.fastPath(req, stale); done {
		return next
	}

	token, ok := r.refreshLocked(ctx, stale)
	if !ok {
		return nil
	}
	return reissue(req, token)
}

// RefreshIfExpiring refreshes ahead of time when the access token expires
// within cushion. It shares the lock with Authenticate. Failures are left
// to the 401 path, except terminal ones which clear the session as usual.
func (r *Refresher) RefreshIfExpiring(ctx context.Context, cushion time.Duration) {
	if !r.store.IsAccessExpiringSoon(cushion) {
		return
	}
	stale := r.store.AccessToken()

	if !r.acquire(ctx) {
		return
	}
	defer r.release()

	// Пока ждали блокировку, токен мог обновить кто-то другой
	if r.store.AccessToken() != stale || !r.store.IsAccessExpiringSoon(cushion) {
		return
	}

	r.logger.DebugContext(ctx, "access token expiring soon, refreshing ahead")
	r.refreshLocked(ctx, stale)
}

// fastPath reports done when the store token already differs from stale:
// either someone refreshed (reissue with the new token) or the session was
// cleared (no retry).
func (r *Refresher) fastPath(req *http.Request, stale string) (*http.Request, bool) {
	current := r.store.AccessToken()
	if current == stale {
		return nil, false
	}
	if current == "" {
		return nil, true
	}
	return reissue(req, current), true
}

func (r *Refresher) acquire(ctx context.Context) bool {
	select {
	case r.lock <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func (r *Refresher) release() {
	<-r.lock
}

// refreshLocked runs the refresh with retries. Must be called with the lock held.
// Returns the new access token on success.
func (r *Refresher) refreshLocked(ctx context.Context, stale string) (string, bool) {
	snap := r.store.Snapshot()
	if snap.RefreshToken == "" {
		r.expire(ctx, "no refresh token")
		return "", false
	}

	// Отмена запроса-инициатора не должна прерывать refresh, которого ждут другие
	refreshCtx := context.WithoutCancel(ctx)
	attempt := RefreshAttempt{StaleToken: stale}

	for attempt.Attempt = 1; attempt.Attempt <= r.maxAttempts; attempt.Attempt++ {
		resp, err := r.callRefresh(refreshCtx, snap.RefreshToken)

		switch classify(err) {
		case outcomeSuccess:
			return r.commit(ctx, snap, resp.AccessToken, resp.AccessTokenExpiry)

		case outcomeTerminal:
			r.logger.WarnContext(ctx, "refresh token rejected",
				"status", api.StatusCode(err),
				"attempt", attempt.Attempt,
			)
			r.expire(ctx, "refresh token rejected")
			return "", false

		case outcomeRetryable:
			attempt.Delay = backoffDelay(attempt.Attempt, r.jitter)
			r.logger.WarnContext(ctx, "refresh attempt failed",
				"attempt", attempt.Attempt,
				"max_attempts", r.maxAttempts,
				"retry_in", attempt.Delay,
				"error", err,
			)
			if err := r.sleep(refreshCtx, attempt.Delay); err != nil {
				return "", false
			}
		}
	}

	r.expire(ctx, "refresh attempts exhausted")
	return "", false
}

func (r *Refresher) callRefresh(ctx context.Context, refreshToken string) (apimodel.RefreshResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.attemptTimeout)
	defer cancel()
	return r.client.Refresh(attemptCtx, refreshToken).Unwrap()
}

// commit stores the new access token next to the unchanged refresh token
func (r *Refresher) commit(ctx context.Context, prev session.Session, token string, expiry time.Time) (string, bool) {
	// Сессию могли сбросить (logout) пока шел запрос
	if r.store.Snapshot().RefreshToken != prev.RefreshToken {
		r.logger.InfoContext(ctx, "session changed during refresh, dropping refreshed token")
		return "", false
	}

	next := prev
	next.AccessToken = token
	next.AccessTokenExpiry = 0
	if !expiry.IsZero() {
		next.AccessTokenExpiry = expiry.Unix()
	}
	next.User = nil

	if err := r.store.Update(ctx, &next); err != nil && !errors.Is(err, session.ErrPersist) {
		r.logger.ErrorContext(ctx, "failed to store refreshed token", "error", err)
		return "", false
	}

	r.logger.InfoContext(ctx, "access token refreshed")
	return token, true
}

// expire clears the session and tells the UI to ask for a new login
func (r *Refresher) expire(ctx context.Context, reason string) {
	if err := r.store.Clear(ctx); err != nil {
		r.logger.ErrorContext(ctx, "failed to clear expired session", "error", err)
	}
	if r.publisher != nil {
		r.publisher.Publish(events.Event{
			Kind:   events.SessionExpired,
			Reason: reason,
			At:     r.now(),
		})
	}
	r.logger.InfoContext(ctx, "session expired", "reason", reason)
}

func classify(err error) outcome {
	if err == nil {
		return outcomeSuccess
	}
	switch api.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return outcomeTerminal
	default:
		return outcomeRetryable
	}
}

// backoffDelay returns the wait after the given failed attempt (1-based):
// 1s, 2s, 4s, ... capped at 8s, plus jitter.
func backoffDelay(attempt int, jitter func() time.Duration) time.Duration {
	d := backoffBase
	for i := 1; i < attempt && d < backoffMax; i++ {
		d *= 2
	}
	if d > backoffMax {
		d = backoffMax
	}
	return d + jitter()
}

func randomJitter() time.Duration {
	return rand.N(jitterMax + 1)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reissue copies req with a new token and one more prior response in its
// context. Requests whose body cannot be replayed are not reissued.
func reissue(req *http.Request, token string) *http.Request {
	ctx := withPriorResponses(req.Context(), priorResponses(req.Context())+1)
	out := req.Clone(ctx)

	if req.Body != nil && req.Body != http.NoBody {
		if req.GetBody == nil {
			return nil
		}
		body, err := req.GetBody()
		if err != nil {
			return nil
		}
		out.Body = body
	}

	setBearer(out, token)
	return out
}
