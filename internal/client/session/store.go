package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dabi61/opensky/internal/client/storage"
)

var (
	// ErrPersist wraps durable storage failures. The in-memory session has
	// already been updated when it is returned.
	ErrPersist = errors.New("session persisted state lags memory")

	// ErrPartialSession is returned for a session carrying only one of the two tokens
	ErrPartialSession = errors.New("access and refresh tokens must be set together")

	// ErrNotLoggedIn is returned where an active session is required
	ErrNotLoggedIn = errors.New("not logged in")
)

// Store is the single source of truth for session state.
//
// Reads are lock-free snapshot loads. Update calls are serialized among
// themselves; SetUser is serialized separately so profile edits never wait
// behind a token refresh. Every mutation writes through to storage before
// the new state becomes visible in memory.
type Store struct {
	storage  storage.SessionStorage
	logger   *slog.Logger
	now      func() time.Time
	current  atomic.Pointer[Session]
	watchers watchers
	updateMu sync.Mutex
	userMu   sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store mirrored to st. Call Load to restore
// a persisted session.
func NewStore(st storage.SessionStorage, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		storage: st,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&Session{})
	s.watchers.subs = make(map[uint64]chan Session)
	return s
}

// Load restores the session persisted by a previous run.
// A missing session leaves the store empty; any other storage error is returned
// and should be treated as an initialization failure.
func (s *Store) Load(ctx context.Context) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	data, err := s.storage.LoadSession(ctx)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to load session: %w", err)
	}

	loaded := Session{}
	if data != nil {
		loaded = fromData(data)
	}
	if loaded.partial() {
		// Половина сессии бесполезна: считаем, что ее нет
		s.logger.WarnContext(ctx, "discarding partial persisted session")
		loaded = Session{}
	}

	if loaded.LoggedIn() {
		profile, err := s.storage.LoadProfile(ctx)
		switch {
		case err == nil:
			loaded.User = profileFromData(profile)
		case errors.Is(err, storage.ErrProfileNotFound):
		default:
			return fmt.Errorf("failed to load profile: %w", err)
		}
	}

	s.current.Store(&loaded)
	s.notify()

	s.logger.DebugContext(ctx, "session loaded", "logged_in", loaded.LoggedIn())
	return nil
}

// Snapshot returns the current session
func (s *Store) Snapshot() Session {
	return *s.current.Load()
}

// AccessToken returns the current access token, empty when absent
func (s *Store) AccessToken() string {
	return s.current.Load().AccessToken
}

// RefreshToken returns the current refresh token, empty when absent
func (s *Store) RefreshToken() string {
	return s.current.Load().RefreshToken
}

// IsLoggedIn reports whether both tokens are present
func (s *Store) IsLoggedIn() bool {
	return s.current.Load().LoggedIn()
}

// IsAccessExpiringSoon reports whether the access token expires within cushion.
// Without a known expiry it returns false: there is no active session to expire.
func (s *Store) IsAccessExpiringSoon(cushion time.Duration) bool {
	snap := s.current.Load()
	if snap.AccessToken == "" || snap.AccessTokenExpiry == 0 {
		return false
	}
	remaining := snap.AccessTokenExpiry - s.now().Unix()
	return remaining <= int64(cushion/time.Second)
}

// Update replaces the token state atomically. nil, or a session without
// tokens, clears everything including the cached profile. The profile is
// replaced only when next.User is set.
//
// Storage is written first. If that fails the memory state is still updated
// and the error is returned wrapped in ErrPersist.
func (s *Store) Update(ctx context.Context, next *Session) error {
	if next != nil && next.partial() {
		return ErrPartialSession
	}

	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	if next == nil || !next.LoggedIn() {
		return s.clearLocked(ctx)
	}

	var persistErr error
	if err := s.storage.SaveSession(ctx, next.toData()); err != nil {
		persistErr = err
	} else if next.User != nil {
		if err := s.storage.SaveProfile(ctx, next.User.toData()); err != nil {
			persistErr = err
		}
	}

	s.swap(func(old Session) Session {
		updated := *next
		if updated.User == nil {
			updated.User = old.User
		} else {
			u := *next.User
			updated.User = &u
		}
		return updated
	})

	return s.persistResult(ctx, "update", persistErr)
}

// Clear drops the whole session, in memory and in storage
func (s *Store) Clear(ctx context.Context) error {
	return s.Update(ctx, nil)
}

func (s *Store) clearLocked(ctx context.Context) error {
	persistErr := s.storage.DeleteSession(ctx)

	s.swap(func(Session) Session {
		return Session{}
	})

	return s.persistResult(ctx, "clear", persistErr)
}

// SetUser replaces the cached profile only; tokens are left untouched
func (s *Store) SetUser(ctx context.Context, profile *UserProfile) error {
	s.userMu.Lock()
	defer s.userMu.Unlock()

	var copied *UserProfile
	if profile != nil {
		p := *profile
		copied = &p
	}

	persistErr := s.storage.SaveProfile(ctx, copied.toData())

	s.swap(func(old Session) Session {
		old.User = copied
		return old
	})

	return s.persistResult(ctx, "set user", persistErr)
}

// swap applies fn to the latest snapshot with compare-and-swap so updates of
// tokens and profile never overwrite each other, then notifies watchers.
func (s *Store) swap(fn func(Session) Session) {
	for {
		old := s.current.Load()
		next := fn(*old)
		if s.current.CompareAndSwap(old, &next) {
			break
		}
	}
	s.notify()
}

func (s *Store) persistResult(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	s.logger.ErrorContext(ctx, "session storage write failed, memory state kept",
		"op", op,
		"error", err,
	)
	return fmt.Errorf("%w: %s: %w", ErrPersist, op, err)
}
