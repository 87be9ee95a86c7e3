package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
)

var errDB = errors.New("database is locked")

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// jsonRequest builds a request with a JSON body and an optional authenticated user
func jsonRequest(t *testing.T, method, target string, body any, userID string) *http.Request {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, userID))
	}
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // username -> User
	createError     error
	getUserError    error
	updateError     error
	updateLastLogin func(ctx context.Context, userID string, loginTime time.Time) error
	mu              sync.Mutex
}

func newMockUserStorage(users ...*models.User) *mockUserStorage {
	m := &mockUserStorage{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	c := *user
	return &c, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			c := *user
			return &c, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateError != nil {
		return m.updateError
	}
	c := *user
	m.users[user.Username] = &c
	return nil
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, userID, loginTime)
	}
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens        map[string]*models.RefreshToken // hash -> RefreshToken
	saveError     error
	getError      error
	deleteError   error
	savedTokens   []*models.RefreshToken // Track all saved tokens
	deletedTokens []string               // Track deleted hashes
	mu            sync.Mutex
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.tokens[token.TokenHash] = token
	m.savedTokens = append(m.savedTokens, token)
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	rt, ok := m.tokens[tokenHash]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return rt, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, ok := m.tokens[tokenHash]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, tokenHash)
	m.deletedTokens = append(m.deletedTokens, tokenHash)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for hash, rt := range m.tokens {
		if rt.UserID == userID {
			delete(m.tokens, hash)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

// mockCatalog is an in-memory CatalogStorage
type mockCatalog struct {
	hotels []*models.Hotel
	rooms  []*models.Room
	err    error
}

func (m *mockCatalog) ListHotels(ctx context.Context, city string) ([]*models.Hotel, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Hotel
	for _, h := range m.hotels {
		if city == "" || h.City == city {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockCatalog) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, h := range m.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, storage.ErrHotelNotFound
}

func (m *mockCatalog) ListRooms(ctx context.Context, hotelID string) ([]*models.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Room
	for _, r := range m.rooms {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockCatalog) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, storage.ErrRoomNotFound
}

// mockBookingStorage keeps bookings in a slice
type mockBookingStorage struct {
	bookings  []*models.Booking
	createErr error
	mu        sync.Mutex
}

func (m *mockBookingStorage) CreateBooking(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.bookings {
		if existing.RoomID == b.RoomID && existing.Overlaps(b.CheckIn, b.CheckOut) {
			return storage.ErrRoomUnavailable
		}
	}
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *mockBookingStorage) ListUserBookings(ctx context.Context, userID string) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingStorage) RoomBookedBetween(ctx context.Context, roomID string, in, out time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.RoomID == roomID && b.Overlaps(in, out) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookingStorage) PayBill(ctx context.Context, userID, billCode string, paidAt time.Time) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.UserID != userID || b.BillCode != billCode {
			continue
		}
		if b.Status == models.BookingPaid {
			return nil, storage.ErrAlreadyPaid
		}
		b.Status = models.BookingPaid
		t := paidAt.UTC()
		b.PaidAt = &t
		return b, nil
	}
	return nil, storage.ErrBookingNotFound
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
