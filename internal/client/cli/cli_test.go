package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabi61/opensky/internal/client/auth"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/iocli"
	"github.com/dabi61/opensky/internal/client/session"
	"github.com/dabi61/opensky/internal/client/storage"
)

// syncBuffer собирает вывод команд, безопасен для watch
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// scriptedIO отвечает на ReadInput/ReadPassword заранее заданными строками
func scriptedIO(inputs, passwords []string) (*iocli.IOMock, *syncBuffer) {
	out := &syncBuffer{}
	var mu sync.Mutex
	next := func(queue *[]string) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if len(*queue) == 0 {
			return "", io.EOF
		}
		v := (*queue)[0]
		*queue = (*queue)[1:]
		return v, nil
	}
	return &iocli.IOMock{
		PrintlnFunc: func(a ...any) { _, _ = fmt.Fprintln(out, a...) },
		PrintfFunc:  func(format string, a ...any) { _, _ = fmt.Fprintf(out, format, a...) },
		WriteFunc:   out.Write,
		ReadInputFunc: func(prompt string) (string, error) {
			return next(&inputs)
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return next(&passwords)
		},
	}, out
}

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	st := &storage.SessionStorageMock{
		LoadSessionFunc:   func(ctx context.Context) (*storage.SessionData, error) { return nil, storage.ErrSessionNotFound },
		SaveSessionFunc:   func(ctx context.Context, data *storage.SessionData) error { return nil },
		DeleteSessionFunc: func(ctx context.Context) error { return nil },
		LoadProfileFunc:   func(ctx context.Context) (*storage.ProfileData, error) { return nil, storage.ErrProfileNotFound },
		SaveProfileFunc:   func(ctx context.Context, profile *storage.ProfileData) error { return nil },
	}
	return session.NewStore(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func loggedInStore(t *testing.T, now time.Time) *session.Store {
	t.Helper()
	store := newTestStore(t)
	require.NoError(t, store.Update(context.Background(), &session.Session{
		AccessToken:        "access-token-0001",
		RefreshToken:       "refresh-token-0001",
		AccessTokenExpiry:  now.Add(10 * time.Minute).Unix(),
		RefreshTokenExpiry: now.Add(30 * 24 * time.Hour).Unix(),
		User:               &session.UserProfile{ID: "u-1", Username: "alice"},
	}))
	return store
}

func writePasswordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestGetPassword_FromEnvVar проверяет чтение пароля из переменной окружения
func TestGetPassword_FromEnvVar(t *testing.T) {
	t.Setenv(PasswordEnv, "test_env_password_123")
	cli := &Cli{}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_env_password_123", password)
}

// TestGetPassword_FromFile проверяет чтение пароля из файла
func TestGetPassword_FromFile(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cli := &Cli{passwords: PasswordSources{FromFile: writePasswordFile(t, "test_file_password_456\n")}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_file_password_456", password)
}

// TestGetPassword_FromCLIParam проверяет чтение пароля из CLI параметра
func TestGetPassword_FromCLIParam(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cli := &Cli{passwords: PasswordSources{FromArgs: "test_cli_password_789"}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "test_cli_password_789", password)
}

// Env var должен иметь приоритет над файлом и CLI параметром
func TestGetPassword_Priority(t *testing.T) {
	t.Setenv(PasswordEnv, "env_password")
	cli := &Cli{passwords: PasswordSources{
		FromFile: writePasswordFile(t, "file_password"),
		FromArgs: "cli_password",
	}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "env_password", password)
}

func TestGetPassword_FileOverCLI(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	cli := &Cli{passwords: PasswordSources{
		FromFile: writePasswordFile(t, "file_password_priority"),
		FromArgs: "cli_password_lower",
	}}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "file_password_priority", password)
}

func TestGetPassword_FileErrors(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{name: "empty file", file: writePasswordFile(t, "  \n"), wantErr: "password file is empty"},
		{name: "missing file", file: "/nonexistent/file/path.txt", wantErr: "failed to read password file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &Cli{passwords: PasswordSources{FromFile: tt.file}}

			password, err := cli.getPassword("Password: ")

			require.Error(t, err)
			assert.Empty(t, password)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetPassword_Prompt(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	mockIO, _ := scriptedIO(nil, []string{"typed-secret1"})
	cli := &Cli{io: mockIO}

	password, err := cli.getPassword("Password: ")

	require.NoError(t, err)
	assert.Equal(t, "typed-secret1", password)
	require.Len(t, mockIO.ReadPasswordCalls(), 1)
	assert.Equal(t, "Password: ", mockIO.ReadPasswordCalls()[0].Prompt)
}

func TestGetPassword_PromptEmpty(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	mockIO, _ := scriptedIO(nil, []string{""})
	cli := &Cli{io: mockIO}

	_, err := cli.getPassword("Password: ")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")
}

func TestRun_UnknownCommand(t *testing.T) {
	mockIO, out := scriptedIO(nil, nil)
	cli := New(mockIO, &auth.ServiceMock{}, &BookingAPIMock{}, newTestStore(t), events.NewBus(), PasswordSources{})

	err := cli.Run(context.Background(), "frobnicate", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command: frobnicate")
	assert.Contains(t, out.String(), "Usage:")
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	PrintUsage(&buf)

	for _, cmd := range []string{"register", "login", "logout", "status", "profile", "hotels", "rooms", "book", "bookings", "pay", "watch"} {
		assert.Contains(t, buf.String(), "  "+cmd)
	}
	assert.Contains(t, buf.String(), PasswordEnv)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "****0001", maskToken("access-token-0001"))
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{120000, "1200.00"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in))
	}
}

func TestRunWatch(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	store := loggedInStore(t, now)
	bus := events.NewBus()
	mockIO, out := scriptedIO(nil, nil)
	cli := New(mockIO, &auth.ServiceMock{}, &BookingAPIMock{}, store, bus, PasswordSources{})
	cli.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx, "watch", nil) }()

	// Текущее значение приходит сразу после подписки
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "session: alice")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Clear(context.Background()))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "session: signed out")
	}, time.Second, 10*time.Millisecond)

	bus.Publish(events.Event{Kind: events.SessionExpired, At: now})
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "session expired, please login again")
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRequireSession(t *testing.T) {
	mockIO, _ := scriptedIO(nil, nil)
	api := &BookingAPIMock{}
	cli := New(mockIO, &auth.ServiceMock{}, api, newTestStore(t), events.NewBus(), PasswordSources{})

	for _, cmd := range [][]string{{"profile"}, {"hotels"}, {"rooms", "h-1"}, {"bookings"}, {"pay", "opensky://bill/X"}} {
		err := cli.Run(context.Background(), cmd[0], cmd[1:])
		require.Error(t, err, cmd[0])
		assert.True(t, errors.Is(err, errNotAuthenticated), cmd[0])
	}
	assert.Empty(t, api.ListHotelsCalls())
	assert.Empty(t, api.MeCalls())
}
