package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabi61/opensky/internal/models"
	"github.com/dabi61/opensky/internal/server/storage"
)

func TestRunTokenJanitor(t *testing.T) {
	_, store := newTestServer(t, relaxedLimits)
	ctx := context.Background()

	user := &models.User{ID: "u1", Username: "janitor", PasswordHash: "x", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NoError(t, store.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "old", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now().Add(-2 * time.Hour),
	}))
	require.NoError(t, store.SaveRefreshToken(ctx, &models.RefreshToken{
		TokenHash: "live", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now(),
	}))

	jctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		RunTokenJanitor(jctx, store, 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	assert.Eventually(t, func() bool {
		_, err := store.GetRefreshToken(ctx, "old")
		return errors.Is(err, storage.ErrTokenNotFound)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}

	_, err := store.GetRefreshToken(ctx, "live")
	assert.NoError(t, err)
}
