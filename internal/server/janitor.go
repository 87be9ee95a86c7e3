package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/dabi61/opensky/internal/server/storage"
)

// RunTokenJanitor удаляет просроченные refresh токены каждые interval, пока ctx не отменен
func RunTokenJanitor(ctx context.Context, tokens storage.TokenStorage, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.DeleteExpiredTokens(ctx, now)
			if err != nil {
				if ctx.Err() == nil {
					logger.ErrorContext(ctx, "failed to delete expired refresh tokens", "error", err)
				}
				continue
			}
			if n > 0 {
				logger.InfoContext(ctx, "expired refresh tokens deleted", "count", n)
			}
		}
	}
}
