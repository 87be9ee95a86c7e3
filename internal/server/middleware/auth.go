package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dabi61/opensky/internal/server/handlers"
)

// AuthMiddleware проверяет Bearer access token.
// Любая проблема с токеном дает 401, по которому клиент запускает refresh.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				logger.WarnContext(r.Context(), "missing or malformed Authorization header", "path", r.URL.Path)
				unauthorized(w, logger, `Bearer realm="opensky"`, "missing token")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, token)
			if err != nil {
				logger.WarnContext(r.Context(), "invalid access token", "path", r.URL.Path, "error", err)
				unauthorized(w, logger, `Bearer realm="opensky", error="invalid_token"`, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.DebugContext(ctx, "user authenticated", "user_id", claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken вытаскивает токен из "Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, challenge, message string) {
	w.Header().Set("WWW-Authenticate", challenge)
	handlers.SendError(w, logger, message, http.StatusUnauthorized)
}
