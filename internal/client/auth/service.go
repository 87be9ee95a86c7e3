// Package auth implements login, logout and registration on top of the session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dabi61/opensky/internal/client/api"
	"github.com/dabi61/opensky/internal/client/events"
	"github.com/dabi61/opensky/internal/client/session"
	"github.com/dabi61/opensky/internal/validation"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

var (
	// ErrInvalidCredentials is returned when the server rejects username or password
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserExists is returned by Register for a taken username
	ErrUserExists = errors.New("user already exists")
)

// Publisher receives session lifecycle events
type Publisher interface {
	Publish(e events.Event)
}

// AuthService предоставляет функции авторизации
type AuthService struct {
	apiClient *api.Client
	store     *session.Store
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

var _ Service = (*AuthService)(nil)

// NewService создает новый сервис авторизации.
// apiClient must not use the refreshing transport: auth endpoints carry no bearer token.
func NewService(apiClient *api.Client, store *session.Store, publisher Publisher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		apiClient: apiClient,
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
	}
	if req.Phone != "" {
		if err := validation.ValidatePhone(req.Phone); err != nil {
			return nil, fmt.Errorf("invalid phone: %w", err)
		}
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", resp.UserID)
	return resp, nil
}

// Login выполняет аутентификацию пользователя.
// The token pair and profile are written to the store in one update.
func (s *AuthService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if password == "" {
		return nil, fmt.Errorf("invalid password: password cannot be empty")
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil, fmt.Errorf("login failed: server returned an incomplete token pair")
	}

	next := &session.Session{
		AccessToken:        resp.AccessToken,
		RefreshToken:       resp.RefreshToken,
		AccessTokenExpiry:  expiryOf(resp.AccessTokenExpiry, resp.AccessToken),
		RefreshTokenExpiry: expiryOf(resp.RefreshTokenExpiry, resp.RefreshToken),
		User:               profileFrom(resp.User, username),
	}

	if err := s.store.Update(ctx, next); err != nil {
		if !errors.Is(err, session.ErrPersist) {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		// Сессия в памяти есть, но после перезапуска придется войти снова
		s.logger.WarnContext(ctx, "session will not survive restart", "error", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "username", username)

	snap := s.store.Snapshot()
	return &snap, nil
}

// Logout выполняет выход из системы
// Удаляет локальные данные авторизации и опционально уведомляет сервер
func (s *AuthService) Logout(ctx context.Context) error {
	snap := s.store.Snapshot()
	if !snap.LoggedIn() {
		s.logger.DebugContext(ctx, "logout without active session")
	} else if err := s.apiClient.Logout(ctx, snap.RefreshToken); err != nil {
		// Не прерываем процесс, если сервер недоступен
		s.logger.WarnContext(ctx, "failed to logout on server", "error", err)
	}

	// Всегда удаляем локальные данные, даже если сервер недоступен
	clearErr := s.store.Clear(ctx)

	if s.publisher != nil {
		s.publisher.Publish(events.Event{
			Kind:   events.LoggedOut,
			Reason: "user logout",
			At:     s.now(),
		})
	}

	if clearErr != nil {
		return fmt.Errorf("failed to delete local session: %w", clearErr)
	}
	return nil
}

// expiryOf returns the explicit expiry or, failing that, the exp claim of a JWT
func expiryOf(explicit *time.Time, token string) int64 {
	if explicit != nil && !explicit.IsZero() {
		return explicit.Unix()
	}
	return jwtExpiry(token)
}

// jwtExpiry reads exp without verifying the signature: the client has no key,
// and the value only schedules refreshes.
func jwtExpiry(token string) int64 {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return 0
	}
	return claims.ExpiresAt.Unix()
}

func profileFrom(p *pkgapi.UserProfile, username string) *session.UserProfile {
	if p == nil {
		return &session.UserProfile{Username: username}
	}
	return &session.UserProfile{
		ID:        p.ID,
		Username:  p.Username,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarURL: p.AvatarURL,
	}
}
