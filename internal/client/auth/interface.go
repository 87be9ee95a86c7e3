package auth

import (
	"context"

	"github.com/dabi61/opensky/internal/client/session"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service defines the authentication flows of the client.
// Tokens never leave the session store: callers get the resulting snapshot.
type Service interface {
	// Register регистрирует нового пользователя
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)

	// Login выполняет аутентификацию и сохраняет сессию
	Login(ctx context.Context, username, password string) (*session.Session, error)

	// Logout выполняет выход из системы
	// Локальная сессия удаляется всегда, сервер уведомляется по возможности
	Logout(ctx context.Context) error
}
