package storage

import (
	"context"
	"time"

	"github.com/dabi61/opensky/internal/models"
)

// UserStorage хранит учетные записи гостей.
// Username уникален, ID назначает сервер при регистрации.
type UserStorage interface {
	// CreateUser returns ErrUserAlreadyExists for a taken username
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername и GetUserByID возвращают ErrUserNotFound, если записи нет
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UpdateProfile перезаписывает контактные поля (FullName, Email, Phone, AvatarURL) и UpdatedAt
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdateLastLogin is best effort; login succeeds even if it fails
	UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error
}
