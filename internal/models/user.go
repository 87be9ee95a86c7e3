package models

import "time"

// User представляет пользователя в системе
type User struct {
	ID           string     `json:"id"`            // UUID пользователя
	Username     string     `json:"username"`      // уникальный username
	PasswordHash string     `json:"password_hash"` // bcrypt хеш пароля
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	AvatarURL    string     `json:"avatar_url"`
	CreatedAt    time.Time  `json:"created_at"` // время создания
	UpdatedAt    time.Time  `json:"updated_at"` // время последнего обновления
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// RefreshToken представляет refresh token пользователя.
// Хранится только SHA-256 хеш, сам токен знает лишь клиент.
type RefreshToken struct {
	TokenHash string    `json:"token_hash"` // hex SHA-256 токена
	UserID    string    `json:"user_id"`    // ID пользователя
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
}

// Expired reports whether the token is no longer usable at now
func (t *RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
