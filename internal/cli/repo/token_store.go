package repo

import "errors"

// Ключи единственного логического слота токена в durable storage.
const (
	KeyAccessToken = "accessToken"
	// KeyLegacyAuthToken читается как запасной вариант и удаляется при следующей записи.
	KeyLegacyAuthToken = "authToken"
	KeyLastLogin       = "lastLogin"
)

// ErrNotFound returned by Load/LoadLogin when nothing is stored.
var ErrNotFound = errors.New("not found in local storage")

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// SessionStorage объединяет хранение токена и контекста пользователя.
type SessionStorage interface {
	TokenStore
	UserContextStore
}
