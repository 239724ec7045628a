// Package repotest содержит in-memory реализацию repo.SessionStorage для тестов.
package repotest

import (
	"errors"
	"sync"

	"CyberCasino/internal/cli/repo"
)

// MemoryStorage is an in-process repo.SessionStorage.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
	// FailWith makes every operation fail with the given error.
	FailWith error
}

var _ repo.SessionStorage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return "", m.FailWith
	}
	v, ok := m.values[key]
	if !ok || v == "" {
		return "", repo.ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

// Save stores token under repo.KeyAccessToken.
func (m *MemoryStorage) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := m.set(repo.KeyAccessToken, token); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.values, repo.KeyLegacyAuthToken)
	m.mu.Unlock()
	return nil
}

// Load returns the stored token, falling back to the legacy key.
func (m *MemoryStorage) Load() (string, error) {
	tok, err := m.get(repo.KeyAccessToken)
	if errors.Is(err, repo.ErrNotFound) {
		return m.get(repo.KeyLegacyAuthToken)
	}
	return tok, err
}

// Clear removes the token and the last login.
func (m *MemoryStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	delete(m.values, repo.KeyAccessToken)
	delete(m.values, repo.KeyLegacyAuthToken)
	delete(m.values, repo.KeyLastLogin)
	return nil
}

// SaveLogin stores the last successful username.
func (m *MemoryStorage) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	return m.set(repo.KeyLastLogin, login)
}

// LoadLogin returns the last successful username.
func (m *MemoryStorage) LoadLogin() (string, error) {
	return m.get(repo.KeyLastLogin)
}

// Raw returns the stored value for key, for assertions.
func (m *MemoryStorage) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// SetRaw writes key directly, bypassing validation.
func (m *MemoryStorage) SetRaw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
}
