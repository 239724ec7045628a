// Package keyring stores the session token in an OS keyring or an encrypted file keyring.
package keyring

import (
	"errors"
	"os"
	"sync"

	"github.com/99designs/keyring"

	"CyberCasino/internal/cli/repo"
)

// ServiceName identifies our keyring namespace.
const ServiceName = "cybercasino"

// Store is a repo.SessionStorage backed by a keyring.Keyring.
type Store struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

var _ repo.SessionStorage = (*Store)(nil)

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// OpenFile opens the JOSE-encrypted file keyring in dir, protected by password.
func OpenFile(dir, password string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("empty keyring dir")
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:      ServiceName,
		AllowedBackends:  []keyring.BackendType{keyring.FileBackend},
		FileDir:          dir,
		FilePasswordFunc: keyring.FixedStringPrompt(password),
	})
	if err != nil {
		return nil, err
	}
	return New(ring), nil
}

func (s *Store) get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	if len(item.Data) == 0 {
		return "", repo.ErrNotFound
	}
	return string(item.Data), nil
}

func (s *Store) remove(key string) error {
	if err := s.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Save stores the token under accessToken and drops the legacy key.
func (s *Store) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ring.Set(keyring.Item{Key: repo.KeyAccessToken, Data: []byte(token)}); err != nil {
		return err
	}
	return s.remove(repo.KeyLegacyAuthToken)
}

// Load returns the stored token, falling back to the legacy key.
func (s *Store) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, err := s.get(repo.KeyAccessToken)
	if errors.Is(err, repo.ErrNotFound) {
		return s.get(repo.KeyLegacyAuthToken)
	}
	return tok, err
}

// Clear removes the token and the last login.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range []string{repo.KeyAccessToken, repo.KeyLegacyAuthToken, repo.KeyLastLogin} {
		if err := s.remove(k); err != nil {
			return err
		}
	}
	return nil
}

// SaveLogin stores the last successful username.
func (s *Store) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ring.Set(keyring.Item{Key: repo.KeyLastLogin, Data: []byte(login)})
}

// LoadLogin returns the last successful username.
func (s *Store) LoadLogin() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.get(repo.KeyLastLogin)
}
