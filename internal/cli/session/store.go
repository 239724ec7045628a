// Package session owns the client's authentication token: its in-memory value,
// its durable copy and the notification of consumers when it changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"CyberCasino/internal/cli/repo"
	"CyberCasino/internal/logging"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type subscriber struct {
	id int
	fn func(token string)
}

// Store — владелец текущего токена. Единственный писатель токена; читателей много.
type Store struct {
	storage repo.SessionStorage
	auth    Authenticator
	logger  *zap.SugaredLogger

	// writeMu сериализует писателей: смена токена, запись в storage и рассылка
	// уведомлений идут одним блоком, поэтому подписчики видят изменения в порядке записи.
	writeMu sync.Mutex

	mu     sync.Mutex
	token  string
	subs   []subscriber
	nextID int
}

// New создаёт Session Store поверх durable storage и клиента аутентификации.
func New(storage repo.SessionStorage, auth Authenticator, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{storage: storage, auth: auth, logger: logger}
}

// Restore читает токен из durable storage. Отсутствие токена или недоступное
// хранилище дают пустую строку, ошибка вызывающему не возвращается.
func (s *Store) Restore() string {
	tok, err := s.storage.Load()
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.logger.Warnw("token storage unavailable, starting logged out", "error", err)
		}
		return ""
	}
	return tok
}

// Login отправляет учётные данные, сохраняет выданный токен и делает его текущим.
// При ошибке логина ни хранилище, ни текущий токен не меняются.
func (s *Store) Login(ctx context.Context, username, password string) (string, error) {
	tok, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.logger.Infow("login rejected", "username", username, "error", err)
		return "", err
	}
	if err := s.Adopt(username, tok); err != nil {
		return "", err
	}
	return tok, nil
}

// Adopt persists a freshly issued token for username and makes it current.
func (s *Store) Adopt(username, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.storage.Save(token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	if username != "" {
		if err := s.storage.SaveLogin(username); err != nil {
			s.logger.Warnw("failed to remember last login", "username", username, "error", err)
		}
	}
	s.logger.Infow("logged in", "username", username, "token", logging.MaskToken(token))
	s.apply(token)
	return nil
}

// Logout сбрасывает текущий токен и удаляет его из durable storage.
func (s *Store) Logout() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.logoutLocked()
}

// LogoutIf выходит из сессии, только если token всё ещё текущий.
// Возвращает false, если токен уже сменился.
func (s *Store) LogoutIf(token string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if token == "" || s.Token() != token {
		return false, nil
	}
	return true, s.logoutLocked()
}

func (s *Store) logoutLocked() error {
	s.apply("")
	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("clearing auth: %w", err)
	}
	return nil
}

// Token возвращает текущий токен ("" — не залогинен).
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// LastLogin returns the remembered username or "".
func (s *Store) LastLogin() string {
	login, err := s.storage.LoadLogin()
	if err != nil {
		return ""
	}
	return login
}

// SetToken перезаписывает токен. Если значение изменилось, подписчики вызываются
// синхронно, в порядке подписки, до возврата из SetToken. Подписчик не должен
// синхронно менять токен из обратного вызова.
func (s *Store) SetToken(token string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.apply(token)
}

// apply вызывается под writeMu.
func (s *Store) apply(token string) {
	s.mu.Lock()
	if s.token == token {
		s.mu.Unlock()
		return
	}
	s.token = token
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(token)
	}
}

// Subscribe регистрирует fn на изменения токена. Возвращённая функция снимает подписку;
// повторный вызов безопасен.
func (s *Store) Subscribe(fn func(token string)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}
