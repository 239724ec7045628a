package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"CyberCasino/internal/cli/repo"

	_ "modernc.org/sqlite"
)

// LocalStorage — key/value хранилище в локальной БД SQLite, аналог localStorage браузера.
type LocalStorage struct {
	db *sql.DB
}

var _ repo.SessionStorage = (*LocalStorage)(nil)

// Open открывает (и создаёт при необходимости) файл БД по указанному пути.
func Open(path string) (*LocalStorage, error) {
	if path == "" {
		return nil, errors.New("empty local storage path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{db: db}, nil
}

// Close закрывает соединение с БД.
func (s *LocalStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (s *LocalStorage) Migrate() error {
	_, err := s.db.Exec(initialDDL())
	return err
}

// SetItem записывает значение по ключу (insert or replace).
func (s *LocalStorage) SetItem(key, value string) error {
	if key == "" {
		return errors.New("empty key")
	}
	_, err := s.db.Exec(`INSERT INTO local_storage(key, value, updated_at) VALUES(?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix(),
	)
	return err
}

// GetItem возвращает значение по ключу или repo.ErrNotFound.
func (s *LocalStorage) GetItem(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	if v == "" {
		return "", repo.ErrNotFound
	}
	return v, nil
}

// RemoveItem удаляет ключ; отсутствие ключа не является ошибкой.
func (s *LocalStorage) RemoveItem(key string) error {
	_, err := s.db.Exec(`DELETE FROM local_storage WHERE key = ?`, key)
	return err
}

// Save сохраняет токен под ключом accessToken и удаляет устаревший authToken.
func (s *LocalStorage) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	if _, err := tx.Exec(`INSERT INTO local_storage(key, value, updated_at) VALUES(?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		repo.KeyAccessToken, token, now); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM local_storage WHERE key = ?`, repo.KeyLegacyAuthToken); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Load читает токен; при отсутствии accessToken пробует authToken.
func (s *LocalStorage) Load() (string, error) {
	tok, err := s.GetItem(repo.KeyAccessToken)
	if errors.Is(err, repo.ErrNotFound) {
		return s.GetItem(repo.KeyLegacyAuthToken)
	}
	return tok, err
}

// Clear удаляет токен и сохранённый логин.
func (s *LocalStorage) Clear() error {
	_, err := s.db.Exec(`DELETE FROM local_storage WHERE key IN (?, ?, ?)`,
		repo.KeyAccessToken, repo.KeyLegacyAuthToken, repo.KeyLastLogin)
	return err
}

// SaveLogin сохраняет логин пользователя.
func (s *LocalStorage) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	return s.SetItem(repo.KeyLastLogin, login)
}

// LoadLogin читает логин пользователя.
func (s *LocalStorage) LoadLogin() (string, error) {
	return s.GetItem(repo.KeyLastLogin)
}
