package fs

import (
	"errors"
	"os"
	"path/filepath"

	"CyberCasino/internal/cli/repo"
	"CyberCasino/internal/config"
)

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// Пустой TokenPath означает <UserConfigDir>/CyberCasino/accessToken.
type AuthFSStore struct {
	TokenPath string
}

var _ repo.SessionStorage = AuthFSStore{}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.AppDirName), nil
}

func (s AuthFSStore) tokenPath() (string, error) {
	if s.TokenPath != "" {
		return s.TokenPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, repo.KeyAccessToken), nil
}

func (s AuthFSStore) legacyTokenPath() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), repo.KeyLegacyAuthToken), nil
}

func (s AuthFSStore) lastLoginPath() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(p), repo.KeyLastLogin), nil
}

func writeFile(p string, data string) error {
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(data), 0o600)
}

// readTrimmed читает файл; отсутствующий или пустой файл даёт repo.ErrNotFound.
func readTrimmed(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", repo.ErrNotFound
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", repo.ErrNotFound
	}
	return string(b), nil
}

func removeIfExists(p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	if err := writeFile(p, token); err != nil {
		return err
	}
	legacy, err := s.legacyTokenPath()
	if err != nil {
		return err
	}
	return removeIfExists(legacy)
}

// Load читает auth‑токен из файла, при отсутствии — из файла со старым именем.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	tok, err := readTrimmed(p)
	if !errors.Is(err, repo.ErrNotFound) {
		return tok, err
	}
	legacy, err := s.legacyTokenPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(legacy)
}

// Clear удаляет токен и сохранённый логин.
func (s AuthFSStore) Clear() error {
	for _, fn := range []func() (string, error){s.tokenPath, s.legacyTokenPath, s.lastLoginPath} {
		p, err := fn()
		if err != nil {
			return err
		}
		if err := removeIfExists(p); err != nil {
			return err
		}
	}
	return nil
}

// SaveLogin сохраняет логин пользователя в файл.
func (s AuthFSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := s.lastLoginPath()
	if err != nil {
		return err
	}
	return writeFile(p, login)
}

// LoadLogin читает логин пользователя из файла.
func (s AuthFSStore) LoadLogin() (string, error) {
	p, err := s.lastLoginPath()
	if err != nil {
		return "", err
	}
	return readTrimmed(p)
}
