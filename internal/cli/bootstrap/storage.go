package bootstrap

import (
	"fmt"

	"CyberCasino/internal/cli/repo"
	fsrepo "CyberCasino/internal/cli/repo/fs"
	keyringrepo "CyberCasino/internal/cli/repo/keyring"
	reposqlite "CyberCasino/internal/cli/repo/sqlite"
	"CyberCasino/internal/config"
)

// OpenStorage открывает durable storage токена, выбранное в cfg.TokenStore,
// и возвращает (storage, cleanup, error).
// cleanup необходимо вызвать после окончания работы, чтобы закрыть соединение с БД.
func OpenStorage(cfg *config.Config) (repo.SessionStorage, func() error, error) {
	noop := func() error { return nil }
	switch cfg.TokenStore {
	case config.TokenStoreSQLite:
		ls, err := reposqlite.Open(cfg.ClientDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open local storage: %w", err)
		}
		if err := ls.Migrate(); err != nil {
			_ = ls.Close()
			return nil, nil, fmt.Errorf("migrate local storage: %w", err)
		}
		return ls, ls.Close, nil
	case config.TokenStoreKeyring:
		st, err := keyringrepo.OpenFile(cfg.KeyringDir, cfg.KeyringPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("open keyring: %w", err)
		}
		return st, noop, nil
	default:
		return fsrepo.AuthFSStore{TokenPath: cfg.TokenFile}, noop, nil
	}
}
