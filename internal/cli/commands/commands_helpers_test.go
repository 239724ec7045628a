package commands

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"CyberCasino/internal/config"
)

// testConfig возвращает конфиг клиента, у которого все артефакты
// (файл токена, база, keyring) лежат во временном каталоге.
func testConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerURL:       serverURL,
		TokenStore:      config.TokenStoreFile,
		TokenFile:       filepath.Join(dir, "accessToken"),
		ClientDBPath:    filepath.Join(dir, "local_storage.sqlite"),
		KeyringDir:      filepath.Join(dir, "keyring"),
		KeyringPassword: "test",
		RequestTimeout:  2 * time.Second,
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}
