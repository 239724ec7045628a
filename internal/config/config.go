package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// AppDirName — имя каталога приложения внутри пользовательского конфиг-каталога.
const AppDirName = "CyberCasino"

// Token storage backends.
const (
	TokenStoreFile    = "file"
	TokenStoreSQLite  = "sqlite"
	TokenStoreKeyring = "keyring"
)

type Config struct {
	// Server-side settings
	DatabaseDSN   string        `env:"DATABASE_URI"`
	AuthSecret    string        `env:"AUTH_SECRET"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"`
	InitialTokens int64         `env:"INITIAL_TOKENS"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	LogLevel    string `env:"LOG_LEVEL"`

	// Client-side settings
	ServerURL            string        `env:"-"`
	TokenStore           string        `env:"TOKEN_STORE"`
	TokenFile            string        `env:"TOKEN_FILE"`
	ClientDBPath         string        `env:"CLIENT_DB_PATH"`
	KeyringDir           string        `env:"KEYRING_DIR"`
	KeyringPassword      string        `env:"KEYRING_PASSWORD"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT"`
	LogoutOnUnauthorized bool          `env:"LOGOUT_ON_UNAUTHORIZED"`
	Version              bool          `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the CyberCasino API (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	// Client flags
	flag.StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "token storage backend: file|sqlite|keyring")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to client local storage SQLite DB")
	flag.StringVar(&cfg.KeyringDir, "keyring-dir", cfg.KeyringDir, "directory of the file keyring")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "HTTP request timeout")
	flag.BoolVar(&cfg.LogoutOnUnauthorized, "logout-on-unauthorized", cfg.LogoutOnUnauthorized, "drop the stored token when the API rejects it")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.InitialTokens <= 0 {
		cfg.InitialTokens = 1000
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.KeyringPassword == "" {
		cfg.KeyringPassword = "cybercasino"
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	switch cfg.TokenStore {
	case TokenStoreFile, TokenStoreSQLite, TokenStoreKeyring:
	default:
		cfg.TokenStore = TokenStoreFile
	}

	// Fill client defaults if empty
	dir := AppDir()
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(dir, "accessToken")
	}
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(dir, "local_storage.sqlite")
	}
	if cfg.KeyringDir == "" {
		cfg.KeyringDir = filepath.Join(dir, "keyring")
	}
}

// AppDir returns <UserConfigDir>/CyberCasino, falling back to the home directory
// when the config dir cannot be determined.
func AppDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = home
	}
	return filepath.Join(base, AppDirName)
}
