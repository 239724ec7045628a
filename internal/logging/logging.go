package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New строит development-логгер zap с заданным уровнем, пишущий в stderr.
// Пустой или неизвестный уровень заменяется на fallback.
func New(level, fallback string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil || level == "" {
		lvl, err = zapcore.ParseLevel(fallback)
		if err != nil {
			lvl = zapcore.InfoLevel
		}
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// MaskToken returns a short prefix of a token safe for logs.
func MaskToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "…"
}
