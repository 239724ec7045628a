// Package bootstrap собирает клиентские компоненты из конфигурации.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"CyberCasino/internal/cli/api"
	"CyberCasino/internal/cli/balance"
	"CyberCasino/internal/cli/display"
	"CyberCasino/internal/cli/session"
	"CyberCasino/internal/config"
	"CyberCasino/internal/logging"
)

// App — набор клиентских компонентов одного запуска CLI.
type App struct {
	Config  *config.Config
	Logger  *zap.SugaredLogger
	API     *api.Client
	Session *session.Store
	Fetcher *balance.Fetcher

	closeStorage func() error
}

// NewApp создаёт логгер, API-клиент и Session Store, затем восстанавливает
// сохранённый токен. Вызывающий обязан закрыть App.
func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogLevel, "warn")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	storage, cleanup, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.ServerURL, api.WithTimeout(cfg.RequestTimeout), api.WithLogger(logger))
	store := session.New(storage, client, logger)
	store.SetToken(store.Restore())

	return &App{
		Config:       cfg,
		Logger:       logger,
		API:          client,
		Session:      store,
		Fetcher:      balance.NewFetcher(client),
		closeStorage: cleanup,
	}, nil
}

// BindBalance монтирует отображение баланса для текущей сессии.
// При LogoutOnUnauthorized отклонённый сервером токен удаляется, если он всё ещё текущий.
func (a *App) BindBalance(ctx context.Context, opts ...display.Option) *display.Binding {
	all := []display.Option{display.WithLogger(a.Logger)}
	if a.Config.LogoutOnUnauthorized {
		all = append(all, display.WithUnauthorizedHandler(func(token string) {
			cleared, err := a.Session.LogoutIf(token)
			if err != nil {
				a.Logger.Warnw("logout after rejected token failed", "error", err)
				return
			}
			if !cleared {
				a.Logger.Debugw("rejected token already replaced, keeping session", "token", logging.MaskToken(token))
			}
		}))
	}
	all = append(all, opts...)
	return display.Bind(ctx, a.Session, a.Fetcher, all...)
}

// Close освобождает хранилище и сбрасывает буфер логгера.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	if a.closeStorage == nil {
		return nil
	}
	return a.closeStorage()
}
