package commands

import (
	"context"
	"fmt"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/config"
	"CyberCasino/internal/logging"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show local session state" }
func (statusCmd) Usage() string       { return "status" }

// Run печатает состояние сессии без обращения к серверу.
func (statusCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	fmt.Fprintf(Out, "Server: %s\n", cfg.ServerURL)
	fmt.Fprintf(Out, "Token store: %s\n", cfg.TokenStore)
	tok := app.Session.Token()
	if tok == "" {
		fmt.Fprintln(Out, "Status: not logged in")
		return nil
	}
	if login := app.Session.LastLogin(); login != "" {
		fmt.Fprintf(Out, "Status: logged in as %s (token %s)\n", login, logging.MaskToken(tok))
		return nil
	}
	fmt.Fprintf(Out, "Status: logged in (token %s)\n", logging.MaskToken(tok))
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
