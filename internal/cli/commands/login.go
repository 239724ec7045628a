package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login, store access token and show balance" }
func (loginCmd) Usage() string       { return "login <username> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	if _, err := app.Session.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(Out, pterm.FgGreen.Sprintf("Logged in as %s", args[0]))
	printBalance(ctx, app)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
