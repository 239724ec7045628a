package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and login" }
func (registerCmd) Usage() string       { return "register <username> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	tok, err := app.API.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if err := app.Session.Adopt(args[0], tok); err != nil {
		return err
	}
	fmt.Fprintln(Out, pterm.FgGreen.Sprint("Registered successfully"))
	printBalance(ctx, app)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
