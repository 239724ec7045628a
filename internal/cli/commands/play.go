package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/config"
)

// ErrNotLoggedIn is returned by commands that need an access token.
var ErrNotLoggedIn = errors.New("not logged in: run login first")

type playCmd struct{}

func (playCmd) Name() string        { return "play" }
func (playCmd) Description() string { return "Play one slot round" }
func (playCmd) Usage() string       { return "play <bet_amount>" }

func (playCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || bet <= 0 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	tok := app.Session.Token()
	if tok == "" {
		return ErrNotLoggedIn
	}
	res, err := app.API.PlaySlot(ctx, tok, bet)
	if err != nil {
		return err
	}
	out, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintf(Out, "Result: %s\n", out)
	printBalance(ctx, app)
	return nil
}

func init() { RegisterCmd(playCmd{}) }
