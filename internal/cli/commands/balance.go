package commands

import (
	"context"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/cli/display"
	"CyberCasino/internal/config"
)

type balanceCmd struct{}

func (balanceCmd) Name() string        { return "balance" }
func (balanceCmd) Description() string { return "Show cyber tokens balance" }
func (balanceCmd) Usage() string       { return "balance" }

func (balanceCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	st := printBalance(ctx, app)
	if st.Status == display.StatusUnknown {
		return st.Err
	}
	return nil
}

func init() { RegisterCmd(balanceCmd{}) }
