package commands

import (
	"context"
	"fmt"

	"CyberCasino/internal/cli/bootstrap"
	"CyberCasino/internal/cli/display"
)

// printBalance монтирует отображение баланса, дожидается ответа и печатает его.
func printBalance(ctx context.Context, app *bootstrap.App) display.State {
	b := app.BindBalance(ctx)
	// обработчик отказа может ещё писать в storage, а App закрывается сразу после команды
	defer func() {
		b.Close()
		b.Wait()
	}()

	st, err := b.Settled(ctx)
	if err != nil {
		app.Logger.Debugw("balance wait interrupted", "error", err)
	}
	fmt.Fprintf(Out, "Balance: %s\n", display.Styled(st))
	if hint := display.Hint(st); hint != "" {
		fmt.Fprintln(Out, hint)
	}
	return st
}
