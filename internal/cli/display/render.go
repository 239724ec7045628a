package display

import (
	"strconv"

	"github.com/pterm/pterm"

	"CyberCasino/internal/cli/api"
)

// Render returns the plain text form of the balance view.
func Render(s State) string {
	switch s.Status {
	case StatusLoggedOut:
		return "not logged in"
	case StatusLoading:
		return "loading…"
	case StatusReady:
		return strconv.FormatInt(s.Balance, 10)
	default:
		return "unknown"
	}
}

// Styled is Render with terminal colors.
func Styled(s State) string {
	text := Render(s)
	switch s.Status {
	case StatusReady:
		return pterm.FgGreen.Sprint(text)
	case StatusUnknown:
		return pterm.FgYellow.Sprint(text)
	case StatusLoading:
		return pterm.FgCyan.Sprint(text)
	default:
		return pterm.FgGray.Sprint(text)
	}
}

// Hint explains an unknown balance, or returns "".
func Hint(s State) string {
	if s.Status != StatusUnknown || s.Err == nil {
		return ""
	}
	return api.Describe(s.Err)
}
