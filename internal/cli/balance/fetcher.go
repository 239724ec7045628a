package balance

import (
	"context"
	"fmt"

	"CyberCasino/internal/cli/api"
)

// Source is the subset of the API client the fetcher needs.
type Source interface {
	Balance(ctx context.Context, token string) (int64, error)
}

// Fetcher resolves the cyber token balance for an access token.
// It keeps no state and can be called concurrently.
type Fetcher struct {
	src Source
}

// NewFetcher creates a Fetcher.
func NewFetcher(src Source) *Fetcher {
	return &Fetcher{src: src}
}

// Fetch returns (balance, true, nil) on success. An absent token is the idle state:
// it returns (0, false, nil) without touching the network.
// Errors match api.ErrUnauthorized or api.ErrNetwork.
func (f *Fetcher) Fetch(ctx context.Context, token string) (int64, bool, error) {
	if token == "" {
		return 0, false, nil
	}
	n, err := f.src.Balance(ctx, token)
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, false, fmt.Errorf("%w: negative balance %d in response", api.ErrNetwork, n)
	}
	return n, true, nil
}
