// Package display binds the session token to the balance shown to the user.
//
// A Binding subscribes to token changes, starts a balance fetch whenever a token
// becomes present or changes, and exposes the resulting view state. Every fetch is
// tagged with a generation number; a response is applied only while its generation
// is current and the binding is mounted, so out-of-order replies and replies that
// arrive after Close never reach the view.
package display

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"CyberCasino/internal/cli/api"
	"CyberCasino/internal/logging"
)

// ErrClosed is returned by Settled when the binding is closed while loading.
var ErrClosed = errors.New("display binding closed")

// Status of the balance view.
type Status int

const (
	StatusLoggedOut Status = iota
	StatusLoading
	StatusReady
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusLoggedOut:
		return "logged_out"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// State is a snapshot of the balance view. Balance is meaningful only for StatusReady;
// Err is set only for StatusUnknown.
type State struct {
	Status  Status
	Balance int64
	Err     error
}

// TokenSource is implemented by session.Store.
type TokenSource interface {
	Token() string
	Subscribe(fn func(token string)) (unsubscribe func())
}

// BalanceFetcher is implemented by balance.Fetcher.
type BalanceFetcher interface {
	Fetch(ctx context.Context, token string) (int64, bool, error)
}

// Option configures a Binding.
type Option func(*Binding)

// WithRender registers fn to receive every new state in order.
// fn runs while the binding is locked and must not call back into the Binding.
func WithRender(fn func(State)) Option {
	return func(b *Binding) { b.render = fn }
}

// WithUnauthorizedHandler registers fn to run when the current token is rejected.
// fn receives the rejected token and runs without internal locks held; by then the
// session may already hold a newer token, so fn must compare before clearing it.
func WithUnauthorizedHandler(fn func(token string)) Option {
	return func(b *Binding) { b.onUnauthorized = fn }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(b *Binding) { b.logger = l }
}

// Binding is the mounted balance view for one session.
type Binding struct {
	source         TokenSource
	fetcher        BalanceFetcher
	logger         *zap.SugaredLogger
	render         func(State)
	onUnauthorized func(token string)
	ctx            context.Context
	cancel         context.CancelFunc
	unsubscribe    func()
	wg             sync.WaitGroup

	mu          sync.Mutex
	state       State
	token       string
	gen         uint64
	started     bool
	closed      bool
	cancelFetch context.CancelFunc
	changed     chan struct{}
}

// Bind mounts a Binding: it subscribes to source and applies the current token.
// When the token is present the returned binding is already in StatusLoading.
func Bind(ctx context.Context, source TokenSource, fetcher BalanceFetcher, opts ...Option) *Binding {
	ctx, cancel := context.WithCancel(ctx)
	b := &Binding{
		source:  source,
		fetcher: fetcher,
		logger:  zap.NewNop().Sugar(),
		ctx:     ctx,
		cancel:  cancel,
		state:   State{Status: StatusLoggedOut},
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.unsubscribe = source.Subscribe(func(string) { b.refresh() })
	b.refresh()
	return b
}

// State returns the current view state.
func (b *Binding) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Settled blocks until the view leaves StatusLoading.
func (b *Binding) Settled(ctx context.Context) (State, error) {
	for {
		b.mu.Lock()
		st, ch, closed := b.state, b.changed, b.closed
		b.mu.Unlock()
		if st.Status != StatusLoading {
			return st, nil
		}
		if closed {
			return st, ErrClosed
		}
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ch:
		}
	}
}

// Wait blocks until every fetch started by the binding, including its unauthorized
// handler, has returned.
func (b *Binding) Wait() {
	b.wg.Wait()
}

// Close unmounts the binding. Responses that arrive later are dropped.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.gen++
	b.stopFetchLocked()
	close(b.changed)
	b.changed = make(chan struct{})
	b.mu.Unlock()

	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	b.cancel()
}

// refresh применяет текущий токен источника, а не значение из уведомления:
// уведомление могло устареть к моменту, когда binding получил блокировку.
func (b *Binding) refresh() {
	b.mu.Lock()
	token := b.source.Token()
	if b.closed || (b.started && token == b.token) {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.token = token
	b.gen++
	gen := b.gen
	b.stopFetchLocked()

	if token == "" {
		b.setLocked(State{Status: StatusLoggedOut})
		b.mu.Unlock()
		return
	}

	fctx, cancel := context.WithCancel(b.ctx)
	b.cancelFetch = cancel
	b.setLocked(State{Status: StatusLoading})
	b.wg.Add(1)
	b.mu.Unlock()

	go b.fetch(fctx, gen, token)
}

func (b *Binding) fetch(ctx context.Context, gen uint64, token string) {
	defer b.wg.Done()
	n, ok, err := b.fetcher.Fetch(ctx, token)

	b.mu.Lock()
	if b.closed || gen != b.gen {
		b.mu.Unlock()
		b.logger.Debugw("discarding stale balance response", "token", logging.MaskToken(token))
		return
	}
	b.stopFetchLocked()

	unauthorized := false
	switch {
	case err != nil:
		unauthorized = errors.Is(err, api.ErrUnauthorized)
		b.logger.Warnw("balance fetch failed", "token", logging.MaskToken(token), "error", err)
		b.setLocked(State{Status: StatusUnknown, Err: err})
	case !ok:
		b.setLocked(State{Status: StatusLoggedOut})
	default:
		b.setLocked(State{Status: StatusReady, Balance: n})
	}
	handler := b.onUnauthorized
	b.mu.Unlock()

	if unauthorized && handler != nil {
		handler(token)
	}
}

func (b *Binding) stopFetchLocked() {
	if b.cancelFetch != nil {
		b.cancelFetch()
		b.cancelFetch = nil
	}
}

func (b *Binding) setLocked(s State) {
	b.state = s
	close(b.changed)
	b.changed = make(chan struct{})
	if b.render != nil {
		b.render(s)
	}
}
