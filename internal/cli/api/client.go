package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// API paths of the CyberCasino backend.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
	PathBalance  = "/users/me/tokens"
	PathSlotPlay = "/games/slot/play"
)

// maxBodyInError ограничивает размер тела ответа, попадающего в текст ошибки.
const maxBodyInError = 200

// Credentials — тело запроса логина/регистрации. Не сохраняется и не логируется.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type balanceResponse struct {
	CyberTokens *int64 `json:"cyber_tokens"`
}

type playRequest struct {
	BetAmount int64 `json:"bet_amount"`
}

// PlayResult is the opaque result object of a slot round.
type PlayResult map[string]any

type playResponse struct {
	Result PlayResult `json:"result"`
}

// Client talks to the CyberCasino HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithTransport overrides the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for baseURL (scheme://host:port).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login обменивает учётные данные на access token.
// Любая сетевая ошибка или не-2xx ответ возвращается как ErrAuthentication.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	return c.issueToken(ctx, PathLogin, Credentials{Username: username, Password: password})
}

// Register создаёт пользователя и возвращает выданный access token.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	return c.issueToken(ctx, PathRegister, Credentials{Username: username, Password: password})
}

func (c *Client) issueToken(ctx context.Context, path string, creds Credentials) (string, error) {
	status, body, err := c.doJSON(ctx, c.http, http.MethodPost, path, creds)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if status == http.StatusConflict && path == PathRegister {
		return "", ErrLoginTaken
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("%w: %w", ErrAuthentication, newStatusError(status, body))
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrAuthentication, err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access_token in response", ErrAuthentication)
	}
	return tr.AccessToken, nil
}

// Balance запрашивает количество cyber tokens для токена.
func (c *Client) Balance(ctx context.Context, token string) (int64, error) {
	status, body, err := c.doJSON(ctx, c.bearer(token), http.MethodGet, PathBalance, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if err := classifyStatus(status, body); err != nil {
		return 0, err
	}
	var br balanceResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return 0, fmt.Errorf("%w: decode balance: %v", ErrNetwork, err)
	}
	if br.CyberTokens == nil {
		return 0, fmt.Errorf("%w: cyber_tokens missing in response", ErrNetwork)
	}
	return *br.CyberTokens, nil
}

// PlaySlot places a bet on the slot game and returns the round result.
func (c *Client) PlaySlot(ctx context.Context, token string, bet int64) (PlayResult, error) {
	status, body, err := c.doJSON(ctx, c.bearer(token), http.MethodPost, PathSlotPlay, playRequest{BetAmount: bet})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	switch status {
	case http.StatusPaymentRequired:
		return nil, ErrInsufficientFunds
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBet, trimBody(body))
	}
	if err := classifyStatus(status, body); err != nil {
		return nil, err
	}
	var pr playResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("%w: decode play result: %v", ErrNetwork, err)
	}
	if pr.Result == nil {
		pr.Result = PlayResult{}
	}
	return pr.Result, nil
}

// bearer returns an http.Client that authenticates every request with token.
func (c *Client) bearer(token string) *http.Client {
	return &http.Client{
		Timeout: c.http.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.http.Transport,
		},
	}
}

func (c *Client) doJSON(ctx context.Context, hc *http.Client, method, path string, payload any) (int, []byte, error) {
	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debugw("request failed", "method", method, "path", path, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	c.logger.Debugw("request done",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)
	return resp.StatusCode, body, nil
}

func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status <= 299:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, newStatusError(status, body))
	default:
		return fmt.Errorf("%w: %w", ErrNetwork, newStatusError(status, body))
	}
}

func newStatusError(status int, body []byte) *StatusError {
	return &StatusError{Code: status, Body: trimBody(body)}
}

func trimBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInError {
		s = s[:maxBodyInError] + "..."
	}
	return s
}
