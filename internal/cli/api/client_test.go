package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_SuccessSendsCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, PathLogin, r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var c Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.Equal(t, "alice", c.Username)
		assert.Equal(t, "correct-pw", c.Password)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"abc123"}`))
	}))
	defer ts.Close()

	tok, err := New(ts.URL+"/").Login(context.Background(), "alice", "correct-pw")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)
}

func TestLogin_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, "invalid credentials"},
		{"server error", http.StatusInternalServerError, "boom"},
		{"empty token", http.StatusOK, `{"access_token":""}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			tok, err := New(ts.URL).Login(context.Background(), "alice", "wrong-pw")
			assert.Empty(t, tok)
			assert.ErrorIs(t, err, ErrAuthentication)
		})
	}
}

func TestLogin_NetworkErrorIsAuthenticationAndNetwork(t *testing.T) {
	_, err := New("http://127.0.0.1:1").Login(context.Background(), "a", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestRegister_CreatedAndConflict(t *testing.T) {
	conflict := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathRegister, r.URL.Path)
		if conflict {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"access_token":"tok-new"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	tok, err := c.Register(context.Background(), "bob", "pwd")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)

	conflict = true
	_, err = c.Register(context.Background(), "bob", "pwd")
	assert.ErrorIs(t, err, ErrLoginTaken)
}

func TestBalance_SendsBearerAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathBalance, r.URL.Path)
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"cyber_tokens":500}`))
	}))
	defer ts.Close()

	n, err := New(ts.URL).Balance(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(500), n)
}

func TestBalance_ErrorClasses(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401", http.StatusUnauthorized, "expired", ErrUnauthorized},
		{"403", http.StatusForbidden, "", ErrUnauthorized},
		{"500", http.StatusInternalServerError, "boom", ErrNetwork},
		{"bad json", http.StatusOK, "{", ErrNetwork},
		{"missing field", http.StatusOK, `{"other":1}`, ErrNetwork},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			_, err := New(ts.URL).Balance(context.Background(), "tok")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestBalance_StatusErrorDetails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Balance(context.Background(), "tok")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "maintenance", se.Body)
}

func TestBalance_NetworkAndTimeout(t *testing.T) {
	_, err := New("http://127.0.0.1:1").Balance(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNetwork)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"cyber_tokens":1}`))
	}))
	defer ts.Close()
	_, err = New(ts.URL, WithTimeout(20*time.Millisecond)).Balance(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Contains(t, Describe(err), "timeout")
}

func TestBalance_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(ts.URL).Balance(ctx, "tok")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlaySlot_ResultAndErrors(t *testing.T) {
	status := http.StatusOK
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PathSlotPlay, r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var req map[string]int64
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, int64(25), req["bet_amount"])
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"result":{"round_id":"r1","balance":475}}`))
		}
	}))
	defer ts.Close()
	c := New(ts.URL)

	res, err := c.PlaySlot(context.Background(), "tok", 25)
	require.NoError(t, err)
	assert.Equal(t, "r1", res["round_id"])

	status = http.StatusPaymentRequired
	_, err = c.PlaySlot(context.Background(), "tok", 25)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	status = http.StatusBadRequest
	_, err = c.PlaySlot(context.Background(), "tok", 25)
	assert.ErrorIs(t, err, ErrInvalidBet)

	status = http.StatusUnauthorized
	_, err = c.PlaySlot(context.Background(), "tok", 25)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("http://[::1").Balance(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNetwork)
}
