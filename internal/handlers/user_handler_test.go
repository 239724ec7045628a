package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"CyberCasino/internal/config"
	"CyberCasino/internal/handlers"
	"CyberCasino/internal/middleware"
	"CyberCasino/internal/model"
	"CyberCasino/internal/repo"
	"CyberCasino/internal/service"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockRoundRepo struct{ mock.Mock }

func (m *mockRoundRepo) PlaceBet(ctx context.Context, userID, bet int64) (*model.SlotRound, error) {
	args := m.Called(ctx, userID, bet)
	if r, ok := args.Get(0).(*model.SlotRound); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.RoundRepository = (*mockRoundRepo)(nil)

// --- Helpers ---
const testSecret = "test-secret"

func newTestRouter(t *testing.T, ur repo.UserRepository, rr repo.RoundRepository) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour}
	logger := zap.NewNop().Sugar()

	userSvc := service.NewUserService(ur, 1000)
	gameSvc := service.NewGameService(rr, logger)

	h := handlers.NewHandler(userSvc, gameSvc, logger, cfg)
	return h.Router
}

func addBearer(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	tok, err := middleware.IssueToken(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
}

func decodeToken(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.NewDecoder(bytes.NewReader(body)).Decode(&resp)
	return resp.AccessToken
}

// --- Tests ---
func TestUser_Register(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, m, &mockRoundRepo{})

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()
		created := &model.User{ID: 42, Login: "john", CyberTokens: 1000}
		m.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *model.User) bool { return u.Login == "john" && u.Password != "" })).Return(created, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"john","password":"p"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		tok := decodeToken(t, rr.Body.Bytes())
		id, err := middleware.ParseToken(tok, testSecret)
		assert.NoError(t, err)
		assert.Equal(t, int64(42), id)
		m.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "john").Return(&model.User{ID: 1, Login: "john"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"username":"john","password":"p"}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		m.AssertExpectations(t)
	})

	t.Run("bad request", func(t *testing.T) {
		for _, body := range []string{"{", `{"username":"","password":"p"}`} {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})
}

func TestUser_Login(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, m, &mockRoundRepo{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)

	t.Run("ok", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: 2, Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"secret"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, decodeToken(t, rr.Body.Bytes()))
		m.AssertExpectations(t)
	})

	t.Run("unauthorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByLogin", mock.Anything, "alice").Return(&model.User{ID: 2, Login: "alice", Password: string(hash)}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"alice","password":"bad"}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		m.AssertExpectations(t)
	})
}

func TestUser_Tokens(t *testing.T) {
	m := new(mockUserRepo)
	router := newTestRouter(t, m, &mockRoundRepo{})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/me/tokens", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("authorized", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(77)).Return(&model.User{ID: 77, CyberTokens: 500}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/me/tokens", nil)
		addBearer(t, req, 77)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		var body struct {
			CyberTokens int64 `json:"cyber_tokens"`
		}
		_ = json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&body)
		assert.Equal(t, int64(500), body.CyberTokens)
	})

	t.Run("deleted user", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetUserByID", mock.Anything, int64(78)).Return((*model.User)(nil), gorm.ErrRecordNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/users/me/tokens", nil)
		addBearer(t, req, 78)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
