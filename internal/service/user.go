package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"CyberCasino/internal/model"
	"CyberCasino/internal/repo"
)

var (
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrEmptyCredentials   = errors.New("login and password are required")
	ErrUserNotFound       = errors.New("user not found")
)

// UserService — регистрация, вход и баланс пользователей.
type UserService struct {
	repo          repo.UserRepository
	initialTokens int64
}

// NewUserService создаёт сервис; initialTokens начисляются при регистрации.
func NewUserService(r repo.UserRepository, initialTokens int64) *UserService {
	return &UserService{repo: r, initialTokens: initialTokens}
}

// Register создаёт пользователя с bcrypt-хешем пароля и стартовым балансом.
func (s *UserService) Register(ctx context.Context, login, password string) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	existing, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, &model.User{
		Login:       login,
		Password:    string(hash),
		CyberTokens: s.initialTokens,
	})
}

// Login проверяет пароль. Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	if strings.TrimSpace(login) == "" || password == "" {
		return nil, ErrEmptyCredentials
	}
	user, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Balance возвращает количество cyber tokens пользователя.
func (s *UserService) Balance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return user.CyberTokens, nil
}
