package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/veloservice/internal/auth"
	"github.com/agamariel/veloservice/internal/models"
	"github.com/agamariel/veloservice/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingUserFields  = errors.New("username, full name and password are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
)

// UserService определяет интерфейс для работы с пользователями.
type UserService interface {
	Register(ctx context.Context, username, fullName, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// UserServiceImpl реализует UserService.
type UserServiceImpl struct {
	userStorage     UserStorage
	tokenSecret     string
	tokenExpiration time.Duration
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(userStorage UserStorage, tokenSecret string, tokenExpiration time.Duration) *UserServiceImpl {
	return &UserServiceImpl{
		userStorage:     userStorage,
		tokenSecret:     tokenSecret,
		tokenExpiration: tokenExpiration,
	}
}

// Register регистрирует нового пользователя.
func (s *UserServiceImpl) Register(ctx context.Context, username, fullName, password string) (*models.User, error) {
	if username == "" || fullName == "" || password == "" {
		return nil, ErrMissingUserFields
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: passwordHash,
	}

	err = s.userStorage.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrUsernameExists) {
			return nil, storage.ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login аутентифицирует пользователя и выдаёт токен доступа.
func (s *UserServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}

	user, err := s.userStorage.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", ErrInvalidPassword
	}

	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 1 * time.Hour
	}

	token, err := auth.GenerateToken(user, s.tokenSecret, exp)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
