package models

import (
	"time"

	"github.com/google/uuid"
)

// User представляет зарегистрированного сотрудника мастерской.
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	FullName     string    `db:"full_name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// RegisterRequest - запрос на регистрацию пользователя.
type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// LoginRequest - запрос на аутентификацию пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse - ответ с токеном доступа.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
