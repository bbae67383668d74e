package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ContextKey - тип для ключей контекста.
type ContextKey string

const (
	// UserIDKey - ключ для хранения ID пользователя в контексте.
	UserIDKey ContextKey = "user_id"
	// UsernameKey - ключ для хранения имени пользователя в контексте.
	UsernameKey ContextKey = "username"
)

// JWTMiddleware создаёт middleware для проверки JWT токена.
// Любой сбой проверки - отсутствующий заголовок, битый токен, плохая
// подпись, истёкший срок - даёт один и тот же пустой 403 без уточнений.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractTokenFromHeader(c)
			if token == "" {
				return c.NoContent(http.StatusForbidden)
			}

			claims, err := ValidateToken(token, secret)
			if err != nil {
				return c.NoContent(http.StatusForbidden)
			}

			// Сохранение данных пользователя в контексте
			c.Set(string(UserIDKey), claims.UserID)
			c.Set(string(UsernameKey), claims.Username)

			return next(c)
		}
	}
}

// extractTokenFromHeader извлекает токен из заголовка Authorization.
func extractTokenFromHeader(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	// Проверка формата "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}

	return ""
}
