package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/agamariel/veloservice/internal/services"
	"github.com/agamariel/veloservice/internal/storage"
	"github.com/labstack/echo/v4"
)

// UserHandler обрабатывает HTTP-запросы для работы с пользователями.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register обрабатывает POST /register.
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	// Парсинг JSON body
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Request Format"})
	}

	user, err := h.userService.Register(c.Request().Context(), req.Username, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrMissingUserFields) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing Required Fields"})
		}
		if errors.Is(err, storage.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Username Already Exists"})
		}
		c.Logger().Errorf("failed to register user: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "New User Created",
		"userId":  user.ID,
	})
}

// Login обрабатывает POST /login.
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	// Парсинг JSON body
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Request Format"})
	}

	token, err := h.userService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "Username and Password Required"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"message": "User Not Found"})
		case errors.Is(err, services.ErrInvalidPassword):
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid Password"})
		default:
			c.Logger().Errorf("failed to login user: %v", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, models.LoginResponse{AccessToken: token})
}
