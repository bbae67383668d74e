package handlers

import (
	"net/http"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/labstack/echo/v4"
)

// Health обрабатывает GET / и подтверждает, что сервис запущен.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Server is running"})
}
