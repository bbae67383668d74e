package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/agamariel/veloservice/internal/services"
	"github.com/agamariel/veloservice/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler обрабатывает запросы, связанные с заказами.
type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders обрабатывает GET /orders.
// Фильтры в query: name, brand, year, receivedDate, services - все по
// точному совпадению, year приводится к числу.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := models.OrderFilter{
		Name:         c.QueryParam("name"),
		Brand:        c.QueryParam("brand"),
		ReceivedDate: c.QueryParam("receivedDate"),
		Service:      c.QueryParam("services"),
	}

	if yearParam := c.QueryParam("year"); yearParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			c.Logger().Errorf("failed to parse year filter: %v", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
		}
		filter.Year = &year
	}

	orders, err := h.orderService.List(c.Request().Context(), filter)
	if err != nil {
		c.Logger().Errorf("failed to list orders: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
	})
}

// GetOrder обрабатывает GET /orders/:id.
// В ответе верхнеуровневый идентификатор заказа опускается,
// идентификаторы встроенных справочных записей остаются.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Битый идентификатор - неожиданная ошибка, детали не раскрываем
		c.Logger().Errorf("failed to parse order id: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	order, err := h.orderService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order Not Found"})
		}
		c.Logger().Errorf("failed to get order: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, mapOrderToResponse(order))
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Request Format"})
	}

	orderID, err := h.orderService.Create(c.Request().Context(), req)
	if err != nil {
		return h.mapValidationError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "New Order Submitted",
		"orderId": orderID,
	})
}

// UpdateOrder обрабатывает PUT /orders/:id.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Logger().Errorf("failed to parse order id: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	var req models.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Request Format"})
	}

	if err := h.orderService.Update(c.Request().Context(), id, req); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order Not Found"})
		}
		return h.mapValidationError(c, err)
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Order ID %s Edited", id),
	})
}

// AddComment обрабатывает POST /orders/:id/comments.
func (h *OrderHandler) AddComment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Logger().Errorf("failed to parse order id: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	var req models.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Request Format"})
	}

	commentID, err := h.orderService.AddComment(c.Request().Context(), id, req.User, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingComment):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing Required Fields"})
		case errors.Is(err, storage.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order Not Found"})
		default:
			c.Logger().Errorf("failed to add comment: %v", err)
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Comment Added Successfully",
		"commentId": commentID,
	})
}

// DeleteOrder обрабатывает DELETE /orders/:id.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Logger().Errorf("failed to parse order id: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Order Not Found"})
		}
		c.Logger().Errorf("failed to delete order: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("Order ID %s Deleted", id),
	})
}

// mapValidationError переводит ошибки валидации/сборки заказа в HTTP-ответ.
func (h *OrderHandler) mapValidationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Missing Required Fields"})
	case errors.Is(err, services.ErrInvalidBrand):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid Brand"})
	case errors.Is(err, services.ErrInvalidServices):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "One Or More Invalid Services"})
	default:
		c.Logger().Errorf("order operation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
	}
}

// mapOrderToResponse преобразует domain модель заказа в DTO одиночного GET.
func mapOrderToResponse(order *models.Order) *models.OrderResponse {
	comments := order.Comments
	if comments == nil {
		comments = []models.Comment{}
	}

	return &models.OrderResponse{
		Name:         order.Name,
		Brand:        order.Brand,
		Year:         order.Year,
		ReceivedDate: order.ReceivedDate,
		Breakdown:    order.Breakdown,
		Services:     order.Services,
		Comments:     comments,
	}
}
