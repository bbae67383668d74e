package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/agamariel/veloservice/internal/services"
	"github.com/agamariel/veloservice/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MockOrderService - мок для тестирования handlers
type MockOrderService struct {
	CreateFunc     func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListFunc       func(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	UpdateFunc     func(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error
	AddCommentFunc func(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *MockOrderService) Create(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return uuid.New(), nil
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, storage.ErrOrderNotFound
}

func (m *MockOrderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Order{}, nil
}

func (m *MockOrderService) Update(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil
}

func (m *MockOrderService) AddComment(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error) {
	if m.AddCommentFunc != nil {
		return m.AddCommentFunc(ctx, id, user, comment)
	}
	return uuid.New(), nil
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func newOrderContext(t *testing.T, method, path, body string, pathID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pathID != "" {
		c.SetParamNames("id")
		c.SetParamValues(pathID)
	}
	return c, rec
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:   uuid.New(),
		Name: "Ivan",
		Brand: models.BrandRef{
			ID:   uuid.New(),
			Name: "Brompton",
		},
		Year:         2021,
		ReceivedDate: "11-02-2024",
		Breakdown:    "worn brake pads",
		Services: []models.ServiceRef{
			{ID: uuid.New(), Name: "Change Tires"},
		},
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	t.Run("returns orders under orders key", func(t *testing.T) {
		order := sampleOrder()
		mockService := &MockOrderService{
			ListFunc: func(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
				return []*models.Order{order}, nil
			},
		}

		c, rec := newOrderContext(t, http.MethodGet, "/orders", "", "")
		handler := NewOrderHandler(mockService)
		if err := handler.ListOrders(c); err != nil {
			t.Fatalf("ListOrders() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp struct {
			Orders []models.Order `json:"orders"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(resp.Orders) != 1 {
			t.Fatalf("orders count = %d, want 1", len(resp.Orders))
		}
		// В списке идентификаторы заказов присутствуют
		if resp.Orders[0].ID != order.ID {
			t.Errorf("order id = %v, want %v", resp.Orders[0].ID, order.ID)
		}
	})

	t.Run("parses filters from query", func(t *testing.T) {
		var gotFilter models.OrderFilter
		mockService := &MockOrderService{
			ListFunc: func(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
				gotFilter = filter
				return []*models.Order{}, nil
			},
		}

		c, rec := newOrderContext(t, http.MethodGet,
			"/orders?name=Ivan&brand=Brompton&year=2021&receivedDate=11-02-2024&services=Change+Tires", "", "")
		handler := NewOrderHandler(mockService)
		if err := handler.ListOrders(c); err != nil {
			t.Fatalf("ListOrders() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotFilter.Name != "Ivan" || gotFilter.Brand != "Brompton" ||
			gotFilter.ReceivedDate != "11-02-2024" || gotFilter.Service != "Change Tires" {
			t.Errorf("filter = %+v", gotFilter)
		}
		if gotFilter.Year == nil || *gotFilter.Year != 2021 {
			t.Errorf("year filter = %v, want 2021", gotFilter.Year)
		}
	})

	t.Run("non-numeric year", func(t *testing.T) {
		c, rec := newOrderContext(t, http.MethodGet, "/orders?year=abc", "", "")
		handler := NewOrderHandler(&MockOrderService{})
		if err := handler.ListOrders(c); err != nil {
			t.Fatalf("ListOrders() returned error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	t.Run("found, top-level id omitted", func(t *testing.T) {
		order := sampleOrder()
		mockService := &MockOrderService{
			GetFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
				return order, nil
			},
		}

		c, rec := newOrderContext(t, http.MethodGet, "/orders/"+order.ID.String(), "", order.ID.String())
		handler := NewOrderHandler(mockService)
		if err := handler.GetOrder(c); err != nil {
			t.Fatalf("GetOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if _, ok := resp["id"]; ok {
			t.Error("top-level id present in single-get response")
		}
		brand, ok := resp["brand"].(map[string]interface{})
		if !ok {
			t.Fatal("brand missing in response")
		}
		if brandID, ok := brand["id"].(string); !ok || brandID != order.Brand.ID.String() {
			t.Errorf("embedded brand id = %v, want %v", brand["id"], order.Brand.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockService := &MockOrderService{
			GetFunc: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
				return nil, storage.ErrOrderNotFound
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodGet, "/orders/"+id, "", id)
		handler := NewOrderHandler(mockService)
		if err := handler.GetOrder(c); err != nil {
			t.Fatalf("GetOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		c, rec := newOrderContext(t, http.MethodGet, "/orders/not-a-uuid", "", "not-a-uuid")
		handler := NewOrderHandler(&MockOrderService{})
		if err := handler.GetOrder(c); err != nil {
			t.Fatalf("GetOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	validBody := `{"name":"Ivan","brand":"Brompton","year":2021,"receivedDate":"11-02-2024","breakdown":"worn brake pads","services":["Change Tires"]}`

	tests := []struct {
		name           string
		requestBody    string
		mockService    *MockOrderService
		expectedStatus int
		expectedError  string
	}{
		{
			name:        "success",
			requestBody: validBody,
			mockService: &MockOrderService{
				CreateFunc: func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
					return uuid.New(), nil
				},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "missing fields",
			requestBody: `{"name":"Ivan"}`,
			mockService: &MockOrderService{
				CreateFunc: func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
					return uuid.Nil, services.ErrMissingFields
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Missing Required Fields",
		},
		{
			name:        "invalid brand",
			requestBody: validBody,
			mockService: &MockOrderService{
				CreateFunc: func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
					return uuid.Nil, services.ErrInvalidBrand
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid Brand",
		},
		{
			name:        "invalid services",
			requestBody: validBody,
			mockService: &MockOrderService{
				CreateFunc: func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
					return uuid.Nil, services.ErrInvalidServices
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "One Or More Invalid Services",
		},
		{
			name:        "internal error",
			requestBody: validBody,
			mockService: &MockOrderService{
				CreateFunc: func(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
					return uuid.Nil, errors.New("database error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newOrderContext(t, http.MethodPost, "/orders", tt.requestBody, "")
			handler := NewOrderHandler(tt.mockService)
			if err := handler.CreateOrder(c); err != nil {
				t.Fatalf("CreateOrder() returned error: %v", err)
			}

			if rec.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.expectedStatus)
			}

			if tt.expectedError != "" {
				var resp models.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if resp.Error != tt.expectedError {
					t.Errorf("error = %q, want %q", resp.Error, tt.expectedError)
				}
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp map[string]interface{}
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to parse response: %v", err)
				}
				if resp["message"] != "New Order Submitted" {
					t.Errorf("message = %v, want %q", resp["message"], "New Order Submitted")
				}
				if _, ok := resp["orderId"]; !ok {
					t.Error("orderId missing in response")
				}
			}
		})
	}
}

func TestOrderHandler_UpdateOrder(t *testing.T) {
	validBody := `{"name":"Ivan","brand":"Brompton","year":2021,"receivedDate":"11-02-2024","breakdown":"worn brake pads","services":[{"name":"Change Tires"}]}`

	t.Run("success", func(t *testing.T) {
		var gotReq models.UpdateOrderRequest
		mockService := &MockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error {
				gotReq = req
				return nil
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPut, "/orders/"+id, validBody, id)
		handler := NewOrderHandler(mockService)
		if err := handler.UpdateOrder(c); err != nil {
			t.Fatalf("UpdateOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		// Услуги в обновлении приходят объектами {name}
		if len(gotReq.Services) != 1 || gotReq.Services[0].Name != "Change Tires" {
			t.Errorf("services = %+v", gotReq.Services)
		}

		var resp models.MessageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if !strings.Contains(resp.Message, "Edited") {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("not found after validation", func(t *testing.T) {
		mockService := &MockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error {
				return storage.ErrOrderNotFound
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPut, "/orders/"+id, validBody, id)
		handler := NewOrderHandler(mockService)
		if err := handler.UpdateOrder(c); err != nil {
			t.Fatalf("UpdateOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("invalid brand", func(t *testing.T) {
		mockService := &MockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error {
				return services.ErrInvalidBrand
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPut, "/orders/"+id, validBody, id)
		handler := NewOrderHandler(mockService)
		if err := handler.UpdateOrder(c); err != nil {
			t.Fatalf("UpdateOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestOrderHandler_AddComment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		commentID := uuid.New()
		mockService := &MockOrderService{
			AddCommentFunc: func(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error) {
				return commentID, nil
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPost, "/orders/"+id+"/comments",
			`{"user":"mechanic","comment":"front wheel trued"}`, id)
		handler := NewOrderHandler(mockService)
		if err := handler.AddComment(c); err != nil {
			t.Fatalf("AddComment() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp["commentId"] != commentID.String() {
			t.Errorf("commentId = %v, want %v", resp["commentId"], commentID)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		mockService := &MockOrderService{
			AddCommentFunc: func(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error) {
				return uuid.Nil, services.ErrMissingComment
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPost, "/orders/"+id+"/comments", `{"user":""}`, id)
		handler := NewOrderHandler(mockService)
		if err := handler.AddComment(c); err != nil {
			t.Fatalf("AddComment() returned error: %v", err)
		}

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("order not found", func(t *testing.T) {
		mockService := &MockOrderService{
			AddCommentFunc: func(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error) {
				return uuid.Nil, storage.ErrOrderNotFound
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodPost, "/orders/"+id+"/comments",
			`{"user":"mechanic","comment":"text"}`, id)
		handler := NewOrderHandler(mockService)
		if err := handler.AddComment(c); err != nil {
			t.Fatalf("AddComment() returned error: %v", err)
		}

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodDelete, "/orders/"+id, "", id)
		handler := NewOrderHandler(&MockOrderService{})
		if err := handler.DeleteOrder(c); err != nil {
			t.Fatalf("DeleteOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp models.MessageResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if !strings.Contains(resp.Message, "Deleted") {
			t.Errorf("message = %q", resp.Message)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockService := &MockOrderService{
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return storage.ErrOrderNotFound
			},
		}

		id := uuid.New().String()
		c, rec := newOrderContext(t, http.MethodDelete, "/orders/"+id, "", id)
		handler := NewOrderHandler(mockService)
		if err := handler.DeleteOrder(c); err != nil {
			t.Fatalf("DeleteOrder() returned error: %v", err)
		}

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}
