package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/agamariel/veloservice/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidBrand    = errors.New("invalid brand")
	ErrInvalidServices = errors.New("one or more invalid services")
	ErrMissingComment  = errors.New("user and comment are required")
)

// OrderService определяет интерфейс работы с заказами.
type OrderService interface {
	Create(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error
	AddComment(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderServiceImpl реализует OrderService.
type OrderServiceImpl struct {
	orderStorage   OrderStorage
	catalogStorage CatalogStorage
}

// NewOrderService создаёт новый сервис заказов.
func NewOrderService(orderStorage OrderStorage, catalogStorage CatalogStorage) *OrderServiceImpl {
	return &OrderServiceImpl{
		orderStorage:   orderStorage,
		catalogStorage: catalogStorage,
	}
}

// Create валидирует запрос, сверяет марку и услуги со справочниками
// и сохраняет собранный заказ.
func (s *OrderServiceImpl) Create(ctx context.Context, req models.CreateOrderRequest) (uuid.UUID, error) {
	order, err := s.compose(ctx, req.Name, req.Brand, req.Year, req.ReceivedDate, req.Breakdown, req.Services)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.orderStorage.Create(ctx, order); err != nil {
		return uuid.Nil, fmt.Errorf("create order: %w", err)
	}

	return order.ID, nil
}

// Get возвращает заказ по идентификатору.
func (s *OrderServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.orderStorage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// List возвращает заказы по фильтру.
func (s *OrderServiceImpl) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	orders, err := s.orderStorage.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	if orders == nil {
		orders = []*models.Order{}
	}

	return orders, nil
}

// Update заново валидирует и собирает заказ, после чего заменяет все его
// поля кроме комментариев. Валидация выполняется до проверки существования
// заказа: несуществующий id даёт 404 только после успешной сверки справочников.
func (s *OrderServiceImpl) Update(ctx context.Context, id uuid.UUID, req models.UpdateOrderRequest) error {
	// В запросе на обновление услуги приходят объектами {name}
	serviceNames := make([]string, 0, len(req.Services))
	for _, svc := range req.Services {
		serviceNames = append(serviceNames, svc.Name)
	}

	order, err := s.compose(ctx, req.Name, req.Brand, req.Year, req.ReceivedDate, req.Breakdown, serviceNames)
	if err != nil {
		return err
	}

	if err := s.orderStorage.Replace(ctx, id, order); err != nil {
		return err
	}

	return nil
}

// AddComment добавляет комментарий к заказу. Идентификатор и отметка
// времени назначаются сервером.
func (s *OrderServiceImpl) AddComment(ctx context.Context, id uuid.UUID, user, comment string) (uuid.UUID, error) {
	if user == "" || comment == "" {
		return uuid.Nil, ErrMissingComment
	}

	newComment := models.Comment{
		CommentID: uuid.New(),
		User:      user,
		Comment:   comment,
		Date:      time.Now().UTC(),
	}

	if err := s.orderStorage.AppendComment(ctx, id, newComment); err != nil {
		return uuid.Nil, err
	}

	return newComment.CommentID, nil
}

// Delete удаляет заказ по идентификатору.
func (s *OrderServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderStorage.Delete(ctx, id)
}

// compose проверяет обязательные поля, разрешает марку и услуги по
// справочникам и собирает нормализованный заказ со встроенными снимками
// {id, name}. Клиентским идентификаторам не доверяем: в заказ попадают
// только значения из справочников.
func (s *OrderServiceImpl) compose(ctx context.Context, name, brandName string, year int, receivedDate, breakdown string, serviceNames []string) (*models.Order, error) {
	if name == "" || brandName == "" || year == 0 ||
		receivedDate == "" || breakdown == "" || len(serviceNames) == 0 {
		return nil, ErrMissingFields
	}

	brand, err := s.catalogStorage.GetBrandByName(ctx, brandName)
	if err != nil {
		if errors.Is(err, storage.ErrBrandNotFound) {
			return nil, ErrInvalidBrand
		}
		return nil, fmt.Errorf("lookup brand: %w", err)
	}

	resolved, err := s.catalogStorage.GetServicesByNames(ctx, serviceNames)
	if err != nil {
		return nil, fmt.Errorf("lookup services: %w", err)
	}

	// Сверка количества: нераспознанные имена и дубликаты в запросе
	// дают расхождение и отклоняют заказ целиком.
	if len(resolved) != len(serviceNames) {
		return nil, ErrInvalidServices
	}

	serviceRefs := make([]models.ServiceRef, 0, len(resolved))
	for _, svc := range resolved {
		serviceRefs = append(serviceRefs, models.ServiceRef{ID: svc.ID, Name: svc.Name})
	}

	return &models.Order{
		Name:         name,
		Brand:        models.BrandRef{ID: brand.ID, Name: brand.Name},
		Year:         year,
		ReceivedDate: receivedDate,
		Breakdown:    breakdown,
		Services:     serviceRefs,
	}, nil
}
