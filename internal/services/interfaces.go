package services

import (
	"context"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/google/uuid"
)

// OrderStorage определяет интерфейс для работы с заказами.
type OrderStorage interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	Replace(ctx context.Context, id uuid.UUID, order *models.Order) error
	AppendComment(ctx context.Context, id uuid.UUID, comment models.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogStorage определяет интерфейс чтения справочников марок и услуг.
type CatalogStorage interface {
	GetBrandByName(ctx context.Context, name string) (*models.Brand, error)
	GetServicesByNames(ctx context.Context, names []string) ([]models.Service, error)
}

// UserStorage определяет интерфейс для работы с пользователями.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
