package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrBrandNotFound = errors.New("brand not found")
)

// PostgresCatalogStorage читает справочники марок и услуг из PostgreSQL.
// Справочники в рамках сервиса не изменяются.
type PostgresCatalogStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalogStorage создаёт новый экземпляр PostgresCatalogStorage.
func NewPostgresCatalogStorage(pool *pgxpool.Pool) *PostgresCatalogStorage {
	return &PostgresCatalogStorage{pool: pool}
}

// GetBrandByName ищет марку по точному совпадению имени.
func (s *PostgresCatalogStorage) GetBrandByName(ctx context.Context, name string) (*models.Brand, error) {
	query := `SELECT id, name FROM brands WHERE name = $1`

	brand := &models.Brand{}
	err := s.pool.QueryRow(ctx, query, name).Scan(&brand.ID, &brand.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand by name: %w", err)
	}

	return brand, nil
}

// GetServicesByNames возвращает услуги, имена которых входят в запрошенный
// набор. Дубликаты имён схлопываются на уровне выборки: вызывающая
// сторона сверяет количество найденного с количеством запрошенного.
func (s *PostgresCatalogStorage) GetServicesByNames(ctx context.Context, names []string) ([]models.Service, error) {
	query := `SELECT id, name FROM services WHERE name = ANY($1) ORDER BY name`

	rows, err := s.pool.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var svc models.Service
		if err := rows.Scan(&svc.ID, &svc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return services, nil
}
