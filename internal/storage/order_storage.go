package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agamariel/veloservice/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

const orderColumns = `id, name, brand, year, received_date, breakdown, services, comments, created_at, updated_at`

// PostgresOrderStorage реализует OrderStorage для PostgreSQL.
// Снимки марки и услуг, а также комментарии хранятся в JSONB-колонках
// строки заказа и читаются/пишутся целиком.
type PostgresOrderStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderStorage создаёт новый экземпляр PostgresOrderStorage.
func NewPostgresOrderStorage(pool *pgxpool.Pool) *PostgresOrderStorage {
	return &PostgresOrderStorage{pool: pool}
}

// Create создаёт новый заказ.
func (s *PostgresOrderStorage) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, name, brand, year, received_date, breakdown, services, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, '[]'::jsonb, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx, query,
		order.ID,
		order.Name,
		order.Brand,
		order.Year,
		order.ReceivedDate,
		order.Breakdown,
		order.Services,
	).Scan(&order.CreatedAt, &order.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID возвращает заказ по идентификатору.
func (s *PostgresOrderStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	return scanOrder(s.pool.QueryRow(ctx, query, id))
}

// List возвращает заказы, подходящие под фильтр. Все условия - точное
// совпадение; услуга ищется по имени внутри JSONB-снимка.
func (s *PostgresOrderStorage) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`

	var conds []string
	var args []interface{}

	if filter.Name != "" {
		args = append(args, filter.Name)
		conds = append(conds, fmt.Sprintf("name = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conds = append(conds, fmt.Sprintf("brand->>'name' = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.ReceivedDate != "" {
		args = append(args, filter.ReceivedDate)
		conds = append(conds, fmt.Sprintf("received_date = $%d", len(args)))
	}
	if filter.Service != "" {
		args = append(args, filter.Service)
		conds = append(conds, fmt.Sprintf("services @> jsonb_build_array(jsonb_build_object('name', $%d::text))", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return orders, nil
}

// Replace заменяет все поля заказа кроме комментариев.
func (s *PostgresOrderStorage) Replace(ctx context.Context, id uuid.UUID, order *models.Order) error {
	query := `
		UPDATE orders
		SET name = $1, brand = $2, year = $3, received_date = $4, breakdown = $5, services = $6, updated_at = NOW()
		WHERE id = $7
	`

	result, err := s.pool.Exec(ctx, query,
		order.Name,
		order.Brand,
		order.Year,
		order.ReceivedDate,
		order.Breakdown,
		order.Services,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to replace order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// AppendComment дописывает комментарий в конец массива комментариев заказа.
func (s *PostgresOrderStorage) AppendComment(ctx context.Context, id uuid.UUID, comment models.Comment) error {
	query := `
		UPDATE orders
		SET comments = comments || $1::jsonb, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.pool.Exec(ctx, query, comment, id)
	if err != nil {
		return fmt.Errorf("failed to append comment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete удаляет заказ по идентификатору.
func (s *PostgresOrderStorage) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrder помогает читать заказ из строки результата.
func scanOrder(row pgx.Row) (*models.Order, error) {
	var order models.Order

	err := row.Scan(
		&order.ID,
		&order.Name,
		&order.Brand,
		&order.Year,
		&order.ReceivedDate,
		&order.Breakdown,
		&order.Services,
		&order.Comments,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	return &order, nil
}
