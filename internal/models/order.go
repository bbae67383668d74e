package models

import (
	"time"

	"github.com/google/uuid"
)

// BrandRef - копия справочной записи марки, встроенная в заказ.
// Снимок фиксируется в момент записи и при переименовании марки не обновляется.
type BrandRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ServiceRef - копия справочной записи услуги, встроенная в заказ.
type ServiceRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Comment - комментарий сотрудника к заказу.
type Comment struct {
	CommentID uuid.UUID `json:"commentId"`
	User      string    `json:"user"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// Order представляет заказ на ремонт велосипеда.
type Order struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Brand        BrandRef     `json:"brand"`
	Year         int          `json:"year"`
	ReceivedDate string       `json:"receivedDate"`
	Breakdown    string       `json:"breakdown"`
	Services     []ServiceRef `json:"services"`
	Comments     []Comment    `json:"comments"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}

// CreateOrderRequest - запрос на создание заказа.
// Услуги передаются списком имён.
type CreateOrderRequest struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Year         int      `json:"year"`
	ReceivedDate string   `json:"receivedDate"`
	Breakdown    string   `json:"breakdown"`
	Services     []string `json:"services"`
}

// ServiceName - элемент списка услуг в запросе на обновление.
type ServiceName struct {
	Name string `json:"name"`
}

// UpdateOrderRequest - запрос на обновление заказа.
// В отличие от создания услуги приходят объектами {name} - форма
// сохранена как есть ради совместимости контракта.
type UpdateOrderRequest struct {
	Name         string        `json:"name"`
	Brand        string        `json:"brand"`
	Year         int           `json:"year"`
	ReceivedDate string        `json:"receivedDate"`
	Breakdown    string        `json:"breakdown"`
	Services     []ServiceName `json:"services"`
}

// AddCommentRequest - запрос на добавление комментария к заказу.
type AddCommentRequest struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
}

// OrderFilter описывает фильтры списка заказов. Все поля - точное
// совпадение; пустые значения не участвуют в выборке.
type OrderFilter struct {
	Name         string
	Brand        string
	Year         *int
	ReceivedDate string
	Service      string
}

// OrderResponse - представление заказа для одиночного GET:
// верхнеуровневый идентификатор скрыт, идентификаторы вложенных
// справочных записей сохраняются.
type OrderResponse struct {
	Name         string       `json:"name"`
	Brand        BrandRef     `json:"brand"`
	Year         int          `json:"year"`
	ReceivedDate string       `json:"receivedDate"`
	Breakdown    string       `json:"breakdown"`
	Services     []ServiceRef `json:"services"`
	Comments     []Comment    `json:"comments"`
}

// ErrorResponse - тело ошибки для клиента.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse - тело успешного ответа с сообщением.
type MessageResponse struct {
	Message string `json:"message"`
}
