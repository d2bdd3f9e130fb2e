package model

import (
	"errors"
	"time"
)

// ErrInvalidStatus возвращается, когда статус не входит в перечисление
var ErrInvalidStatus = errors.New("invalid order status")

// Status — статус жизненного цикла заказа
// переходы между статусами на этом уровне не ограничиваются:
// любой валидный статус может быть установлен через PATCH
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid проверяет, что статус входит в фиксированное перечисление
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Coordinates — геокоордината адреса доставки (подставляется геокодером)
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Order представляет полную модель заказа, включая позиции и данные доставки
type Order struct {
	ID              string       `json:"id"`
	CustomerName    string       `json:"customer_name" validate:"required"`
	CustomerPhone   string       `json:"customer_phone" validate:"required"`
	CustomerEmail   string       `json:"customer_email" validate:"omitempty,email"`
	DeliveryAddress string       `json:"delivery_address" validate:"required"`
	DeliveryDetails string       `json:"delivery_details,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	Items           []OrderItem  `json:"items" validate:"required,gt=0,dive"`
	Total           float64      `json:"total" validate:"gte=0"`
	Status          Status       `json:"status"`
	DeliveryDate    time.Time    `json:"delivery_date" validate:"required"`
	DeliveryTime    string       `json:"delivery_time" validate:"required"` // окно вида "10:00-12:00"
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// OrderItem представляет одну позицию заказа
// имя и цена товара фиксируются на момент оформления,
// чтобы последующее изменение каталога не меняло оформленные заказы
type OrderItem struct {
	FlowerID   string  `json:"flower_id" validate:"required"`
	FlowerName string  `json:"flower_name" validate:"required"`
	Quantity   int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"required,gt=0"`
}

// CreateOrder — payload на создание заказа: идентификатор и метки времени назначает сервер
type CreateOrder struct {
	CustomerName    string       `json:"customer_name" validate:"required"`
	CustomerPhone   string       `json:"customer_phone" validate:"required"`
	CustomerEmail   string       `json:"customer_email" validate:"omitempty,email"`
	DeliveryAddress string       `json:"delivery_address" validate:"required"`
	DeliveryDetails string       `json:"delivery_details,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	Items           []OrderItem  `json:"items" validate:"required,gt=0,dive"`
	Total           float64      `json:"total" validate:"gte=0"`
	Status          Status       `json:"status"`
	DeliveryDate    time.Time    `json:"delivery_date" validate:"required"`
	DeliveryTime    string       `json:"delivery_time" validate:"required"`
	Notes           string       `json:"notes,omitempty"`
}

// UpdateOrder — частичный payload для PATCH заказа
// указатели позволяют отличить "поле не передано" от "поле сброшено"
type UpdateOrder struct {
	CustomerName    *string      `json:"customer_name,omitempty"`
	CustomerPhone   *string      `json:"customer_phone,omitempty"`
	CustomerEmail   *string      `json:"customer_email,omitempty" validate:"omitempty,email"`
	DeliveryAddress *string      `json:"delivery_address,omitempty"`
	DeliveryDetails *string      `json:"delivery_details,omitempty"`
	Coordinates     *Coordinates `json:"coordinates,omitempty"`
	Items           *[]OrderItem `json:"items,omitempty" validate:"omitempty,gt=0,dive"`
	Total           *float64     `json:"total,omitempty" validate:"omitempty,gte=0"`
	Status          *Status      `json:"status,omitempty"`
	DeliveryDate    *time.Time   `json:"delivery_date,omitempty"`
	DeliveryTime    *string      `json:"delivery_time,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
}

// UpdateOrderStatus — тело запроса PATCH /api/orders/{id}/status
type UpdateOrderStatus struct {
	Status Status `json:"status" validate:"required"`
}

// EntityID возвращает уникальный идентификатор заказа для кэша
func (o Order) EntityID() string {
	return o.ID
}

// ItemsTotal считает сумму заказа по позициям: Σ quantity × unit_price
// инвариант Total == ItemsTotal() обеспечивается вызывающей стороной
// при оформлении заказа, а не кэшем
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += float64(it.Quantity) * it.UnitPrice
	}
	return sum
}

// Validate проверяет корректность структуры CreateOrder на основе тегов validate
// дополнительно проверяется, что статус входит в перечисление
func (c *CreateOrder) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Status != "" && !c.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Validate проверяет корректность частичного payload-а заказа
func (u *UpdateOrder) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}
	if u.Status != nil && !u.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Validate проверяет тело запроса смены статуса
func (s *UpdateOrderStatus) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if !s.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}
