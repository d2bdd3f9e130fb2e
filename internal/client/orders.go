package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/asquebay/flower-shop-service/internal/model"
)

// OrderClient — типизированный клиент коллекции /api/orders
type OrderClient struct {
	c *Client
}

// NewOrderClient создаёт клиент заказов поверх базового клиента API
func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

// List получает полную текущую коллекцию заказов
func (o *OrderClient) List(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := o.c.do(ctx, http.MethodGet, "/api/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get получает один заказ по id
func (o *OrderClient) Get(ctx context.Context, id string) (model.Order, error) {
	var out model.Order
	if err := o.c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Create отправляет payload без id; сервер назначает id, метки времени
// и возвращает заказ целиком
func (o *OrderClient) Create(ctx context.Context, payload model.CreateOrder) (model.Order, error) {
	var out model.Order
	if err := o.c.do(ctx, http.MethodPost, "/api/orders", payload, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Update отправляет частичный payload; сервер возвращает полный обновлённый заказ
func (o *OrderClient) Update(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error) {
	var out model.Order
	if err := o.c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id), payload, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// UpdateStatus меняет только статус заказа через PATCH /api/orders/{id}/status
func (o *OrderClient) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	var out model.Order
	payload := model.UpdateOrderStatus{Status: status}
	if err := o.c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", payload, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Delete удаляет заказ по id
func (o *OrderClient) Delete(ctx context.Context, id string) error {
	return o.c.do(ctx, http.MethodDelete, "/api/orders/"+url.PathEscape(id), nil, nil)
}
