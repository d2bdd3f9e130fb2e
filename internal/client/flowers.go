package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/asquebay/flower-shop-service/internal/model"
)

// FlowerClient — типизированный клиент коллекции /api/flowers
// выполняет только сетевые вызовы; кэша он не касается
type FlowerClient struct {
	c *Client
}

// NewFlowerClient создаёт клиент каталога поверх базового клиента API
func NewFlowerClient(c *Client) *FlowerClient {
	return &FlowerClient{c: c}
}

// List получает полную текущую коллекцию товаров
func (f *FlowerClient) List(ctx context.Context) ([]model.Flower, error) {
	var out []model.Flower
	if err := f.c.do(ctx, http.MethodGet, "/api/flowers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get получает один товар по id
func (f *FlowerClient) Get(ctx context.Context, id string) (model.Flower, error) {
	var out model.Flower
	if err := f.c.do(ctx, http.MethodGet, "/api/flowers/"+url.PathEscape(id), nil, &out); err != nil {
		return model.Flower{}, err
	}
	return out, nil
}

// Create отправляет payload без id; сервер назначает id и возвращает товар целиком
func (f *FlowerClient) Create(ctx context.Context, payload model.CreateFlower) (model.Flower, error) {
	var out model.Flower
	if err := f.c.do(ctx, http.MethodPost, "/api/flowers", payload, &out); err != nil {
		return model.Flower{}, err
	}
	return out, nil
}

// Update отправляет частичный payload; сервер возвращает полный обновлённый товар
func (f *FlowerClient) Update(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error) {
	var out model.Flower
	if err := f.c.do(ctx, http.MethodPatch, "/api/flowers/"+url.PathEscape(id), payload, &out); err != nil {
		return model.Flower{}, err
	}
	return out, nil
}

// Delete удаляет товар по id
func (f *FlowerClient) Delete(ctx context.Context, id string) error {
	return f.c.do(ctx, http.MethodDelete, "/api/flowers/"+url.PathEscape(id), nil, nil)
}
