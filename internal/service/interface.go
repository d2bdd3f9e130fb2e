package service

import (
	"context"

	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/store"
)

// FlowerAPI определяет контракт удалённой коллекции товаров
// сервис принимает интерфейсы, а не конкретные типы, для гибкости и тестируемости
type FlowerAPI interface {
	List(ctx context.Context) ([]model.Flower, error)
	Get(ctx context.Context, id string) (model.Flower, error)
	Create(ctx context.Context, payload model.CreateFlower) (model.Flower, error)
	Update(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error)
	Delete(ctx context.Context, id string) error
}

// OrderAPI определяет контракт удалённой коллекции заказов
type OrderAPI interface {
	List(ctx context.Context) ([]model.Order, error)
	Get(ctx context.Context, id string) (model.Order, error)
	Create(ctx context.Context, payload model.CreateOrder) (model.Order, error)
	Update(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (model.Order, error)
	Delete(ctx context.Context, id string) error
}

// Cache определяет контракт локального зеркала коллекции
// мутировать его имеет право только сервисный слой
type Cache[E store.Entity] interface {
	ReplaceAll(entities []E)
	Insert(entity E)
	ReplaceOne(id string, entity E)
	RemoveOne(id string)
	Items() []E
	GetByID(id string) (E, bool)
	Len() int
}
