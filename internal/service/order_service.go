package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asquebay/flower-shop-service/internal/model"
)

// OrderService связывает удалённую коллекцию заказов с локальным кэшем
// контракт тот же, что у FlowerService: подтверждение сервером — затем кэш
//
// конкурирующие обновления одного заказа не сериализуются: если два PATCH
// по одному id летят одновременно, в кэше останется тот, чей ответ пришёл
// позже (last-write-wins)
type OrderService struct {
	api   OrderAPI
	cache Cache[model.Order]
	log   *slog.Logger
}

// NewOrderService создаёт новый экземпляр сервиса заказов
func NewOrderService(api OrderAPI, cache Cache[model.Order], log *slog.Logger) *OrderService {
	return &OrderService{
		api:   api,
		cache: cache,
		log:   log,
	}
}

// Refresh перечитывает полную коллекцию заказов и целиком заменяет кэш
func (s *OrderService) Refresh(ctx context.Context) error {
	const op = "service.OrderService.Refresh"
	log := s.log.With(slog.String("op", op))

	orders, err := s.api.List(ctx)
	if err != nil {
		log.Error("failed to list orders", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ReplaceAll(orders)
	log.Info("order cache refreshed", slog.Int("count", len(orders)))
	return nil
}

// Get возвращает заказ по id: сначала кэш, затем сервер
func (s *OrderService) Get(ctx context.Context, id string) (model.Order, error) {
	const op = "service.OrderService.Get"
	log := s.log.With(slog.String("op", op), slog.String("order_id", id))

	if order, found := s.cache.GetByID(id); found {
		log.Debug("order found in cache")
		return order, nil
	}

	order, err := s.api.Get(ctx, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Insert(order)
	log.Debug("order fetched from server and cached")
	return order, nil
}

// Create оформляет заказ на сервере и добавляет подтверждённую запись в кэш
// инвариант Total == Σ quantity × unit_price обеспечивается формой
// при сборке payload-а, здесь он не перепроверяется
func (s *OrderService) Create(ctx context.Context, payload model.CreateOrder) (model.Order, error) {
	const op = "service.OrderService.Create"
	log := s.log.With(slog.String("op", op))

	created, err := s.api.Create(ctx, payload)
	if err != nil {
		log.Error("failed to create order", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Insert(created)
	log.Info("order created and cached", slog.String("order_id", created.ID))
	return created, nil
}

// Update отправляет частичное обновление заказа и заменяет запись в кэше
func (s *OrderService) Update(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error) {
	const op = "service.OrderService.Update"
	log := s.log.With(slog.String("op", op), slog.String("order_id", id))

	updated, err := s.api.Update(ctx, id, payload)
	if err != nil {
		log.Error("failed to update order", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ReplaceOne(id, updated)
	log.Info("order updated")
	return updated, nil
}

// UpdateStatus меняет только статус заказа (PATCH /api/orders/{id}/status)
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	const op = "service.OrderService.UpdateStatus"
	log := s.log.With(slog.String("op", op), slog.String("order_id", id), slog.String("status", string(status)))

	updated, err := s.api.UpdateStatus(ctx, id, status)
	if err != nil {
		log.Error("failed to update order status", slog.String("error", err.Error()))
		return model.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ReplaceOne(id, updated)
	log.Info("order status updated")
	return updated, nil
}

// Delete удаляет заказ на сервере и вычищает его из кэша
func (s *OrderService) Delete(ctx context.Context, id string) error {
	const op = "service.OrderService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("order_id", id))

	if err := s.api.Delete(ctx, id); err != nil {
		log.Error("failed to delete order", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.RemoveOne(id)
	log.Info("order deleted")
	return nil
}
