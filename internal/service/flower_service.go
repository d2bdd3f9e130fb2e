package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asquebay/flower-shop-service/internal/model"
)

// FlowerService связывает удалённую коллекцию товаров с локальным кэшем
// порядок в каждой операции записи один и тот же: сначала удалённый вызов,
// и только в случае его успеха — мутация кэша; при ошибке кэш не трогаем
// так кэш никогда не содержит отвергнутых сервером записей
// и никогда не теряет принятых
type FlowerService struct {
	api   FlowerAPI
	cache Cache[model.Flower]
	log   *slog.Logger
}

// NewFlowerService создаёт новый экземпляр сервиса каталога
func NewFlowerService(api FlowerAPI, cache Cache[model.Flower], log *slog.Logger) *FlowerService {
	return &FlowerService{
		api:   api,
		cache: cache,
		log:   log,
	}
}

// Refresh перечитывает полную коллекцию с сервера и целиком заменяет кэш
// вызывается при старте и при явном обновлении экрана
func (s *FlowerService) Refresh(ctx context.Context) error {
	const op = "service.FlowerService.Refresh"
	log := s.log.With(slog.String("op", op))

	flowers, err := s.api.List(ctx)
	if err != nil {
		log.Error("failed to list flowers", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ReplaceAll(flowers)
	log.Info("flower cache refreshed", slog.Int("count", len(flowers)))
	return nil
}

// Get возвращает товар по id
// сначала ищет в кэше, и только если там нет — обращается к серверу
func (s *FlowerService) Get(ctx context.Context, id string) (model.Flower, error) {
	const op = "service.FlowerService.Get"
	log := s.log.With(slog.String("op", op), slog.String("flower_id", id))

	if flower, found := s.cache.GetByID(id); found {
		log.Debug("flower found in cache")
		return flower, nil
	}

	flower, err := s.api.Get(ctx, id)
	if err != nil {
		return model.Flower{}, fmt.Errorf("%s: %w", op, err)
	}

	// раз уж достали с сервера, кладём в кэш
	s.cache.Insert(flower)
	log.Debug("flower fetched from server and cached")
	return flower, nil
}

// Create создаёт товар на сервере и добавляет подтверждённую запись в кэш
func (s *FlowerService) Create(ctx context.Context, payload model.CreateFlower) (model.Flower, error) {
	const op = "service.FlowerService.Create"
	log := s.log.With(slog.String("op", op))

	created, err := s.api.Create(ctx, payload)
	if err != nil {
		log.Error("failed to create flower", slog.String("error", err.Error()))
		return model.Flower{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Insert(created)
	log.Info("flower created and cached", slog.String("flower_id", created.ID))
	return created, nil
}

// Update отправляет частичное обновление и заменяет запись в кэше
// версией, которую вернул сервер
func (s *FlowerService) Update(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error) {
	const op = "service.FlowerService.Update"
	log := s.log.With(slog.String("op", op), slog.String("flower_id", id))

	updated, err := s.api.Update(ctx, id, payload)
	if err != nil {
		log.Error("failed to update flower", slog.String("error", err.Error()))
		return model.Flower{}, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.ReplaceOne(id, updated)
	log.Info("flower updated")
	return updated, nil
}

// Delete удаляет товар на сервере и вычищает его из кэша
func (s *FlowerService) Delete(ctx context.Context, id string) error {
	const op = "service.FlowerService.Delete"
	log := s.log.With(slog.String("op", op), slog.String("flower_id", id))

	if err := s.api.Delete(ctx, id); err != nil {
		log.Error("failed to delete flower", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cache.RemoveOne(id)
	log.Info("flower deleted")
	return nil
}
