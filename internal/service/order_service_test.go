package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/asquebay/flower-shop-service/internal/client"
	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/service"
	"github.com/asquebay/flower-shop-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderAPI — управляемая заглушка удалённой коллекции заказов
type stubOrderAPI struct {
	listResp   []model.Order
	getResp    model.Order
	createResp model.Order
	updateResp model.Order
	err        error

	createCalls int
}

func (s *stubOrderAPI) List(ctx context.Context) ([]model.Order, error) {
	return s.listResp, s.err
}

func (s *stubOrderAPI) Get(ctx context.Context, id string) (model.Order, error) {
	return s.getResp, s.err
}

func (s *stubOrderAPI) Create(ctx context.Context, payload model.CreateOrder) (model.Order, error) {
	s.createCalls++
	return s.createResp, s.err
}

func (s *stubOrderAPI) Update(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error) {
	return s.updateResp, s.err
}

func (s *stubOrderAPI) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	return s.updateResp, s.err
}

func (s *stubOrderAPI) Delete(ctx context.Context, id string) error {
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestOrderServiceRefresh(t *testing.T) {
	t.Parallel()

	api := &stubOrderAPI{listResp: []model.Order{{ID: "o1"}, {ID: "o2"}}}
	cache := store.New[model.Order]()
	svc := service.NewOrderService(api, cache, discardLogger())

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 2, cache.Len())

	// повторный Refresh целиком заменяет содержимое, а не дописывает
	api.listResp = []model.Order{{ID: "o3"}}
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, 1, cache.Len())
	_, found := cache.GetByID("o1")
	assert.False(t, found)
}

func TestOrderServiceCreateConfirmThenApply(t *testing.T) {
	t.Parallel()

	t.Run("success populates cache", func(t *testing.T) {
		t.Parallel()

		api := &stubOrderAPI{createResp: model.Order{ID: "server-id", Total: 70}}
		cache := store.New[model.Order]()
		svc := service.NewOrderService(api, cache, discardLogger())

		created, err := svc.Create(context.Background(), model.CreateOrder{CustomerName: "María García"})
		require.NoError(t, err)
		assert.Equal(t, "server-id", created.ID)

		cached, found := cache.GetByID("server-id")
		require.True(t, found)
		assert.Equal(t, 70.0, cached.Total)
	})

	t.Run("remote failure leaves cache untouched", func(t *testing.T) {
		t.Parallel()

		api := &stubOrderAPI{err: client.ErrValidation}
		cache := store.New[model.Order]()
		cache.ReplaceAll([]model.Order{{ID: "existing"}})
		before := cache.Version()

		svc := service.NewOrderService(api, cache, discardLogger())
		_, err := svc.Create(context.Background(), model.CreateOrder{})

		require.ErrorIs(t, err, client.ErrValidation)
		assert.Equal(t, 1, cache.Len())
		assert.Equal(t, before, cache.Version())
	})
}

func TestOrderServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("replaces cached entry in place", func(t *testing.T) {
		t.Parallel()

		api := &stubOrderAPI{updateResp: model.Order{ID: "o2", Status: model.StatusConfirmed}}
		cache := store.New[model.Order]()
		cache.ReplaceAll([]model.Order{
			{ID: "o1"},
			{ID: "o2", Status: model.StatusPending},
			{ID: "o3"},
		})
		svc := service.NewOrderService(api, cache, discardLogger())

		_, err := svc.UpdateStatus(context.Background(), "o2", model.StatusConfirmed)
		require.NoError(t, err)

		items := cache.Items()
		require.Len(t, items, 3)
		assert.Equal(t, "o2", items[1].ID, "position must be preserved")
		assert.Equal(t, model.StatusConfirmed, items[1].Status)
	})

	t.Run("error propagates unchanged", func(t *testing.T) {
		t.Parallel()

		wantErr := &client.ServerError{StatusCode: 503}
		api := &stubOrderAPI{err: wantErr}
		cache := store.New[model.Order]()
		svc := service.NewOrderService(api, cache, discardLogger())

		_, err := svc.Update(context.Background(), "o1", model.UpdateOrder{})
		var srvErr *client.ServerError
		require.ErrorAs(t, err, &srvErr)
		assert.Equal(t, 503, srvErr.StatusCode)
	})
}

func TestOrderServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("success removes from cache", func(t *testing.T) {
		t.Parallel()

		api := &stubOrderAPI{}
		cache := store.New[model.Order]()
		cache.ReplaceAll([]model.Order{{ID: "o1"}, {ID: "o2"}})
		svc := service.NewOrderService(api, cache, discardLogger())

		require.NoError(t, svc.Delete(context.Background(), "o1"))
		assert.Equal(t, 1, cache.Len())
	})

	t.Run("failure keeps entry cached", func(t *testing.T) {
		t.Parallel()

		api := &stubOrderAPI{err: errors.New("connection reset")}
		cache := store.New[model.Order]()
		cache.ReplaceAll([]model.Order{{ID: "o1"}})
		svc := service.NewOrderService(api, cache, discardLogger())

		require.Error(t, svc.Delete(context.Background(), "o1"))
		_, found := cache.GetByID("o1")
		assert.True(t, found)
	})
}

func TestOrderServiceGetReadThrough(t *testing.T) {
	t.Parallel()

	deliveryDate := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	api := &stubOrderAPI{getResp: model.Order{ID: "remote", DeliveryDate: deliveryDate}}
	cache := store.New[model.Order]()
	cache.ReplaceAll([]model.Order{{ID: "cached", Notes: "from cache"}})
	svc := service.NewOrderService(api, cache, discardLogger())

	// попадание в кэш: на сервер не ходим
	got, err := svc.Get(context.Background(), "cached")
	require.NoError(t, err)
	assert.Equal(t, "from cache", got.Notes)

	// промах: достаём с сервера и кладём в кэш
	got, err = svc.Get(context.Background(), "remote")
	require.NoError(t, err)
	assert.Equal(t, deliveryDate, got.DeliveryDate)
	_, found := cache.GetByID("remote")
	assert.True(t, found)
}
