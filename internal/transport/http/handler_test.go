package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/repository/postgres"
	transport "github.com/asquebay/flower-shop-service/internal/transport/http"
	"github.com/asquebay/flower-shop-service/internal/transport/kafka"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFlowerRepo хранит каталог в памяти вместо PostgreSQL
type stubFlowerRepo struct {
	flowers map[string]model.Flower
}

func (s *stubFlowerRepo) CreateFlower(ctx context.Context, payload model.CreateFlower) (model.Flower, error) {
	f := model.Flower{ID: "generated", Name: payload.Name, Price: payload.Price, Category: payload.Category, Stock: payload.Stock}
	s.flowers[f.ID] = f
	return f, nil
}

func (s *stubFlowerRepo) GetAllFlowers(ctx context.Context) ([]model.Flower, error) {
	out := []model.Flower{}
	for _, f := range s.flowers {
		out = append(out, f)
	}
	return out, nil
}

func (s *stubFlowerRepo) GetFlowerByID(ctx context.Context, id string) (model.Flower, error) {
	f, ok := s.flowers[id]
	if !ok {
		return model.Flower{}, postgres.ErrFlowerNotFound
	}
	return f, nil
}

func (s *stubFlowerRepo) UpdateFlower(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error) {
	f, ok := s.flowers[id]
	if !ok {
		return model.Flower{}, postgres.ErrFlowerNotFound
	}
	if payload.Name != nil {
		f.Name = *payload.Name
	}
	if payload.Stock != nil {
		f.Stock = *payload.Stock
	}
	s.flowers[id] = f
	return f, nil
}

func (s *stubFlowerRepo) DeleteFlower(ctx context.Context, id string) error {
	if _, ok := s.flowers[id]; !ok {
		return postgres.ErrFlowerNotFound
	}
	delete(s.flowers, id)
	return nil
}

// stubOrderRepo хранит заказы в памяти
type stubOrderRepo struct {
	orders map[string]model.Order
}

func (s *stubOrderRepo) CreateOrder(ctx context.Context, payload model.CreateOrder) (model.Order, error) {
	o := model.Order{
		ID:           "o-generated",
		CustomerName: payload.CustomerName,
		Items:        payload.Items,
		Total:        payload.Total,
		Status:       payload.Status,
		DeliveryDate: payload.DeliveryDate,
		DeliveryTime: payload.DeliveryTime,
		CreatedAt:    time.Now().UTC(),
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *stubOrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	out := []model.Order{}
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrderRepo) GetOrderByID(ctx context.Context, id string) (model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, postgres.ErrOrderNotFound
	}
	return o, nil
}

func (s *stubOrderRepo) UpdateOrder(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, postgres.ErrOrderNotFound
	}
	if payload.Notes != nil {
		o.Notes = *payload.Notes
	}
	if payload.Status != nil {
		o.Status = *payload.Status
	}
	s.orders[id] = o
	return o, nil
}

func (s *stubOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.Status) (model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, postgres.ErrOrderNotFound
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}

func (s *stubOrderRepo) DeleteOrder(ctx context.Context, id string) error {
	if _, ok := s.orders[id]; !ok {
		return postgres.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

// recordingPublisher собирает опубликованные события вместо Kafka
type recordingPublisher struct {
	events []kafka.OrderEvent
}

func (r *recordingPublisher) Publish(ctx context.Context, event kafka.OrderEvent) error {
	r.events = append(r.events, event)
	return nil
}

func newTestHandler() (*transport.Handler, *stubFlowerRepo, *stubOrderRepo, *recordingPublisher) {
	flowers := &stubFlowerRepo{flowers: map[string]model.Flower{}}
	orders := &stubOrderRepo{orders: map[string]model.Order{}}
	events := &recordingPublisher{}
	h := transport.NewHandler(flowers, orders, events, slog.New(slog.DiscardHandler))
	return h, flowers, orders, events
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateFlower(t *testing.T) {
	t.Parallel()

	t.Run("valid payload returns 201 with assigned id", func(t *testing.T) {
		t.Parallel()

		h, _, _, _ := newTestHandler()
		rec := doRequest(t, h, http.MethodPost, "/api/flowers", model.CreateFlower{
			Name: "Red Roses", Price: 25, Category: "roses", Stock: 10,
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var created model.Flower
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "generated", created.ID)
	})

	t.Run("invalid payload returns 400 with field list", func(t *testing.T) {
		t.Parallel()

		h, _, _, _ := newTestHandler()
		rec := doRequest(t, h, http.MethodPost, "/api/flowers", model.CreateFlower{Price: 5})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Fields []string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Fields, "Name")
		assert.Contains(t, resp.Fields, "Category")
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		t.Parallel()

		h, _, _, _ := newTestHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/flowers", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetFlowerNotFound(t *testing.T) {
	t.Parallel()

	h, _, _, _ := newTestHandler()
	rec := doRequest(t, h, http.MethodGet, "/api/flowers/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderLifecycleEvents(t *testing.T) {
	t.Parallel()

	h, _, orders, events := newTestHandler()

	// создание заказа публикует order_created
	rec := doRequest(t, h, http.MethodPost, "/api/orders", model.CreateOrder{
		CustomerName:    "María García",
		CustomerPhone:   "+34 600 000 000",
		DeliveryAddress: "Carrer de Balmes 123",
		Items: []model.OrderItem{
			{FlowerID: "f1", FlowerName: "Roses", Quantity: 2, UnitPrice: 25},
		},
		Total:        50,
		Status:       model.StatusPending,
		DeliveryDate: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
		DeliveryTime: "10:00-11:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, events.events, 1)
	assert.Equal(t, kafka.EventOrderCreated, events.events[0].Type)

	// смена статуса через выделенный эндпоинт публикует order_status_changed
	rec = doRequest(t, h, http.MethodPatch, "/api/orders/o-generated/status", model.UpdateOrderStatus{
		Status: model.StatusConfirmed,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, events.events, 2)
	assert.Equal(t, kafka.EventOrderStatusChanged, events.events[1].Type)
	assert.Equal(t, model.StatusConfirmed, events.events[1].Status)

	got, err := orders.GetOrderByID(context.Background(), "o-generated")
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)

	// удаление публикует order_deleted и возвращает 204
	rec = doRequest(t, h, http.MethodDelete, "/api/orders/o-generated", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, events.events, 3)
	assert.Equal(t, kafka.EventOrderDeleted, events.events[2].Type)
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	h, _, _, _ := newTestHandler()
	rec := doRequest(t, h, http.MethodPatch, "/api/orders/any/status", map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchOrderPartialUpdate(t *testing.T) {
	t.Parallel()

	h, _, orders, _ := newTestHandler()
	orders.orders["o1"] = model.Order{ID: "o1", Status: model.StatusPending, Notes: "old"}

	notes := "ring the bell twice"
	rec := doRequest(t, h, http.MethodPatch, "/api/orders/o1", model.UpdateOrder{Notes: &notes})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "ring the bell twice", updated.Notes)
	assert.Equal(t, model.StatusPending, updated.Status)
}
