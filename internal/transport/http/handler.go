package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asquebay/flower-shop-service/internal/model"
	"github.com/asquebay/flower-shop-service/internal/repository/postgres"
	"github.com/asquebay/flower-shop-service/internal/transport/kafka"

	"github.com/go-playground/validator/v10"
)

// FlowerRepository определяет контракт хранилища каталога для хэндлера
// это позволяет хэндлеру не зависеть от конкретной реализации репозитория
type FlowerRepository interface {
	CreateFlower(ctx context.Context, payload model.CreateFlower) (model.Flower, error)
	GetAllFlowers(ctx context.Context) ([]model.Flower, error)
	GetFlowerByID(ctx context.Context, id string) (model.Flower, error)
	UpdateFlower(ctx context.Context, id string, payload model.UpdateFlower) (model.Flower, error)
	DeleteFlower(ctx context.Context, id string) error
}

// OrderRepository определяет контракт хранилища заказов для хэндлера
type OrderRepository interface {
	CreateOrder(ctx context.Context, payload model.CreateOrder) (model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrderByID(ctx context.Context, id string) (model.Order, error)
	UpdateOrder(ctx context.Context, id string, payload model.UpdateOrder) (model.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.Status) (model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// EventPublisher определяет контракт публикации событий заказов
type EventPublisher interface {
	Publish(ctx context.Context, event kafka.OrderEvent) error
}

// Handler обрабатывает HTTP-запросы REST API магазина
type Handler struct {
	flowers FlowerRepository
	orders  OrderRepository
	events  EventPublisher
	log     *slog.Logger
	mux     *http.ServeMux
}

// NewHandler создает новый экземпляр Handler
// events может быть nil — тогда события просто не публикуются
func NewHandler(flowers FlowerRepository, orders OrderRepository, events EventPublisher, log *slog.Logger) *Handler {
	h := &Handler{
		flowers: flowers,
		orders:  orders,
		events:  events,
		log:     log,
		mux:     http.NewServeMux(),
	}
	h.registerRoutes()
	return h
}

// ServeHTTP делает Handler совместимым с http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes регистрирует все эндпоинты
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /api/flowers", h.listFlowers)
	h.mux.HandleFunc("POST /api/flowers", h.createFlower)
	h.mux.HandleFunc("GET /api/flowers/{id}", h.getFlower)
	h.mux.HandleFunc("PATCH /api/flowers/{id}", h.updateFlower)
	h.mux.HandleFunc("DELETE /api/flowers/{id}", h.deleteFlower)

	h.mux.HandleFunc("GET /api/orders", h.listOrders)
	h.mux.HandleFunc("POST /api/orders", h.createOrder)
	h.mux.HandleFunc("GET /api/orders/{id}", h.getOrder)
	h.mux.HandleFunc("PATCH /api/orders/{id}", h.updateOrder)
	h.mux.HandleFunc("PATCH /api/orders/{id}/status", h.updateOrderStatus)
	h.mux.HandleFunc("DELETE /api/orders/{id}", h.deleteOrder)
}

func (h *Handler) listFlowers(w http.ResponseWriter, r *http.Request) {
	flowers, err := h.flowers.GetAllFlowers(r.Context())
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, flowers)
}

func (h *Handler) getFlower(w http.ResponseWriter, r *http.Request) {
	flower, err := h.flowers.GetFlowerByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrFlowerNotFound) {
			h.respondError(w, http.StatusNotFound, "flower not found")
			return
		}
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, flower)
}

func (h *Handler) createFlower(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateFlower
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := payload.Validate(); err != nil {
		h.respondValidation(w, err)
		return
	}

	flower, err := h.flowers.CreateFlower(r.Context(), payload)
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, flower)
}

func (h *Handler) updateFlower(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateFlower
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := payload.Validate(); err != nil {
		h.respondValidation(w, err)
		return
	}

	flower, err := h.flowers.UpdateFlower(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		if errors.Is(err, postgres.ErrFlowerNotFound) {
			h.respondError(w, http.StatusNotFound, "flower not found")
			return
		}
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, flower)
}

func (h *Handler) deleteFlower(w http.ResponseWriter, r *http.Request) {
	if err := h.flowers.DeleteFlower(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, postgres.ErrFlowerNotFound) {
			h.respondError(w, http.StatusNotFound, "flower not found")
			return
		}
		h.respondInternal(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAllOrders(r.Context())
	if err != nil {
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrderByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.respondInternal(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := payload.Validate(); err != nil {
		h.respondValidation(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), payload)
	if err != nil {
		h.respondInternal(w, err)
		return
	}

	h.publishEvent(r.Context(), kafka.OrderEvent{
		Type:    kafka.EventOrderCreated,
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total,
	})
	h.respondJSON(w, http.StatusCreated, order)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateOrder
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := payload.Validate(); err != nil {
		h.respondValidation(w, err)
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.respondInternal(w, err)
		return
	}

	if payload.Status != nil {
		h.publishEvent(r.Context(), kafka.OrderEvent{
			Type:    kafka.EventOrderStatusChanged,
			OrderID: order.ID,
			Status:  order.Status,
			Total:   order.Total,
		})
	}
	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateOrderStatus
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := payload.Validate(); err != nil {
		h.respondValidation(w, err)
		return
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), r.PathValue("id"), payload.Status)
	if err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.respondInternal(w, err)
		return
	}

	h.publishEvent(r.Context(), kafka.OrderEvent{
		Type:    kafka.EventOrderStatusChanged,
		OrderID: order.ID,
		Status:  order.Status,
		Total:   order.Total,
	})
	h.respondJSON(w, http.StatusOK, order)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, postgres.ErrOrderNotFound) {
			h.respondError(w, http.StatusNotFound, "order not found")
			return
		}
		h.respondInternal(w, err)
		return
	}

	h.publishEvent(r.Context(), kafka.OrderEvent{
		Type:    kafka.EventOrderDeleted,
		OrderID: id,
	})
	w.WriteHeader(http.StatusNoContent)
}

// publishEvent отправляет событие заказа, если продюсер сконфигурирован
// сбой публикации не роняет запрос: API уже подтвердил операцию клиенту
func (h *Handler) publishEvent(ctx context.Context, event kafka.OrderEvent) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(ctx, event); err != nil {
		h.log.Error("failed to publish order event",
			slog.String("type", event.Type),
			slog.String("order_id", event.OrderID),
			slog.String("error", err.Error()),
		)
	}
}

// respondValidation отвечает 400 с перечнем полей, не прошедших валидацию
func (h *Handler) respondValidation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		h.respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": fields,
		})
		return
	}
	h.respondError(w, http.StatusBadRequest, err.Error())
}

func (h *Handler) respondInternal(w http.ResponseWriter, err error) {
	h.log.Error("internal server error", slog.String("error", err.Error()))
	h.respondError(w, http.StatusInternalServerError, "internal server error")
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to marshal JSON response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(response)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
