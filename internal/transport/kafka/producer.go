package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/asquebay/flower-shop-service/internal/model"

	"github.com/segmentio/kafka-go"
)

// Типы событий жизненного цикла заказа
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderDeleted       = "order_deleted"
)

// OrderEvent — сообщение о событии заказа, как оно уходит в топик
// флористы и курьерские интеграции подписываются на этот топик,
// чтобы не опрашивать API
type OrderEvent struct {
	Type       string       `json:"type"`
	OrderID    string       `json:"order_id"`
	Status     model.Status `json:"status,omitempty"`
	Total      float64      `json:"total,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// Producer публикует события заказов в Kafka
type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer создает новый экземпляр продюсера событий
func NewProducer(brokers []string, topic string, log *slog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

// Publish отправляет одно событие; ключ сообщения — id заказа,
// чтобы события одного заказа попадали в одну партицию и читались по порядку
func (p *Producer) Publish(ctx context.Context, event OrderEvent) error {
	const op = "transport.kafka.Producer.Publish"

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: failed to marshal event: %w", op, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("%s: failed to write message: %w", op, err)
	}

	p.log.Info("order event published",
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
	)
	return nil
}

// Close останавливает продюсер
func (p *Producer) Close() error {
	p.log.Info("closing kafka producer")
	return p.writer.Close()
}
