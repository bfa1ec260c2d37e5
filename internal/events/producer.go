// Package events publishes order lifecycle events to Kafka. Publishing is
// fire-and-forget: a failed event is logged, never surfaced to the customer.
// The cancellation flow does not publish anything; its only side effects are
// the database rows it touches.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Event types carried in the record header.
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the JSON payload produced for an order lifecycle change.
type OrderEvent struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      string    `json:"user_id"`
	Status      string    `json:"status"`
	PrevStatus  string    `json:"prev_status,omitempty"`
	TotalCents  int64     `json:"total_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
	OrderStatusChanged(ctx context.Context, order *model.Order, prevStatus string)
	Close()
}

// kafkaPublisher produces to a single topic keyed by order ID.
type kafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher connects a publisher to the given brokers.
func NewKafkaPublisher(brokers []string, topic string) (Publisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10 * time.Millisecond),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &kafkaPublisher{client: client, topic: topic}, nil
}

func (p *kafkaPublisher) OrderCreated(ctx context.Context, order *model.Order) {
	p.produce(ctx, EventOrderCreated, &OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalCents:  order.TotalCents,
		OccurredAt:  time.Now(),
	})
}

func (p *kafkaPublisher) OrderStatusChanged(ctx context.Context, order *model.Order, prevStatus string) {
	p.produce(ctx, EventOrderStatusChanged, &OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		PrevStatus:  prevStatus,
		TotalCents:  order.TotalCents,
		OccurredAt:  time.Now(),
	})
}

func (p *kafkaPublisher) produce(ctx context.Context, eventType string, event *OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal order event", "event_type", eventType, "error", err)
		return
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.OrderID),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "version", Value: []byte("1.0")},
		},
		Timestamp: time.Now(),
	}

	p.client.Produce(ctx, record, func(record *kgo.Record, err error) {
		if err != nil {
			slog.Error("failed to produce order event",
				"event_type", eventType, "order_id", event.OrderID, "error", err)
		}
	})
}

func (p *kafkaPublisher) Close() {
	p.client.Close()
}

// noopPublisher drops all events. Used when KAFKA_BROKERS is not configured.
type noopPublisher struct{}

// NewNoopPublisher returns a publisher that discards events.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) OrderCreated(context.Context, *model.Order)                {}
func (noopPublisher) OrderStatusChanged(context.Context, *model.Order, string) {}
func (noopPublisher) Close()                                                   {}
