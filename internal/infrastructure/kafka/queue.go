package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/appfuel/purchasekit/internal/models"
	"github.com/segmentio/kafka-go"
)

const defaultBatchSize = 32

// EventQueue buffers lifecycle events and writes them to Kafka in
// batches. Flush writes the buffered events synchronously, which the
// tracker uses to make a completed purchase durable before follow-on
// events are enqueued.
type EventQueue struct {
	writer    *kafka.Writer
	topic     string
	batchSize int

	mu      sync.Mutex
	pending []kafka.Message
}

func NewEventQueue(brokers []string, topic string) *EventQueue {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &EventQueue{writer: writer, topic: topic, batchSize: defaultBatchSize}
}

func (q *EventQueue) Enqueue(ctx context.Context, event models.LifecycleEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal lifecycle event", "event_type", event.Type, "error", err)
		return err
	}

	q.mu.Lock()
	q.pending = append(q.pending, kafka.Message{
		Topic: q.topic,
		Key:   []byte(event.Type),
		Value: value,
	})
	full := len(q.pending) >= q.batchSize
	q.mu.Unlock()

	if full {
		return q.Flush(ctx)
	}
	return nil
}

func (q *EventQueue) Flush(ctx context.Context) error {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := q.writer.WriteMessages(ctx, batch...); err != nil {
		slog.Error("failed to flush events to Kafka", "topic", q.topic, "count", len(batch), "error", err)
		return err
	}

	slog.Info("events flushed to Kafka", "topic", q.topic, "count", len(batch))
	return nil
}

func (q *EventQueue) Close() error {
	if err := q.Flush(context.Background()); err != nil {
		slog.Error("failed to drain event queue on close", "error", err)
	}
	return q.writer.Close()
}
