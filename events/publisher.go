// Package events publishes order lifecycle events to Kafka. Publishing is
// best effort: the store keeps working when no broker is configured or a
// write fails, so a flaky event pipeline can never block a checkout.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/CaptnR/football-jersey-store/config"
	"github.com/segmentio/kafka-go"
)

// Event types emitted by the order workflow.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	ReturnRequested    = "return.requested"
	ReturnResolved     = "return.resolved"
)

// Event is the JSON payload written to the topic.
type Event struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

var writer *kafka.Writer

// Initialize sets up the Kafka writer when a broker is configured.
func Initialize(cfg *config.KafkaConfig) {
	if cfg.Broker == "" {
		log.Println("Kafka not configured, order events disabled")
		return
	}
	writer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	log.Printf("Order events publishing to %s/%s", cfg.Broker, cfg.Topic)
}

// Publish emits one event. Keyed by event type so consumers can partition
// per lifecycle stage.
func Publish(ctx context.Context, eventType string, payload interface{}) {
	if writer == nil {
		return
	}
	value, err := json.Marshal(Event{
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
	if err != nil {
		log.Printf("Warning: could not marshal %s event: %v", eventType, err)
		return
	}
	if err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	}); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

// Close flushes and closes the writer.
func Close() {
	if writer != nil {
		if err := writer.Close(); err != nil {
			log.Printf("Warning: Kafka writer close failed: %v", err)
		}
		writer = nil
	}
}
