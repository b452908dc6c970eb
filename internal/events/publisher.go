package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	OrderCreated       = "order_created"
	OrderStatusChanged = "order_status_changed"
)

// OrderEvent is published after an order transaction commits. Consumers
// must tolerate unknown event types.
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"order_id"`
	UserID      uint      `json:"user_id"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher writes order events to Kafka. A nil Publisher is valid and
// drops every event, so the core flow never depends on a broker being up.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(brokers, topic string) *Publisher {
	if brokers == "" {
		return nil
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}
}

// Publish is best-effort: failures are logged, never propagated.
func (p *Publisher) Publish(event OrderEvent) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()

	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("Warning: failed to marshal order event: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: value,
	})
	if err != nil {
		log.Printf("Warning: failed to publish order event: %v", err)
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
