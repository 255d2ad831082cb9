package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Admin domain event types
const (
	EventBiddingConfigUpdated = "bidding_config.updated"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event is the JSON value published for every admin-side change other services care about
type Event struct {
	Type        string    `json:"type"`
	CompanyUUID string    `json:"company_uuid"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload"`
}

// EventPublisher emits domain events. Publishing is best effort for callers: the
// state change has already been committed when Publish runs.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaEventPublisher struct {
	writer messageWriter
}

// NewKafkaEventPublisher publishes events to topic, keyed by company UUID so every
// event of a company lands on the same partition.
func NewKafkaEventPublisher(brokers []string, topic string, writeTimeout, batchTimeout time.Duration) EventPublisher {
	return &kafkaEventPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           writeTimeout,
			BatchTimeout:           batchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CompanyUUID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

func (p *kafkaEventPublisher) Close() error {
	return p.writer.Close()
}

type noopEventPublisher struct{}

// NewNoopEventPublisher drops every event. Used when events are disabled.
func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, Event) error { return nil }

func (noopEventPublisher) Close() error { return nil }
