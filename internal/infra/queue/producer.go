package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type LeadCapturedEvent struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Source      string    `json:"source"`
	Score       int       `json:"score"`
	Temperature string    `json:"temperature"`
	Action      string    `json:"action"`
	Position    int       `json:"position,omitempty"`
	CapturedAt  time.Time `json:"captured_at"`
}

// Publisher is the part of *amqp.Channel the producer needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Producer struct {
	ch Publisher
}

func NewProducer(ch Publisher) *Producer {
	return &Producer{ch: ch}
}

func (p *Producer) PublishLeadCaptured(ctx context.Context, event LeadCapturedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lead event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.CapturedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead event: %w", err)
	}

	return nil
}
