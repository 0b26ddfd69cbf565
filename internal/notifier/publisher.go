// Package notifier carries order lifecycle events from the API service to
// the customer over RabbitMQ and SMS. The publisher side emits events after
// a transition commits; the subscriber side turns them into text messages.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"beverage-shop/internal/connections/rabbitmq"
	"beverage-shop/internal/shop"
)

const (
	// Exchange fans order events out to every interested consumer.
	Exchange = "order_events"
	// Queue is the SMS subscriber's queue, bound to the exchange.
	Queue = "order_notifications"
)

// Publisher implements shop.Notifier on top of RabbitMQ.
type Publisher struct {
	client *rabbitmq.Client
}

// NewPublisher declares the fanout exchange and returns a ready publisher.
func NewPublisher(client *rabbitmq.Client) (*Publisher, error) {
	if err := client.Channel().ExchangeDeclare(
		Exchange, "fanout", true, false, false, false, nil,
	); err != nil {
		return nil, fmt.Errorf("declare %s: %w", Exchange, err)
	}
	return &Publisher{client: client}, nil
}

// Notify publishes the event as a persistent JSON message and waits for the
// broker's confirm.
func (p *Publisher) Notify(ctx context.Context, ev shop.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.client.Publish(
		ctx,
		Exchange,
		"", // routing key ignored by fanout
		body,
		amqp.Table{"x-source": "api-service"},
		uuid.NewString(),
		fmt.Sprintf("order-%d", ev.OrderID),
	)
}
