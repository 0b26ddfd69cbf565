package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"beverage-shop/internal/common/logger"
	"beverage-shop/internal/connections/rabbitmq"
	"beverage-shop/internal/shop"
)

// Customer-facing texts for each lifecycle event.
const (
	newOrderMsg = "Dear customer, a new order with order no %d, has been added."

	orderApprovedMsg = "Dear customer, your order with order no %d, has been " +
		"approved and will be delivered soon."

	orderCanceledMsg = "Dear customer, your order with order no %d, has been canceled."

	orderPendingMsg = "Dear customer, your order with order no %d, is now awaiting " +
		"review. You can still add, remove or update items in the order before it " +
		"is reviewed."

	orderRejectedMsg = "Dear customer, we regret to inform you that your order " +
		"with order no %d, was not accepted and thus will not be delivered. Visit " +
		"our site to get more details regarding the order's rejection."
)

// SMSSender delivers one text message to one phone number.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// LogSender is the delivery backend used when no SMS gateway is configured:
// it just logs the message that would have been sent.
type LogSender struct {
	Log *logger.Logger
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	s.Log.Info("sms_sent", map[string]any{"phone_number": phone, "message": message})
	return nil
}

// Subscriber consumes order events and texts the customer about them.
// Delivery failures are logged and the message is dropped; notifications are
// best-effort by contract.
type Subscriber struct {
	client *rabbitmq.Client
	sender SMSSender
	log    *logger.Logger
}

func NewSubscriber(client *rabbitmq.Client, sender SMSSender, log *logger.Logger) *Subscriber {
	return &Subscriber{client: client, sender: sender, log: log}
}

// Run declares the queue, binds it to the events exchange and consumes until
// the context is canceled.
func (s *Subscriber) Run(ctx context.Context) error {
	ch := s.client.Channel()
	if err := ch.ExchangeDeclare(Exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", Exchange, err)
	}
	if _, err := ch.QueueDeclare(Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", Queue, err)
	}
	if err := ch.QueueBind(Queue, "", Exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", Queue, err)
	}

	msgs, err := s.client.Consume(Queue, "sms-notifier", 1)
	if err != nil {
		return err
	}

	s.log.Info("subscriber_started", map[string]any{"queue": Queue})
	for {
		select {
		case <-ctx.Done():
			s.log.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			var ev shop.OrderEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				// Unparseable payload, there is nothing to retry.
				s.log.Error("order_event_unparseable", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			s.handle(ctx, ev)
			_ = d.Ack(false)
		}
	}
}

func (s *Subscriber) handle(ctx context.Context, ev shop.OrderEvent) {
	text, ok := MessageFor(ev)
	if !ok {
		s.log.Error("order_event_unknown_kind", nil, map[string]any{"event": string(ev.Kind)})
		return
	}
	if ev.PhoneNumber == "" {
		s.log.Debug("order_event_no_phone", map[string]any{"order_id": ev.OrderID})
		return
	}
	if err := s.sender.Send(ctx, ev.PhoneNumber, text); err != nil {
		s.log.Error("sms_send_failed", err, map[string]any{
			"order_id": ev.OrderID, "event": string(ev.Kind),
		})
	}
}

// MessageFor returns the customer-facing text for the event.
func MessageFor(ev shop.OrderEvent) (string, bool) {
	switch ev.Kind {
	case shop.OrderEventCreated:
		return fmt.Sprintf(newOrderMsg, ev.OrderID), true
	case shop.OrderEventPending:
		return fmt.Sprintf(orderPendingMsg, ev.OrderID), true
	case shop.OrderEventApproved:
		return fmt.Sprintf(orderApprovedMsg, ev.OrderID), true
	case shop.OrderEventCanceled:
		return fmt.Sprintf(orderCanceledMsg, ev.OrderID), true
	case shop.OrderEventRejected:
		return fmt.Sprintf(orderRejectedMsg, ev.OrderID), true
	default:
		return "", false
	}
}
