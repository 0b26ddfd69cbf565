package shop

import (
	"context"
	"time"
)

// OrderEventKind names a lifecycle transition worth telling the customer
// about.
type OrderEventKind string

const (
	OrderEventCreated  OrderEventKind = "created"
	OrderEventPending  OrderEventKind = "pending"
	OrderEventApproved OrderEventKind = "approved"
	OrderEventRejected OrderEventKind = "rejected"
	OrderEventCanceled OrderEventKind = "canceled"
)

// OrderEvent is emitted after a lifecycle transition has been committed. It
// carries everything the notification transport needs so the consumer never
// has to query the order back.
type OrderEvent struct {
	Kind        OrderEventKind `json:"event"`
	OrderID     int64          `json:"order_id"`
	PhoneNumber string         `json:"phone_number"`
	OccurredAt  time.Time      `json:"occurred_at"`
}

// NewOrderEvent builds an event for the given order.
func NewOrderEvent(kind OrderEventKind, o *Order) OrderEvent {
	ev := OrderEvent{
		Kind:       kind,
		OrderID:    o.ID,
		OccurredAt: time.Now().UTC(),
	}
	if o.Customer != nil {
		ev.PhoneNumber = o.Customer.PhoneNumber
	}
	return ev
}

// Notifier publishes order lifecycle events to whatever transport delivers
// customer notifications. Delivery is fire-and-forget: the emitting side
// logs failures and never propagates them into the mutation.
type Notifier interface {
	Notify(ctx context.Context, ev OrderEvent) error
}
