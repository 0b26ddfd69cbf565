package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beverage-shop/internal/shop"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		kind shop.OrderEventKind
		want string
	}{
		{shop.OrderEventCreated, "Dear customer, a new order with order no 7, has been added."},
		{shop.OrderEventPending, "Dear customer, your order with order no 7, is now awaiting " +
			"review. You can still add, remove or update items in the order before it is reviewed."},
		{shop.OrderEventApproved, "Dear customer, your order with order no 7, has been " +
			"approved and will be delivered soon."},
		{shop.OrderEventCanceled, "Dear customer, your order with order no 7, has been canceled."},
		{shop.OrderEventRejected, "Dear customer, we regret to inform you that your order " +
			"with order no 7, was not accepted and thus will not be delivered. Visit our site " +
			"to get more details regarding the order's rejection."},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, ok := MessageFor(shop.OrderEvent{Kind: tc.kind, OrderID: 7})
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMessageForUnknownKind(t *testing.T) {
	_, ok := MessageFor(shop.OrderEvent{Kind: "resurrected", OrderID: 7})
	assert.False(t, ok)
}
