package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusCanTransitionTo(t *testing.T) {
	all := []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}

	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatusCanTransitionToUnknownStatus(t *testing.T) {
	assert.False(t, OrderStatus("refunded").CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatus("refunded")))
}

func TestOrderIsPaid(t *testing.T) {
	tests := []struct {
		paymentStatus string
		want          bool
	}{
		{paymentStatus: "paid", want: true},
		{paymentStatus: "Paid", want: true},
		{paymentStatus: "PAID", want: true},
		{paymentStatus: PaymentStatusNotPaid, want: false},
		{paymentStatus: "", want: false},
		{paymentStatus: "pending", want: false},
	}

	for _, tt := range tests {
		o := &Order{PaymentStatus: tt.paymentStatus}
		assert.Equal(t, tt.want, o.IsPaid(), "payment_status=%q", tt.paymentStatus)
	}
}

func TestOrderTotalItems(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Quantity: 2},
		{Quantity: 1},
		{Quantity: 4},
	}}
	assert.Equal(t, 7, o.TotalItems())

	assert.Equal(t, 0, (&Order{}).TotalItems())
}
