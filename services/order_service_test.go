package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stitchmart_server/lib"
	"stitchmart_server/structs"
	"stitchmart_server/structs/tables"
)

func TestToOrderView(t *testing.T) {
	order := tables.Order{
		PaymentStatus: "Paid",
		Items: []tables.OrderItem{
			{Quantity: 2},
			{Quantity: 3},
		},
	}

	view := toOrderView(order)
	assert.True(t, view.IsPaid)
	assert.Equal(t, 5, view.TotalItems)
	assert.Equal(t, order.PaymentStatus, view.Order.PaymentStatus)
}

func TestToOrderViewUnpaidEmpty(t *testing.T) {
	view := toOrderView(tables.Order{PaymentStatus: tables.PaymentStatusNotPaid})
	assert.False(t, view.IsPaid)
	assert.Equal(t, 0, view.TotalItems)
}

func TestWithConflictRetry(t *testing.T) {
	t.Run("first attempt succeeds", func(t *testing.T) {
		calls := 0
		err := withConflictRetry(5, func(attempt int) error {
			calls++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("conflict then success", func(t *testing.T) {
		calls := 0
		err := withConflictRetry(5, func(attempt int) error {
			calls++
			if calls < 3 {
				return lib.ErrConflict
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("budget exhausted", func(t *testing.T) {
		calls := 0
		err := withConflictRetry(5, func(attempt int) error {
			calls++
			return lib.ErrConflict
		})
		assert.ErrorIs(t, err, lib.ErrConflict)
		assert.Equal(t, 5, calls)
	})

	t.Run("other errors stop immediately", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		err := withConflictRetry(5, func(attempt int) error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("attempt numbers are sequential", func(t *testing.T) {
		var seen []int
		_ = withConflictRetry(3, func(attempt int) error {
			seen = append(seen, attempt)
			return lib.ErrConflict
		})
		assert.Equal(t, []int{1, 2, 3}, seen)
	})
}

func strPtr(s string) *string { return &s }

func TestOrderStatusUpdates(t *testing.T) {
	now := time.Now()

	t.Run("forward move sets status only", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusPending}
		updates, cancelling, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("processing")}, now)
		require.NoError(t, err)
		assert.False(t, cancelling)
		assert.Equal(t, tables.OrderStatusProcessing, updates["status"])
		assert.NotContains(t, updates, "delivered_at")
	})

	t.Run("delivered stamps delivered_at", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusShipped}
		updates, cancelling, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("delivered")}, now)
		require.NoError(t, err)
		assert.False(t, cancelling)
		assert.Equal(t, tables.OrderStatusDelivered, updates["status"])
		assert.Equal(t, now, updates["delivered_at"])
	})

	t.Run("delivered_at is never overwritten", func(t *testing.T) {
		already := now.Add(-24 * time.Hour)
		order := &tables.Order{Status: tables.OrderStatusShipped, DeliveredAt: &already}
		updates, _, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("delivered")}, now)
		require.NoError(t, err)
		assert.Equal(t, tables.OrderStatusDelivered, updates["status"])
		assert.NotContains(t, updates, "delivered_at")
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusDelivered}
		updates, cancelling, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("delivered")}, now)
		require.NoError(t, err)
		assert.False(t, cancelling)
		assert.NotContains(t, updates, "status")
		assert.NotContains(t, updates, "delivered_at")
	})

	t.Run("cancelled flags the stock release", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusPending}
		updates, cancelling, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("cancelled")}, now)
		require.NoError(t, err)
		assert.True(t, cancelling)
		assert.Equal(t, tables.OrderStatusCancelled, updates["status"])
	})

	t.Run("backward move is rejected", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusDelivered}
		_, _, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{Status: strPtr("cancelled")}, now)
		assert.ErrorIs(t, err, lib.ErrInvalidTransition)
	})

	t.Run("payment status alone", func(t *testing.T) {
		order := &tables.Order{Status: tables.OrderStatusPending}
		updates, cancelling, err := orderStatusUpdates(order, &structs.OrderUpdateRequest{PaymentStatus: strPtr("Paid")}, now)
		require.NoError(t, err)
		assert.False(t, cancelling)
		assert.Equal(t, "Paid", updates["payment_status"])
		assert.NotContains(t, updates, "status")
	})
}
