package tables

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatusNotPaid is the default until an external payment
// collaborator updates the field.
const PaymentStatusNotPaid = "Not paid"

// CanTransitionTo reports whether the status may move to next. The
// lifecycle is forward-only (pending -> processing -> shipped ->
// delivered) with a single side exit: pending -> cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
		OrderStatusProcessing: {OrderStatusShipped},
		OrderStatusShipped:    {OrderStatusDelivered},
		OrderStatusDelivered:  {},
		OrderStatusCancelled:  {},
	}

	allowed, exists := transitions[s]
	if !exists {
		return false
	}
	return slices.Contains(allowed, next)
}

type Order struct {
	tableName   struct{}  `bun:"table:orders,alias:o"`
	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserId      uuid.UUID `bun:"user_id,type:uuid,notnull" json:"user_id"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number"`

	// Shipping address snapshot captured at purchase time; later changes
	// to the user's address do not affect historical orders.
	ShippingAddress ShippingAddress `bun:"shipping_address,type:jsonb" json:"shipping_address"`

	PaymentStatus string `bun:"payment_status,notnull,default:'Not paid'" json:"payment_status"`
	PaymentMethod string `bun:"payment_method,notnull,default:'Not specified'" json:"payment_method"`
	Currency      string `bun:"currency,notnull,default:'Not specified'" json:"currency"`

	TotalPrice uint64      `bun:"total_price,notnull" json:"total_price"` // stored in cents
	Status     OrderStatus `bun:"status,notnull,default:'pending'" json:"status"`

	DeliveredAt *time.Time `bun:"delivered_at,nullzero" json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:now()" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:now()" json:"updated_at"`

	Items []OrderItem `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
}

// IsPaid derives from payment_status, case-insensitively.
func (o *Order) IsPaid() bool {
	return strings.EqualFold(o.PaymentStatus, "paid")
}

// TotalItems is the sum of quantities across the order's items.
func (o *Order) TotalItems() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderItem is an immutable snapshot of a purchased product; it keeps its
// own copy of name and unit price so later catalog changes never alter
// historical orders.
type OrderItem struct {
	tableName   struct{}  `bun:"table:order_items,alias:oi"`
	Id          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	OrderId     uuid.UUID `bun:"order_id,type:uuid,notnull" json:"order_id"`
	ProductId   uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	ProductName string    `bun:"product_name,notnull" json:"product_name"`
	Quantity    int       `bun:"quantity,notnull" json:"quantity"`
	UnitPrice   uint64    `bun:"unit_price,notnull" json:"unit_price"` // price in cents when ordered
}
