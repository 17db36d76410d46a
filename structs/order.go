package structs

import "github.com/google/uuid"

type OrderItemRequest struct {
	ProductId uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type OrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string             `json:"payment_method" validate:"omitempty,max=100"`
	Currency      string             `json:"currency" validate:"omitempty,max=10"`
}

// OrderUpdateRequest covers the only mutable order fields. Item and price
// data is immutable after creation.
type OrderUpdateRequest struct {
	PaymentStatus *string `json:"payment_status,omitempty" validate:"omitempty,max=50"`
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

type OrderStats struct {
	TotalOrders     int    `json:"total_orders"`
	PendingOrders   int    `json:"pending_orders"`
	DeliveredOrders int    `json:"delivered_orders"`
	TotalSpent      uint64 `json:"total_spent"` // cents
}
