package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Orders start pending and move to paid once the payment
// provider confirms the charge.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// Order is a placed order. TotalCents is computed from catalogue prices at
// placement time and never taken from the client.
type Order struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Status     string
	TotalCents int64
	CreatedAt  time.Time

	Items []OrderItem
}

// OrderItem is one line of an order. UnitPrice is the catalogue price
// captured when the order was placed.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice string
}
