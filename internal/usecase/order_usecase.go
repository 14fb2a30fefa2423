package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int64
}

// CreateOrderInput defines the data required to place an order. Prices are
// looked up from the catalogue, never taken from the client.
type CreateOrderInput struct {
	Items []OrderItemInput
}

// OrderUsecase defines order placement and retrieval.
type OrderUsecase interface {
	CreateOrder(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*entity.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	// GetOrder enforces ownership unless asAdmin is set.
	GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, asAdmin bool) (*entity.Order, error)
}
