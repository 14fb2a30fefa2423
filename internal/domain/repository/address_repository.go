package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// ErrAddressNotFound is returned when the user has no address row.
var ErrAddressNotFound = errors.New("address not found")

// AddressRepository persists the per-user delivery address.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Address, error)
	Update(ctx context.Context, address *entity.Address) error
}
