package repository

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// Favourite sentinel errors.
var (
	ErrFavouriteNotFound      = errors.New("favourite not found")
	ErrFavouriteAlreadyExists = errors.New("favourite already exists")
)

// FavouriteRepository links users to catalogue items.
type FavouriteRepository interface {
	Add(ctx context.Context, favourite *entity.Favourite) error
	// ListProductsByUser returns the favourited products joined with their
	// catalogue rows.
	ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}
