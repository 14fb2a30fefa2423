package usecase

import (
	"context"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
)

// CreateProductInput defines the data required to add a catalogue item.
type CreateProductInput struct {
	Name         string
	Description  string
	SKU          string
	Category     string
	AvailableQty int64
	Price        string
	ImageOne     string
	ImageTwo     string
	ImageThree   string
	ImageFour    string
}

// UpdateProductInput applies a partial catalogue update. Nil fields stay unchanged.
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Category     *string
	AvailableQty *int64
	Price        *string
	ImageOne     *string
	ImageTwo     *string
	ImageThree   *string
	ImageFour    *string
}

// ProductUsecase defines catalogue and favourites operations.
type ProductUsecase interface {
	ListProducts(ctx context.Context, category string) ([]*entity.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error

	AddFavourite(ctx context.Context, userID, productID uuid.UUID) error
	ListFavourites(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error)
	RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error
}
