package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

type productServiceFixture struct {
	svc   usecase.ProductUsecase
	repos *fakeRepos
}

func newProductServiceFixture() *productServiceFixture {
	repos := newFakeRepos()

	svc := NewProductService(ProductServiceParams{
		ProductRepo:   repos.products,
		FavouriteRepo: repos.favourites,
		Logger:        newDiscardLogger(),
	})

	return &productServiceFixture{svc: svc, repos: repos}
}

func sampleProduct(sku string) usecase.CreateProductInput {
	return usecase.CreateProductInput{
		Name:         "Walnut Desk Organiser",
		Description:  "Five compartments, oiled finish",
		SKU:          sku,
		Category:     "office",
		AvailableQty: 25,
		Price:        "34.99",
	}
}

func TestCreateAndGetProduct(t *testing.T) {
	f := newProductServiceFixture()
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, sampleProduct("SKU-001"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := f.svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Walnut Desk Organiser", got.Name)
	assert.Equal(t, "34.99", got.Price)
}

func TestCreateProduct_RejectsBadPrice(t *testing.T) {
	f := newProductServiceFixture()

	input := sampleProduct("SKU-001")
	input.Price = "thirty"

	_, err := f.svc.CreateProduct(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestGetProduct_NotFound(t *testing.T) {
	f := newProductServiceFixture()

	_, err := f.svc.GetProduct(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	f := newProductServiceFixture()
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, sampleProduct("SKU-001"))
	require.NoError(t, err)

	price := "29.99"
	qty := int64(10)
	updated, err := f.svc.UpdateProduct(ctx, created.ID, usecase.UpdateProductInput{
		Price:        &price,
		AvailableQty: &qty,
	})
	require.NoError(t, err)

	assert.Equal(t, "29.99", updated.Price)
	assert.Equal(t, int64(10), updated.AvailableQty)
	// Untouched fields survive.
	assert.Equal(t, "Walnut Desk Organiser", updated.Name)
	assert.Equal(t, "office", updated.Category)
}

func TestDeleteProduct(t *testing.T) {
	f := newProductServiceFixture()
	ctx := context.Background()

	created, err := f.svc.CreateProduct(ctx, sampleProduct("SKU-001"))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProduct(ctx, created.ID))

	_, err = f.svc.GetProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))

	err = f.svc.DeleteProduct(ctx, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestFavourites_AddListRemove(t *testing.T) {
	f := newProductServiceFixture()
	ctx := context.Background()
	userID := uuid.New()

	created, err := f.svc.CreateProduct(ctx, sampleProduct("SKU-001"))
	require.NoError(t, err)

	require.NoError(t, f.svc.AddFavourite(ctx, userID, created.ID))

	err = f.svc.AddFavourite(ctx, userID, created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFavouriteAlreadyExists))

	products, err := f.svc.ListFavourites(ctx, userID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, created.ID, products[0].ID)

	require.NoError(t, f.svc.RemoveFavourite(ctx, userID, created.ID))

	err = f.svc.RemoveFavourite(ctx, userID, created.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrFavouriteNotFound))
}

func TestAddFavourite_UnknownProduct(t *testing.T) {
	f := newProductServiceFixture()

	err := f.svc.AddFavourite(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}
