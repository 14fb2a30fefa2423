package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo   repository.ProductRepository
	favouriteRepo repository.FavouriteRepository
	logger        *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo   repository.ProductRepository
	FavouriteRepo repository.FavouriteRepository
	Logger        *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo:   params.ProductRepo,
		favouriteRepo: params.FavouriteRepo,
		logger:        params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *productService) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx, category)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return products, nil
}

func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return product, nil
}

// CreateProduct adds a catalogue item. Admin only; the gate sits in the router.
func (srv *productService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		Name:         input.Name,
		Description:  input.Description,
		SKU:          input.SKU,
		Category:     input.Category,
		AvailableQty: input.AvailableQty,
		Price:        input.Price,
		ImageOne:     input.ImageOne,
		ImageTwo:     input.ImageTwo,
		ImageThree:   input.ImageThree,
		ImageFour:    input.ImageFour,
	}

	if _, err := priceToCents(product.Price); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price is not a valid decimal amount")
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("sku", product.SKU))

	return product, nil
}

// UpdateProduct applies a partial catalogue update.
func (srv *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	applyIfSet(&product.Name, input.Name)
	applyIfSet(&product.Description, input.Description)
	applyIfSet(&product.Category, input.Category)
	applyIfSet(&product.Price, input.Price)
	applyIfSet(&product.ImageOne, input.ImageOne)
	applyIfSet(&product.ImageTwo, input.ImageTwo)
	applyIfSet(&product.ImageThree, input.ImageThree)
	applyIfSet(&product.ImageFour, input.ImageFour)
	if input.AvailableQty != nil {
		product.AvailableQty = *input.AvailableQty
	}

	if _, err := priceToCents(product.Price); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("price is not a valid decimal amount")
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, err
	}

	return product, nil
}

func (srv *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	srv.log(ctx).Info("Product deleted", slog.Any("productID", productID))

	return nil
}

// AddFavourite links an existing product to the user's favourites.
func (srv *productService) AddFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	favourite := &entity.Favourite{UserID: userID, ProductID: productID}
	if err := srv.favouriteRepo.Add(ctx, favourite); err != nil {
		if errors.Is(err, repository.ErrFavouriteAlreadyExists) {
			return domainerrors.ErrFavouriteAlreadyExists
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound
		}

		return err
	}

	return nil
}

func (srv *productService) ListFavourites(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	products, err := srv.favouriteRepo.ListProductsByUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return products, nil
}

func (srv *productService) RemoveFavourite(ctx context.Context, userID, productID uuid.UUID) error {
	if err := srv.favouriteRepo.Remove(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrFavouriteNotFound) {
			return domainerrors.ErrFavouriteNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	return nil
}
