package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// favouriteRepository implements the domain.FavouriteRepository interface.
type favouriteRepository struct {
	db *gorm.DB
}

// NewFavouriteRepository is the constructor for favouriteRepository.
func NewFavouriteRepository(db *gorm.DB) repository.FavouriteRepository {
	return &favouriteRepository{db: db}
}

// Add links a product to the user's favourites.
func (repo *favouriteRepository) Add(ctx context.Context, favourite *entity.Favourite) error {
	favouriteM := &model.FavouriteModel{
		ID:        favourite.ID,
		UserID:    favourite.UserID,
		ProductID: favourite.ProductID,
	}

	if err := repo.db.WithContext(ctx).Create(favouriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrFavouriteAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err)
	}

	favourite.ID = favouriteM.ID
	favourite.CreatedAt = favouriteM.CreatedAt

	return nil
}

// ListProductsByUser returns the favourited products joined with the
// catalogue, newest favourite first.
func (repo *favouriteRepository) ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	var favouriteModels []model.FavouriteModel

	err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favouriteModels).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	products := make([]*entity.Product, 0, len(favouriteModels))
	for i := range favouriteModels {
		if favouriteModels[i].Product == nil {
			// Product was removed from the catalogue after favouriting.
			continue
		}
		products = append(products, toProductDomain(favouriteModels[i].Product))
	}

	return products, nil
}

// Remove unlinks a product from the user's favourites.
func (repo *favouriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.FavouriteModel{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrFavouriteNotFound
	}

	return nil
}
