package repository

import "context"

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	AddressRepo() AddressRepository
	RefreshTokenRepo() RefreshTokenRepository
	ProductRepo() ProductRepository
	FavouriteRepo() FavouriteRepository
	OrderRepo() OrderRepository
}

// TransactionManager runs fn inside a transaction. Any error (or panic)
// rolls the whole transaction back.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repos RepositoryFactory) error) error
}
