package impl

import (
	"context"
	"io"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- In-memory repositories ---

type fakeUserRepo struct {
	users            map[uuid.UUID]*entity.User
	findByEmailCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.findByEmailCalls++
	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}

	return users, nil
}

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*entity.Address // keyed by user id
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[uuid.UUID]*entity.Address)}
}

func (r *fakeAddressRepo) Create(_ context.Context, address *entity.Address) error {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	clone := *address
	r.addresses[address.UserID] = &clone

	return nil
}

func (r *fakeAddressRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Address, error) {
	address, ok := r.addresses[userID]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}
	clone := *address

	return &clone, nil
}

func (r *fakeAddressRepo) Update(_ context.Context, address *entity.Address) error {
	if _, ok := r.addresses[address.UserID]; !ok {
		return repository.ErrAddressNotFound
	}
	clone := *address
	r.addresses[address.UserID] = &clone

	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*entity.RefreshToken // keyed by token hash
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *entity.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	clone := *token
	r.tokens[token.TokenHash] = &clone

	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	token, ok := r.tokens[tokenHash]
	if !ok || token.IsExpired() {
		return nil, repository.ErrRefreshTokenNotFound
	}
	clone := *token

	return &clone, nil
}

func (r *fakeRefreshTokenRepo) DeleteByHash(_ context.Context, tokenHash string) error {
	if _, ok := r.tokens[tokenHash]; !ok {
		return repository.ErrRefreshTokenNotFound
	}
	delete(r.tokens, tokenHash)

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, hash)
		}
	}

	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var removed int64
	for hash, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, hash)
			removed++
		}
	}

	return removed, nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product

	return &clone, nil
}

func (r *fakeProductRepo) List(_ context.Context, category string) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		if category != "" && product.Category != category {
			continue
		}
		clone := *product
		products = append(products, &clone)
	}

	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

type favouriteKey struct {
	userID    uuid.UUID
	productID uuid.UUID
}

type fakeFavouriteRepo struct {
	favourites map[favouriteKey]*entity.Favourite
	products   *fakeProductRepo
}

func newFakeFavouriteRepo(products *fakeProductRepo) *fakeFavouriteRepo {
	return &fakeFavouriteRepo{
		favourites: make(map[favouriteKey]*entity.Favourite),
		products:   products,
	}
}

func (r *fakeFavouriteRepo) Add(_ context.Context, favourite *entity.Favourite) error {
	key := favouriteKey{userID: favourite.UserID, productID: favourite.ProductID}
	if _, ok := r.favourites[key]; ok {
		return repository.ErrFavouriteAlreadyExists
	}
	if favourite.ID == uuid.Nil {
		favourite.ID = uuid.New()
	}
	clone := *favourite
	r.favourites[key] = &clone

	return nil
}

func (r *fakeFavouriteRepo) ListProductsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product
	for key := range r.favourites {
		if key.userID != userID {
			continue
		}
		product, err := r.products.FindByID(ctx, key.productID)
		if err != nil {
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *fakeFavouriteRepo) Remove(_ context.Context, userID, productID uuid.UUID) error {
	key := favouriteKey{userID: userID, productID: productID}
	if _, ok := r.favourites[key]; !ok {
		return repository.ErrFavouriteNotFound
	}
	delete(r.favourites, key)

	return nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	clone := *order
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order

	return &clone, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			clone := *order
			orders = append(orders, &clone)
		}
	}

	return orders, nil
}

// --- Factory and transaction manager ---

type fakeRepos struct {
	users      *fakeUserRepo
	addresses  *fakeAddressRepo
	tokens     *fakeRefreshTokenRepo
	products   *fakeProductRepo
	favourites *fakeFavouriteRepo
	orders     *fakeOrderRepo
}

func newFakeRepos() *fakeRepos {
	products := newFakeProductRepo()

	return &fakeRepos{
		users:      newFakeUserRepo(),
		addresses:  newFakeAddressRepo(),
		tokens:     newFakeRefreshTokenRepo(),
		products:   products,
		favourites: newFakeFavouriteRepo(products),
		orders:     newFakeOrderRepo(),
	}
}

func (f *fakeRepos) UserRepo() repository.UserRepository                 { return f.users }
func (f *fakeRepos) AddressRepo() repository.AddressRepository           { return f.addresses }
func (f *fakeRepos) RefreshTokenRepo() repository.RefreshTokenRepository { return f.tokens }
func (f *fakeRepos) ProductRepo() repository.ProductRepository           { return f.products }
func (f *fakeRepos) FavouriteRepo() repository.FavouriteRepository       { return f.favourites }
func (f *fakeRepos) OrderRepo() repository.OrderRepository               { return f.orders }

type reposSnapshot struct {
	users      map[uuid.UUID]*entity.User
	addresses  map[uuid.UUID]*entity.Address
	tokens     map[string]*entity.RefreshToken
	products   map[uuid.UUID]*entity.Product
	favourites map[favouriteKey]*entity.Favourite
	orders     map[uuid.UUID]*entity.Order
}

// fakeTxManager runs the callback against the shared fakes and restores the
// pre-transaction state on error, mirroring a rollback.
type fakeTxManager struct {
	repos     *fakeRepos
	rollbacks int
	commits   int
}

func newFakeTxManager(repos *fakeRepos) *fakeTxManager {
	return &fakeTxManager{repos: repos}
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repos repository.RepositoryFactory) error) error {
	snapshot := tm.snapshot()

	if err := fn(tm.repos); err != nil {
		tm.restore(snapshot)
		tm.rollbacks++

		return err
	}

	tm.commits++

	return nil
}

func (tm *fakeTxManager) snapshot() reposSnapshot {
	return reposSnapshot{
		users:      maps.Clone(tm.repos.users.users),
		addresses:  maps.Clone(tm.repos.addresses.addresses),
		tokens:     maps.Clone(tm.repos.tokens.tokens),
		products:   maps.Clone(tm.repos.products.products),
		favourites: maps.Clone(tm.repos.favourites.favourites),
		orders:     maps.Clone(tm.repos.orders.orders),
	}
}

func (tm *fakeTxManager) restore(snapshot reposSnapshot) {
	tm.repos.users.users = snapshot.users
	tm.repos.addresses.addresses = snapshot.addresses
	tm.repos.tokens.tokens = snapshot.tokens
	tm.repos.products.products = snapshot.products
	tm.repos.favourites.favourites = snapshot.favourites
	tm.repos.orders.orders = snapshot.orders
}

// fakePaymentProvider stands in for the external processor.
type fakePaymentProvider struct {
	intent *service.PaymentIntent
	err    error

	gotAmount   int64
	gotCurrency string
}

func (p *fakePaymentProvider) CreateIntent(_ context.Context, amountCents int64, currency string) (*service.PaymentIntent, error) {
	p.gotAmount = amountCents
	p.gotCurrency = currency
	if p.err != nil {
		return nil, p.err
	}

	return p.intent, nil
}
