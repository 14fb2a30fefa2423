package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder prices every line from the catalogue and persists the order
// with its items in one transaction.
func (srv *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, input usecase.CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("order has no items")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("item quantity must be positive")
		}
	}

	var created *entity.Order
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		productRepo := repos.ProductRepo()

		var totalCents int64
		items := make([]entity.OrderItem, 0, len(input.Items))

		for _, item := range input.Items {
			product, err := productRepo.FindByID(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WithDetails(map[string]any{
						"productId": item.ProductID,
					})
				}

				return errors.Wrap(err, "failed to load product for order")
			}

			if product.AvailableQty < item.Quantity {
				return domainerrors.ErrValidationFailed.WithDetails(map[string]any{
					"productId": product.ID,
					"reason":    "insufficient stock",
				})
			}

			unitCents, err := priceToCents(product.Price)
			if err != nil {
				srv.log(ctx).Error("Catalogue price is not parseable", slog.Any("productID", product.ID), slog.String("price", product.Price))

				return domainerrors.ErrInternalError.Wrap(err)
			}

			totalCents += unitCents * item.Quantity
			items = append(items, entity.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
		}

		order := &entity.Order{
			UserID:     userID,
			Status:     entity.OrderStatusPending,
			TotalCents: totalCents,
			Items:      items,
		}
		if err := repos.OrderRepo().Create(ctx, order); err != nil {
			return err
		}

		created = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order placed", slog.Any("orderID", created.ID), slog.Any("userID", userID), slog.Int64("totalCents", created.TotalCents))

	return created, nil
}

func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	return orders, nil
}

// GetOrder returns an order. A non-admin asking for someone else's order gets
// not-found, so order ids cannot be probed.
func (srv *orderService) GetOrder(ctx context.Context, userID uuid.UUID, orderID uuid.UUID, asAdmin bool) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err)
	}

	if !asAdmin && order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound
	}

	return order, nil
}

// priceToCents parses decimal text like "12.50" into integer cents. Fractions
// beyond two digits are rejected rather than rounded.
func priceToCents(price string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(price), ".")

	wholePart, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || wholePart < 0 {
		return 0, errors.Errorf("invalid price %q", price)
	}

	var fracPart int64
	switch len(frac) {
	case 0:
	case 1:
		fracPart, err = strconv.ParseInt(frac, 10, 64)
		fracPart *= 10
	case 2:
		fracPart, err = strconv.ParseInt(frac, 10, 64)
	default:
		return 0, errors.Errorf("invalid price %q", price)
	}
	if err != nil || fracPart < 0 {
		return 0, errors.Errorf("invalid price %q", price)
	}

	return wholePart*100 + fracPart, nil
}
