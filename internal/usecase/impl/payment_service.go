package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

const defaultCurrency = "usd"

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	payments service.PaymentService
	logger   *slog.Logger
}

// PaymentServiceParams holds dependencies for paymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	Payments service.PaymentService
	Logger   *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		payments: params.Payments,
		logger:   params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePaymentIntent registers a pending charge with the provider. Provider
// failures surface as a bad-gateway domain error; the detail stays in the logs.
func (srv *paymentService) CreatePaymentIntent(ctx context.Context, input usecase.CreatePaymentIntentInput) (*usecase.PaymentIntentOutput, error) {
	if input.AmountCents <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("amount must be positive")
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	intent, err := srv.payments.CreateIntent(ctx, input.AmountCents, currency)
	if err != nil {
		srv.log(ctx).Error("Payment intent creation failed", slog.Any("error", err))

		return nil, domainerrors.ErrPaymentFailed.Wrap(err)
	}

	return &usecase.PaymentIntentOutput{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountCents:  intent.Amount,
		Currency:     intent.Currency,
	}, nil
}
