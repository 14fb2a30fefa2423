package usecase

import "context"

// CreatePaymentIntentInput defines a requested charge in integer cents.
type CreatePaymentIntentInput struct {
	AmountCents int64
	Currency    string
}

// PaymentIntentOutput is handed to the frontend to confirm the charge.
type PaymentIntentOutput struct {
	IntentID     string
	ClientSecret string
	AmountCents  int64
	Currency     string
}

// PaymentUsecase wraps the external payment processor.
type PaymentUsecase interface {
	CreatePaymentIntent(ctx context.Context, input CreatePaymentIntentInput) (*PaymentIntentOutput, error)
}
