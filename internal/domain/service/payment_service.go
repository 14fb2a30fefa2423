package service

import "context"

// PaymentIntent is the provider's handle for a pending charge. ClientSecret
// is handed to the frontend to confirm the payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// PaymentService talks to the external payment processor.
type PaymentService interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error)
}
