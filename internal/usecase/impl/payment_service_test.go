package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

func TestCreatePaymentIntent_Success(t *testing.T) {
	provider := &fakePaymentProvider{intent: &service.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       2599,
		Currency:     "usd",
	}}
	svc := NewPaymentService(PaymentServiceParams{Payments: provider, Logger: newDiscardLogger()})

	out, err := svc.CreatePaymentIntent(context.Background(), usecase.CreatePaymentIntentInput{AmountCents: 2599})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", out.IntentID)
	assert.Equal(t, "pi_1_secret", out.ClientSecret)
	assert.Equal(t, int64(2599), provider.gotAmount)
	// Currency defaults when the client omits it.
	assert.Equal(t, "usd", provider.gotCurrency)
}

func TestCreatePaymentIntent_RejectsNonPositiveAmount(t *testing.T) {
	provider := &fakePaymentProvider{}
	svc := NewPaymentService(PaymentServiceParams{Payments: provider, Logger: newDiscardLogger()})

	for _, amount := range []int64{0, -100} {
		_, err := svc.CreatePaymentIntent(context.Background(), usecase.CreatePaymentIntentInput{AmountCents: amount})
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
	// The provider is never reached with a bad amount.
	assert.Zero(t, provider.gotAmount)
}

func TestCreatePaymentIntent_ProviderFailure(t *testing.T) {
	provider := &fakePaymentProvider{err: errors.New("connection reset")}
	svc := NewPaymentService(PaymentServiceParams{Payments: provider, Logger: newDiscardLogger()})

	_, err := svc.CreatePaymentIntent(context.Background(), usecase.CreatePaymentIntentInput{AmountCents: 100, Currency: "gbp"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPaymentFailed))
}
