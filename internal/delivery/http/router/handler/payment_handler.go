package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc usecase.PaymentUsecase
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

type createPaymentIntentRequest struct {
	AmountCents int64  `json:"amountCents" validate:"required,gt=0"`
	Currency    string `json:"currency"`
}

// CreatePaymentIntent asks the payment provider for a client secret the
// frontend uses to confirm the charge.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	var req createPaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreatePaymentIntent(c.Request().Context(), usecase.CreatePaymentIntentInput{
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"intentId":     output.IntentID,
		"clientSecret": output.ClientSecret,
		"amountCents":  output.AmountCents,
		"currency":     output.Currency,
	}, "Payment intent created successfully")
}
