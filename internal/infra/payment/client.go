// Package payment implements the payment processor client against the
// provider's form-encoded HTTP API.
package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	delctx "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const defaultTimeout = 15 * time.Second

type client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *slog.Logger
}

// NewClient creates the payment processor client. The secret key is required;
// startup fails without it.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.PaymentService, error) {
	if cfg.Payment == nil || cfg.Payment.SecretKey == "" {
		return nil, errors.New("payment secret key is not configured")
	}

	timeout := cfg.Payment.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	baseURL := strings.TrimRight(cfg.Payment.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}

	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		secretKey:  cfg.Payment.SecretKey,
		logger:     logger,
	}, nil
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// CreateIntent registers a pending charge with the provider and returns its
// client secret. Provider error bodies are logged, never returned upstream.
func (c *client) CreateIntent(ctx context.Context, amountCents int64, currency string) (*service.PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "build payment intent request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call payment provider")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "read payment provider response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger := delctx.GetLoggerOrDefault(ctx, c.logger)
		logger.Error("payment provider rejected intent",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)

		return nil, errors.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var intent intentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, errors.Wrap(err, "decode payment provider response")
	}

	return &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}, nil
}
