// Package payments talks to the external payment processor.
//
// The processor is an external collaborator: the API depends only on the
// IntentCreator interface, and the concrete client is a thin call-through to
// the processor's REST form API.
package payments

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"github.com/shashiranjanraj/bistro/config"
	"github.com/shashiranjanraj/bistro/pkg/http"
)

// IntentCreator creates a client-side payment handshake for an amount given
// in major currency units.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (clientSecret string, err error)
}

const intentEndpoint = "https://api.stripe.com/v1/payment_intents"

// StripeClient implements IntentCreator against Stripe's REST API.
type StripeClient struct {
	secret   string
	endpoint string
}

// NewStripeClient builds a client using the configured secret key.
func NewStripeClient() *StripeClient {
	return &StripeClient{
		secret:   config.StripeSecret(),
		endpoint: intentEndpoint,
	}
}

// CreateIntent converts price to minor units (×100) and requests a payment
// intent for that amount with fixed currency, card-only. The returned client
// secret is passed through to the caller verbatim.
func (c *StripeClient) CreateIntent(ctx context.Context, price float64) (string, error) {
	if c.secret == "" {
		return "", fmt.Errorf("payments: STRIPE_SECRET is not configured")
	}

	amount := int64(math.Round(price * 100))

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amount))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")

	resp, err := http.Post(c.endpoint).
		Header("Authorization", "Bearer "+c.secret).
		Timeout(15 * time.Second).
		Form(form).
		Send(ctx)
	if err != nil {
		return "", fmt.Errorf("payments: create intent: %w", err)
	}

	if !resp.OK() {
		return "", fmt.Errorf("payments: processor returned status %d", resp.StatusCode)
	}

	var out struct {
		ClientSecret string `json:"client_secret"`
	}
	if err := resp.JSON(&out); err != nil {
		return "", fmt.Errorf("payments: %w", err)
	}
	if out.ClientSecret == "" {
		return "", fmt.Errorf("payments: processor response missing client_secret")
	}

	return out.ClientSecret, nil
}
