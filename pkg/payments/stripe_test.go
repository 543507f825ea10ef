package payments

import (
	"context"
	"io"
	gohttp "net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bistro/pkg/http"
)

// roundTripFunc lets a test intercept outgoing calls.
type roundTripFunc func(*gohttp.Request) (*gohttp.Response, error)

func (f roundTripFunc) RoundTrip(r *gohttp.Request) (*gohttp.Response, error) { return f(r) }

func jsonResponse(status int, body string) *gohttp.Response {
	return &gohttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     gohttp.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestCreateIntentSendsMinorUnits(t *testing.T) {
	var form url.Values
	http.DefaultClient.Transport = roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))

		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("Authorization = %q", got)
		}
		return jsonResponse(200, `{"client_secret":"pi_abc_secret_xyz"}`), nil
	})
	defer http.ResetTransport()

	c := &StripeClient{secret: "sk_test_123", endpoint: intentEndpoint}
	secret, err := c.CreateIntent(context.Background(), 19.99)
	if err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if secret != "pi_abc_secret_xyz" {
		t.Errorf("clientSecret = %q", secret)
	}

	if got := form.Get("amount"); got != "1999" {
		t.Errorf("amount = %q, want 1999 (price x100 in minor units)", got)
	}
	if got := form.Get("currency"); got != "usd" {
		t.Errorf("currency = %q, want usd", got)
	}
	if got := form.Get("payment_method_types[]"); got != "card" {
		t.Errorf("payment_method_types[] = %q, want card", got)
	}
}

func TestCreateIntentRoundsHalfCents(t *testing.T) {
	var amount string
	http.DefaultClient.Transport = roundTripFunc(func(r *gohttp.Request) (*gohttp.Response, error) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		amount = form.Get("amount")
		return jsonResponse(200, `{"client_secret":"pi_secret"}`), nil
	})
	defer http.ResetTransport()

	c := &StripeClient{secret: "sk_test_123", endpoint: intentEndpoint}
	if _, err := c.CreateIntent(context.Background(), 10.005); err != nil {
		t.Fatalf("CreateIntent: %v", err)
	}
	if amount != "1001" {
		t.Errorf("amount = %q, want 1001", amount)
	}
}

func TestCreateIntentProcessorError(t *testing.T) {
	http.DefaultClient.Transport = roundTripFunc(func(*gohttp.Request) (*gohttp.Response, error) {
		return jsonResponse(402, `{"error":{"message":"card declined"}}`), nil
	})
	defer http.ResetTransport()

	c := &StripeClient{secret: "sk_test_123", endpoint: intentEndpoint}
	if _, err := c.CreateIntent(context.Background(), 5); err == nil {
		t.Error("expected error on non-2xx processor response")
	}
}

func TestCreateIntentMissingSecret(t *testing.T) {
	c := &StripeClient{}
	if _, err := c.CreateIntent(context.Background(), 5); err == nil {
		t.Error("expected error when secret is not configured")
	}
}

func TestCreateIntentMissingClientSecret(t *testing.T) {
	http.DefaultClient.Transport = roundTripFunc(func(*gohttp.Request) (*gohttp.Response, error) {
		return jsonResponse(200, `{}`), nil
	})
	defer http.ResetTransport()

	c := &StripeClient{secret: "sk_test_123", endpoint: intentEndpoint}
	if _, err := c.CreateIntent(context.Background(), 5); err == nil {
		t.Error("expected error when processor omits client_secret")
	}
}
