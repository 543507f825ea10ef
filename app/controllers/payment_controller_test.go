package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakePaymentStore struct {
	inserted  []models.Payment
	insertErr error
	history   []models.Payment
}

func (f *fakePaymentStore) ByEmail(_ context.Context, email string) ([]models.Payment, error) {
	return f.history, nil
}

func (f *fakePaymentStore) Insert(_ context.Context, p models.Payment) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	f.inserted = append(f.inserted, p)
	return primitive.NewObjectID(), nil
}

type fakeCartSettler struct {
	calls   int
	email   string
	ids     []string
	deleted int64
}

func (f *fakeCartSettler) DeleteSettled(_ context.Context, email string, ids []string) (int64, error) {
	f.calls++
	f.email = email
	f.ids = ids
	return f.deleted, nil
}

type fakeIntentCreator struct {
	price  float64
	secret string
	err    error
}

func (f *fakeIntentCreator) CreateIntent(_ context.Context, price float64) (string, error) {
	f.price = price
	return f.secret, f.err
}

func authed(req *http.Request, email string) *http.Request {
	return req.WithContext(middleware.WithEmail(req.Context(), email))
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	intents := &fakeIntentCreator{secret: "pi_secret"}
	c := controllers.NewPaymentController(&fakePaymentStore{}, &fakeCartSettler{}, intents)

	req := authed(httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		strings.NewReader(`{"price": 42.5}`)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.CreateIntent(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if intents.price != 42.5 {
		t.Errorf("price passed to processor = %v, want 42.5", intents.price)
	}

	var out map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["clientSecret"] != "pi_secret" {
		t.Errorf("clientSecret = %q", out["clientSecret"])
	}
}

func TestCreateIntentRejectsNonPositivePrice(t *testing.T) {
	c := controllers.NewPaymentController(&fakePaymentStore{}, &fakeCartSettler{}, &fakeIntentCreator{})

	for _, body := range []string{`{"price": 0}`, `{"price": -3}`, `{}`} {
		req := authed(httptest.NewRequest(http.MethodPost, "/create-payment-intent",
			strings.NewReader(body)), "diner@example.com")
		rec := httptest.NewRecorder()
		c.CreateIntent(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %s: status = %d, want 422", body, rec.Code)
		}
	}
}

func TestCreateIntentProcessorFailure(t *testing.T) {
	c := controllers.NewPaymentController(&fakePaymentStore{}, &fakeCartSettler{},
		&fakeIntentCreator{err: errors.New("processor down")})

	req := authed(httptest.NewRequest(http.MethodPost, "/create-payment-intent",
		strings.NewReader(`{"price": 10}`)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.CreateIntent(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestSettleRecordsPaymentAndClearsCart(t *testing.T) {
	store := &fakePaymentStore{}
	carts := &fakeCartSettler{deleted: 3}
	c := controllers.NewPaymentController(store, carts, &fakeIntentCreator{})

	body := `{
		"email": "diner@example.com",
		"price": 55.5,
		"transactionId": "pi_123",
		"cartIds": ["a1", "a2", "a3"],
		"menuItemIds": ["m1", "m2", "m3"],
		"status": "pending"
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.Settle(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d payments, want 1", len(store.inserted))
	}
	if store.inserted[0].TransactionID != "pi_123" {
		t.Errorf("transactionId = %q", store.inserted[0].TransactionID)
	}
	if carts.calls != 1 || carts.email != "diner@example.com" || len(carts.ids) != 3 {
		t.Errorf("cart settlement = %d calls, email %q, %d ids", carts.calls, carts.email, len(carts.ids))
	}

	var out map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["deletedCount"] != float64(3) {
		t.Errorf("deletedCount = %v, want 3", out["deletedCount"])
	}
}

func TestSettleRejectsEmptyCartIDs(t *testing.T) {
	store := &fakePaymentStore{}
	carts := &fakeCartSettler{}
	c := controllers.NewPaymentController(store, carts, &fakeIntentCreator{})

	body := `{
		"email": "diner@example.com",
		"price": 12,
		"transactionId": "pi_9",
		"cartIds": [],
		"menuItemIds": ["m1"]
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.Settle(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if len(store.inserted) != 0 || carts.calls != 0 {
		t.Error("settlement side effects ran for an empty cart set")
	}
}

func TestSettleInsertFailureLeavesCartAlone(t *testing.T) {
	store := &fakePaymentStore{insertErr: errors.New("write concern failed")}
	carts := &fakeCartSettler{}
	c := controllers.NewPaymentController(store, carts, &fakeIntentCreator{})

	body := `{
		"email": "diner@example.com",
		"price": 12,
		"transactionId": "pi_9",
		"cartIds": ["a1"],
		"menuItemIds": ["m1"]
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.Settle(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if carts.calls != 0 {
		t.Error("cart entries were deleted despite a failed payment insert")
	}
}

func TestSettleOwnershipMismatch(t *testing.T) {
	store := &fakePaymentStore{}
	carts := &fakeCartSettler{}
	c := controllers.NewPaymentController(store, carts, &fakeIntentCreator{})

	body := `{
		"email": "victim@example.com",
		"price": 12,
		"transactionId": "pi_9",
		"cartIds": ["a1"],
		"menuItemIds": ["m1"]
	}`
	req := authed(httptest.NewRequest(http.MethodPost, "/payment", strings.NewReader(body)), "attacker@example.com")
	rec := httptest.NewRecorder()
	c.Settle(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if len(store.inserted) != 0 || carts.calls != 0 {
		t.Error("settlement side effects ran for a mismatched email")
	}
}

func TestHistoryOwnershipMismatch(t *testing.T) {
	c := controllers.NewPaymentController(&fakePaymentStore{}, &fakeCartSettler{}, &fakeIntentCreator{})

	req := authed(httptest.NewRequest(http.MethodGet, "/payment?email=victim@example.com", nil), "attacker@example.com")
	rec := httptest.NewRecorder()
	c.History(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestHistoryMissingEmail(t *testing.T) {
	c := controllers.NewPaymentController(&fakePaymentStore{}, &fakeCartSettler{}, &fakeIntentCreator{})

	req := authed(httptest.NewRequest(http.MethodGet, "/payment", nil), "diner@example.com")
	rec := httptest.NewRecorder()
	c.History(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
