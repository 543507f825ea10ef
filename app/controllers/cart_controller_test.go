package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCartStore struct {
	entries  map[string][]models.CartEntry
	inserted []models.CartEntry
	deletes  []string
}

func (f *fakeCartStore) ByEmail(_ context.Context, email string) ([]models.CartEntry, error) {
	return f.entries[email], nil
}

func (f *fakeCartStore) Insert(_ context.Context, e models.CartEntry) (primitive.ObjectID, error) {
	f.inserted = append(f.inserted, e)
	return primitive.NewObjectID(), nil
}

func (f *fakeCartStore) Delete(_ context.Context, email, id string) (int64, error) {
	f.deletes = append(f.deletes, email+"/"+id)
	return 1, nil
}

func TestCartListOwnEntries(t *testing.T) {
	store := &fakeCartStore{entries: map[string][]models.CartEntry{
		"diner@example.com": {{Email: "diner@example.com", Name: "Tuna Niçoise", Quantity: 2}},
	}}
	c := controllers.NewCartController(store)

	req := authed(httptest.NewRequest(http.MethodGet, "/carts?email=diner@example.com", nil), "diner@example.com")
	rec := httptest.NewRecorder()
	c.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out []models.CartEntry
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Name != "Tuna Niçoise" {
		t.Errorf("entries = %+v", out)
	}
}

func TestCartListRejectsOtherUsersEmail(t *testing.T) {
	c := controllers.NewCartController(&fakeCartStore{})

	req := authed(httptest.NewRequest(http.MethodGet, "/carts?email=victim@example.com", nil), "attacker@example.com")
	rec := httptest.NewRecorder()
	c.List(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCartListRequiresEmail(t *testing.T) {
	c := controllers.NewCartController(&fakeCartStore{})

	req := authed(httptest.NewRequest(http.MethodGet, "/carts", nil), "diner@example.com")
	rec := httptest.NewRecorder()
	c.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCartCreateOwnershipMismatch(t *testing.T) {
	store := &fakeCartStore{}
	c := controllers.NewCartController(store)

	body := `{"email": "victim@example.com", "menuItemId": "m1", "name": "Espresso", "quantity": 1, "price": 2.5}`
	req := authed(httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(body)), "attacker@example.com")
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if len(store.inserted) != 0 {
		t.Error("entry inserted for a mismatched email")
	}
}

func TestCartCreate(t *testing.T) {
	store := &fakeCartStore{}
	c := controllers.NewCartController(store)

	body := `{"email": "diner@example.com", "menuItemId": "m1", "name": "Espresso", "quantity": 2, "price": 2.5}`
	req := authed(httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(body)), "diner@example.com")
	rec := httptest.NewRecorder()
	c.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if len(store.inserted) != 1 || store.inserted[0].Quantity != 2 {
		t.Errorf("inserted = %+v", store.inserted)
	}
}

func TestCartDeleteScopedToOwner(t *testing.T) {
	store := &fakeCartStore{}
	c := controllers.NewCartController(store)

	req := authed(httptest.NewRequest(http.MethodDelete, "/carts/abc123", nil), "diner@example.com")
	req = withURLParam(req, "id", "abc123")
	rec := httptest.NewRecorder()
	c.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(store.deletes) != 1 || store.deletes[0] != "diner@example.com/abc123" {
		t.Errorf("deletes = %v", store.deletes)
	}
}
