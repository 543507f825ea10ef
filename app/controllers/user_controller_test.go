package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/bistro/app/controllers"
	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeUserStore struct {
	users    map[string]models.User
	inserted []models.User
	lookups  int
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.lookups++
	u, ok := f.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Insert(_ context.Context, u models.User) (primitive.ObjectID, error) {
	f.inserted = append(f.inserted, u)
	return primitive.NewObjectID(), nil
}

func (f *fakeUserStore) All(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id, role string) (int64, error) {
	return 1, nil
}

func (f *fakeUserStore) Delete(_ context.Context, id string) (int64, error) {
	return 1, nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUserCreateInsertsNewUser(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{}}
	c := controllers.NewUserController(store)

	body := `{"name": "New Diner", "email": "new@example.com"}`
	rec := httptest.NewRecorder()
	c.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d users, want 1", len(store.inserted))
	}
	if store.inserted[0].Role != models.RoleRegular {
		t.Errorf("new user role = %q, want regular", store.inserted[0].Role)
	}
}

func TestUserCreateIsIdempotent(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"dup@example.com": {Email: "dup@example.com", Role: models.RoleRegular},
	}}
	c := controllers.NewUserController(store)

	body := `{"name": "Dup", "email": "dup@example.com"}`
	rec := httptest.NewRecorder()
	c.Create(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(store.inserted) != 0 {
		t.Error("duplicate registration inserted a second record")
	}

	var out map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["message"] != "User already exists" {
		t.Errorf("message = %v", out["message"])
	}
	if out["insertedId"] != nil {
		t.Errorf("insertedId = %v, want null", out["insertedId"])
	}
}

func TestCheckUser(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"known@example.com": {Email: "known@example.com"},
	}}
	c := controllers.NewUserController(store)

	cases := []struct {
		email string
		want  bool
	}{
		{"known@example.com", true},
		{"unknown@example.com", false},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c.CheckUser(rec, httptest.NewRequest(http.MethodGet, "/users/checkUser?email="+tc.email, nil))

		var out map[string]bool
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out["exists"] != tc.want {
			t.Errorf("%s: exists = %v, want %v", tc.email, out["exists"], tc.want)
		}
	}
}

func TestAdminProbeSelfOnly(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"boss@example.com": {Email: "boss@example.com", Role: models.RoleAdmin},
	}}
	c := controllers.NewUserController(store)

	// Probing someone else's status is rejected before any lookup runs.
	req := authed(httptest.NewRequest(http.MethodGet, "/users/admin/boss@example.com", nil), "diner@example.com")
	req = withURLParam(req, "email", "boss@example.com")
	rec := httptest.NewRecorder()
	c.AdminProbe(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if store.lookups != 0 {
		t.Error("store was queried after an ownership mismatch")
	}
}

func TestAdminProbeReportsRole(t *testing.T) {
	store := &fakeUserStore{users: map[string]models.User{
		"boss@example.com":  {Email: "boss@example.com", Role: models.RoleAdmin},
		"diner@example.com": {Email: "diner@example.com", Role: models.RoleRegular},
	}}
	c := controllers.NewUserController(store)

	cases := []struct {
		email string
		want  bool
	}{
		{"boss@example.com", true},
		{"diner@example.com", false},
	}
	for _, tc := range cases {
		req := authed(httptest.NewRequest(http.MethodGet, "/users/admin/"+tc.email, nil), tc.email)
		req = withURLParam(req, "email", tc.email)
		rec := httptest.NewRecorder()
		c.AdminProbe(rec, req)

		var out map[string]bool
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		if out["admin"] != tc.want {
			t.Errorf("%s: admin = %v, want %v", tc.email, out["admin"], tc.want)
		}
	}
}

func TestCheckUserMissingEmail(t *testing.T) {
	c := controllers.NewUserController(&fakeUserStore{})

	rec := httptest.NewRecorder()
	c.CheckUser(rec, httptest.NewRequest(http.MethodGet, "/users/checkUser", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
