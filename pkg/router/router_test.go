package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/bistro/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	r.Get("/menu", "menu.list", ok)
	r.Get("/menu/{id}", "menu.show", ok)

	path, found := r.Path("menu.show")
	if !found || path != "/menu/{id}" {
		t.Errorf("Path(menu.show) = %q, %v", path, found)
	}

	url, err := r.URL("menu.show", map[string]string{"id": "abc"})
	if err != nil || url != "/menu/abc" {
		t.Errorf("URL(menu.show) = %q, %v", url, err)
	}

	if _, err := r.URL("menu.show", nil); err == nil {
		t.Error("URL with missing params did not error")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("URL for unknown route did not error")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/menu", "menu.list", ok)
	r.Post("/menu", "menu.create", ok)
	r.Get("/internal", "", ok) // unnamed routes are not listed

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("Routes() returned %d entries, want 2", len(infos))
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	g := r.Group("/admin", mw("outer"))
	g.Get("/menu", "admin.menu", ok, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/admin/menu", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Post("/carts", "carts.create", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/carts", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on POST-only route: status = %d, want 405", rec.Code)
	}
}
