package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/bistro/pkg/response"
)

// RoleStore looks up the stored role for an email.
// Implemented by the user repository. The role is re-fetched on every
// admin-gated request instead of being trusted from the claim, so a
// revocation takes effect immediately without re-authentication. The
// interface leaves room for a cached implementation with explicit
// invalidation if the per-request lookup ever becomes a latency problem.
type RoleStore interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RoleAdmin is the stored role value that passes the admin gate.
const RoleAdmin = "admin"

// RequireAdmin gates a route to admin users. Must be chained after Verify.
// Unknown users and non-admin roles are rejected with 403.
func RequireAdmin(store RoleStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			role, err := store.RoleByEmail(r.Context(), email)
			if err != nil || role != RoleAdmin {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
