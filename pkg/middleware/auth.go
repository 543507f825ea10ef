// Package middleware provides the HTTP guard chain for the Bistro API:
// credential verification, the admin gate, CORS, logging, panic recovery,
// and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// emailKey is the unexported context key holding the verified claim email.
type emailKey struct{}

// Verify is the token-verification guard for protected routes.
//
// It expects "Authorization: Bearer <token>", validates the credential, and
// stores the claim email in the request context for downstream handlers.
// Absent, malformed, badly signed, or expired credentials short-circuit with
// 401 before any collection is touched.
func Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey{}, claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// EmailFromCtx returns the verified claim email stored by Verify.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok && email != ""
}

// WithEmail stores a claim email in ctx. Exposed for handler tests that
// bypass Verify.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}
