package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSOptions configures cross-origin access for the browser front end.
type CORSOptions struct {
	AllowedOrigins []string // exact origins, or ["*"]
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int // preflight cache lifetime in seconds
}

// DefaultCORSOptions is permissive enough for local front-end development;
// production deployments narrow AllowedOrigins.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}
}

func (o CORSOptions) originAllowed(origin string) (string, bool) {
	for _, allowed := range o.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return allowed, true
		}
	}
	return "", false
}

// CORS sets the Access-Control headers and answers preflight requests.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := strings.Join(opts.AllowedMethods, ", ")
	headers := strings.Join(opts.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(opts.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin, ok := opts.originAllowed(r.Header.Get("Origin")); ok {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				if opts.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", maxAge)
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
