package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Correlation-Id, X-User-Id"
)

// CORS answers preflight requests and reflects allowed origins. A single "*" entry allows any origin.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowOrigins))
	anyOrigin := false
	for _, o := range allowOrigins {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "*" {
			anyOrigin = true
		}
		if o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				_, ok := allowed[strings.ToLower(origin)]
				if ok || anyOrigin {
					h := w.Header()
					// reflected so credentialed requests work
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
					h.Set("Access-Control-Allow-Methods", corsAllowMethods)
					h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
					h.Set("Access-Control-Expose-Headers", HeaderCorrelationID)
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
