package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/model"
	"github.com/andreasstove999/ecommerce-system/services/booking-service-go/internal/session"
)

const HeaderUserID = "X-User-Id"

// RequireUserID rejects requests without X-User-Id and stores the id in the request context.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(model.ErrorResponse{
				Error:         "missing required header: X-User-Id",
				CorrelationID: GetCorrelationID(r.Context()),
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithUserID(r.Context(), uid)))
	})
}
