package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const HeaderCorrelationID = "X-Correlation-Id"

type ctxKey struct{}

// CorrelationID takes the caller's X-Correlation-Id, or mints one, and echoes it on the
// response. Outbound order-service calls and published events reuse it.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := r.Header.Get(HeaderCorrelationID)
		if cid == "" {
			cid = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, cid)

		ctx := WithCorrelationID(r.Context(), cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, cid)
}

// GetCorrelationID falls back to chi's request id when no correlation id was set.
func GetCorrelationID(ctx context.Context) string {
	if cid, ok := ctx.Value(ctxKey{}).(string); ok && cid != "" {
		return cid
	}
	return chimw.GetReqID(ctx)
}
