// Package session carries the externally owned user identity through request contexts.
// Components never read it ambiently: handlers extract it once and pass it down.
package session

import (
	"context"
	"strings"
)

type ctxKey string

const ctxUserID ctxKey = "user_id"

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserID, strings.TrimSpace(userID))
}

func UserID(ctx context.Context) string {
	if v := ctx.Value(ctxUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// LoggedIn reports whether a user identifier is present.
func LoggedIn(userID string) bool {
	return strings.TrimSpace(userID) != ""
}
