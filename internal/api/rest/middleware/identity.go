// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ExternalIDHeader carries the external user id issued by the auth provider.
const ExternalIDHeader = "X-External-User-Id"

type ctxKey string

const externalIDKey ctxKey = "externalID"

// IdentityHandle places the external user id from ExternalIDHeader into the request context.
// Requests without the header pass through unchanged and are treated as anonymous.
func IdentityHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		externalID := strings.TrimSpace(r.Header.Get(ExternalIDHeader))
		if externalID != "" {
			r = r.WithContext(context.WithValue(r.Context(), externalIDKey, externalID))
		}
		next.ServeHTTP(w, r)
	})
}

// ExternalIDFromContext returns the external user id set by IdentityHandle, or "".
func ExternalIDFromContext(ctx context.Context) string {
	externalID, _ := ctx.Value(externalIDKey).(string)
	return externalID
}
