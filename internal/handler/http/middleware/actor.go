package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
)

// Actor attributes every request to the single administrative principal so
// audit records name who made the change.
func Actor(principal string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := audit.WithActor(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
