package middleware

import (
	"net/http"
	"slices"

	"github.com/freeup86/trainingpulse-sub004/pkg/ctxutil"
)

// RequireAuth rejects anonymous callers with 401.
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeUnauthenticated(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects anonymous callers with 401 and callers whose role is
// not listed with 403.
func RequireRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
				writeUnauthenticated(w)
				return
			}
			if !slices.Contains(roles, ctxutil.UserRoleFromCtx(r.Context())) {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
