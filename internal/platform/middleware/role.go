package middleware

import (
	"net/http"

	usermodels "appealboard/internal/users/models"
	dErrors "appealboard/pkg/domain-errors"
	"appealboard/pkg/platform/httputil"
	"appealboard/pkg/requestcontext"
)

// RequireRole gates a route on the token's role claim. RequireAuth must run
// earlier in the chain.
func RequireRole(role usermodels.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requestcontext.UserRole(r.Context()) != string(role) {
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "insufficient role for this operation"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
