package middleware

import (
	"context"
	"net/http"

	"studio_cms/internal/common/security"
	"studio_cms/internal/domain/model"
)

// SessionGate protects the admin page tree. It runs before any route
// handler, verifies the auth cookie through the gate verifier, and
// redirects everything that is not a valid admin session to the login
// page. The login page itself always passes so there is no redirect
// loop.
//
// The gate does no I/O beyond token verification: the token is a
// self-contained credential, so no store lookup is needed here.
func SessionGate(loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == loginPath {
				next.ServeHTTP(w, r)
				return
			}

			claims := security.VerifyCookieToken(r)
			if claims == nil || claims.Role != model.RoleAdmin {
				// Missing cookie, bad token and wrong role all look
				// the same to the client.
				http.Redirect(w, r, loginPath, http.StatusTemporaryRedirect)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, UserEmailCtxKey, claims.Email)
			ctx = context.WithValue(ctx, UserRoleCtxKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
