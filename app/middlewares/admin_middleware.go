package middlewares

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/Rakhulsr/go-storefront/app/helpers"
	"github.com/Rakhulsr/go-storefront/app/models"
	"github.com/Rakhulsr/go-storefront/app/utils/apperr"
)

type Authenticator interface {
	Authenticate(token string) (*helpers.Identity, error)
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// RequireAdmin rejects the request unless it carries a valid admin token and
// stores the verified identity in the request context.
func RequireAdmin(auth Authenticator, rnd *render.Render) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				helpers.RespondError(rnd, w, apperr.Unauthorized("No token provided"))
				return
			}

			identity, err := auth.Authenticate(token)
			if err != nil {
				helpers.RespondError(rnd, w, apperr.Unauthorized("Invalid token"))
				return
			}
			if identity.Role != models.RoleAdmin {
				helpers.RespondError(rnd, w, apperr.Unauthorized("Admin access required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithIdentity(r.Context(), identity)))
		})
	}
}
