package middleware

import (
	"context"
	"net/http"

	"career-guide/auth"
	"career-guide/errors"
	"career-guide/http/response"
	"career-guide/models"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by RequireAuth.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// Guard wraps handlers that need an authenticated caller.
type Guard struct {
	authn auth.Authenticator
}

func NewGuard(authn auth.Authenticator) *Guard {
	return &Guard{authn: authn}
}

// RequireAuth rejects unauthenticated requests with 401. OPTIONS is let
// through untouched.
func (g *Guard) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next(w, r)
			return
		}
		id, err := g.authn.Authenticate(r)
		if err != nil {
			if !errors.IsKind(err, errors.Unauthorized) {
				err = errors.E(errors.Unauthorized, "Token is not valid", err)
			}
			response.FromError(w, err)
			return
		}
		next(w, r.WithContext(WithIdentity(r.Context(), id)))
	}
}

// RequireRole is RequireAuth plus a role check answering 403.
func (g *Guard) RequireRole(next http.HandlerFunc, roles ...models.Role) http.HandlerFunc {
	return g.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodOptions {
			id, _ := IdentityFrom(r.Context())
			allowed := false
			for _, role := range roles {
				if id.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				response.FromError(w, errors.E(errors.Forbidden, "Access denied"))
				return
			}
		}
		next(w, r)
	})
}
