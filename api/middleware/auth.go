package middleware

import (
	"context"
	"net/http"

	"github.com/soft99/storefront-backend/api/responses"
	"github.com/soft99/storefront-backend/api/validators"
	pkgAuth "github.com/soft99/storefront-backend/pkg/auth"
	"github.com/soft99/storefront-backend/pkg/config"
	pkgerrors "github.com/soft99/storefront-backend/pkg/errors"
	"github.com/soft99/storefront-backend/pkg/logger"
)

// AdminOnly validates a bearer token and requires the admin role. Missing or
// invalid tokens get 401, valid tokens for any other role get 403.
func AdminOnly(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := validators.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxSubject, claims.Subject)
			ctx = context.WithValue(ctx, ctxRole, string(claims.Role))
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"subject":    claims.Subject,
					"actor_role": string(claims.Role),
				})
			}

			if !claims.IsAdmin() {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
