package middleware

import (
	"net/http"

	"github.com/OmerAlfiel/Shahen-website/api/responses"
	"github.com/OmerAlfiel/Shahen-website/pkg/auth"
	"github.com/OmerAlfiel/Shahen-website/pkg/config"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
)

// AdminAuth requires a bearer admin token on the wrapped routes. With no
// secret configured the routes stay open.
func AdminAuth(cfg config.AdminConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := auth.BearerToken(r.Header.Get("Authorization"))
			if !ok {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, ""))
				return
			}

			claims, err := auth.ParseAdminToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid or expired token"))
				return
			}

			ctx = WithAdminSubject(ctx, claims.Subject)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin_subject", claims.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
