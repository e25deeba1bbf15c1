package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tripbazaar/travel-backend/api/responses"
	pkgAuth "github.com/tripbazaar/travel-backend/pkg/auth"
	"github.com/tripbazaar/travel-backend/pkg/config"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// caller's user id.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			ctx, err := contextWithClaims(r.Context(), cfg, token, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the caller when a token is present but lets
// anonymous requests through. Prebook uses it: guests book without an
// account and get one provisioned from the contact details.
func OptionalAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, err := contextWithClaims(r.Context(), cfg, token, logg)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func contextWithClaims(ctx context.Context, cfg config.JWTConfig, token string, logg *logger.Logger) (context.Context, error) {
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	ctx = context.WithValue(ctx, ctxUserID, claims.UserID)
	if logg != nil {
		ctx = logg.WithUserID(ctx, claims.UserID.String())
	}
	return ctx, nil
}
