package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	authsvc "renza-entrega/internal/service/auth"
)

type TokenVerifier interface {
	Verify(token string) (*authsvc.Claims, error)
}

type ctxKey struct{}

// Bearer rejects requests without a valid access token and stores the
// claims in the request context.
func Bearer(log *slog.Logger, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				unauthorized(w, r, "Authorization header required")
				return
			}

			claims, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Debug("rejected token", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
				unauthorized(w, r, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the claims stored by Bearer, or nil.
func ClaimsFrom(ctx context.Context) *authsvc.Claims {
	claims, _ := ctx.Value(ctxKey{}).(*authsvc.Claims)
	return claims
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": msg})
}
