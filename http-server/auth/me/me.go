package me

import (
	"net/http"

	"github.com/go-chi/render"

	"renza-entrega/internal/middleware/auth"
)

// Me returns the user behind the access token of the request.
func Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFrom(r.Context())
		if claims == nil {
			http.Error(w, "Não autenticado", http.StatusUnauthorized)
			return
		}

		render.JSON(w, r, map[string]string{
			"uid":   claims.UID,
			"email": claims.Email,
			"name":  claims.Name,
		})
	}
}
