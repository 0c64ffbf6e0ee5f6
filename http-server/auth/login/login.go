package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"renza-entrega/internal/service/auth"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (auth.Token, error)
}

func Login(log *slog.Logger, authenticator Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.Login"

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Corpo inválido", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" {
			http.Error(w, "Informe e-mail e senha.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		token, err := authenticator.Login(ctx, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				http.Error(w, "E-mail ou senha inválidos.", http.StatusUnauthorized)
				return
			}
			log.Error("login failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		log.Info("user logged in", slog.String("uid", token.User.UID))

		render.JSON(w, r, token)
	}
}
