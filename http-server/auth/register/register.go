package register

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"renza-entrega/internal/service/auth"
	"renza-entrega/internal/storage"
)

type Registrar interface {
	Register(ctx context.Context, name, email, password string) (storage.User, error)
}

func Register(log *slog.Logger, registrar Registrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.Register"

		var req struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Corpo inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		user, err := registrar.Register(ctx, req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingFields):
				http.Error(w, "Preencha nome, e-mail e senha.", http.StatusBadRequest)
			case errors.Is(err, auth.ErrWeakPassword):
				http.Error(w, "A senha deve ter pelo menos 6 caracteres.", http.StatusBadRequest)
			case errors.Is(err, auth.ErrEmailInUse):
				http.Error(w, "Este e-mail já está cadastrado.", http.StatusConflict)
			default:
				log.Error("register failed", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Erro interno", http.StatusInternalServerError)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message": fmt.Sprintf("Usuário %q cadastrado com sucesso! Por favor, faça o login para continuar.", user.Name),
			"user":    user,
		})
	}
}
