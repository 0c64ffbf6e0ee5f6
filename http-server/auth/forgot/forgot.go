package forgot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"renza-entrega/internal/storage"
)

type PasswordResetter interface {
	ForgotPassword(ctx context.Context, email string) error
}

// ForgotPassword acknowledges a reset request. No e-mail is actually sent.
func ForgotPassword(log *slog.Logger, resetter PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.forgot.ForgotPassword"

		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			http.Error(w, "Informe o e-mail.", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := resetter.ForgotPassword(ctx, req.Email); err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "E-mail não cadastrado.", http.StatusNotFound)
				return
			}
			log.Error("password reset failed", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"message": fmt.Sprintf("Um e-mail de redefinição de senha foi enviado para %s.", req.Email),
		})
	}
}
