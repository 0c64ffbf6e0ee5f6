package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"renza-entrega/internal/service/agenda"
)

type AgendaProvider interface {
	Month(ctx context.Context, year, month int) (agenda.Month, error)
}

// GetAgenda returns the calendar of a month; year and month default to the
// current ones.
func GetAgenda(log *slog.Logger, provider AgendaProvider, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.agenda.get.GetAgenda"

		today := now()
		year, month := today.Year(), int(today.Month())

		if s := r.URL.Query().Get("year"); s != "" {
			y, err := strconv.Atoi(s)
			if err != nil || y < 1 {
				http.Error(w, "Ano inválido", http.StatusBadRequest)
				return
			}
			year = y
		}
		if s := r.URL.Query().Get("month"); s != "" {
			m, err := strconv.Atoi(s)
			if err != nil || m < 1 || m > 12 {
				http.Error(w, "Mês inválido", http.StatusBadRequest)
				return
			}
			month = m
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		m, err := provider.Month(ctx, year, month)
		if err != nil {
			log.Error("failed to build agenda", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, m)
	}
}
