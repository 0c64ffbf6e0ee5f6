package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"renza-entrega/http-server/upload"
	"renza-entrega/internal/service/contracts"
	"renza-entrega/internal/storage"
)

type OccurrenceSaver interface {
	SubmitOccurrence(ctx context.Context, o contracts.Occurrence) (contracts.OccurrenceReceipt, error)
}

// SaveOccurrence registers a problem for a checklist item. The form carries
// "descricao" and an optional "foto".
func SaveOccurrence(log *slog.Logger, saver OccurrenceSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.occurrence.save.SaveOccurrence"

		form, err := upload.Parse(r)
		defer form.Close()
		if err != nil {
			http.Error(w, "Formulário inválido", http.StatusBadRequest)
			return
		}

		photo, err := form.File("foto")
		if err != nil {
			http.Error(w, "Arquivo inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		receipt, err := saver.SubmitOccurrence(ctx, contracts.Occurrence{
			ContractID:  chi.URLParam(r, "id"),
			ItemCode:    chi.URLParam(r, "code"),
			Description: r.FormValue("descricao"),
			Photo:       photo,
		})
		if err != nil {
			switch {
			case errors.Is(err, contracts.ErrDescriptionRequired):
				http.Error(w, "Por favor, descreva o problema.", http.StatusBadRequest)
			case errors.Is(err, storage.ErrContractNotFound):
				http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			case errors.Is(err, storage.ErrItemNotFound):
				http.Error(w, "Erro: Item problemático não identificado.", http.StatusNotFound)
			default:
				log.Error("failed to register occurrence", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Erro ao registrar ocorrência", http.StatusInternalServerError)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message":    "Ocorrência registrada com sucesso!",
			"occurrence": receipt,
		})
	}
}
