package generate_pdf

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"renza-entrega/internal/storage"
)

type ContractReporter interface {
	ContractReport(ctx context.Context, id string) (string, []byte, error)
}

// GenerateContractPDF streams the delivery receipt of a contract.
func GenerateContractPDF(log *slog.Logger, gen ContractReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate_report.GenerateContractPDF"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		fileName, pdf, err := gen.ContractReport(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrContractNotFound) {
				http.Error(w, "Nenhum contrato selecionado para gerar PDF.", http.StatusNotFound)
				return
			}
			log.Error("failed to generate pdf", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Erro ao gerar o PDF", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.Write(pdf)
	}
}
