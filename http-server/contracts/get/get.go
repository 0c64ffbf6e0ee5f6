package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"renza-entrega/internal/storage"
)

type ContractsProvider interface {
	Contracts(ctx context.Context) ([]storage.Contract, error)
	Contract(ctx context.Context, id string) (storage.Contract, error)
}

func GetContracts(log *slog.Logger, provider ContractsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.contracts.get.GetContracts"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contracts, err := provider.Contracts(ctx)
		if err != nil {
			log.Error("failed to list contracts", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		if contracts == nil {
			contracts = []storage.Contract{}
		}

		render.JSON(w, r, contracts)
	}
}

func GetContract(log *slog.Logger, provider ContractsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.contracts.get.GetContract"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		contract, err := provider.Contract(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrContractNotFound) {
				http.Error(w, "Contrato não encontrado", http.StatusNotFound)
				return
			}
			log.Error("failed to get contract", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			http.Error(w, "Erro interno", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, contract)
	}
}
