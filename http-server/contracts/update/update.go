package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"renza-entrega/internal/service/contracts"
	"renza-entrega/internal/storage"
)

type ChecklistUpdater interface {
	SetItemOutcome(ctx context.Context, contractID, itemCode string, ok bool) (contracts.ItemChange, error)
	BeginSignature(ctx context.Context, contractID string) (contracts.NextStep, error)
}

type itemResponse struct {
	Message  string               `json:"message"`
	Item     storage.ContractItem `json:"item"`
	Contract storage.Contract     `json:"contract"`
}

// UpdateItemOutcome handles the SIM/NÃO toggle of one checklist item.
func UpdateItemOutcome(log *slog.Logger, updater ChecklistUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.contracts.update.UpdateItemOutcome"

		id := chi.URLParam(r, "id")
		code := chi.URLParam(r, "code")

		var req struct {
			OK *bool `json:"ok"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OK == nil {
			http.Error(w, `Corpo inválido: esperado {"ok": true|false}`, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		change, err := updater.SetItemOutcome(ctx, id, code, *req.OK)
		if err != nil {
			writeError(w, log, op, err)
			return
		}

		log.Info("item updated", slog.String("contract", id), slog.String("item", code), slog.Bool("ok", *req.OK))

		render.JSON(w, r, itemResponse{Message: change.Message, Item: change.Item, Contract: change.Contract})
	}
}

// FinalizeVerification closes the checklist and tells the client whether
// evidence capture or the signature comes next.
func FinalizeVerification(log *slog.Logger, updater ChecklistUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.contracts.update.FinalizeVerification"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		next, err := updater.BeginSignature(ctx, id)
		if err != nil {
			writeError(w, log, op, err)
			return
		}

		render.JSON(w, r, next)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrContractNotFound):
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
	case errors.Is(err, storage.ErrItemNotFound):
		http.Error(w, "Item não encontrado", http.StatusNotFound)
	case errors.Is(err, storage.ErrContractFinalized):
		http.Error(w, "Contrato já finalizado", http.StatusConflict)
	case errors.Is(err, contracts.ErrItemsUnmarked):
		http.Error(w, `Por favor, marque "SIM" ou "NÃO" para todos os itens antes de prosseguir.`, http.StatusBadRequest)
	default:
		log.Error("failed to update checklist", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Erro interno", http.StatusInternalServerError)
	}
}
