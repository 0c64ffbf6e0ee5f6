package save

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"renza-entrega/http-server/upload"
	"renza-entrega/internal/service/contracts"
	"renza-entrega/internal/storage"
)

type MediaSaver interface {
	SubmitItemMedia(ctx context.Context, contractID, itemCode string, set contracts.MediaSet) (contracts.MediaReceipt, error)
	SubmitMedia(ctx context.Context, files []contracts.File) ([]storage.StoredMedia, error)
}

// SaveItemMedia receives the close photo (perto), far photo (longe) and video
// of an item answered NÃO.
func SaveItemMedia(log *slog.Logger, saver MediaSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.media.save.SaveItemMedia"

		id := chi.URLParam(r, "id")
		code := chi.URLParam(r, "code")

		form, err := upload.Parse(r)
		defer form.Close()
		if err != nil {
			http.Error(w, "Formulário inválido", http.StatusBadRequest)
			return
		}

		var set contracts.MediaSet
		for field, dst := range map[string]**contracts.File{"perto": &set.Close, "longe": &set.Far, "video": &set.Video} {
			f, err := form.File(field)
			if err != nil {
				log.Error("failed to open upload", slog.String("op", op), slog.String("field", field), slog.String("error", err.Error()))
				http.Error(w, "Arquivo inválido", http.StatusBadRequest)
				return
			}
			*dst = f
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		receipt, err := saver.SubmitItemMedia(ctx, id, code, set)
		if err != nil {
			switch {
			case errors.Is(err, contracts.ErrMediaIncomplete):
				http.Error(w, "É necessário anexar uma foto de perto, uma foto de longe e um vídeo para prosseguir.", http.StatusBadRequest)
			case errors.Is(err, storage.ErrContractNotFound):
				http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			case errors.Is(err, storage.ErrItemNotFound):
				http.Error(w, "Item não encontrado", http.StatusNotFound)
			default:
				log.Error("failed to store item media", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Erro ao salvar mídia", http.StatusInternalServerError)
			}
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, receipt)
	}
}

// SaveMedia stores files captured outside of a contract checklist.
func SaveMedia(log *slog.Logger, saver MediaSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.media.save.SaveMedia"

		form, err := upload.Parse(r)
		defer form.Close()
		if err != nil {
			http.Error(w, "Formulário inválido", http.StatusBadRequest)
			return
		}

		files, err := form.Files("files")
		if err != nil {
			http.Error(w, "Arquivo inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		stored, err := saver.SubmitMedia(ctx, files)
		if err != nil {
			if errors.Is(err, contracts.ErrNoFiles) {
				http.Error(w, "Nenhum arquivo enviado", http.StatusBadRequest)
				return
			}
			log.Error("failed to store media", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro ao salvar mídia", http.StatusInternalServerError)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message": fmt.Sprintf("%d arquivo(s) de mídia pronto(s) para envio!", len(stored)),
			"files":   stored,
		})
	}
}
