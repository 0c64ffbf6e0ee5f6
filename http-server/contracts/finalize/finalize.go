package finalize

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"renza-entrega/internal/service/contracts"
	generate_pdf "renza-entrega/internal/service/generate-pdf"
	"renza-entrega/internal/storage"
)

// Two base64 encoded 5MB photos plus the signature.
const maxBodyBytes = 16 << 20

type ContractFinalizer interface {
	Finalize(ctx context.Context, contractID string, req contracts.FinalizeRequest) (storage.Contract, error)
}

type documentPhoto struct {
	Name string `json:"name"`
	// Data is a base64 data URL or plain base64.
	Data string `json:"data"`
}

type request struct {
	Signature      string          `json:"assinatura"`
	SignerName     string          `json:"nome_completo"`
	SignerCPF      string          `json:"cpf"`
	DocumentPhotos []documentPhoto `json:"document_photos"`
}

// FinalizeContract stores the client's signature and document photos.
func FinalizeContract(log *slog.Logger, finalizer ContractFinalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.contracts.finalize.FinalizeContract"

		id := chi.URLParam(r, "id")

		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "Requisição muito grande", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "Corpo inválido", http.StatusBadRequest)
			return
		}

		var signature []byte
		if req.Signature != "" {
			data, err := generate_pdf.DecodeDataURL(req.Signature)
			if err != nil {
				http.Error(w, "Assinatura inválida", http.StatusBadRequest)
				return
			}
			signature = data
		}

		photos := make([]contracts.File, 0, len(req.DocumentPhotos))
		for i, p := range req.DocumentPhotos {
			data, err := generate_pdf.DecodeDataURL(p.Data)
			if err != nil {
				http.Error(w, fmt.Sprintf("Foto do documento %d inválida", i+1), http.StatusBadRequest)
				return
			}
			name := p.Name
			if name == "" {
				name = fmt.Sprintf("documento_%d.jpg", i+1)
			}
			photos = append(photos, contracts.File{Name: name, Size: int64(len(data)), Body: bytes.NewReader(data)})
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		contract, err := finalizer.Finalize(ctx, id, contracts.FinalizeRequest{
			SignatureImage: signature,
			SignerName:     req.SignerName,
			SignerCPF:      req.SignerCPF,
			DocumentPhotos: photos,
		})
		if err != nil {
			switch {
			case errors.Is(err, contracts.ErrSignatureRequired), errors.Is(err, contracts.ErrInvalidSignature):
				http.Error(w, "Por favor, forneça uma assinatura.", http.StatusBadRequest)
			case errors.Is(err, contracts.ErrSignerNameRequired):
				http.Error(w, "Por favor, informe o nome completo.", http.StatusBadRequest)
			case errors.Is(err, contracts.ErrInvalidCPF):
				http.Error(w, "CPF inválido.", http.StatusBadRequest)
			case errors.Is(err, contracts.ErrDocumentPhotos):
				http.Error(w, "Anexe uma ou duas fotos do documento.", http.StatusBadRequest)
			case errors.Is(err, contracts.ErrDocumentPhotoType):
				http.Error(w, "Por favor, selecione um arquivo de imagem válido (ex: JPG, PNG).", http.StatusBadRequest)
			case errors.Is(err, contracts.ErrDocumentPhotoSize):
				http.Error(w, "O arquivo da foto do documento é muito grande (máx. 5MB).", http.StatusBadRequest)
			case errors.Is(err, storage.ErrContractNotFound):
				http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			case errors.Is(err, storage.ErrContractFinalized):
				http.Error(w, "Contrato já finalizado", http.StatusConflict)
			default:
				log.Error("failed to finalize contract", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
				http.Error(w, "Erro ao finalizar contrato", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, r, map[string]any{
			"message":  fmt.Sprintf("Contrato finalizado e assinado com sucesso! %d foto(s) do documento anexada(s).", len(photos)),
			"contract": contract,
		})
	}
}
