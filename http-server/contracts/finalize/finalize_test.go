package finalize

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renza-entrega/internal/service/contracts"
	"renza-entrega/internal/storage"
)

type MockContractFinalizer struct {
	mock.Mock
}

func (m *MockContractFinalizer) Finalize(ctx context.Context, contractID string, req contracts.FinalizeRequest) (storage.Contract, error) {
	args := m.Called(ctx, contractID, req)
	return args.Get(0).(storage.Contract), args.Error(1)
}

func serve(f ContractFinalizer, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/api/contracts/{id}/signature", FinalizeContract(slog.New(slog.NewTextHandler(io.Discard, nil)), f))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contracts/c1/signature", strings.NewReader(body)))
	return rr
}

func TestFinalizeContract_Success(t *testing.T) {
	sig := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	doc := base64.StdEncoding.EncodeToString([]byte("jpg-bytes"))

	f := new(MockContractFinalizer)
	f.On("Finalize", mock.Anything, "c1", mock.MatchedBy(func(req contracts.FinalizeRequest) bool {
		return string(req.SignatureImage) == "png-bytes" &&
			req.SignerName == "ANA" &&
			req.SignerCPF == "123.456.789-09" &&
			len(req.DocumentPhotos) == 1 &&
			req.DocumentPhotos[0].Name == "frente.jpg"
	})).Return(storage.Contract{ID: "c1"}, nil)

	body := `{"assinatura":"data:image/png;base64,` + sig + `","nome_completo":"ANA","cpf":"123.456.789-09",` +
		`"document_photos":[{"name":"frente.jpg","data":"` + doc + `"}]}`

	rr := serve(f, body)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Contrato finalizado e assinado com sucesso! 1 foto(s)")
	f.AssertExpectations(t)
}

func TestFinalizeContract_BadInput(t *testing.T) {
	f := new(MockContractFinalizer)

	for _, body := range []string{
		`nope`,
		`{"assinatura":"data:image/png,notbase64"}`,
		`{"document_photos":[{"name":"a","data":"%%%"}]}`,
	} {
		rr := serve(f, body)
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	f.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)
}

func TestFinalizeContract_ServiceErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
		msg  string
	}{
		{contracts.ErrSignatureRequired, http.StatusBadRequest, "forneça uma assinatura"},
		{contracts.ErrInvalidCPF, http.StatusBadRequest, "CPF inválido"},
		{contracts.ErrDocumentPhotos, http.StatusBadRequest, "fotos do documento"},
		{contracts.ErrDocumentPhotoType, http.StatusBadRequest, "arquivo de imagem válido"},
		{contracts.ErrDocumentPhotoSize, http.StatusBadRequest, "máx. 5MB"},
		{storage.ErrContractFinalized, http.StatusConflict, "já finalizado"},
		{storage.ErrContractNotFound, http.StatusNotFound, "não encontrado"},
		{assert.AnError, http.StatusInternalServerError, "Erro ao finalizar"},
	}

	for _, tt := range tests {
		f := new(MockContractFinalizer)
		f.On("Finalize", mock.Anything, "c1", mock.Anything).Return(storage.Contract{}, tt.err)

		rr := serve(f, `{}`)
		assert.Equal(t, tt.want, rr.Code, tt.err.Error())
		assert.Contains(t, rr.Body.String(), tt.msg)
	}
}

func TestFinalizeContract_BodyTooLarge(t *testing.T) {
	f := new(MockContractFinalizer)

	body := `{"assinatura":"` + strings.Repeat("A", maxBodyBytes+1) + `"}`
	rr := serve(f, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	f.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)
}
