package generate_pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renza-entrega/internal/storage"
)

type MockContractReporter struct {
	mock.Mock
}

func (m *MockContractReporter) ContractReport(ctx context.Context, id string) (string, []byte, error) {
	args := m.Called(ctx, id)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).([]byte), args.Error(2)
}

func serve(g ContractReporter, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/contracts/{id}/report.pdf", GenerateContractPDF(slog.New(slog.NewTextHandler(io.Discard, nil)), g))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts/"+id+"/report.pdf", nil))
	return rr
}

func TestGenerateContractPDF_Success(t *testing.T) {
	g := new(MockContractReporter)
	g.On("ContractReport", mock.Anything, "c1").Return("contrato_renza_123.pdf", []byte("%PDF-1.3"), nil)

	rr := serve(g, "c1")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="contrato_renza_123.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rr.Body.String())
}

func TestGenerateContractPDF_NotFound(t *testing.T) {
	g := new(MockContractReporter)
	g.On("ContractReport", mock.Anything, "nope").Return("", nil, fmt.Errorf("op: %w", storage.ErrContractNotFound))

	rr := serve(g, "nope")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nenhum contrato selecionado para gerar PDF.")
}

func TestGenerateContractPDF_Error(t *testing.T) {
	g := new(MockContractReporter)
	g.On("ContractReport", mock.Anything, "c1").Return("", nil, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, serve(g, "c1").Code)
}
