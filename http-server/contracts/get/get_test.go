package get

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/storage"
)

type MockContractsProvider struct {
	mock.Mock
}

func (m *MockContractsProvider) Contracts(ctx context.Context) ([]storage.Contract, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Contract), args.Error(1)
}

func (m *MockContractsProvider) Contract(ctx context.Context, id string) (storage.Contract, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(storage.Contract), args.Error(1)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func router(p ContractsProvider) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/contracts", GetContracts(discard(), p))
	r.Get("/api/contracts/{id}", GetContract(discard(), p))
	return r
}

func TestGetContracts_Success(t *testing.T) {
	p := new(MockContractsProvider)
	p.On("Contracts", mock.Anything).Return([]storage.Contract{{ID: "c1", Number: "1"}}, nil)

	rr := httptest.NewRecorder()
	router(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0]["id"])
	p.AssertExpectations(t)
}

func TestGetContracts_Empty(t *testing.T) {
	p := new(MockContractsProvider)
	p.On("Contracts", mock.Anything).Return(nil, nil)

	rr := httptest.NewRecorder()
	router(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestGetContracts_Error(t *testing.T) {
	p := new(MockContractsProvider)
	p.On("Contracts", mock.Anything).Return(nil, errors.New("db down"))

	rr := httptest.NewRecorder()
	router(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestGetContract(t *testing.T) {
	p := new(MockContractsProvider)
	p.On("Contract", mock.Anything, "c1").Return(storage.Contract{ID: "c1", ClientName: "ANA"}, nil)
	p.On("Contract", mock.Anything, "nope").Return(storage.Contract{}, storage.ErrContractNotFound)

	rr := httptest.NewRecorder()
	router(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts/c1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ANA"`)

	rr = httptest.NewRecorder()
	router(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/contracts/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
