package update

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/service/contracts"
	"renza-entrega/internal/storage"
)

type MockChecklistUpdater struct {
	mock.Mock
}

func (m *MockChecklistUpdater) SetItemOutcome(ctx context.Context, contractID, itemCode string, ok bool) (contracts.ItemChange, error) {
	args := m.Called(ctx, contractID, itemCode, ok)
	return args.Get(0).(contracts.ItemChange), args.Error(1)
}

func (m *MockChecklistUpdater) BeginSignature(ctx context.Context, contractID string) (contracts.NextStep, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(contracts.NextStep), args.Error(1)
}

func router(u ChecklistUpdater) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	r.Put("/api/contracts/{id}/items/{code}", UpdateItemOutcome(log, u))
	r.Post("/api/contracts/{id}/verification", FinalizeVerification(log, u))
	return r
}

func TestUpdateItemOutcome_Success(t *testing.T) {
	u := new(MockChecklistUpdater)
	u.On("SetItemOutcome", mock.Anything, "c1", "AB", false).Return(contracts.ItemChange{
		Item:    storage.ContractItem{Code: "AB", Outcome: storage.OutcomeNotOK, Protocol: "PROT-1-AB-000001"},
		Message: "Item \"CLOSET\" marcado como PENDENTE. Protocolo gerado: PROT-1-AB-000001.",
	}, nil)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/contracts/c1/items/AB", strings.NewReader(`{"ok":false}`))
	router(u).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Message string `json:"message"`
		Item    struct {
			OK       *bool  `json:"itens_ok"`
			Protocol string `json:"protocolo_gerado"`
		} `json:"item"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body.Message, "PENDENTE")
	require.NotNil(t, body.Item.OK)
	assert.False(t, *body.Item.OK)
	assert.Equal(t, "PROT-1-AB-000001", body.Item.Protocol)
	u.AssertExpectations(t)
}

func TestUpdateItemOutcome_BadBody(t *testing.T) {
	u := new(MockChecklistUpdater)

	for _, body := range []string{`{}`, `not json`, `{"ok":"yes"}`} {
		rr := httptest.NewRecorder()
		router(u).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/contracts/c1/items/AB", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rr.Code, body)
	}
	u.AssertNotCalled(t, "SetItemOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateItemOutcome_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{storage.ErrContractNotFound, http.StatusNotFound},
		{storage.ErrItemNotFound, http.StatusNotFound},
		{storage.ErrContractFinalized, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		u := new(MockChecklistUpdater)
		u.On("SetItemOutcome", mock.Anything, "c1", "AB", true).Return(contracts.ItemChange{}, tt.err)

		rr := httptest.NewRecorder()
		router(u).ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/contracts/c1/items/AB", strings.NewReader(`{"ok":true}`)))
		assert.Equal(t, tt.want, rr.Code, tt.err.Error())
	}
}

func TestFinalizeVerification(t *testing.T) {
	u := new(MockChecklistUpdater)
	u.On("BeginSignature", mock.Anything, "c1").Return(contracts.NextStep{Step: contracts.StepCapture, ItemCode: "AB", Area: "CLOSET"}, nil)
	u.On("BeginSignature", mock.Anything, "c2").Return(contracts.NextStep{}, contracts.ErrItemsUnmarked)

	rr := httptest.NewRecorder()
	router(u).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contracts/c1/verification", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"step":"capture","item_code":"AB","ambiente":"CLOSET"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	router(u).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contracts/c2/verification", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "para todos os itens")
}
