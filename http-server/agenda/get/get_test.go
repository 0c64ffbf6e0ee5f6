package get

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renza-entrega/internal/service/agenda"
)

type MockAgendaProvider struct {
	mock.Mock
}

func (m *MockAgendaProvider) Month(ctx context.Context, year, month int) (agenda.Month, error) {
	args := m.Called(ctx, year, month)
	return args.Get(0).(agenda.Month), args.Error(1)
}

func handler(p AgendaProvider) http.HandlerFunc {
	now := func() time.Time { return time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC) }
	return GetAgenda(slog.New(slog.NewTextHandler(io.Discard, nil)), p, now)
}

func TestGetAgenda_DefaultsToCurrentMonth(t *testing.T) {
	p := new(MockAgendaProvider)
	p.On("Month", mock.Anything, 2025, 7).Return(agenda.Month{Year: 2025, Month: 7, Name: "Julho"}, nil)

	rr := httptest.NewRecorder()
	handler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/agenda", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Julho")
	p.AssertExpectations(t)
}

func TestGetAgenda_Query(t *testing.T) {
	p := new(MockAgendaProvider)
	p.On("Month", mock.Anything, 2024, 5).Return(agenda.Month{Year: 2024, Month: 5}, nil)

	rr := httptest.NewRecorder()
	handler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/agenda?year=2024&month=5", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	p.AssertExpectations(t)
}

func TestGetAgenda_BadQuery(t *testing.T) {
	p := new(MockAgendaProvider)

	for _, q := range []string{"?month=13", "?month=x", "?year=abc"} {
		rr := httptest.NewRecorder()
		handler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/agenda"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestGetAgenda_Error(t *testing.T) {
	p := new(MockAgendaProvider)
	p.On("Month", mock.Anything, 2025, 7).Return(agenda.Month{}, assert.AnError)

	rr := httptest.NewRecorder()
	handler(p).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/agenda", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
