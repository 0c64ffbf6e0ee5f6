package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/storage"
	"renza-entrega/internal/storage/seed"
)

type listerFunc func(ctx context.Context) ([]storage.Contract, error)

func (f listerFunc) Contracts(ctx context.Context) ([]storage.Contract, error) { return f(ctx) }

func seeded(t *testing.T) ContractLister {
	contracts, err := seed.Contracts()
	require.NoError(t, err)
	return listerFunc(func(context.Context) ([]storage.Contract, error) { return contracts, nil })
}

func TestParseStart(t *testing.T) {
	got, ok := ParseStart("06/05/2024 - M")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseStart("24/07/2025")
	assert.True(t, ok)

	for _, bad := range []string{"", "2024-05-06", "31/02/2024", "aa/bb/cccc - M"} {
		_, ok := ParseStart(bad)
		assert.False(t, ok, bad)
	}
}

func TestMonth(t *testing.T) {
	s := New(seeded(t))

	m, err := s.Month(context.Background(), 2024, 5)
	require.NoError(t, err)

	assert.Equal(t, "Maio", m.Name)
	assert.Equal(t, 31, m.Days)
	assert.Equal(t, 2, m.FirstWeekday)
	require.Len(t, m.Appointments[6], 1)
	assert.Equal(t, "contrato_001", m.Appointments[6][0].ContractID)
	assert.Equal(t, StatusFilled, m.Appointments[6][0].Status)

	m, err = s.Month(context.Background(), 2025, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, m.FirstWeekday)
	require.Len(t, m.Appointments[7], 1)
	assert.Equal(t, StatusReserved, m.Appointments[7][0].Status)

	m, err = s.Month(context.Background(), 2030, 1)
	require.NoError(t, err)
	assert.Empty(t, m.Appointments)
}

func TestMonth_Errors(t *testing.T) {
	s := New(seeded(t))
	_, err := s.Month(context.Background(), 2024, 13)
	assert.Error(t, err)

	boom := errors.New("boom")
	s = New(listerFunc(func(context.Context) ([]storage.Contract, error) { return nil, boom }))
	_, err = s.Month(context.Background(), 2024, 1)
	assert.ErrorIs(t, err, boom)
}

func TestMonth_SkipsUnparsable(t *testing.T) {
	s := New(listerFunc(func(context.Context) ([]storage.Contract, error) {
		return []storage.Contract{
			{ID: "a", AssemblyStart: "a definir"},
			{ID: "b", AssemblyStart: "15/01/2024"},
		}, nil
	}))

	m, err := s.Month(context.Background(), 2024, 1)
	require.NoError(t, err)
	require.Len(t, m.Appointments, 1)
	assert.Equal(t, "b", m.Appointments[15][0].ContractID)
}
