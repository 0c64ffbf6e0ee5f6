package seed

import (
	"bytes"
	"image"
	_ "image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/storage"
)

func TestContracts_Embedded(t *testing.T) {
	contracts, err := Contracts()
	require.NoError(t, err)
	require.Len(t, contracts, 3)

	first := contracts[0]
	assert.Equal(t, "contrato_001", first.ID)
	assert.Equal(t, "SÃO LEOPOLDO", first.Address.City)
	require.Len(t, first.Items, 3)
	assert.Equal(t, storage.OutcomeNotOK, first.Items[2].Outcome)
	assert.True(t, first.Finalized())
	assert.False(t, first.HasGenuineSignature())
	require.Len(t, first.PendingItems, 1)

	second := contracts[1]
	assert.NotNil(t, second.PendingItems)
	assert.Empty(t, second.PendingItems)

	third := contracts[2]
	assert.False(t, third.Finalized())
	require.Len(t, third.Items, 9)
	for _, it := range third.Items {
		assert.Equal(t, storage.OutcomeUnset, it.Outcome)
	}
	assert.Contains(t, third.Declaration, `"SIM"`)
}

func TestContracts_SampleSignatureIsImage(t *testing.T) {
	contracts, err := Contracts()
	require.NoError(t, err)

	for _, c := range contracts {
		if c.Signature == nil {
			continue
		}
		cfg, format, err := image.DecodeConfig(bytes.NewReader(c.Signature.Image))
		require.NoError(t, err, c.ID)
		assert.Equal(t, "png", format)
		assert.Positive(t, cfg.Width)
		assert.False(t, c.Signature.Captured, c.ID)
	}
}

func TestParse_BadOutcome(t *testing.T) {
	_, err := Parse([]byte(`
contracts:
  - id: x
    items:
      - {code: A, outcome: maybe}
`))
	assert.Error(t, err)
}

func TestParse_DuplicateItems(t *testing.T) {
	_, err := Parse([]byte(`
contracts:
  - id: x
    items:
      - {code: A}
      - {code: A}
`))
	assert.ErrorIs(t, err, storage.ErrDuplicateItemCode)
}

func TestParse_AbsentPendingIsNil(t *testing.T) {
	contracts, err := Parse([]byte(`
contracts:
  - id: x
`))
	require.NoError(t, err)
	assert.Nil(t, contracts[0].PendingItems)
}
