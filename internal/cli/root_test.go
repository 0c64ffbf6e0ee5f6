package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
env: local
storage:
  driver: memory
media:
  driver: memory
auth:
  jwt_secret: test
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfig), 0o600))

	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", cfgPath, "--no-logo"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestList_Text(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "CLIENTE")
	assert.Contains(t, out, "contrato_001")
	assert.Contains(t, out, "FINALIZADO")
	assert.Contains(t, out, "PENDENTE")
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, "--format", "json", "list")
	require.NoError(t, err)

	var rows []contractRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, "contrato_001", rows[0].ID)
	assert.Equal(t, 1, rows[0].Pending)
}

func TestRender_WritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "receipt.pdf")

	out, err := run(t, "render", "contrato_003", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "contrato_003")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRender_UnknownContract(t *testing.T) {
	_, err := run(t, "render", "nope", "-o", filepath.Join(t.TempDir(), "x.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, err := run(t, "--format", "xml", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
