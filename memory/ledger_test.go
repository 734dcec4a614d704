package memory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileIsEmptyLedger(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, l.IsUsed("ch", "slug"))
	assert.Empty(t, l.Slugs("ch"))
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestMarkUsed_Idempotent(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)

	l.MarkUsed("ch1", "tema-uno")
	l.MarkUsed("ch1", "tema-uno")
	l.MarkUsed("ch1", "tema-dos")

	assert.True(t, l.IsUsed("ch1", "tema-uno"))
	assert.Equal(t, []string{"tema-dos", "tema-uno"}, l.Slugs("ch1"))
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ledger.json")

	l, err := Load(path)
	require.NoError(t, err)
	l.MarkUsed("principiantes", "como-invertir")
	l.MarkUsed("avanzado", "cashflow-trimestral")
	require.NoError(t, l.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, reloaded.IsUsed("principiantes", "como-invertir"))
	assert.True(t, reloaded.IsUsed("avanzado", "cashflow-trimestral"))
	assert.False(t, reloaded.IsUsed("principiantes", "cashflow-trimestral"))
}
