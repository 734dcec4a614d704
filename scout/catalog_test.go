package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpc601330-web/auren-auto-gold/types"
)

func TestExpandNiche(t *testing.T) {
	t.Run("honors requested count", func(t *testing.T) {
		candidates, md := ExpandNiche("dinero y libertad", "ES", "es", 3)
		require.Len(t, candidates, 3)
		assert.Equal(t, "dinero y libertad para principiantes", candidates[0].Keyword)
		assert.Equal(t, types.SourceManual, candidates[0].Source)
		assert.Contains(t, md, "MIND ENGINE")
		assert.Contains(t, md, "dinero y libertad")
	})

	t.Run("caps at template count", func(t *testing.T) {
		candidates, _ := ExpandNiche("cripto", "MX", "es", 50)
		assert.Len(t, candidates, 7)
	})

	t.Run("empty niche falls back to default", func(t *testing.T) {
		candidates, _ := ExpandNiche("  ", "ES", "es", 1)
		require.Len(t, candidates, 1)
		assert.Contains(t, candidates[0].Keyword, "dinero y libertad")
	})
}

func TestMergeCandidates(t *testing.T) {
	manual := []types.TopicCandidate{
		{Keyword: "Invertir en bolsa", Source: types.SourceManual},
		{Keyword: "interés compuesto", Source: types.SourceManual},
	}
	discovered := []types.TopicCandidate{
		{Keyword: "invertir en bolsa", Source: types.SourceDiscovered}, // dup, case-insensitive
		{Keyword: "side hustles 2026", Source: types.SourceDiscovered},
		{Keyword: "", Source: types.SourceDiscovered},
	}

	merged := MergeCandidates(manual, discovered)
	require.Len(t, merged, 3)
	// manual entry wins the duplicate
	assert.Equal(t, types.SourceManual, merged[0].Source)
	assert.Equal(t, "side hustles 2026", merged[2].Keyword)
}
