package router

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpc601330-web/auren-auto-gold/memory"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

func testLedger(t *testing.T) *memory.Ledger {
	t.Helper()
	l, err := memory.Load(filepath.Join(t.TempDir(), "ledger.json"))
	require.NoError(t, err)
	return l
}

func seed(keyword string) types.TopicCandidate {
	return types.TopicCandidate{
		Keyword:  keyword,
		Niche:    "dinero y libertad",
		Country:  "ES",
		Language: "es",
		Source:   types.SourceManual,
	}
}

var channels = []types.ChannelProfile{
	{ID: "principiantes", Name: "Auren Principiantes", Niche: "dinero y libertad", Country: "ES"},
	{ID: "cripto", Name: "Auren Cripto", Niche: "criptomonedas", Country: "MX"},
}

func TestChooseChannel(t *testing.T) {
	t.Run("exact niche and country match", func(t *testing.T) {
		s := types.TopicCandidate{Niche: "criptomonedas", Country: "MX"}
		assert.Equal(t, "cripto", ChooseChannel(s, channels).ID)
	})

	t.Run("falls back to first channel", func(t *testing.T) {
		s := types.TopicCandidate{Niche: "fitness", Country: "AR"}
		assert.Equal(t, "principiantes", ChooseChannel(s, channels).ID)
	})
}

func TestSelectJob(t *testing.T) {
	t.Run("empty catalogs are errors", func(t *testing.T) {
		ledger := testLedger(t)
		_, err := SelectJob(nil, channels, ledger)
		assert.Error(t, err)
		_, err = SelectJob([]types.TopicCandidate{seed("x")}, nil, ledger)
		assert.Error(t, err)
	})

	t.Run("skips used pairs", func(t *testing.T) {
		ledger := testLedger(t)
		ledger.MarkUsed("principiantes", "primero")

		job, err := SelectJob([]types.TopicCandidate{seed("primero"), seed("segundo")}, channels, ledger)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, "segundo", job.TopicSlug)
		assert.Equal(t, "principiantes", job.Channel.ID)
	})

	t.Run("exhausted seeds mean nothing to produce", func(t *testing.T) {
		ledger := testLedger(t)
		seeds := []types.TopicCandidate{seed("Negocios Automáticos con IA")}

		job, err := SelectJob(seeds, channels, ledger)
		require.NoError(t, err)
		require.NotNil(t, job)
		assert.Equal(t, "negocios-automaticos-con-ia", job.TopicSlug)

		ledger.MarkUsed(job.Channel.ID, job.TopicSlug)
		job, err = SelectJob(seeds, channels, ledger)
		require.NoError(t, err)
		assert.Nil(t, job)
	})
}
