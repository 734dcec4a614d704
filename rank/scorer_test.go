package rank

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpc601330-web/auren-auto-gold/hub"
	"github.com/mpc601330-web/auren-auto-gold/logx"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

type stubSource struct {
	rows []hub.SignalRow
	err  error
}

func (s *stubSource) TopicMoneyFlow(_ context.Context, topics []string, _ string) ([]hub.SignalRow, error) {
	return s.rows, s.err
}

func candidates(keywords ...string) []types.TopicCandidate {
	out := make([]types.TopicCandidate, len(keywords))
	for i, k := range keywords {
		out[i] = types.TopicCandidate{Keyword: k, Niche: "dinero", Country: "ES", Language: "es"}
	}
	return out
}

func TestScoreTopics_OrdersByMoneyScoreDescending(t *testing.T) {
	src := &stubSource{rows: []hub.SignalRow{
		{MoneyScore: 10},
		{MoneyScore: 80},
		{MoneyScore: 45},
	}}
	s := NewScorer(src, logx.NewNop())

	scored, err := s.ScoreTopics(context.Background(), candidates("bajo", "alto", "medio"))
	require.NoError(t, err)
	require.Len(t, scored, 3)
	assert.Equal(t, "alto", scored[0].Keyword)
	assert.Equal(t, "medio", scored[1].Keyword)
	assert.Equal(t, "bajo", scored[2].Keyword)
}

func TestScoreTopics_ClampsOutOfRangeSignals(t *testing.T) {
	src := &stubSource{rows: []hub.SignalRow{
		{MoneyScore: 250, IntentPct: -10, AdsDensityPct: 180},
	}}
	s := NewScorer(src, logx.NewNop())

	scored, err := s.ScoreTopics(context.Background(), candidates("tema"))
	require.NoError(t, err)
	assert.Equal(t, 100.0, scored[0].MoneyScore)
	assert.Equal(t, 0.0, scored[0].IntentPct)
	assert.Equal(t, 100.0, scored[0].AdsDensityPct)
}

func TestScoreTopics_RowMismatchIsFatal(t *testing.T) {
	src := &stubSource{rows: []hub.SignalRow{{MoneyScore: 50}}}
	s := NewScorer(src, logx.NewNop())

	_, err := s.ScoreTopics(context.Background(), candidates("uno", "dos"))
	assert.Error(t, err)
}

func TestScoreTopics_SourceErrorPropagates(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("hub down")}
	s := NewScorer(src, logx.NewNop())

	_, err := s.ScoreTopics(context.Background(), candidates("uno"))
	assert.ErrorContains(t, err, "hub down")
}

func TestFuseTopicScore(t *testing.T) {
	// 0.5*80 + 0.3*60 - 0.2*40 = 50
	assert.Equal(t, 50.0, FuseTopicScore(80, 60, 40))
	assert.Equal(t, 0.0, FuseTopicScore(0, 0, 100))
	assert.Equal(t, 100.0, FuseTopicScore(200, 200, 0))
}

func TestFuseChannelScore_Bands(t *testing.T) {
	assert.Equal(t, 100.0, FuseChannelScore(100, 100, 100, 100))
	assert.Equal(t, "excellent", ClassifyChannel(FuseChannelScore(100, 100, 100, 100)))
	assert.Equal(t, "weak", ClassifyChannel(FuseChannelScore(0, 0, 0, 0)))
	assert.Equal(t, "good", ClassifyChannel(65))
	assert.Equal(t, "mid", ClassifyChannel(40))
	assert.Equal(t, "excellent", ClassifyChannel(80))
}

func TestEvaluateChannels_SortsBestFirst(t *testing.T) {
	out := EvaluateChannels([]ChannelMetrics{
		{Channel: types.ChannelProfile{ID: "flojo"}, CTR: 10, Retention: 10, Growth: 10, RPM: 10},
		{Channel: types.ChannelProfile{ID: "fuerte"}, CTR: 90, Retention: 85, Growth: 70, RPM: 80},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "fuerte", out[0].Channel.ID)
	assert.Equal(t, "excellent", out[0].Label)
	assert.Equal(t, "weak", out[1].Label)
}
