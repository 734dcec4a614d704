// Package rank is the opportunity scorer: it fuses weak economic signals
// into a single money score per topic and ranks channels by health.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/mpc601330-web/auren-auto-gold/hub"
	"github.com/mpc601330-web/auren-auto-gold/logx"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

// Fusion weights and labeling thresholds. Design constants, not learned;
// tune here.
const (
	weightMoney       = 0.5
	weightNovelty     = 0.3
	weightCompetition = 0.2

	channelExcellent = 80.0
	channelGood      = 60.0
	channelMid       = 40.0
)

// Source supplies aligned signal rows for a batch of topics.
type Source interface {
	TopicMoneyFlow(ctx context.Context, topics []string, lang string) ([]hub.SignalRow, error)
}

type Scorer struct {
	src Source
	log *logx.Logger
}

func NewScorer(src Source, log *logx.Logger) *Scorer {
	return &Scorer{src: src, log: log}
}

// ScoreTopics ranks candidates by money score, descending, preserving the
// original candidate order on exact ties. A misaligned response from the
// ranking source is fatal for the batch.
func (s *Scorer) ScoreTopics(ctx context.Context, candidates []types.TopicCandidate) ([]types.ScoredTopic, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	topics := make([]string, len(candidates))
	for i, c := range candidates {
		topics[i] = c.Keyword
	}
	lang := candidates[0].Language

	rows, err := s.src.TopicMoneyFlow(ctx, topics, lang)
	if err != nil {
		return nil, fmt.Errorf("score topics: %w", err)
	}
	if len(rows) != len(candidates) {
		return nil, fmt.Errorf("score topics: %d signal rows for %d candidates", len(rows), len(candidates))
	}

	scored := make([]types.ScoredTopic, len(candidates))
	for i, c := range candidates {
		scored[i] = types.ScoredTopic{
			TopicCandidate: c,
			Views30d:       rows[i].Views30d,
			IntentPct:      clamp(rows[i].IntentPct, 0, 100),
			AdsDensityPct:  clamp(rows[i].AdsDensityPct, 0, 100),
			MoneyScore:     clamp(rows[i].MoneyScore, 0, 100),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MoneyScore > scored[j].MoneyScore
	})
	s.log.Infow("topics ranked", "count", len(scored), "top", scored[0].Keyword, "top_score", scored[0].MoneyScore)
	return scored, nil
}

// FuseTopicScore combines money, novelty and competition sub-scores into a
// single 0–100 score. Holds the clamp for any inputs, in-range or not.
func FuseTopicScore(money, novelty, competition float64) float64 {
	score := weightMoney*money + weightNovelty*novelty - weightCompetition*competition
	return round1(clamp(score, 0, 100))
}

// FuseChannelScore is the channel-health fusion: equal quarter-weights over
// four normalized 0–100 signals.
func FuseChannelScore(ctr, retention, growth, rpm float64) float64 {
	score := 0.25*ctr + 0.25*retention + 0.25*growth + 0.25*rpm
	return round1(clamp(score, 0, 100))
}

// ClassifyChannel labels a channel score by threshold band.
func ClassifyChannel(score float64) string {
	switch {
	case score >= channelExcellent:
		return "excellent"
	case score >= channelGood:
		return "good"
	case score >= channelMid:
		return "mid"
	default:
		return "weak"
	}
}

// ChannelMetrics are the four health signals for one channel.
type ChannelMetrics struct {
	Channel   types.ChannelProfile
	CTR       float64
	Retention float64
	Growth    float64
	RPM       float64
}

// ChannelHealth is a scored, labeled channel for the report.
type ChannelHealth struct {
	Channel types.ChannelProfile
	Score   float64
	Label   string
}

// EvaluateChannels scores every channel and orders them best-first,
// preserving directory order on ties.
func EvaluateChannels(metrics []ChannelMetrics) []ChannelHealth {
	out := make([]ChannelHealth, len(metrics))
	for i, m := range metrics {
		score := FuseChannelScore(m.CTR, m.Retention, m.Growth, m.RPM)
		out[i] = ChannelHealth{Channel: m.Channel, Score: score, Label: ClassifyChannel(score)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
