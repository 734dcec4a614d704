package rank

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/mpc601330-web/auren-auto-gold/hub"
	"github.com/mpc601330-web/auren-auto-gold/logx"
)

// intentCues mark purchase/monetization intent in a topic phrase.
var intentCues = []string{
	"invertir", "inversion", "curso", "comprar", "negocio", "ingresos",
	"ganar dinero", "afiliado", "franquicia", "vender", "rentable",
	"invest", "course", "buy", "business", "income", "passive",
}

// YouTubeSource derives ranking signals from the YouTube Data API: 30-day
// view volume per topic plus deterministic intent/competition heuristics,
// fused locally into a money score.
type YouTubeSource struct {
	svc *youtube.Service
	log *logx.Logger
}

// NewYouTubeSource authenticates with a refresh token from the environment,
// the same OAuth bootstrap the upload API uses.
func NewYouTubeSource(ctx context.Context, log *logx.Logger) (*YouTubeSource, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("youtube ranking: YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeReadonlyScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}

	svc, err := youtube.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	return &YouTubeSource{svc: svc, log: log}, nil
}

// TopicMoneyFlow returns one aligned signal row per topic. Per-topic API
// failures degrade that row to zero signals rather than failing the batch,
// and the discrepancy is logged.
func (y *YouTubeSource) TopicMoneyFlow(ctx context.Context, topics []string, lang string) ([]hub.SignalRow, error) {
	rows := make([]hub.SignalRow, len(topics))
	publishedAfter := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)

	for i, topic := range topics {
		rows[i].Topic = topic

		search, err := y.svc.Search.List([]string{"id"}).
			Context(ctx).
			Q(topic).
			Type("video").
			PublishedAfter(publishedAfter).
			RelevanceLanguage(lang).
			MaxResults(25).
			Do()
		if err != nil {
			y.log.Warnw("youtube search failed, zero signals for topic", "topic", topic, "err", err)
			continue
		}

		var ids []string
		for _, item := range search.Items {
			if item.Id != nil && item.Id.VideoId != "" {
				ids = append(ids, item.Id.VideoId)
			}
		}

		var views int64
		if len(ids) > 0 {
			stats, err := y.svc.Videos.List([]string{"statistics"}).
				Context(ctx).
				Id(ids...).
				Do()
			if err != nil {
				y.log.Warnw("youtube statistics failed", "topic", topic, "err", err)
			} else {
				for _, v := range stats.Items {
					if v.Statistics != nil {
						views += int64(v.Statistics.ViewCount)
					}
				}
			}
		}

		intent := intentScore(topic)
		competition := clamp(float64(len(ids))*4, 0, 100)
		novelty := clamp(100-competition, 0, 100)
		viewsNorm := viewVolumeScore(views)

		rows[i].Views30d = int(views)
		rows[i].IntentPct = intent
		rows[i].AdsDensityPct = round1(clamp(0.6*intent+0.4*competition, 0, 100))
		rows[i].MoneyScore = FuseTopicScore(0.7*viewsNorm+0.3*intent, novelty, competition)
	}
	return rows, nil
}

// intentScore scans a topic for purchase-intent cues. Deterministic.
func intentScore(topic string) float64 {
	t := strings.ToLower(topic)
	score := 0.0
	for _, cue := range intentCues {
		if strings.Contains(t, cue) {
			score += 18
		}
	}
	return clamp(score, 0, 100)
}

// viewVolumeScore compresses a raw 30-day view count into 0–100 on a log
// scale: ~10M views saturates the scale.
func viewVolumeScore(views int64) float64 {
	if views <= 0 {
		return 0
	}
	return clamp(math.Log10(float64(views)+1)*100/7, 0, 100)
}
