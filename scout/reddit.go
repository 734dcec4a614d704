package scout

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/logx"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

// moneyCues filter discovered post titles down to monetizable subjects.
var moneyCues = []string{
	"money", "income", "invest", "business", "side hustle", "passive",
	"ai", "automation", "productivity", "saas", "affiliate", "sell",
	"dinero", "invertir", "negocio", "ingresos",
}

// RedditScout discovers trending topic phrases from configured subreddits.
// Discovery is best-effort: any failure yields an empty list, never an
// aborted run.
type RedditScout struct {
	client     *reddit.Client
	subreddits []string
	maxTopics  int
	minScore   int
	log        *logx.Logger
}

// NewRedditScout builds a scout from REDDIT_CLIENT_ID / REDDIT_CLIENT_SECRET
// plus optional REDDIT_USERNAME / REDDIT_PASSWORD in the environment.
func NewRedditScout(cfg config.DiscoveryConfig, log *logx.Logger) (*RedditScout, error) {
	creds := reddit.Credentials{
		ID:       os.Getenv("REDDIT_CLIENT_ID"),
		Secret:   os.Getenv("REDDIT_CLIENT_SECRET"),
		Username: os.Getenv("REDDIT_USERNAME"),
		Password: os.Getenv("REDDIT_PASSWORD"),
	}
	if creds.ID == "" || creds.Secret == "" {
		return nil, fmt.Errorf("scout: REDDIT_CLIENT_ID or REDDIT_CLIENT_SECRET not set")
	}
	client, err := reddit.NewClient(creds)
	if err != nil {
		return nil, fmt.Errorf("scout: reddit client: %w", err)
	}
	return &RedditScout{
		client:     client,
		subreddits: cfg.Subreddits,
		maxTopics:  cfg.MaxTopics,
		minScore:   50,
		log:        log,
	}, nil
}

// Discover pulls hot post titles, keeps the ones with money cues and
// returns them as discovered candidates tagged with the run's market.
func (s *RedditScout) Discover(ctx context.Context, niche, country, lang string) []types.TopicCandidate {
	var found []types.TopicCandidate
	for _, sub := range s.subreddits {
		posts, _, err := s.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: 25})
		if err != nil {
			s.log.Warnw("reddit discovery failed for subreddit", "subreddit", sub, "err", err)
			continue
		}
		for _, post := range posts {
			if post.Score < s.minScore {
				continue
			}
			title := strings.TrimSpace(post.Title)
			if title == "" || !hasMoneyCue(title) {
				continue
			}
			s.log.Debugw("discovered topic", "subreddit", sub, "score", post.Score, "title", title)
			found = append(found, types.TopicCandidate{
				Keyword:  title,
				Niche:    niche,
				Country:  country,
				Language: lang,
				Source:   types.SourceDiscovered,
			})
			if len(found) >= s.maxTopics {
				return found
			}
		}
	}
	return found
}

func hasMoneyCue(title string) bool {
	t := strings.ToLower(title)
	for _, cue := range moneyCues {
		if strings.Contains(t, cue) {
			return true
		}
	}
	return false
}
