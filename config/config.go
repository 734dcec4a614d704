package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mpc601330-web/auren-auto-gold/types"
)

type Config struct {
	Run       RunConfig       `yaml:"run"`
	LLM       LLMConfig       `yaml:"llm"`
	Hub       HubConfig       `yaml:"hub"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Footage   FootageConfig   `yaml:"footage"`
	Render    RenderConfig    `yaml:"render"`
	Paths     PathsConfig     `yaml:"paths"`

	Channels []types.ChannelProfile `yaml:"channels"`
	Metrics  []ChannelMetricsConfig `yaml:"channel_metrics"`
	Seeds    []SeedConfig           `yaml:"seeds"`
}

// ChannelMetricsConfig carries the latest health signals for one channel,
// keyed by channel id. Optional; the health block is skipped without it.
type ChannelMetricsConfig struct {
	ChannelID string  `yaml:"channel_id"`
	CTR       float64 `yaml:"ctr"`
	Retention float64 `yaml:"retention"`
	Growth    float64 `yaml:"growth"`
	RPM       float64 `yaml:"rpm"`
}

type RunConfig struct {
	Niche         string `yaml:"niche"`
	Country       string `yaml:"country"`
	Language      string `yaml:"language"`
	Emotion       string `yaml:"emotion"`
	Platform      string `yaml:"platform"`
	TopN          int    `yaml:"top_n"`
	TopicCount    int    `yaml:"topic_count"`
	WantThumbnail bool   `yaml:"want_thumbnail"`
	WantBroll     bool   `yaml:"want_broll"`
	RunQuality    bool   `yaml:"run_quality"`
	BrainPlan     string `yaml:"brain_plan"` // optional path; substitutes job selection when set
	LogMode       string `yaml:"log_mode"`
}

type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

type HubConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type RankingConfig struct {
	Source string `yaml:"source"` // "hub" | "youtube"
}

type DiscoveryConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Subreddits []string `yaml:"subreddits"`
	MaxTopics  int      `yaml:"max_topics"`
}

type FootageConfig struct {
	Providers  []string `yaml:"providers"` // "pexels", "pixabay"
	MaxAssets  int      `yaml:"max_assets"`
	TimeoutSec int      `yaml:"timeout_sec"`
}

type RenderConfig struct {
	BaseURL    string `yaml:"base_url"`
	TemplateID string `yaml:"template_id"`
	MusicMood  string `yaml:"music_mood"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

type PathsConfig struct {
	Ledger  string `yaml:"ledger"`
	Vault   string `yaml:"vault"`
	Outputs string `yaml:"outputs"`
	Assets  string `yaml:"assets"`
}

// SeedConfig is one manual seed from config.yaml. Country/language default to
// the run settings when omitted.
type SeedConfig struct {
	Keyword  string `yaml:"keyword"`
	Niche    string `yaml:"niche"`
	Country  string `yaml:"country"`
	Language string `yaml:"language"`
}

// Load reads config.yaml, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a runnable configuration mirroring the stock run settings.
// Used when no config.yaml exists yet.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Run.Niche == "" {
		c.Run.Niche = "dinero y libertad"
	}
	if c.Run.Country == "" {
		c.Run.Country = "ES"
	}
	if c.Run.Language == "" {
		c.Run.Language = "es"
	}
	if c.Run.Emotion == "" {
		c.Run.Emotion = "Motivador"
	}
	if c.Run.Platform == "" {
		c.Run.Platform = "YouTube Shorts"
	}
	if c.Run.TopN <= 0 {
		c.Run.TopN = 1
	}
	if c.Run.TopicCount <= 0 {
		c.Run.TopicCount = 7
	}
	if c.Run.LogMode == "" {
		c.Run.LogMode = "dev"
	}

	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama-3.1-70b-versatile"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1500
	}
	if c.LLM.TimeoutSec == 0 {
		c.LLM.TimeoutSec = 60
	}

	if c.Hub.TimeoutSec == 0 {
		c.Hub.TimeoutSec = 30
	}
	if c.Ranking.Source == "" {
		c.Ranking.Source = "hub"
	}

	if c.Discovery.MaxTopics == 0 {
		c.Discovery.MaxTopics = 10
	}
	if len(c.Discovery.Subreddits) == 0 {
		c.Discovery.Subreddits = []string{"Entrepreneur", "passive_income", "sidehustle"}
	}

	if len(c.Footage.Providers) == 0 {
		c.Footage.Providers = []string{"pexels", "pixabay"}
	}
	if c.Footage.MaxAssets == 0 {
		c.Footage.MaxAssets = 9
	}
	if c.Footage.TimeoutSec == 0 {
		c.Footage.TimeoutSec = 45
	}

	if c.Render.TemplateID == "" {
		c.Render.TemplateID = "auren_gold_v1"
	}
	if c.Render.MusicMood == "" {
		c.Render.MusicMood = "cinematic_uplift"
	}
	if c.Render.TimeoutSec == 0 {
		c.Render.TimeoutSec = 60
	}

	if c.Paths.Ledger == "" {
		c.Paths.Ledger = "data/topics_used.json"
	}
	if c.Paths.Vault == "" {
		c.Paths.Vault = "vault/offers.json"
	}
	if c.Paths.Outputs == "" {
		c.Paths.Outputs = "outputs"
	}
	if c.Paths.Assets == "" {
		c.Paths.Assets = "assets"
	}

	if len(c.Channels) == 0 {
		c.Channels = []types.ChannelProfile{
			{
				ID:          "auren_dinero_beginners",
				Name:        "Auren Dinero para Principiantes",
				Niche:       "dinero y libertad",
				Country:     "ES",
				Language:    "es",
				TargetLevel: "beginner",
			},
			{
				ID:          "auren_dinero_avanzado",
				Name:        "Auren Imperio & Cashflow",
				Niche:       "dinero y libertad",
				Country:     "ES",
				Language:    "es",
				TargetLevel: "advanced",
			},
		}
	}
}

// Validate fails fast on missing catalog data so the run aborts before any
// external call is made.
func (c *Config) Validate() error {
	if len(c.Channels) == 0 {
		return fmt.Errorf("config: channel directory is empty")
	}
	for i, ch := range c.Channels {
		if ch.ID == "" {
			return fmt.Errorf("config: channels[%d] has no id", i)
		}
		if ch.Niche == "" || ch.Country == "" {
			return fmt.Errorf("config: channel %q needs niche and country", ch.ID)
		}
	}
	for i, s := range c.Seeds {
		if s.Keyword == "" {
			return fmt.Errorf("config: seeds[%d] has no keyword", i)
		}
	}
	if c.Run.TopN < 1 {
		return fmt.Errorf("config: run.top_n must be >= 1")
	}
	if c.Ranking.Source != "hub" && c.Ranking.Source != "youtube" {
		return fmt.Errorf("config: ranking.source must be \"hub\" or \"youtube\", got %q", c.Ranking.Source)
	}
	if c.Ranking.Source == "hub" && c.Hub.BaseURL == "" {
		return fmt.Errorf("config: hub.base_url is required when ranking.source is \"hub\"")
	}
	return nil
}

// SeedCandidates converts configured seeds into topic candidates, filling
// country/language from the run settings where omitted.
func (c *Config) SeedCandidates() []types.TopicCandidate {
	out := make([]types.TopicCandidate, 0, len(c.Seeds))
	for _, s := range c.Seeds {
		tc := types.TopicCandidate{
			Keyword:  s.Keyword,
			Niche:    s.Niche,
			Country:  s.Country,
			Language: s.Language,
			Source:   types.SourceManual,
		}
		if tc.Niche == "" {
			tc.Niche = c.Run.Niche
		}
		if tc.Country == "" {
			tc.Country = c.Run.Country
		}
		if tc.Language == "" {
			tc.Language = c.Run.Language
		}
		out = append(out, tc)
	}
	return out
}
