package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mpc601330-web/auren-auto-gold/brain"
	"github.com/mpc601330-web/auren-auto-gold/chain"
	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/footage"
	"github.com/mpc601330-web/auren-auto-gold/hub"
	"github.com/mpc601330-web/auren-auto-gold/llm"
	"github.com/mpc601330-web/auren-auto-gold/logx"
	"github.com/mpc601330-web/auren-auto-gold/memory"
	"github.com/mpc601330-web/auren-auto-gold/rank"
	"github.com/mpc601330-web/auren-auto-gold/render"
	"github.com/mpc601330-web/auren-auto-gold/report"
	"github.com/mpc601330-web/auren-auto-gold/router"
	"github.com/mpc601330-web/auren-auto-gold/scout"
	"github.com/mpc601330-web/auren-auto-gold/types"
	"github.com/mpc601330-web/auren-auto-gold/vault"
)

func main() {
	// .env is local-dev convenience; CI injects real secrets.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logx.New(cfg.Run.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	for _, dir := range []string{cfg.Paths.Outputs, cfg.Paths.Assets, filepath.Dir(cfg.Paths.Ledger)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalw("create dir", "dir", dir, "error", err)
		}
	}

	runID := uuid.NewString()[:8]
	startedAt := time.Now().UTC()
	log.Infow("🏆 Auren Auto Gold starting", "run_id", runID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state := &types.RunState{RunID: runID, StartedAt: startedAt.Format(time.RFC3339)}
	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		saveState(cfg.Paths.Outputs, runID, state, log)
		if state.Error != "" {
			log.Errorw("❌ run failed", "run_id", runID, "error", state.Error)
			os.Exit(1)
		}
		log.Infow("✅ run complete", "run_id", runID, "report", state.ReportFile)
	}()

	// ── Selection ────────────────────────────────────────────────
	ledger, err := memory.Load(cfg.Paths.Ledger)
	if err != nil {
		state.Error = fmt.Sprintf("topic ledger: %v", err)
		return
	}
	offers, err := vault.Load(cfg.Paths.Vault)
	if err != nil {
		state.Error = fmt.Sprintf("offer vault: %v", err)
		return
	}

	job, err := selectJob(cfg, ledger, log)
	if err != nil {
		state.Error = fmt.Sprintf("job selection: %v", err)
		return
	}
	if job == nil {
		log.Infow("nothing to produce today", "run_id", runID)
		return
	}
	state.Job = job
	log.Infow("job selected", "channel", job.Channel.Name, "topic", job.Seed.Keyword, "slug", job.TopicSlug)

	// ── Discovery ────────────────────────────────────────────────
	expanded, mindBlock := scout.ExpandNiche(job.Seed.Niche, job.Seed.Country, job.Seed.Language, cfg.Run.TopicCount)
	candidates := scout.MergeCandidates([]types.TopicCandidate{job.Seed}, expanded)
	if cfg.Discovery.Enabled {
		if reddit, err := scout.NewRedditScout(cfg.Discovery, log.Named("scout")); err != nil {
			log.Warnw("reddit discovery unavailable", "error", err)
		} else {
			found := reddit.Discover(ctx, job.Seed.Niche, job.Seed.Country, job.Seed.Language)
			candidates = scout.MergeCandidates(candidates, found)
		}
	}
	log.Infow("topic candidates assembled", "count", len(candidates))

	// ── Ranking ──────────────────────────────────────────────────
	source, err := rankingSource(ctx, cfg, log)
	if err != nil {
		state.Error = fmt.Sprintf("ranking source: %v", err)
		return
	}
	ranked, err := rank.NewScorer(source, log.Named("rank")).ScoreTopics(ctx, candidates)
	if err != nil {
		state.Error = fmt.Sprintf("ranking: %v", err)
		return
	}
	state.Ranked = ranked

	topN := cfg.Run.TopN
	if topN > len(ranked) {
		topN = len(ranked)
	}
	log.Infow("topics ranked", "total", len(ranked), "producing", topN)

	// ── Generation ───────────────────────────────────────────────
	gen, err := llm.NewClient(cfg.LLM, log.Named("llm"))
	if err != nil {
		state.Error = fmt.Sprintf("llm client: %v", err)
		return
	}
	var planner chain.Planner
	if cfg.Hub.BaseURL != "" {
		planner = hub.NewClient(cfg.Hub, log.Named("hub"))
	}
	var forge chain.RenderSubmitter
	if cfg.Render.BaseURL != "" {
		forge = render.NewForge(cfg.Render, log.Named("render"))
	}
	var stock chain.StockFetcher = footage.NewFetcher(cfg.Footage, log.Named("footage"))

	runner := chain.New(gen, planner, offers, stock, forge, chain.Options{
		WantThumbnail: cfg.Run.WantThumbnail,
		WantBroll:     cfg.Run.WantBroll,
		AssetsDir:     cfg.Paths.Assets,
		TemplateID:    cfg.Render.TemplateID,
		MusicMood:     cfg.Render.MusicMood,
	}, log.Named("chain"))

	sections := make([]report.TopicSection, 0, topN)
	for i := 0; i < topN; i++ {
		topic := ranked[i]
		topicJob := *job
		topicJob.Seed = topic.TopicCandidate
		topicJob.TopicSlug = router.Slugify(topic.Keyword)
		log.Infow("━━━ producing topic ━━━", "rank", i+1, "topic", topic.Keyword, "score", topic.MoneyScore)

		art, err := runner.Run(ctx, topicJob, topic)
		if err != nil {
			state.Error = fmt.Sprintf("chain: %v", err)
			return
		}
		sections = append(sections, report.TopicSection{Topic: topic, Job: topicJob, Artifact: art})
	}

	// ── Report ───────────────────────────────────────────────────
	rep := &report.Report{
		RunID:     runID,
		StartedAt: startedAt,
		Niche:     job.Seed.Niche,
		Country:   job.Seed.Country,
		MindBlock: mindBlock,
		Ranked:    ranked,
		Health:    channelHealth(cfg),
		Sections:  sections,
	}
	if len(sections) > 0 {
		rep.LedgerNote = fmt.Sprintf("Temas marcados como usados en %s para el canal %s.", cfg.Paths.Ledger, job.Channel.ID)
	}
	reportPath, err := rep.Save(cfg.Paths.Outputs)
	if err != nil {
		state.Error = fmt.Sprintf("report: %v", err)
		return
	}
	state.ReportFile = reportPath

	// The ledger only advances after the report is on disk, so an aborted
	// run never burns its topics.
	for _, s := range sections {
		ledger.MarkUsed(s.Job.Channel.ID, s.Job.TopicSlug)
	}
	if err := ledger.Save(); err != nil {
		state.Error = fmt.Sprintf("ledger save: %v", err)
		return
	}
}

// selectJob picks today's (channel, topic) pair, preferring an upstream
// brain plan when one is configured. A nil job with nil error means there
// is genuinely nothing left to produce.
func selectJob(cfg *config.Config, ledger *memory.Ledger, log *logx.Logger) (*types.Job, error) {
	if cfg.Run.BrainPlan != "" {
		return jobFromBrainPlan(cfg, ledger, log)
	}
	seeds := cfg.SeedCandidates()
	if len(seeds) == 0 {
		seeds = []types.TopicCandidate{{
			Keyword:  cfg.Run.Niche,
			Niche:    cfg.Run.Niche,
			Country:  cfg.Run.Country,
			Language: cfg.Run.Language,
			Source:   types.SourceManual,
		}}
	}
	job, err := router.SelectJob(seeds, cfg.Channels, ledger)
	if err != nil {
		return nil, err
	}
	if job != nil {
		job.Emotion = cfg.Run.Emotion
		job.Platform = cfg.Run.Platform
	}
	return job, nil
}

func jobFromBrainPlan(cfg *config.Config, ledger *memory.Ledger, log *logx.Logger) (*types.Job, error) {
	plan, err := brain.LoadPlan(cfg.Run.BrainPlan)
	if err != nil {
		return nil, err
	}
	video, err := brain.PickVideo(plan)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, nil
	}

	channel := channelByName(cfg.Channels, video.ChannelName)
	slug := router.Slugify(video.Topic)
	if ledger.IsUsed(channel.ID, slug) {
		log.Infow("planned topic already produced", "video_id", video.VideoID, "slug", slug)
		return nil, nil
	}
	niche := plan.Niche
	if niche == "" {
		niche = channel.Niche
	}
	return &types.Job{
		Channel: channel,
		Seed: types.TopicCandidate{
			Keyword:  video.Topic,
			Niche:    niche,
			Country:  video.Country,
			Language: video.Language,
			Source:   types.SourceManual,
		},
		TopicSlug:     slug,
		Emotion:       video.Emotion,
		Platform:      video.TargetPlatform,
		AffiliateSlot: video.AffiliateSlot,
		VideoID:       video.VideoID,
	}, nil
}

// channelByName resolves a brain-plan channel against the directory; an
// unknown name falls back to the first channel so the plan still runs.
func channelByName(channels []types.ChannelProfile, name string) types.ChannelProfile {
	for _, ch := range channels {
		if ch.Name == name {
			return ch
		}
	}
	return channels[0]
}

// rankingSource builds the configured signal source: the intelligence hub
// or the YouTube Data API.
func rankingSource(ctx context.Context, cfg *config.Config, log *logx.Logger) (rank.Source, error) {
	if cfg.Ranking.Source == "youtube" {
		return rank.NewYouTubeSource(ctx, log.Named("youtube"))
	}
	return hub.NewClient(cfg.Hub, log.Named("hub")), nil
}

func channelHealth(cfg *config.Config) []rank.ChannelHealth {
	if len(cfg.Metrics) == 0 {
		return nil
	}
	byID := make(map[string]types.ChannelProfile, len(cfg.Channels))
	for _, ch := range cfg.Channels {
		byID[ch.ID] = ch
	}
	metrics := make([]rank.ChannelMetrics, 0, len(cfg.Metrics))
	for _, m := range cfg.Metrics {
		ch, ok := byID[m.ChannelID]
		if !ok {
			continue
		}
		metrics = append(metrics, rank.ChannelMetrics{
			Channel:   ch,
			CTR:       m.CTR,
			Retention: m.Retention,
			Growth:    m.Growth,
			RPM:       m.RPM,
		})
	}
	return rank.EvaluateChannels(metrics)
}

func saveState(dir, runID string, state *types.RunState, log *logx.Logger) {
	path := filepath.Join(dir, fmt.Sprintf("run_state_%s.json", runID))
	if err := writeJSON(path, state); err != nil {
		log.Warnw("state not persisted", "path", path, "error", err)
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
