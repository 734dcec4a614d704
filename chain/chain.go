package chain

import (
	"context"
	"fmt"

	"github.com/mpc601330-web/auren-auto-gold/footage"
	"github.com/mpc601330-web/auren-auto-gold/hub"
	"github.com/mpc601330-web/auren-auto-gold/llm"
	"github.com/mpc601330-web/auren-auto-gold/logx"
	"github.com/mpc601330-web/auren-auto-gold/render"
	"github.com/mpc601330-web/auren-auto-gold/types"
	"github.com/mpc601330-web/auren-auto-gold/vault"
)

// Stage keys, in canonical production order.
const (
	keyAngles      = "angles"
	keyHooks       = "hooks"
	keyScriptV1    = "script_v1"
	keyScriptV2    = "script_v2"
	keyRetention   = "retention"
	keyClips       = "clips"
	keyTitles      = "titles"
	keyPlatforms   = "platforms"
	keyDescription = "description"
	keyAffiliate   = "affiliate"
	keyMediaPlan   = "media_plan"
	keyFootage     = "footage"
	keyCTR         = "ctr_forecast"
	keySchedule    = "schedule"
	keyQuality     = "quality"
	keyRender      = "render"
	keySummary     = "summary"
)

// summaryContextBudget caps the accumulated text handed to the summary
// stage; older material is dropped from the front.
const summaryContextBudget = 6000

// Planner is the intelligence-hub surface the chain uses for media planning
// and quality review. A nil Planner skips both with fallback text.
type Planner interface {
	MediaPlan(ctx context.Context, script string, wantThumbnail, wantBroll bool) (hub.MediaPlan, error)
	QualityAnalyze(ctx context.Context, script, contentType string) (hub.QualityReport, error)
}

// OfferResolver picks the affiliate offer for a topic, or nil when nothing
// applies.
type OfferResolver interface {
	ResolveOffer(topic, niche, countryCode, channelName, affiliateSlot string) *vault.Resolved
}

// StockFetcher gathers background clips for a topic. A nil StockFetcher
// skips the footage stage.
type StockFetcher interface {
	Fetch(ctx context.Context, keywords []string, dir string) []footage.Asset
}

// RenderSubmitter hands the finished plan to the render service.
type RenderSubmitter interface {
	Submit(ctx context.Context, job render.Job) render.Status
}

// Options tunes optional chain behavior.
type Options struct {
	WantThumbnail bool
	WantBroll     bool
	AssetsDir     string
	TemplateID    string
	MusicMood     string
}

// Chain runs the full generation sequence for one topic. Every stage
// completes with either real output or a recognizable fallback; the chain
// itself only aborts on context cancellation.
type Chain struct {
	gen    llm.Generator
	hub    Planner
	offers OfferResolver
	stock  StockFetcher
	forge  RenderSubmitter
	opts   Options
	log    *logx.Logger
}

func New(gen llm.Generator, planner Planner, offers OfferResolver, stock StockFetcher, forge RenderSubmitter, opts Options, log *logx.Logger) *Chain {
	if opts.TemplateID == "" {
		opts.TemplateID = "shorts_dark_gold"
	}
	if opts.MusicMood == "" {
		opts.MusicMood = "cinematic tension"
	}
	return &Chain{gen: gen, hub: planner, offers: offers, stock: stock, forge: forge, opts: opts, log: log}
}

// runState carries the per-run inputs plus side data that is not stage text.
type runState struct {
	job   types.Job
	topic types.ScoredTopic
	clips []footage.Asset
}

type stage struct {
	key string
	run func(ctx context.Context, st *runState, a *Artifact) (string, error)
}

func (c *Chain) stages() []stage {
	return []stage{
		{keyAngles, c.stageAngles},
		{keyHooks, c.stageHooks},
		{keyScriptV1, c.stageScriptV1},
		{keyScriptV2, c.stageScriptV2},
		{keyRetention, c.stageRetention},
		{keyClips, c.stageClips},
		{keyTitles, c.stageTitles},
		{keyPlatforms, c.stagePlatforms},
		{keyDescription, c.stageDescription},
		{keyAffiliate, c.stageAffiliate},
		{keyMediaPlan, c.stageMediaPlan},
		{keyFootage, c.stageFootage},
		{keyCTR, c.stageCTR},
		{keySchedule, c.stageSchedule},
		{keyQuality, c.stageQuality},
		{keyRender, c.stageRender},
		{keySummary, c.stageSummary},
	}
}

// Run executes all stages in order and returns the filled artifact. The
// only error it can return is a context cancellation; every other failure
// is absorbed into fallback stage text.
func (c *Chain) Run(ctx context.Context, job types.Job, topic types.ScoredTopic) (*Artifact, error) {
	art := NewArtifact()
	st := &runState{job: job, topic: topic}
	for _, s := range c.stages() {
		if err := ctx.Err(); err != nil {
			return art, fmt.Errorf("chain interrupted before %s: %w", s.key, err)
		}
		text, err := s.run(ctx, st, art)
		if err != nil {
			c.log.Warnw("stage failed, using fallback", "stage", s.key, "topic", topic.Keyword, "error", err)
			text = FallbackText(llm.FailurePermanent, s.key, topic.Keyword)
		}
		if err := art.Set(s.key, text); err != nil {
			return art, err
		}
	}
	return art, nil
}

// generate calls the text generator and converts any failure into the
// deterministic fallback for the stage.
func (c *Chain) generate(ctx context.Context, key, system, user string, p llm.Params, topic string) string {
	res := c.gen.Complete(ctx, system, user, p)
	if res.OK() {
		return llm.CleanFences(res.Text)
	}
	c.log.Warnw("generation degraded", "stage", key, "topic", topic, "failure", res.Failure, "error", res.Err)
	return FallbackText(res.Failure, key, topic)
}
