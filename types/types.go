package types

// Topic candidate sources
const (
	SourceManual     = "manual"
	SourceDiscovered = "discovered"
)

// TopicCandidate is one possible video subject, tagged with its market context.
// Immutable once created.
type TopicCandidate struct {
	Keyword  string `json:"keyword"`
	Niche    string `json:"niche"`
	Country  string `json:"country"`
	Language string `json:"language"`
	Source   string `json:"source"` // "manual" | "discovered"
}

// ScoredTopic is a TopicCandidate enriched with ranking signals.
// MoneyScore is the ordering key (descending, stable on ties).
type ScoredTopic struct {
	TopicCandidate
	Views30d      int     `json:"views_30d"`
	IntentPct     float64 `json:"intent_pct"`
	AdsDensityPct float64 `json:"ads_density_pct"`
	MoneyScore    float64 `json:"money_score"`
}

// ChannelProfile is one channel in the directory. Static at run time.
type ChannelProfile struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Niche       string `json:"niche" yaml:"niche"`
	Country     string `json:"country" yaml:"country"`
	Language    string `json:"language" yaml:"language"`
	TargetLevel string `json:"target_level" yaml:"target_level"` // "beginner" | "advanced"
}

// Audience returns a short audience description for prompts and reports.
func (c ChannelProfile) Audience() string {
	if c.TargetLevel == "advanced" {
		return "advanced audience already active in " + c.Niche
	}
	return "beginners curious about " + c.Niche
}

// Job is one (channel, seed) pair selected for production.
type Job struct {
	Channel       ChannelProfile `json:"channel"`
	Seed          TopicCandidate `json:"seed"`
	TopicSlug     string         `json:"topic_slug"`
	Emotion       string         `json:"emotion"`
	Platform      string         `json:"platform"`
	AffiliateSlot string         `json:"affiliate_slot,omitempty"`
	VideoID       string         `json:"video_id,omitempty"` // set when the job comes from a brain plan
}

// RunState tracks one full pipeline run, persisted next to the report.
type RunState struct {
	RunID       string        `json:"run_id"`
	StartedAt   string        `json:"started_at"`
	CompletedAt string        `json:"completed_at"`
	Job         *Job          `json:"job,omitempty"`
	Ranked      []ScoredTopic `json:"ranked,omitempty"`
	ReportFile  string        `json:"report_file,omitempty"`
	Error       string        `json:"error,omitempty"`
}
