// Package render submits finished scripts to the remote render forge.
// Submission failures are data in the run report, never an abort.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/logx"
)

// Job is one render submission.
type Job struct {
	TemplateID    string   `json:"template_id"`
	ScriptExcerpt string   `json:"script_excerpt"`
	Width         int      `json:"width"`
	Height        int      `json:"height"`
	Language      string   `json:"language"`
	Voice         string   `json:"voice"`
	Scenes        []string `json:"scenes,omitempty"`
	MusicMood     string   `json:"music_mood"`
}

// Status is the render backend's answer, or a local failure description.
type Status struct {
	JobID string `json:"job_id,omitempty"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

// GeometryFor derives the target resolution from the platform: vertical
// 1080×1920 for short-form, horizontal 1920×1080 otherwise.
func GeometryFor(platform string) (width, height int) {
	p := strings.ToLower(platform)
	if strings.Contains(p, "short") || strings.Contains(p, "tiktok") || strings.Contains(p, "reel") {
		return 1080, 1920
	}
	return 1920, 1080
}

type Forge struct {
	baseURL    string
	httpClient *http.Client
	log        *logx.Logger
}

func NewForge(cfg config.RenderConfig, log *logx.Logger) *Forge {
	return &Forge{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:        log,
	}
}

// Submit sends the job to the forge. Any failure — no backend configured,
// transport error, bad status — comes back as a failed Status.
func (f *Forge) Submit(ctx context.Context, job Job) Status {
	if f.baseURL == "" {
		return Status{State: "skipped", Error: "no render backend configured"}
	}

	body, err := json.Marshal(job)
	if err != nil {
		return Status{State: "failed", Error: fmt.Sprintf("marshal render job: %v", err)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return Status{State: "failed", Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Status{State: "failed", Error: fmt.Sprintf("render request: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Status{State: "failed", Error: fmt.Sprintf("read render response: %v", err)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return Status{State: "failed", Error: fmt.Sprintf("render %s: %s", resp.Status, strings.TrimSpace(string(raw)))}
	}

	var status Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return Status{State: "failed", Error: fmt.Sprintf("unexpected render response: %s", strings.TrimSpace(string(raw)))}
	}
	if status.State == "" {
		status.State = "submitted"
	}
	f.log.Infow("render job submitted", "job_id", status.JobID, "state", status.State)
	return status
}
