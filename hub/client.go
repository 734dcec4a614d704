// Package hub talks to the remote API hub: topic ranking, media planning and
// quality analysis. External responses come in several shapes (bare string,
// bare array, object with varying keys); every call normalizes them into one
// fixed struct before anything reaches the core.
package hub

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

// SignalRow is one topic's ranking signals, aligned by position with the
// request's topic list.
type SignalRow struct {
	Topic         string  `json:"topic"`
	Views30d      int     `json:"views_30d"`
	IntentPct     float64 `json:"intent"`
	AdsDensityPct float64 `json:"ads_density"`
	MoneyScore    float64 `json:"money_score"`
}

// MediaPlan is the normalized media-planning result.
type MediaPlan struct {
	Plan          string
	ThumbnailPlan string
	BrollPlan     string
}

// QualityReport is the normalized quality-analysis result.
type QualityReport struct {
	Report      string
	Metrics     map[string]float64
	Sentiment   map[string]string
	Suggestions []string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logx.Logger
}

func NewClient(cfg config.HubConfig, log *logx.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:        log,
	}
}

// TopicMoneyFlow ranks topics. The hub may answer with a bare row array or
// with {"results": [...]}. A row count that does not match the request is
// fatal for the batch: ranking with misaligned data would silently reorder
// real topics.
func (c *Client) TopicMoneyFlow(ctx context.Context, topics []string, lang string) ([]SignalRow, error) {
	payload := map[string]any{"topics": topics, "lang": lang}
	raw, err := c.post(ctx, "/topic_money_flow", payload)
	if err != nil {
		return nil, err
	}

	var rows []SignalRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		var wrapped struct {
			Results []SignalRow `json:"results"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil || wrapped.Results == nil {
			return nil, fmt.Errorf("hub: unexpected topic_money_flow shape: %s", snippet(raw))
		}
		rows = wrapped.Results
	}

	if len(rows) != len(topics) {
		return nil, fmt.Errorf("hub: topic_money_flow returned %d rows for %d topics", len(rows), len(topics))
	}
	for i := range rows {
		if rows[i].Topic == "" {
			rows[i].Topic = topics[i]
		}
	}
	return rows, nil
}

// MediaPlan asks for a production plan. Accepts a bare string, an object
// with plan/thumbnail_plan/broll_plan, or any other object (dumped whole
// into Plan so a reviewer still sees what came back).
func (c *Client) MediaPlan(ctx context.Context, script string, wantThumb, wantBroll bool) (MediaPlan, error) {
	payload := map[string]any{
		"script":     strings.TrimSpace(script),
		"want_thumb": wantThumb,
		"want_broll": wantBroll,
	}
	raw, err := c.post(ctx, "/media_plan", payload)
	if err != nil {
		return MediaPlan{}, err
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return MediaPlan{Plan: asString}, nil
	}

	var asObject struct {
		Plan          string `json:"plan"`
		ThumbnailPlan string `json:"thumbnail_plan"`
		BrollPlan     string `json:"broll_plan"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return MediaPlan{}, fmt.Errorf("hub: unexpected media_plan shape: %s", snippet(raw))
	}
	if asObject.Plan == "" && asObject.ThumbnailPlan == "" && asObject.BrollPlan == "" {
		return MediaPlan{Plan: string(raw)}, nil
	}
	return MediaPlan{
		Plan:          asObject.Plan,
		ThumbnailPlan: asObject.ThumbnailPlan,
		BrollPlan:     asObject.BrollPlan,
	}, nil
}

// QualityAnalyze scores a script. Accepts a bare string report or a
// structured object; absent sub-fields normalize to empty containers.
func (c *Client) QualityAnalyze(ctx context.Context, script, contentType string) (QualityReport, error) {
	payload := map[string]any{"script": script, "type": contentType}
	raw, err := c.post(ctx, "/quality_analyze", payload)
	if err != nil {
		return QualityReport{}, err
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return QualityReport{Report: asString}, nil
	}

	var asObject struct {
		Report      string             `json:"informe"`
		Metrics     map[string]float64 `json:"metrics"`
		Sentiment   map[string]string  `json:"sentiment"`
		Suggestions []string           `json:"suggestions"`
	}
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return QualityReport{}, fmt.Errorf("hub: unexpected quality_analyze shape: %s", snippet(raw))
	}
	out := QualityReport{
		Report:      asObject.Report,
		Metrics:     asObject.Metrics,
		Sentiment:   asObject.Sentiment,
		Suggestions: asObject.Suggestions,
	}
	if out.Metrics == nil {
		out.Metrics = map[string]float64{}
	}
	if out.Sentiment == nil {
		out.Sentiment = map[string]string{}
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("hub: marshal %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("hub %s: read body: %w", path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("hub %s: %s: %s", path, resp.Status, snippet(raw))
	}
	return raw, nil
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
