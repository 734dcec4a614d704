// Package llm is the text-generation capability boundary. Every call returns
// a Result: generated text, or one of a closed set of failure kinds. Errors
// never escape past this boundary.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/logx"
)

// FailureKind classifies a failed generation.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureRateLimited is transient: the caller may retry the whole run later.
	FailureRateLimited
	// FailurePermanent covers everything else for this run.
	FailurePermanent
)

// Result is the three-way outcome of a generation call.
type Result struct {
	Text    string
	Failure FailureKind
	Err     error
}

func (r Result) OK() bool { return r.Failure == FailureNone }

// Params are per-call generation knobs; zero values fall back to the
// client's configured defaults.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// Generator is the capability consumed by the chain and scout.
type Generator interface {
	Complete(ctx context.Context, system, user string, p Params) Result
}

// Client talks to an OpenAI-compatible chat-completions API (Groq).
type Client struct {
	baseURL     string
	model       string
	apiKey      string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
	log         *logx.Logger
}

// NewClient validates credentials at construction so a misconfigured run
// aborts before any chain stage starts.
func NewClient(cfg config.LLMConfig, log *logx.Logger) (*Client, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("llm: GROQ_API_KEY not set")
	}
	return &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		apiKey:      apiKey,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:         log,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete runs one system+user generation. All transport, auth and parse
// problems are converted into a failed Result.
func (c *Client) Complete(ctx context.Context, system, user string, p Params) Result {
	temp := p.Temperature
	if temp == 0 {
		temp = c.temperature
	}
	maxTok := p.MaxTokens
	if maxTok == 0 {
		maxTok = c.maxTokens
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temp,
		MaxTokens:   maxTok,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fail(FailurePermanent, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return fail(FailurePermanent, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(FailurePermanent, fmt.Errorf("llm request: %w", err))
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fail(FailurePermanent, fmt.Errorf("read llm response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return fail(FailureRateLimited, fmt.Errorf("llm rate limited: %s", strings.TrimSpace(string(respBytes))))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return fail(FailurePermanent, fmt.Errorf("parse llm response: %w", err))
	}
	if parsed.Error != nil {
		kind := FailurePermanent
		if strings.Contains(strings.ToLower(parsed.Error.Message), "rate limit") ||
			parsed.Error.Type == "rate_limit_exceeded" {
			kind = FailureRateLimited
		}
		return fail(kind, fmt.Errorf("llm error: %s", parsed.Error.Message))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fail(FailurePermanent, fmt.Errorf("llm error %s", resp.Status))
	}
	if len(parsed.Choices) == 0 {
		return fail(FailurePermanent, fmt.Errorf("llm returned no choices"))
	}

	text := CleanFences(parsed.Choices[0].Message.Content)
	if text == "" {
		return fail(FailurePermanent, fmt.Errorf("llm returned empty text"))
	}
	return Result{Text: text}
}

func fail(kind FailureKind, err error) Result {
	return Result{Failure: kind, Err: err}
}

// CleanFences strips markdown code fences the model sometimes wraps
// responses in.
func CleanFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
