package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpc601330-web/auren-auto-gold/config"
	"github.com/mpc601330-web/auren-auto-gold/logx"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("GROQ_API_KEY", "test-key")

	c, err := NewClient(config.LLMConfig{
		BaseURL:    srv.URL,
		Model:      "test-model",
		TimeoutSec: 5,
	}, logx.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	_, err := NewClient(config.LLMConfig{BaseURL: "http://localhost"}, logx.NewNop())
	assert.ErrorContains(t, err, "GROQ_API_KEY")
}

func TestComplete_Success(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body := `{"choices":[{"message":{"content":"` + "```markdown" + `\nhola mundo\n` + "```" + `"}}]}`
		w.Write([]byte(body))
	})

	res := c.Complete(context.Background(), "sys", "user", Params{})
	require.True(t, res.OK())
	assert.Equal(t, "hola mundo", res.Text)
}

func TestComplete_RateLimitedBy429(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"too fast"}}`))
	})

	res := c.Complete(context.Background(), "sys", "user", Params{})
	assert.False(t, res.OK())
	assert.Equal(t, FailureRateLimited, res.Failure)
	assert.Error(t, res.Err)
}

func TestComplete_RateLimitedByErrorBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Rate limit reached for model","type":"rate_limit_exceeded"}}`))
	})

	res := c.Complete(context.Background(), "sys", "user", Params{})
	assert.Equal(t, FailureRateLimited, res.Failure)
}

func TestComplete_ServerErrorIsPermanent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	res := c.Complete(context.Background(), "sys", "user", Params{})
	assert.Equal(t, FailurePermanent, res.Failure)
}

func TestComplete_EmptyChoicesIsPermanent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	res := c.Complete(context.Background(), "sys", "user", Params{})
	assert.Equal(t, FailurePermanent, res.Failure)
}

func TestCleanFences(t *testing.T) {
	assert.Equal(t, "texto", CleanFences("```json\ntexto\n```"))
	assert.Equal(t, "texto", CleanFences("```\ntexto\n```"))
	assert.Equal(t, "sin fences", CleanFences("  sin fences  "))
}
