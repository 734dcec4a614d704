package hub

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

func testHub(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.HubConfig{BaseURL: srv.URL, TimeoutSec: 5}, logx.NewNop())
}

func TestTopicMoneyFlow(t *testing.T) {
	t.Run("bare array response", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/topic_money_flow", r.URL.Path)
			w.Write([]byte(`[{"topic":"uno","money_score":80},{"money_score":40}]`))
		})

		rows, err := c.TopicMoneyFlow(context.Background(), []string{"uno", "dos"}, "es")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 80.0, rows[0].MoneyScore)
		// missing topic field backfills from the request
		assert.Equal(t, "dos", rows[1].Topic)
	})

	t.Run("wrapped results response", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results":[{"topic":"uno","money_score":55}]}`))
		})

		rows, err := c.TopicMoneyFlow(context.Background(), []string{"uno"}, "es")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 55.0, rows[0].MoneyScore)
	})

	t.Run("row count mismatch is fatal", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"money_score":55}]`))
		})

		_, err := c.TopicMoneyFlow(context.Background(), []string{"uno", "dos"}, "es")
		assert.ErrorContains(t, err, "1 rows for 2 topics")
	})

	t.Run("unexpected shape is an error", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"weird":true}`))
		})

		_, err := c.TopicMoneyFlow(context.Background(), []string{"uno"}, "es")
		assert.Error(t, err)
	})
}

func TestMediaPlan(t *testing.T) {
	t.Run("bare string plan", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`"plan en texto plano"`))
		})

		plan, err := c.MediaPlan(context.Background(), "guion", true, true)
		require.NoError(t, err)
		assert.Equal(t, "plan en texto plano", plan.Plan)
	})

	t.Run("structured plan", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"plan":"p","thumbnail_plan":"t","broll_plan":"b"}`))
		})

		plan, err := c.MediaPlan(context.Background(), "guion", true, true)
		require.NoError(t, err)
		assert.Equal(t, "p", plan.Plan)
		assert.Equal(t, "t", plan.ThumbnailPlan)
		assert.Equal(t, "b", plan.BrollPlan)
	})

	t.Run("unknown object is dumped whole", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"escenas":["a","b"]}`))
		})

		plan, err := c.MediaPlan(context.Background(), "guion", false, false)
		require.NoError(t, err)
		assert.Contains(t, plan.Plan, "escenas")
	})
}

func TestQualityAnalyze(t *testing.T) {
	t.Run("structured report", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"informe":"sólido","metrics":{"ritmo":8.5},"suggestions":["acorta el cierre"]}`))
		})

		rep, err := c.QualityAnalyze(context.Background(), "guion", "Short motivacional (rápido)")
		require.NoError(t, err)
		assert.Equal(t, "sólido", rep.Report)
		assert.Equal(t, 8.5, rep.Metrics["ritmo"])
		assert.Equal(t, []string{"acorta el cierre"}, rep.Suggestions)
	})

	t.Run("bare string report", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`"informe plano"`))
		})

		rep, err := c.QualityAnalyze(context.Background(), "guion", "Vídeo educativo")
		require.NoError(t, err)
		assert.Equal(t, "informe plano", rep.Report)
	})

	t.Run("absent containers normalize to empty", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"informe":"ok"}`))
		})

		rep, err := c.QualityAnalyze(context.Background(), "guion", "Vídeo educativo")
		require.NoError(t, err)
		assert.NotNil(t, rep.Metrics)
		assert.NotNil(t, rep.Suggestions)
		assert.Empty(t, rep.Suggestions)
	})

	t.Run("server error propagates", func(t *testing.T) {
		c := testHub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.QualityAnalyze(context.Background(), "guion", "Vídeo educativo")
		assert.Error(t, err)
	})
}
