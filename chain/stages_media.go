package chain

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mpc601330-web/auren-auto-gold/brain"
	"github.com/mpc601330-web/auren-auto-gold/llm"
	"github.com/mpc601330-web/auren-auto-gold/render"
)

const summarySystem = `Eres el productor ejecutivo del canal. Recibes todo el material de un vídeo
y escribes el resumen de producción: qué se publica, dónde, cuándo, con qué oferta
y qué riesgos quedan abiertos. Máximo 10 líneas.`

func (c *Chain) stageAffiliate(_ context.Context, st *runState, _ *Artifact) (string, error) {
	if c.offers == nil {
		return "Monetización desactivada: no hay catálogo de ofertas cargado.", nil
	}
	r := c.offers.ResolveOffer(st.topic.Keyword, st.job.Channel.Niche, st.job.Channel.Country, st.job.Channel.Name, st.job.AffiliateSlot)
	if r == nil {
		return fmt.Sprintf("Sin oferta de afiliado para %q: este vídeo sale sin monetización directa.", st.topic.Keyword), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Oferta: %s\nURL: %s\nOrigen: %s\n", r.Name, r.FinalURL, r.Source)
	if r.CTA != "" {
		fmt.Fprintf(&b, "CTA: %s\n", r.CTA)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (c *Chain) stageMediaPlan(ctx context.Context, st *runState, a *Artifact) (string, error) {
	script := a.Get(keyScriptV2)
	if c.hub != nil && !IsDegraded(script) {
		plan, err := c.hub.MediaPlan(ctx, script, c.opts.WantThumbnail, c.opts.WantBroll)
		if err == nil {
			return formatMediaPlan(plan.Plan, plan.ThumbnailPlan, plan.BrollPlan), nil
		}
		c.log.Warnw("hub media plan failed, using local plan", "topic", st.topic.Keyword, "error", err)
	}
	return localMediaPlan(st), nil
}

// localMediaPlan is the in-process stand-in when the hub is unreachable or
// absent: a scene prompt plus thumbnail direction derived from the topic.
func localMediaPlan(st *runState) string {
	return formatMediaPlan(
		"Plan local: una escena por párrafo del guion, corte cada 3-4 segundos.",
		"Miniatura: "+brain.PickThumbnailStyle(st.job.Emotion),
		"B-roll: "+brain.ScenePrompt(st.topic.Keyword),
	)
}

func formatMediaPlan(plan, thumb, broll string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{plan, thumb, broll} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, "\n\n")
}

func (c *Chain) stageFootage(ctx context.Context, st *runState, _ *Artifact) (string, error) {
	if c.stock == nil {
		return "Descarga de clips desactivada en esta ejecución.", nil
	}
	keywords := footageKeywords(st.topic.Keyword)
	assets := c.stock.Fetch(ctx, keywords, c.opts.AssetsDir)
	st.clips = assets
	if len(assets) == 0 {
		return fmt.Sprintf("Sin clips de stock para %s: el render usará fondos generados.", strings.Join(keywords, ", ")), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d clips descargados:\n", len(assets))
	for _, asset := range assets {
		loc := asset.Path
		if loc == "" {
			loc = asset.URL
		}
		fmt.Fprintf(&b, "- [%s] %s (%s)\n", asset.Provider, loc, asset.Keyword)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// footageKeywords extracts up to four significant search terms from a topic.
func footageKeywords(topic string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(topic)) {
		if utf8.RuneCountInString(w) > 4 {
			out = append(out, w)
		}
		if len(out) == 4 {
			break
		}
	}
	if len(out) == 0 {
		out = []string{topic}
	}
	return out
}

func (c *Chain) stageQuality(ctx context.Context, st *runState, a *Artifact) (string, error) {
	script := a.Get(keyScriptV2)
	if IsDegraded(script) {
		return "Revisión de calidad omitida: el guion es un borrador de respaldo, no material generado.", nil
	}
	if c.hub != nil {
		report, err := c.hub.QualityAnalyze(ctx, script, contentTypeFor(st.job.Platform))
		if err == nil {
			return formatQuality(report.Report, report.Suggestions), nil
		}
		c.log.Warnw("hub quality review failed, using local review", "topic", st.topic.Keyword, "error", err)
	}
	return localQualityReview(script), nil
}

func contentTypeFor(platform string) string {
	p := strings.ToLower(platform)
	switch {
	case strings.Contains(p, "short"), strings.Contains(p, "tiktok"), strings.Contains(p, "reel"):
		return "Short motivacional (rápido)"
	case strings.Contains(p, "largo"), strings.Contains(p, "long"):
		return "Vídeo largo storytelling"
	default:
		return "Vídeo educativo"
	}
}

func formatQuality(report string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(report))
	if len(suggestions) > 0 {
		b.WriteString("\n\nSugerencias:\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// localQualityReview gives a rough duration and density check when the hub
// cannot judge the script.
func localQualityReview(script string) string {
	words := len(strings.Fields(script))
	seconds := float64(words) / 2.6
	verdict := "OK para formato corto"
	if seconds > 75 {
		verdict = "largo para un short, recortar o trocear"
	} else if seconds < 25 {
		verdict = "demasiado corto, ampliar el desarrollo"
	}
	return fmt.Sprintf("Revisión local: %d palabras, ~%.0f segundos hablados. Veredicto: %s.", words, seconds, verdict)
}

func (c *Chain) stageRender(ctx context.Context, st *runState, a *Artifact) (string, error) {
	if c.forge == nil {
		return "Render no solicitado en esta ejecución.", nil
	}
	w, h := render.GeometryFor(st.job.Platform)
	scenes := make([]string, 0, len(st.clips))
	for _, asset := range st.clips {
		if asset.Path != "" {
			scenes = append(scenes, asset.Path)
		}
	}
	if len(scenes) == 0 {
		scenes = []string{brain.ScenePrompt(st.topic.Keyword)}
	}
	status := c.forge.Submit(ctx, render.Job{
		TemplateID:    c.opts.TemplateID,
		ScriptExcerpt: TruncateFront(a.Get(keyScriptV2), 1200),
		Width:         w,
		Height:        h,
		Language:      st.job.Channel.Language,
		Voice:         brain.PickVoice(st.job.Channel.Niche),
		Scenes:        scenes,
		MusicMood:     c.opts.MusicMood,
	})
	if status.Error != "" {
		return fmt.Sprintf("Render %s: %s", status.State, status.Error), nil
	}
	if status.JobID != "" {
		return fmt.Sprintf("Render %s (job %s, %dx%d)", status.State, status.JobID, w, h), nil
	}
	return fmt.Sprintf("Render %s (%dx%d)", status.State, w, h), nil
}

func (c *Chain) stageSummary(ctx context.Context, st *runState, a *Artifact) (string, error) {
	var b strings.Builder
	for _, key := range a.Keys() {
		fmt.Fprintf(&b, "## %s\n%s\n\n", key, a.Get(key))
	}
	user := fmt.Sprintf("Canal: %s\nTema: %s (score %.1f)\n\nMaterial completo:\n\n%s\n\nEscribe el resumen de producción.",
		st.job.Channel.Name, st.topic.Keyword, st.topic.MoneyScore, TruncateFront(b.String(), summaryContextBudget))
	return c.generate(ctx, keySummary, summarySystem, user, llm.Params{Temperature: 0.4}, st.topic.Keyword), nil
}
