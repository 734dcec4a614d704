// Package report assembles the end-of-run markdown document and persists it
// alongside a JSON envelope for downstream tooling.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mpc601330-web/auren-auto-gold/chain"
	"github.com/mpc601330-web/auren-auto-gold/rank"
	"github.com/mpc601330-web/auren-auto-gold/types"
)

// stageHeadings maps stage keys to the report section titles, in the order
// the chain produces them.
var stageHeadings = map[string]string{
	"angles":       "Ángulos",
	"hooks":        "Ganchos",
	"script_v1":    "Guion (borrador)",
	"script_v2":    "Guion (final)",
	"retention":    "Análisis de retención",
	"clips":        "Clips",
	"titles":       "Títulos",
	"platforms":    "Adaptación por plataforma",
	"description":  "Descripción y hashtags",
	"affiliate":    "Monetización",
	"media_plan":   "Plan de medios",
	"footage":      "Material de stock",
	"ctr_forecast": "Previsión de CTR",
	"schedule":     "Calendario",
	"quality":      "Control de calidad",
	"render":       "Render",
	"summary":      "Resumen de producción",
}

// TopicSection is one produced topic with its full artifact.
type TopicSection struct {
	Topic    types.ScoredTopic
	Job      types.Job
	Artifact *chain.Artifact
}

// Report is everything a run produced, ready to format.
type Report struct {
	RunID      string
	StartedAt  time.Time
	Niche      string
	Country    string
	MindBlock  string // niche expansion notes, may be empty
	Ranked     []types.ScoredTopic
	Health     []rank.ChannelHealth
	Sections   []TopicSection
	LedgerNote string
}

// Markdown renders the whole report document.
func (r *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Auren Auto Gold — Informe de ejecución %s\n\n", r.RunID)
	fmt.Fprintf(&b, "- Fecha: %s\n- Nicho: %s\n- País: %s\n- Temas producidos: %d\n\n",
		r.StartedAt.Format("2006-01-02 15:04"), r.Niche, r.Country, len(r.Sections))

	if r.MindBlock != "" {
		b.WriteString("## Expansión del nicho\n\n")
		b.WriteString(strings.TrimSpace(r.MindBlock))
		b.WriteString("\n\n")
	}

	if len(r.Ranked) > 0 {
		b.WriteString("## Ranking de temas\n\n")
		b.WriteString("| # | Tema | Money score | Vistas 30d | Intención | Densidad ads |\n")
		b.WriteString("|---|------|-------------|------------|-----------|---------------|\n")
		for i, t := range r.Ranked {
			fmt.Fprintf(&b, "| %d | %s | %.1f | %d | %.0f%% | %.0f%% |\n",
				i+1, t.Keyword, t.MoneyScore, t.Views30d, t.IntentPct, t.AdsDensityPct)
		}
		b.WriteString("\n")
	}

	if len(r.Health) > 0 {
		b.WriteString("## Salud de canales\n\n")
		b.WriteString("| Canal | Score | Estado |\n|-------|-------|--------|\n")
		for _, h := range r.Health {
			fmt.Fprintf(&b, "| %s | %.1f | %s |\n", h.Channel.Name, h.Score, h.Label)
		}
		b.WriteString("\n")
	}

	for _, s := range r.Sections {
		fmt.Fprintf(&b, "---\n\n# %s — %s\n\n", s.Topic.Keyword, s.Job.Channel.Name)
		fmt.Fprintf(&b, "Slug: `%s` · Score: %.1f · Plataforma: %s\n\n",
			s.Job.TopicSlug, s.Topic.MoneyScore, s.Job.Platform)
		for _, key := range s.Artifact.Keys() {
			heading := stageHeadings[key]
			if heading == "" {
				heading = key
			}
			text := s.Artifact.Get(key)
			if chain.IsDegraded(text) {
				heading += " ⚠ degradado"
			}
			fmt.Fprintf(&b, "## %s\n\n%s\n\n", heading, strings.TrimSpace(text))
		}
	}

	if r.LedgerNote != "" {
		fmt.Fprintf(&b, "---\n\n_%s_\n", r.LedgerNote)
	}
	return b.String()
}

// envelope is the JSON wrapper other tools in the fleet consume.
type envelope struct {
	Output string `json:"output"`
}

// Save writes the markdown report and its JSON envelope under dir, named by
// timestamp and run id. Returns the markdown path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	stem := fmt.Sprintf("auren_gold_%s_%s", r.StartedAt.Format("20060102_150405"), r.RunID)
	md := r.Markdown()

	mdPath := filepath.Join(dir, stem+".md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	data, err := json.MarshalIndent(envelope{Output: md}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report envelope: %w", err)
	}
	jsonPath := filepath.Join(dir, stem+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write report envelope: %w", err)
	}
	return mdPath, nil
}
