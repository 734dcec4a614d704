// Package scout produces topic candidates: template expansion of a niche
// plus best-effort discovery from live sources.
package scout

import (
	"fmt"
	"strings"

	"github.com/mpc601330-web/auren-auto-gold/types"
)

// ExpandNiche turns a niche into a list of manual topic candidates using
// fixed phrase templates, plus a markdown block for the run report.
func ExpandNiche(niche, country, lang string, n int) ([]types.TopicCandidate, string) {
	base := strings.TrimSpace(niche)
	if base == "" {
		base = "dinero y libertad"
	}

	templates := []string{
		base + " para principiantes",
		"Errores típicos en " + base,
		"Cómo ganar dinero con " + base,
		base + " explicado a niños de 12 años",
		"Los mayores mitos sobre " + base,
		"Historias reales de gente que cambió su vida gracias a " + base,
		base + " en " + country + ": oportunidades ocultas",
	}
	if n < 1 {
		n = 1
	}
	if n > len(templates) {
		n = len(templates)
	}

	candidates := make([]types.TopicCandidate, 0, n)
	for _, keyword := range templates[:n] {
		candidates = append(candidates, types.TopicCandidate{
			Keyword:  keyword,
			Niche:    base,
			Country:  country,
			Language: lang,
			Source:   types.SourceManual,
		})
	}

	var md strings.Builder
	md.WriteString("# MIND ENGINE — Discover hot topics\n\n")
	fmt.Fprintf(&md, "**Niche:** %s\n\n", base)
	fmt.Fprintf(&md, "**Target country:** %s  |  **Language:** %s\n\n", country, lang)
	md.WriteString("## Suggested topics\n\n")
	for i, c := range candidates {
		fmt.Fprintf(&md, "**%d. %s**\n", i+1, c.Keyword)
		fmt.Fprintf(&md, "- Angle: explain %s with examples close to the target audience.\n\n", base)
	}

	return candidates, md.String()
}

// MergeCandidates joins seed lists in order, dropping duplicate keywords
// (first occurrence wins) so discovery never reorders or shadows the manual
// catalog.
func MergeCandidates(lists ...[]types.TopicCandidate) []types.TopicCandidate {
	seen := make(map[string]bool)
	var out []types.TopicCandidate
	for _, list := range lists {
		for _, c := range list {
			key := strings.ToLower(strings.TrimSpace(c.Keyword))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, c)
		}
	}
	return out
}
