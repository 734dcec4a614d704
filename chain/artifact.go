package chain

import (
	"fmt"
	"strings"

	"github.com/mpc601330-web/auren-auto-gold/llm"
)

// Degraded-output prefixes. Fallback text always starts with one of these
// so later stages and report readers can recognize content that was not
// really generated. RateLimitedPrefix marks a transient condition worth
// retrying the whole run for; FallbackPrefix marks a permanent one.
const (
	RateLimitedPrefix = "[RATE-LIMITED]"
	FallbackPrefix    = "[FALLBACK]"
)

// Artifact accumulates the chain's outputs: an ordered mapping from stage
// key to stage text. Each stage writes exactly one new key; existing keys
// are read-only inputs to later stages.
type Artifact struct {
	keys   []string
	values map[string]string
}

func NewArtifact() *Artifact {
	return &Artifact{values: make(map[string]string)}
}

// Set records a stage output. Writing an existing key is a programming
// error in the stage table, so it fails loudly.
func (a *Artifact) Set(key, text string) error {
	if _, ok := a.values[key]; ok {
		return fmt.Errorf("artifact key %q written twice", key)
	}
	a.keys = append(a.keys, key)
	a.values[key] = text
	return nil
}

// Get returns the text for a key, or "" when the stage has not run.
func (a *Artifact) Get(key string) string {
	return a.values[key]
}

// Has reports whether a stage already produced its key.
func (a *Artifact) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Keys returns the stage keys in production order.
func (a *Artifact) Keys() []string {
	return append([]string(nil), a.keys...)
}

// IsDegraded reports whether a stage output is fallback text rather than a
// real generation.
func IsDegraded(text string) bool {
	return strings.HasPrefix(text, RateLimitedPrefix) || strings.HasPrefix(text, FallbackPrefix)
}

// FallbackText synthesizes the deterministic placeholder for a failed
// stage: non-empty, on-topic, and prefixed so it is recognizable downstream.
func FallbackText(kind llm.FailureKind, stage, topic string) string {
	prefix := FallbackPrefix
	if kind == llm.FailureRateLimited {
		prefix = RateLimitedPrefix
	}
	if stage == keyScriptV1 || stage == keyScriptV2 {
		return prefix + "\n\n" + fallbackScript(topic)
	}
	return fmt.Sprintf("%s could not generate %s for %q — regenerate this block manually.", prefix, stage, topic)
}

// fallbackScript is the locally synthesized stand-in script, complete enough
// that the rest of the chain and the report stay usable.
func fallbackScript(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nadie te explicó de verdad qué es %s, pero cada día que no entiendes esto, alguien gana dinero a tu costa.\n\n", topic)
	fmt.Fprintf(&b, "Mira, %s no va de hacerte rico rápido: va de entender un sistema nuevo de dinero que ya está aquí aunque hagas como que no existe.\n\n", topic)
	fmt.Fprintf(&b, "Primero, lo simple: qué es y qué no es %s, sin tecnicismos ni humo.\n\n", topic)
	b.WriteString("Luego, los errores que comete todo principiante: entrar por hype, invertir lo que no tiene y seguir consejos de gente que ni enseña su cara.\n\n")
	b.WriteString("Después, la parte útil: dos o tres pasos concretos para empezar sin arruinarte, con cantidades pequeñas y reglas claras.\n\n")
	fmt.Fprintf(&b, "Así que la próxima vez que escuches %s, no huyas: respira hondo, entiende las reglas y juega a tu favor.", topic)
	return b.String()
}

// TruncateFront cuts text down to at most max characters, dropping from the
// front so the most recent trailing content survives. Used before handing
// accumulated context to capabilities with an input budget.
func TruncateFront(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[len(text)-max:]
}
