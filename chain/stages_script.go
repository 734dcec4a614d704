package chain

import (
	"context"
	"fmt"

	"github.com/mpc601330-web/auren-auto-gold/brain"
	"github.com/mpc601330-web/auren-auto-gold/llm"
)

const anglesSystem = `Eres un estratega de contenido para canales de finanzas e inteligencia artificial en español.
Propones ángulos de vídeo concretos, polémicos pero honestos, pensados para retención alta.
Responde SOLO con la lista numerada, sin introducción ni cierre.`

const hooksSystem = `Eres un guionista experto en los primeros 5 segundos de vídeos cortos.
Escribes ganchos directos, en segunda persona, que generan tensión o curiosidad inmediata.
Nada de "en este vídeo": el espectador debe sentir que pierde algo si se va.
Responde SOLO con la lista numerada de ganchos.`

const scriptSystem = `Eres el guionista principal de un canal de dinero, IA y libertad financiera en español.
Escribes guiones hablados de 4 a 6 párrafos, frases cortas, cero relleno corporativo.
Tono cercano pero con autoridad. Prohibido prometer riqueza garantizada.
Responde SOLO con el guion, sin títulos ni etiquetas de sección.`

const doctorSystem = `Eres un script doctor de vídeos cortos. Recibes un guion y lo reescribes completo:
aprietas el ritmo, eliminas frases muertas, refuerzas la tensión de cada transición
y cierras con una llamada a la acción natural. Mantienes el idioma original.
Responde SOLO con el guion corregido.`

const retentionSystem = `Eres un analista de retención de audiencia. Revisas un guion e identificas
los puntos exactos donde el espectador puede abandonar, con el segundo aproximado
y la corrección sugerida para cada uno. Responde con una lista breve.`

const clipsSystem = `Eres un editor que trocea guiones largos en clips verticales independientes.
Cada clip debe sostenerse solo: su propio gancho, su idea y su cierre.
Formato: "CLIP N — [duración estimada]" seguido del texto del clip.`

func (c *Chain) stageAngles(ctx context.Context, st *runState, _ *Artifact) (string, error) {
	user := fmt.Sprintf("Tema: %s\nNicho: %s\nPaís: %s\nAudiencia: %s\n\nDame 5 ángulos distintos para un vídeo sobre este tema.",
		st.topic.Keyword, st.job.Channel.Niche, st.job.Channel.Country, st.job.Channel.Audience())
	return c.generate(ctx, keyAngles, anglesSystem, user, llm.Params{Temperature: 0.9}, st.topic.Keyword), nil
}

func (c *Chain) stageHooks(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Tema: %s\nEmoción objetivo: %s\n\nÁngulos disponibles:\n%s\n\nEscribe 5 ganchos de apertura (máximo 2 frases cada uno).",
		st.topic.Keyword, st.job.Emotion, a.Get(keyAngles))
	return c.generate(ctx, keyHooks, hooksSystem, user, llm.Params{Temperature: 0.9}, st.topic.Keyword), nil
}

func (c *Chain) stageScriptV1(ctx context.Context, st *runState, a *Artifact) (string, error) {
	style := brain.PickScriptStyle(st.topic.Keyword)
	user := fmt.Sprintf("Tema: %s\nEstilo narrativo: %s\nNicho: %s\nAudiencia: %s\n\nGanchos candidatos:\n%s\n\nElige el mejor gancho y escribe el guion completo a partir de él.",
		st.topic.Keyword, style, st.job.Channel.Niche, st.job.Channel.Audience(), a.Get(keyHooks))
	return c.generate(ctx, keyScriptV1, scriptSystem, user, llm.Params{Temperature: 0.8, MaxTokens: 1400}, st.topic.Keyword), nil
}

func (c *Chain) stageScriptV2(ctx context.Context, st *runState, a *Artifact) (string, error) {
	draft := a.Get(keyScriptV1)
	if IsDegraded(draft) {
		// no point doctoring a placeholder; carry it forward unchanged
		return draft, nil
	}
	user := fmt.Sprintf("Guion a corregir:\n\n%s", draft)
	return c.generate(ctx, keyScriptV2, doctorSystem, user, llm.Params{Temperature: 0.6, MaxTokens: 1400}, st.topic.Keyword), nil
}

func (c *Chain) stageRetention(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Guion:\n\n%s\n\nSeñala los 3 puntos de fuga más probables.", a.Get(keyScriptV2))
	return c.generate(ctx, keyRetention, retentionSystem, user, llm.Params{Temperature: 0.4}, st.topic.Keyword), nil
}

func (c *Chain) stageClips(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Guion completo:\n\n%s\n\nTrocéalo en 3 clips verticales independientes.", a.Get(keyScriptV2))
	return c.generate(ctx, keyClips, clipsSystem, user, llm.Params{Temperature: 0.6, MaxTokens: 1200}, st.topic.Keyword), nil
}
