package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/mpc601330-web/auren-auto-gold/brain"
	"github.com/mpc601330-web/auren-auto-gold/llm"
)

const titlesSystem = `Eres un especialista en títulos de YouTube para el mercado hispano.
Escribes títulos de menos de 60 caracteres, con carga emocional real y sin clickbait vacío.
Responde SOLO con la lista numerada de títulos.`

const platformsSystem = `Eres un estratega de distribución multi-plataforma.
Adaptas una misma pieza a cada plataforma: duración, formato, primer fotograma y texto en pantalla.
Responde con un bloque corto por plataforma.`

const descriptionSystem = `Eres un copywriter de descripciones de vídeo.
Escribes una descripción de 3 a 5 líneas más una lista de 8 a 12 hashtags relevantes al final.
Sin enlaces inventados. Responde SOLO con la descripción y los hashtags.`

const ctrSystem = `Eres un analista de rendimiento de vídeo. Estimas el CTR esperado de un título
y miniatura para un nicho dado, con el razonamiento en 2 o 3 frases y un rango numérico.
Sé conservador: los nichos de dinero están saturados.`

const scheduleSystem = `Eres un planificador editorial para canales hispanohablantes.
Propones día y hora de publicación por plataforma, en hora local del país objetivo,
con una frase de justificación por franja.`

func (c *Chain) stageTitles(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Tema: %s\nGancho elegido y guion:\n\n%s\n\nDame 5 títulos.",
		st.topic.Keyword, TruncateFront(a.Get(keyScriptV2), 1500))
	return c.generate(ctx, keyTitles, titlesSystem, user, llm.Params{Temperature: 0.9}, st.topic.Keyword), nil
}

func (c *Chain) stagePlatforms(ctx context.Context, st *runState, a *Artifact) (string, error) {
	targets := brain.PlatformsFor(st.job.Platform)
	user := fmt.Sprintf("Pieza base (tema %q):\n\n%s\n\nAdáptala para: %s.",
		st.topic.Keyword, TruncateFront(a.Get(keyClips), 1500), strings.Join(targets, ", "))
	return c.generate(ctx, keyPlatforms, platformsSystem, user, llm.Params{Temperature: 0.6}, st.topic.Keyword), nil
}

func (c *Chain) stageDescription(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Tema: %s\nNicho: %s\nTítulos candidatos:\n%s\n\nEscribe la descripción y los hashtags.",
		st.topic.Keyword, st.job.Channel.Niche, a.Get(keyTitles))
	return c.generate(ctx, keyDescription, descriptionSystem, user, llm.Params{Temperature: 0.7}, st.topic.Keyword), nil
}

func (c *Chain) stageCTR(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("Nicho: %s\nPaís: %s\nTítulos:\n%s\n\nEstilo de miniatura: %s\n\nEstima el CTR esperado del mejor título.",
		st.job.Channel.Niche, st.job.Channel.Country, a.Get(keyTitles), brain.PickThumbnailStyle(st.job.Emotion))
	return c.generate(ctx, keyCTR, ctrSystem, user, llm.Params{Temperature: 0.3}, st.topic.Keyword), nil
}

func (c *Chain) stageSchedule(ctx context.Context, st *runState, a *Artifact) (string, error) {
	user := fmt.Sprintf("País objetivo: %s\nPlataformas:\n%s\n\nPropón el calendario de publicación de la semana.",
		st.job.Channel.Country, TruncateFront(a.Get(keyPlatforms), 1200))
	return c.generate(ctx, keySchedule, scheduleSystem, user, llm.Params{Temperature: 0.4}, st.topic.Keyword), nil
}
