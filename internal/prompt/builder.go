package prompt

import (
	"fmt"
	"strings"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Builder produces instruction text for batch-summary and meta-summary
// requests. For a given (provider, kind) pair the output is deterministic.
type Builder struct {
	provider string
	language string
}

// NewBuilder creates a prompt builder for a provider and output language.
// The language may be an ISO code ("es") or a plain name.
func NewBuilder(provider, language string) *Builder {
	return &Builder{
		provider: provider,
		language: languageName(language),
	}
}

func languageName(lang string) string {
	switch strings.ToLower(lang) {
	case "", "es", "español", "spanish":
		return "español"
	case "en", "english", "inglés":
		return "English"
	default:
		return lang
	}
}

// jsonShape is the response contract both providers must follow.
const jsonShape = `{"topic": "...", "key_points": ["..."], "participants": ["..."], "status": "..."}`

// BatchPrompt builds the instruction for summarizing one batch of raw pages.
// It names the output language, embeds the exact scaled limits and instructs
// extraction of topic, key points, participants and discussion status.
func (b *Builder) BatchPrompt(pageCount int, pages string) string {
	limits := ScaledLimits(pageCount)

	var sb strings.Builder
	switch b.provider {
	case ProviderGemini:
		sb.WriteString("## Tarea\n")
		sb.WriteString(fmt.Sprintf("Analiza las páginas de un hilo de foro incluidas más abajo y resúmelas. Responde íntegramente en %s.\n\n", b.language))
		sb.WriteString("## Formato de salida\n")
		sb.WriteString("Devuelve únicamente un objeto JSON con esta forma exacta, sin texto adicional:\n")
		sb.WriteString(jsonShape + "\n\n")
		sb.WriteString("## Restricciones\n")
		sb.WriteString("- \"topic\": el tema central del fragmento, en una frase corta.\n")
		sb.WriteString(fmt.Sprintf("- \"key_points\": como máximo %d puntos clave de la discusión.\n", limits.MaxKeyPoints))
		sb.WriteString(fmt.Sprintf("- \"participants\": como máximo %d participantes destacados, por nombre.\n", limits.MaxParticipants))
		sb.WriteString("- \"status\": si la discusión sigue abierta o parece cerrada, y en qué tono termina.\n\n")
		sb.WriteString("## Páginas\n")
	default:
		sb.WriteString(fmt.Sprintf("Eres un asistente que resume hilos de foros. Responde siempre en %s.\n", b.language))
		sb.WriteString("Resume las siguientes páginas de un hilo. Devuelve solo JSON con la forma ")
		sb.WriteString(jsonShape + ".\n")
		sb.WriteString(fmt.Sprintf("Límites: máximo %d elementos en \"key_points\" y máximo %d nombres en \"participants\".\n", limits.MaxKeyPoints, limits.MaxParticipants))
		sb.WriteString("\"topic\" es el tema central en una frase; \"status\" indica si la discusión sigue activa y su tono.\n\n")
		sb.WriteString("Páginas:\n")
	}
	sb.WriteString(pages)

	return sb.String()
}

// MetaPrompt builds the instruction for fusing several batch summaries into
// one global summary. It operates over batch summaries, not raw pages, and
// explicitly prohibits fabricating statistics not present in the input.
func (b *Builder) MetaPrompt(pageCount int, batches string) string {
	limits := ScaledLimits(pageCount)

	var sb strings.Builder
	switch b.provider {
	case ProviderGemini:
		sb.WriteString("## Tarea\n")
		sb.WriteString(fmt.Sprintf("Más abajo tienes varios resúmenes parciales de un mismo hilo de foro, cada uno cubriendo un tramo de páginas. Fusiónalos en un único resumen global coherente. Responde íntegramente en %s.\n\n", b.language))
		sb.WriteString("## Formato de salida\n")
		sb.WriteString("Devuelve únicamente un objeto JSON con esta forma exacta, sin texto adicional:\n")
		sb.WriteString(jsonShape + "\n\n")
		sb.WriteString("## Restricciones\n")
		sb.WriteString(fmt.Sprintf("- \"key_points\": como máximo %d puntos clave del hilo completo.\n", limits.MaxKeyPoints))
		sb.WriteString(fmt.Sprintf("- \"participants\": como máximo %d participantes, combinando los de todos los tramos.\n", limits.MaxParticipants))
		sb.WriteString("- No inventes cifras ni estadísticas que no aparezcan en los resúmenes parciales.\n")
		sb.WriteString("- No menciones tramos ni páginas que no estén representados más abajo.\n\n")
		sb.WriteString("## Resúmenes parciales\n")
	default:
		sb.WriteString(fmt.Sprintf("Eres un asistente que resume hilos de foros. Responde siempre en %s.\n", b.language))
		sb.WriteString("Fusiona los siguientes resúmenes parciales de un hilo en un único resumen global. ")
		sb.WriteString("Devuelve solo JSON con la forma " + jsonShape + ".\n")
		sb.WriteString(fmt.Sprintf("Límites: máximo %d elementos en \"key_points\" y máximo %d nombres en \"participants\".\n", limits.MaxKeyPoints, limits.MaxParticipants))
		sb.WriteString("No inventes cifras ni estadísticas que no aparezcan en los resúmenes parciales.\n\n")
		sb.WriteString("Resúmenes parciales:\n")
	}
	sb.WriteString(batches)

	return sb.String()
}
