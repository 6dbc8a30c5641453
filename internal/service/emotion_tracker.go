package service

import (
	"strings"
	"unicode/utf8"

	"persona-llm/internal/domain"
)

// EmotionTracker agrega los mensajes recientes del usuario en un
// EmotionalContext. Funcion pura de la ventana de mensajes.
type EmotionTracker struct {
	scorer EmotionScorer
}

// NewEmotionTracker crea un tracker con el scorer por defecto.
func NewEmotionTracker() *EmotionTracker {
	return &EmotionTracker{scorer: DefaultEmotionScorer}
}

const (
	emotionWindow    = 3 // mensajes de usuario para emocion y tendencia
	engagementWindow = 5 // mensajes de usuario para engagement
	volatileWindow   = 8 // mensajes de usuario minimos para detectar volatilidad
	openingTurnLimit = 3 // hasta aqui la fase es opening salvo señales deep
)

// Track recalcula el contexto emocional completo para cada turno.
func (t *EmotionTracker) Track(messages []domain.Message) domain.EmotionalContext {
	userMessages := filterUserMessages(messages)
	if len(userMessages) == 0 {
		return domain.DefaultEmotionalContext()
	}

	window := lastN(userMessages, emotionWindow)
	history := make([]domain.EmotionState, 0, len(window))
	for _, m := range window {
		history = append(history, t.scorer.Score(m.Text))
	}
	current := history[len(history)-1]

	phase := t.phaseOf(userMessages, window)

	ctx := domain.EmotionalContext{
		CurrentEmotion:    current,
		EmotionHistory:    history,
		EmotionTrend:      t.trendOf(userMessages, history),
		EngagementLevel:   t.engagementOf(userMessages),
		ConversationPhase: phase,
		IsFlirting:        t.isFlirting(window),
	}
	ctx.NeedsEmotionalSupport = phase == domain.PhaseDeep && isDistressed(current.Primary)
	return ctx
}

// trendOf clasifica la tendencia. La volatilidad se comprueba primero sobre
// una ventana larga para que pueda pisar el promedio simple.
func (t *EmotionTracker) trendOf(userMessages []domain.Message, history []domain.EmotionState) domain.EmotionTrend {
	if t.isVolatile(userMessages) {
		return domain.TrendVolatile
	}

	sum := 0.0
	for _, state := range history {
		sum += emotionTrendWeights[state.Primary]
	}
	avg := sum / float64(len(history))
	switch {
	case avg > 0.5:
		return domain.TrendPositive
	case avg < -0.5:
		return domain.TrendNegative
	default:
		return domain.TrendNeutral
	}
}

// isVolatile detecta alternancia de signo sostenida en una ventana larga
// (>=8 mensajes): dos o mas cambios de signo entre pesos consecutivos.
func (t *EmotionTracker) isVolatile(userMessages []domain.Message) bool {
	if len(userMessages) < volatileWindow {
		return false
	}
	recent := lastN(userMessages, volatileWindow)
	flips := 0
	prev := 0.0
	for _, m := range recent {
		w := emotionTrendWeights[t.scorer.Score(m.Text).Primary]
		if w*prev < 0 {
			flips++
		}
		if w != 0 {
			prev = w
		}
	}
	return flips >= 2
}

// engagementOf usa la longitud media en runes de los ultimos 5 mensajes.
func (EmotionTracker) engagementOf(userMessages []domain.Message) domain.EngagementLevel {
	recent := lastN(userMessages, engagementWindow)
	total := 0
	for _, m := range recent {
		total += utf8.RuneCountInString(m.Text)
	}
	mean := float64(total) / float64(len(recent))
	switch {
	case mean > 30:
		return domain.EngagementHigh
	case mean > 15:
		return domain.EngagementMedium
	default:
		return domain.EngagementLow
	}
}

// phaseOf: las señales de dificultad fuerzan deep sin importar el turno;
// si no, opening para pocos turnos y developing despues.
func (EmotionTracker) phaseOf(userMessages, window []domain.Message) domain.ConversationPhase {
	var joined strings.Builder
	for _, m := range window {
		joined.WriteString(m.Text)
		joined.WriteString(" ")
	}
	if containsAny(strings.ToLower(joined.String()), deepMoodMarkers) {
		return domain.PhaseDeep
	}
	if len(userMessages) <= openingTurnLimit {
		return domain.PhaseOpening
	}
	return domain.PhaseDeveloping
}

// isFlirting: keyword flirty en la ventana o dos o mas corazones.
func (EmotionTracker) isFlirting(window []domain.Message) bool {
	hearts := 0
	for _, m := range window {
		lower := strings.ToLower(m.Text)
		for _, lex := range emotionLexicons {
			if lex.Category != domain.EmotionFlirty {
				continue
			}
			if containsAny(lower, lex.Keywords) {
				return true
			}
		}
		for _, heart := range heartSymbols {
			hearts += strings.Count(m.Text, heart)
		}
	}
	return hearts >= 2
}

func isDistressed(category domain.EmotionCategory) bool {
	return category == domain.EmotionSad ||
		category == domain.EmotionFrustrated ||
		category == domain.EmotionNervous
}

func filterUserMessages(messages []domain.Message) []domain.Message {
	var out []domain.Message
	for _, m := range messages {
		if m.IsUser() {
			out = append(out, m)
		}
	}
	return out
}

func lastN(messages []domain.Message, n int) []domain.Message {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
