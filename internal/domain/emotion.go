package domain

// EmotionCategory es el conjunto cerrado de emociones que el motor reconoce.
// El orden de declaracion define la prioridad en los desempates del scorer.
type EmotionCategory string

const (
	EmotionHappy      EmotionCategory = "happy"
	EmotionExcited    EmotionCategory = "excited"
	EmotionCurious    EmotionCategory = "curious"
	EmotionNervous    EmotionCategory = "nervous"
	EmotionSad        EmotionCategory = "sad"
	EmotionFrustrated EmotionCategory = "frustrated"
	EmotionFlirty     EmotionCategory = "flirty"
	EmotionNeutral    EmotionCategory = "neutral"
)

// EmotionCategories lista las categorias en orden de prioridad de desempate.
var EmotionCategories = []EmotionCategory{
	EmotionHappy,
	EmotionExcited,
	EmotionCurious,
	EmotionNervous,
	EmotionSad,
	EmotionFrustrated,
	EmotionFlirty,
	EmotionNeutral,
}

// IsValidEmotion indica si la categoria pertenece al conjunto cerrado.
func IsValidEmotion(c EmotionCategory) bool {
	for _, known := range EmotionCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Niveles de intensidad emocional derivados de la densidad de puntuacion.
type EmotionIntensity string

const (
	IntensityLow    EmotionIntensity = "low"
	IntensityMedium EmotionIntensity = "medium"
	IntensityHigh   EmotionIntensity = "high"
)

// EmotionState es el resultado de puntuar un unico mensaje.
// Se deriva fresco por mensaje y nunca se persiste desde el motor.
type EmotionState struct {
	Primary           EmotionCategory  `json:"primary"`
	Intensity         EmotionIntensity `json:"intensity"`
	ShouldAcknowledge bool             `json:"should_acknowledge"`
	Confidence        float64          `json:"confidence"` // siempre en [0,1]
}

// Tendencia emocional agregada sobre la ventana reciente.
type EmotionTrend string

const (
	TrendPositive EmotionTrend = "positive"
	TrendNeutral  EmotionTrend = "neutral"
	TrendNegative EmotionTrend = "negative"
	TrendVolatile EmotionTrend = "volatile"
)

type EngagementLevel string

const (
	EngagementLow    EngagementLevel = "low"
	EngagementMedium EngagementLevel = "medium"
	EngagementHigh   EngagementLevel = "high"
)

// ConversationPhase clasifica la profundidad de la conversacion.
type ConversationPhase string

const (
	PhaseOpening    ConversationPhase = "opening"
	PhaseDeveloping ConversationPhase = "developing"
	PhaseDeep       ConversationPhase = "deep"
)

// EmotionalContext agrega los ultimos mensajes del usuario (ventana <=3).
// Es una funcion pura de la ventana de mensajes; no guarda estado oculto.
type EmotionalContext struct {
	CurrentEmotion        EmotionState      `json:"current_emotion"`
	EmotionHistory        []EmotionState    `json:"emotion_history"`
	EmotionTrend          EmotionTrend      `json:"emotion_trend"`
	EngagementLevel       EngagementLevel   `json:"engagement_level"`
	ConversationPhase     ConversationPhase `json:"conversation_phase"`
	NeedsEmotionalSupport bool              `json:"needs_emotional_support"`
	IsFlirting            bool              `json:"is_flirting"`
}

// NeutralEmotionState es el valor por defecto cuando no hay mensajes de usuario.
func NeutralEmotionState() EmotionState {
	return EmotionState{
		Primary:           EmotionNeutral,
		Intensity:         IntensityLow,
		ShouldAcknowledge: false,
		Confidence:        0,
	}
}

// DefaultEmotionalContext es el contexto para historiales vacios.
func DefaultEmotionalContext() EmotionalContext {
	return EmotionalContext{
		CurrentEmotion:    NeutralEmotionState(),
		EmotionHistory:    []EmotionState{},
		EmotionTrend:      TrendNeutral,
		EngagementLevel:   EngagementLow,
		ConversationPhase: PhaseOpening,
	}
}
