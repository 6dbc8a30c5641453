package domain

// EmojiUsage indica cuanto emoji debe usar la respuesta generada.
type EmojiUsage string

const (
	EmojiMore   EmojiUsage = "more"
	EmojiLess   EmojiUsage = "less"
	EmojiNormal EmojiUsage = "normal"
)

// TargetLength es la longitud objetivo de la respuesta.
type TargetLength string

const (
	LengthShort  TargetLength = "short"
	LengthMedium TargetLength = "medium"
	LengthLong   TargetLength = "long"
)

// AdaptiveParameters son los knobs de generacion derivados del contexto
// emocional. Funcion pura y total de EmotionalContext.
type AdaptiveParameters struct {
	Temperature         float64      `json:"temperature"`
	MaxTokens           int          `json:"max_tokens"`
	FrequencyPenalty    float64      `json:"frequency_penalty"`
	PresencePenalty     float64      `json:"presence_penalty"`
	ResponseStyle       string       `json:"response_style"`
	EmojiUsage          EmojiUsage   `json:"emoji_usage"`
	TargetLength        TargetLength `json:"target_length"`
	SpecialInstructions []string     `json:"special_instructions"`
	OpeningPhrases      []string     `json:"opening_phrases"`
	AvoidPhrases        []string     `json:"avoid_phrases"`
}
