package domain

import "time"

// PersonaRecordKind distingue en la frontera del repositorio entre registros
// crudos y registros que ya traen estilo/expresiones preconfiguradas.
// Se resuelve una sola vez al ingerir el registro, nunca ad hoc despues.
type PersonaRecordKind string

const (
	PersonaRecordRaw      PersonaRecordKind = "raw"
	PersonaRecordEnhanced PersonaRecordKind = "enhanced"
)

// PersonaRecord es el registro tal como lo entrega el colaborador externo.
type PersonaRecord struct {
	ID          string            `json:"id"`
	Kind        PersonaRecordKind `json:"kind"`
	Name        string            `json:"name"`
	Age         int               `json:"age,omitempty"`
	MBTI        string            `json:"mbti,omitempty"`
	Job         string            `json:"job,omitempty"`
	Interests   []string          `json:"interests,omitempty"`
	Scenario    string            `json:"scenario,omitempty"` // solo modo roleplay
	Mission     string            `json:"mission,omitempty"`  // solo modo roleplay
	SpeechStyle *SpeechStyle      `json:"speech_style,omitempty"`
	Expressions *ExpressionSet    `json:"expressions,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SpeechStyle define las restricciones de habla de la persona.
type SpeechStyle struct {
	Formality      string `json:"formality"`       // casual | polite | formal
	ResponseLength string `json:"response_length"` // short | medium | long
	EmojiFrequency string `json:"emoji_frequency"` // none | low | moderate | high
}

// ExpressionSet son las muletillas caracteristicas de la persona.
type ExpressionSet struct {
	Reactions []string `json:"reactions"`
	Fillers   []string `json:"fillers"`
	Endings   []string `json:"endings"`
}

// PersonaProfile es el perfil normalizado que consume el resto del pipeline.
// Solo lectura aguas abajo.
type PersonaProfile struct {
	Name        string        `json:"name"`
	Age         int           `json:"age,omitempty"`
	MBTI        string        `json:"mbti,omitempty"`
	Job         string        `json:"job,omitempty"`
	SpeechStyle SpeechStyle   `json:"speech_style"`
	Expressions ExpressionSet `json:"expressions"`
	Interests   []string      `json:"interests,omitempty"`
}

// MBTIBehavior describe el comportamiento conversacional derivado del codigo MBTI.
type MBTIBehavior struct {
	InitialSpeechLevel       string `json:"initial_speech_level"` // polite | casual
	InitiatesInformal        bool   `json:"initiates_informal"`
	WarmupSpeed              string `json:"warmup_speed"` // slow | medium | fast
	ConversationStarter      string `json:"conversation_starter"`
	EmotionalExpression      string `json:"emotional_expression"` // reserved | moderate | expressive
	EmojiFrequency           string `json:"emoji_frequency"`
	SentenceLengthPreference string `json:"sentence_length_preference"`
	Description              string `json:"description"`
}
