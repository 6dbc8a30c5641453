package domain

// ConversationMood resume el tono general de los ultimos mensajes.
type ConversationMood string

const (
	MoodLight   ConversationMood = "light"
	MoodDeep    ConversationMood = "deep"
	MoodPlayful ConversationMood = "playful"
	MoodSerious ConversationMood = "serious"
)

// ConversationContext se deriva por request a partir del historial.
type ConversationContext struct {
	TurnCount          int              `json:"turn_count"`
	LastUserMessage    string           `json:"last_user_message"`
	LastAiMessage      string           `json:"last_ai_message,omitempty"`
	RecentTopics       []string         `json:"recent_topics"` // como maximo 3
	ConversationMood   ConversationMood `json:"conversation_mood"`
	UserEmotionalState string           `json:"user_emotional_state,omitempty"`
}

// TurnStrategy es la estrategia derivada del numero de turno.
type TurnStrategy struct {
	CurrentGoal       string `json:"current_goal"`
	TargetLength      int    `json:"target_length"` // caracteres sugeridos
	ShouldAskQuestion bool   `json:"should_ask_question"`
	EmotionalTone     string `json:"emotional_tone"`
}

// ChatMode selecciona la variante de prompt que arma el builder.
type ChatMode string

const (
	ModeChat     ChatMode = "chat"
	ModeRoleplay ChatMode = "roleplay"
	ModeCoach    ChatMode = "coach"
)
