package service

import (
	"strings"

	"persona-llm/internal/domain"
)

// ConversationStrategist deriva estrategia de turno, mood y topicos a partir
// del historial. Todo es lookup de tablas fijas; sin estado.
type ConversationStrategist struct{}

// DefaultConversationStrategist permite uso directo sin instanciar.
var DefaultConversationStrategist = ConversationStrategist{}

const (
	moodWindow  = 4 // mensajes inspeccionados para el mood
	topicWindow = 6 // mensajes inspeccionados para los topicos
	maxTopics   = 3
)

// DeriveStrategy usa bandas fijas por numero de turno.
func (ConversationStrategist) DeriveStrategy(turnCount int) domain.TurnStrategy {
	switch {
	case turnCount <= 2:
		return domain.TurnStrategy{
			CurrentGoal:       "첫인상 만들기: 가볍게 인사하고 관심을 보여준다",
			TargetLength:      25,
			ShouldAskQuestion: true,
			EmotionalTone:     "friendly",
		}
	case turnCount <= 5:
		return domain.TurnStrategy{
			CurrentGoal:       "공통 관심사 찾기: 상대의 이야기를 끌어낸다",
			TargetLength:      35,
			ShouldAskQuestion: true,
			EmotionalTone:     "interested",
		}
	case turnCount <= 10:
		return domain.TurnStrategy{
			CurrentGoal:       "편안한 분위기 유지: 공감하며 대화를 이어간다",
			TargetLength:      40,
			ShouldAskQuestion: false,
			EmotionalTone:     "warm",
		}
	default:
		return domain.TurnStrategy{
			CurrentGoal:       "친밀감 쌓기: 이미 아는 이야기를 자연스럽게 이어간다",
			TargetLength:      45,
			ShouldAskQuestion: false,
			EmotionalTone:     "comfortable",
		}
	}
}

// DetectMood inspecciona los ultimos 4 mensajes concatenados.
// Las señales deep ganan sobre las playful; sin señales queda light.
func (ConversationStrategist) DetectMood(messages []domain.Message) domain.ConversationMood {
	recent := lastN(messages, moodWindow)
	var joined strings.Builder
	for _, m := range recent {
		joined.WriteString(m.Text)
		joined.WriteString(" ")
	}
	lower := strings.ToLower(joined.String())

	if containsAny(lower, deepMoodMarkers) {
		return domain.MoodDeep
	}
	if containsAny(lower, playfulMoodMarkers) {
		return domain.MoodPlayful
	}
	return domain.MoodLight
}

// ExtractTopics escanea los ultimos 6 mensajes contra los diccionarios de
// topicos en orden de declaracion y devuelve como maximo 3 etiquetas.
func (ConversationStrategist) ExtractTopics(messages []domain.Message) []string {
	recent := lastN(messages, topicWindow)
	var joined strings.Builder
	for _, m := range recent {
		joined.WriteString(m.Text)
		joined.WriteString(" ")
	}
	lower := strings.ToLower(joined.String())

	topics := make([]string, 0, maxTopics)
	for _, lex := range topicLexicons {
		if containsAny(lower, lex.Keywords) {
			topics = append(topics, lex.Label)
			if len(topics) == maxTopics {
				break
			}
		}
	}
	return topics
}

// BuildContext arma el ConversationContext completo del turno actual.
func (s ConversationStrategist) BuildContext(messages []domain.Message, emotional domain.EmotionalContext) domain.ConversationContext {
	turnCount := 0
	lastUser := ""
	lastAssistant := ""
	for _, m := range messages {
		switch m.Sender {
		case domain.SenderUser:
			turnCount++
			lastUser = m.Text
		case domain.SenderAssistant:
			lastAssistant = m.Text
		}
	}

	return domain.ConversationContext{
		TurnCount:          turnCount,
		LastUserMessage:    lastUser,
		LastAiMessage:      lastAssistant,
		RecentTopics:       s.ExtractTopics(messages),
		ConversationMood:   s.DetectMood(messages),
		UserEmotionalState: string(emotional.CurrentEmotion.Primary),
	}
}
