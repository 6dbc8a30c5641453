package service

import (
	"fmt"
	"strings"

	"persona-llm/internal/domain"
)

// PromptBuilder compone el payload de instrucciones final para el LLM.
// El orden de secciones es estable: misma entrada, mismo prompt byte a byte.
type PromptBuilder struct{}

// DefaultPromptBuilder permite uso directo sin instanciar.
var DefaultPromptBuilder = PromptBuilder{}

// PromptInput agrupa todo lo que el builder necesita para un turno.
type PromptInput struct {
	Mode      domain.ChatMode
	Profile   domain.PersonaProfile
	Behavior  domain.MBTIBehavior
	ConvCtx   domain.ConversationContext
	Strategy  domain.TurnStrategy
	Params    domain.AdaptiveParameters
	Emotional domain.EmotionalContext
	UserCtx   domain.UserContext
	Memory    domain.MemoryContext

	// Solo modo roleplay.
	Scenario string
	Mission  string

	// Solo modo coach.
	Coach *domain.CoachRecord
}

// Build arma el prompt completo respetando el orden fijo de secciones.
// El ultimo mensaje del usuario se incluye literal, sin truncar ni escapar.
func (b PromptBuilder) Build(in PromptInput) string {
	var sb strings.Builder

	switch in.Mode {
	case domain.ModeCoach:
		b.writeCoachIdentity(&sb, in)
	case domain.ModeRoleplay:
		b.writeRoleplayScenario(&sb, in)
		b.writeIdentity(&sb, in)
	default:
		b.writeIdentity(&sb, in)
	}

	b.writeSpeechStyle(&sb, in)
	b.writeExpressions(&sb, in)
	b.writeKnownFacts(&sb, in.UserCtx)
	b.writeConversationSummary(&sb, in.ConvCtx)
	b.writeTurnGoal(&sb, in.Strategy)
	b.writeEmotionGuidance(&sb, in)
	b.writeHardRules(&sb)
	b.writeMemory(&sb, in.Memory)
	b.writeSpecialInstructions(&sb, in.Params)

	sb.WriteString("=== 사용자의 마지막 말 ===\n")
	sb.WriteString(in.ConvCtx.LastUserMessage)
	sb.WriteString("\n\n이 말에 이어서, 위 설정 그대로의 인물로서 한국어로 답해라.\n")

	return sb.String()
}

func (PromptBuilder) writeIdentity(sb *strings.Builder, in PromptInput) {
	sb.WriteString("=== 인물 설정 ===\n")
	sb.WriteString(fmt.Sprintf("너는 %s이다.", in.Profile.Name))
	if in.Profile.Age > 0 {
		sb.WriteString(fmt.Sprintf(" 나이는 %d살.", in.Profile.Age))
	}
	if in.Profile.Job != "" {
		sb.WriteString(fmt.Sprintf(" 직업은 %s.", in.Profile.Job))
	}
	sb.WriteString("\n")
	if in.Profile.MBTI != "" {
		sb.WriteString(fmt.Sprintf("MBTI %s: %s\n", in.Profile.MBTI, in.Behavior.Description))
	}
	if len(in.Profile.Interests) > 0 {
		sb.WriteString("관심사: " + strings.Join(in.Profile.Interests, ", ") + "\n")
	}
	sb.WriteString("\n")
}

func (PromptBuilder) writeRoleplayScenario(sb *strings.Builder, in PromptInput) {
	sb.WriteString("=== 상황극 설정 ===\n")
	if in.Scenario != "" {
		sb.WriteString("상황: " + in.Scenario + "\n")
	}
	if in.Mission != "" {
		sb.WriteString("이번 대화에서의 목표: " + in.Mission + "\n")
	}
	sb.WriteString("상황극을 깨는 발언은 금지다.\n\n")
}

func (PromptBuilder) writeCoachIdentity(sb *strings.Builder, in PromptInput) {
	sb.WriteString("=== 코치 설정 ===\n")
	if in.Coach != nil {
		sb.WriteString(in.Coach.SystemInstruction())
		sb.WriteString("\n")
		if in.Coach.Specialty != "" {
			sb.WriteString("전문 분야: " + in.Coach.Specialty + "\n")
		}
		if len(in.Coach.Citations) > 0 {
			sb.WriteString("인용 가능한 문헌 (이 목록 밖의 문헌은 인용 금지):\n")
			for _, citation := range in.Coach.Citations {
				sb.WriteString("- " + citation + "\n")
			}
		}
	}
	sb.WriteString("\n")
}

func (PromptBuilder) writeSpeechStyle(sb *strings.Builder, in PromptInput) {
	sb.WriteString("=== 말투 규칙 ===\n")
	sb.WriteString(fmt.Sprintf("- 답변 길이: 약 %d자 (%s)\n", in.Strategy.TargetLength, in.Params.TargetLength))
	sb.WriteString(fmt.Sprintf("- 말투: %s / 이모지 사용: %s\n", in.Profile.SpeechStyle.Formality, in.Params.EmojiUsage))
	if in.Behavior.InitialSpeechLevel == "polite" && !in.Behavior.InitiatesInformal {
		sb.WriteString("- 상대가 먼저 말을 놓기 전에는 존댓말을 유지한다\n")
	}
	sb.WriteString("\n")
}

func (PromptBuilder) writeExpressions(sb *strings.Builder, in PromptInput) {
	expr := in.Profile.Expressions
	if len(expr.Reactions) == 0 && len(expr.Fillers) == 0 && len(expr.Endings) == 0 {
		return
	}
	sb.WriteString("=== 자주 쓰는 표현 ===\n")
	if len(expr.Reactions) > 0 {
		sb.WriteString("리액션: " + strings.Join(expr.Reactions, ", ") + "\n")
	}
	if len(expr.Fillers) > 0 {
		sb.WriteString("추임새: " + strings.Join(expr.Fillers, ", ") + "\n")
	}
	if len(expr.Endings) > 0 {
		sb.WriteString("말끝: " + strings.Join(expr.Endings, ", ") + "\n")
	}
	sb.WriteString("\n")
}

// writeKnownFacts solo emite la seccion si hay hechos conocidos.
func (PromptBuilder) writeKnownFacts(sb *strings.Builder, userCtx domain.UserContext) {
	if len(userCtx.KnownFacts) == 0 {
		return
	}
	sb.WriteString("=== 상대에 대해 아는 것 ===\n")
	for _, fact := range userCtx.KnownFacts {
		sb.WriteString("- " + fact + "\n")
	}
	sb.WriteString("\n")
}

func (PromptBuilder) writeConversationSummary(sb *strings.Builder, convCtx domain.ConversationContext) {
	sb.WriteString("=== 현재 대화 상황 ===\n")
	sb.WriteString(fmt.Sprintf("- %d번째 턴 / 분위기: %s\n", convCtx.TurnCount, convCtx.ConversationMood))
	if len(convCtx.RecentTopics) > 0 {
		sb.WriteString("- 최근 화제: " + strings.Join(convCtx.RecentTopics, ", ") + "\n")
	}
	if convCtx.UserEmotionalState != "" {
		sb.WriteString("- 상대의 감정 상태: " + convCtx.UserEmotionalState + "\n")
	}
	sb.WriteString("\n")
}

func (PromptBuilder) writeTurnGoal(sb *strings.Builder, strategy domain.TurnStrategy) {
	sb.WriteString("=== 이번 턴의 목표 ===\n")
	sb.WriteString("- " + strategy.CurrentGoal + "\n")
	if strategy.ShouldAskQuestion {
		sb.WriteString("- 답변 끝에 가벼운 질문을 하나 붙인다\n")
	} else {
		sb.WriteString("- 굳이 질문으로 끝낼 필요는 없다\n")
	}
	sb.WriteString("- 감정 톤: " + strategy.EmotionalTone + "\n\n")
}

func (PromptBuilder) writeEmotionGuidance(sb *strings.Builder, in PromptInput) {
	sb.WriteString("=== 감정 대응 ===\n")
	guide := guideFor(in.Emotional.CurrentEmotion.Primary)
	sb.WriteString("- " + guide.Tone + "\n")
	if len(in.Params.OpeningPhrases) > 0 {
		sb.WriteString("- 이런 식으로 시작해도 좋다: " + strings.Join(in.Params.OpeningPhrases, " / ") + "\n")
	}
	if len(in.Params.AvoidPhrases) > 0 {
		sb.WriteString("- 피할 표현: " + strings.Join(in.Params.AvoidPhrases, " / ") + "\n")
	}
	sb.WriteString("\n")
}

// writeHardRules son las reglas duras fijas, iguales en todos los modos.
func (PromptBuilder) writeHardRules(sb *strings.Builder) {
	sb.WriteString("=== 절대 규칙 ===\n")
	sb.WriteString("1. 자기소개를 길게 늘어놓지 않는다.\n")
	sb.WriteString("2. AI나 어시스턴트라는 언급은 절대 하지 않는다.\n")
	sb.WriteString("3. 존댓말과 반말을 한 답변 안에서 섞지 않는다.\n")
	sb.WriteString("4. 모든 답변에 기계적으로 이모지를 붙이지 않는다.\n\n")
}

// writeMemory solo emite la seccion cuando hay contexto de memoria.
func (PromptBuilder) writeMemory(sb *strings.Builder, memory domain.MemoryContext) {
	if memory.IsEmpty() {
		return
	}
	sb.WriteString("=== 기억하고 있는 것 ===\n")
	for _, fact := range memory.UserFacts {
		sb.WriteString("- " + fact + "\n")
	}
	for _, summary := range memory.RecentSummaries {
		sb.WriteString("- (지난 대화) " + summary + "\n")
	}
	sb.WriteString("\n")
}

// writeSpecialInstructions es el addendum de estrategia emocional, opcional.
func (PromptBuilder) writeSpecialInstructions(sb *strings.Builder, params domain.AdaptiveParameters) {
	if len(params.SpecialInstructions) == 0 {
		return
	}
	sb.WriteString("=== 추가 지시 ===\n")
	for _, instruction := range params.SpecialInstructions {
		sb.WriteString("- " + instruction + "\n")
	}
	sb.WriteString("\n")
}
