package service

import "persona-llm/internal/domain"

// AdaptiveParamGenerator mapea el contexto emocional a los knobs de
// generacion. Funcion total: cualquier EmotionalContext, incluido el
// all-default, produce parametros completos y validos.
type AdaptiveParamGenerator struct{}

// DefaultAdaptiveParamGenerator permite uso directo sin instanciar.
var DefaultAdaptiveParamGenerator = AdaptiveParamGenerator{}

// Generate parte de la linea base de la categoria actual y aplica overrides
// por coqueteo, necesidad de apoyo y bajo engagement.
func (AdaptiveParamGenerator) Generate(ctx domain.EmotionalContext) domain.AdaptiveParameters {
	params := baselineFor(ctx.CurrentEmotion.Primary)

	guide := guideFor(ctx.CurrentEmotion.Primary)
	params.OpeningPhrases = append([]string(nil), guide.Openers...)
	params.AvoidPhrases = append([]string(nil), guide.Avoid...)

	if ctx.IsFlirting {
		params.ResponseStyle = "playful"
	}

	if ctx.NeedsEmotionalSupport {
		params.SpecialInstructions = append(params.SpecialInstructions,
			"위로가 먼저다: 해결책을 제시하기 전에 상대의 감정을 충분히 인정해줄 것")
	}

	if ctx.EngagementLevel == domain.EngagementLow {
		params.SpecialInstructions = append(params.SpecialInstructions,
			"상대의 답이 짧아지고 있다: 관심을 보일 만한 질문을 하나 던질 것")
		params.TargetLength = domain.LengthShort
	}

	return params
}

// baselineFor fija temperatura, penalties y estilo por categoria.
func baselineFor(category domain.EmotionCategory) domain.AdaptiveParameters {
	params := domain.AdaptiveParameters{
		Temperature:         0.85,
		MaxTokens:           220,
		FrequencyPenalty:    0.3,
		PresencePenalty:     0.3,
		ResponseStyle:       "natural",
		EmojiUsage:          domain.EmojiNormal,
		TargetLength:        domain.LengthMedium,
		SpecialInstructions: []string{},
	}

	switch category {
	case domain.EmotionHappy, domain.EmotionExcited:
		params.Temperature = 0.95
		params.ResponseStyle = "energetic"
		params.EmojiUsage = domain.EmojiMore
		params.FrequencyPenalty = 0.4
	case domain.EmotionSad, domain.EmotionNervous, domain.EmotionFrustrated:
		params.Temperature = 0.75
		params.ResponseStyle = "supportive"
		params.EmojiUsage = domain.EmojiLess
		params.MaxTokens = 260
		params.PresencePenalty = 0.2
	case domain.EmotionFlirty:
		params.Temperature = 0.9
		params.ResponseStyle = "playful"
		params.EmojiUsage = domain.EmojiMore
	case domain.EmotionCurious:
		params.Temperature = 0.85
		params.ResponseStyle = "engaging"
	}

	return params
}
