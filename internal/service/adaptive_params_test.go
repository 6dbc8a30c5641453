package service

import (
	"strings"
	"testing"

	"persona-llm/internal/domain"
)

func TestAdaptiveParamGenerator_Totality(t *testing.T) {
	gen := DefaultAdaptiveParamGenerator

	contexts := []domain.EmotionalContext{
		{}, // zero value completo
		domain.DefaultEmotionalContext(),
	}
	for _, category := range domain.EmotionCategories {
		ctx := domain.DefaultEmotionalContext()
		ctx.CurrentEmotion.Primary = category
		contexts = append(contexts, ctx)
	}

	for _, ctx := range contexts {
		params := gen.Generate(ctx)
		if params.Temperature <= 0 || params.Temperature > 2 {
			t.Fatalf("temperature out of range for %+v: %f", ctx.CurrentEmotion, params.Temperature)
		}
		if params.MaxTokens <= 0 {
			t.Fatalf("non-positive max tokens for %+v", ctx.CurrentEmotion)
		}
		if params.ResponseStyle == "" || params.EmojiUsage == "" || params.TargetLength == "" {
			t.Fatalf("incomplete params for %+v: %+v", ctx.CurrentEmotion, params)
		}
		if params.SpecialInstructions == nil {
			t.Fatalf("expected non-nil instructions slice for %+v", ctx.CurrentEmotion)
		}
	}
}

func TestAdaptiveParamGenerator_Baselines(t *testing.T) {
	gen := DefaultAdaptiveParamGenerator

	cases := []struct {
		category    domain.EmotionCategory
		temperature float64
		style       string
		emoji       domain.EmojiUsage
		maxTokens   int
	}{
		{domain.EmotionHappy, 0.95, "energetic", domain.EmojiMore, 220},
		{domain.EmotionExcited, 0.95, "energetic", domain.EmojiMore, 220},
		{domain.EmotionSad, 0.75, "supportive", domain.EmojiLess, 260},
		{domain.EmotionNervous, 0.75, "supportive", domain.EmojiLess, 260},
		{domain.EmotionFrustrated, 0.75, "supportive", domain.EmojiLess, 260},
		{domain.EmotionFlirty, 0.9, "playful", domain.EmojiMore, 220},
		{domain.EmotionCurious, 0.85, "engaging", domain.EmojiNormal, 220},
		{domain.EmotionNeutral, 0.85, "natural", domain.EmojiNormal, 220},
	}

	for _, tc := range cases {
		ctx := domain.DefaultEmotionalContext()
		ctx.CurrentEmotion.Primary = tc.category
		ctx.EngagementLevel = domain.EngagementMedium

		params := gen.Generate(ctx)
		if params.Temperature != tc.temperature {
			t.Fatalf("%s: expected temperature %f, got %f", tc.category, tc.temperature, params.Temperature)
		}
		if params.ResponseStyle != tc.style {
			t.Fatalf("%s: expected style %q, got %q", tc.category, tc.style, params.ResponseStyle)
		}
		if params.EmojiUsage != tc.emoji {
			t.Fatalf("%s: expected emoji usage %q, got %q", tc.category, tc.emoji, params.EmojiUsage)
		}
		if params.MaxTokens != tc.maxTokens {
			t.Fatalf("%s: expected max tokens %d, got %d", tc.category, tc.maxTokens, params.MaxTokens)
		}
	}
}

func TestAdaptiveParamGenerator_Overrides(t *testing.T) {
	gen := DefaultAdaptiveParamGenerator

	flirting := domain.DefaultEmotionalContext()
	flirting.EngagementLevel = domain.EngagementMedium
	flirting.IsFlirting = true
	if params := gen.Generate(flirting); params.ResponseStyle != "playful" {
		t.Fatalf("expected playful style while flirting, got %q", params.ResponseStyle)
	}

	support := domain.DefaultEmotionalContext()
	support.EngagementLevel = domain.EngagementMedium
	support.CurrentEmotion.Primary = domain.EmotionSad
	support.NeedsEmotionalSupport = true
	params := gen.Generate(support)
	found := false
	for _, instruction := range params.SpecialInstructions {
		if strings.Contains(instruction, "위로가 먼저다") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected comfort-first instruction, got %v", params.SpecialInstructions)
	}

	lowEngagement := domain.DefaultEmotionalContext()
	lowEngagement.EngagementLevel = domain.EngagementLow
	params = gen.Generate(lowEngagement)
	if params.TargetLength != domain.LengthShort {
		t.Fatalf("expected short target length on low engagement, got %q", params.TargetLength)
	}
	if len(params.SpecialInstructions) == 0 {
		t.Fatalf("expected a re-engagement instruction")
	}
}

func TestAdaptiveParamGenerator_CopiesGuidePhrases(t *testing.T) {
	gen := DefaultAdaptiveParamGenerator
	ctx := domain.DefaultEmotionalContext()
	ctx.CurrentEmotion.Primary = domain.EmotionHappy

	params := gen.Generate(ctx)
	if len(params.OpeningPhrases) == 0 || len(params.AvoidPhrases) == 0 {
		t.Fatalf("expected openers and avoid phrases from the guide")
	}

	// Mutar la copia no debe tocar la tabla del lexicon.
	original := guideFor(domain.EmotionHappy).Openers[0]
	params.OpeningPhrases[0] = "mutated"
	if guideFor(domain.EmotionHappy).Openers[0] != original {
		t.Fatalf("guide table must not be mutated through generated params")
	}
}
