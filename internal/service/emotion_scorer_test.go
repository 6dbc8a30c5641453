package service

import (
	"testing"

	"persona-llm/internal/domain"
)

func TestEmotionScorerScore_Categories(t *testing.T) {
	cases := []struct {
		text string
		want domain.EmotionCategory
	}{
		{"오늘 진짜 행복해", domain.EmotionHappy},
		{"헐 대박 미쳤다", domain.EmotionExcited},
		{"그게 무슨 뜻이야? 궁금하다", domain.EmotionCurious},
		{"내일 면접이라 너무 긴장돼", domain.EmotionNervous},
		{"요즘 너무 힘들어", domain.EmotionSad},
		{"아 진짜 짜증나", domain.EmotionFrustrated},
		{"보고싶어 언제 만나", domain.EmotionFlirty},
		{"그렇군", domain.EmotionNeutral},
	}
	for _, c := range cases {
		got := DefaultEmotionScorer.Score(c.text)
		if got.Primary != c.want {
			t.Fatalf("text %q: expected %s, got %s", c.text, c.want, got.Primary)
		}
	}
}

func TestEmotionScorerScore_ExcitedHighIntensity(t *testing.T) {
	state := DefaultEmotionScorer.Score("완전 좋아!! 진짜 대박!!")

	// excited junta 완전+대박 (4) mas el enhancer "!!"; happy solo 좋아 (2).
	if state.Primary != domain.EmotionExcited {
		t.Fatalf("expected excited, got %s", state.Primary)
	}
	if state.Intensity != domain.IntensityHigh {
		t.Fatalf("expected high intensity, got %s", state.Intensity)
	}
	if !state.ShouldAcknowledge {
		t.Fatalf("expected acknowledgement for strong signal")
	}
	if state.Confidence <= 0 || state.Confidence > 1 {
		t.Fatalf("confidence out of range: %f", state.Confidence)
	}
}

func TestEmotionScorerScore_TieBreakByDeclarationOrder(t *testing.T) {
	// 좋아 (happy, 2 puntos) y 대박 (excited, 2 puntos) empatan:
	// gana la categoria declarada primero.
	state := DefaultEmotionScorer.Score("좋아 대박")
	if state.Primary != domain.EmotionHappy {
		t.Fatalf("expected happy to win the tie, got %s", state.Primary)
	}
}

func TestEmotionScorerScore_NeutralFallback(t *testing.T) {
	state := DefaultEmotionScorer.Score("응")
	if state.Primary != domain.EmotionNeutral {
		t.Fatalf("expected neutral, got %s", state.Primary)
	}
	if state.Confidence != 0 {
		t.Fatalf("expected zero confidence without matches, got %f", state.Confidence)
	}
	if state.ShouldAcknowledge {
		t.Fatalf("neutral should not demand acknowledgement")
	}
}

func TestEmotionScorerScore_Determinism(t *testing.T) {
	text := "오늘 너무 힘들어 ㅠㅠ 지쳤어..."
	first := DefaultEmotionScorer.Score(text)
	for i := 0; i < 5; i++ {
		if got := DefaultEmotionScorer.Score(text); got != first {
			t.Fatalf("expected identical state on repeat, got %+v vs %+v", got, first)
		}
	}
}

func TestEmotionScorerIntensity(t *testing.T) {
	cases := []struct {
		text string
		want domain.EmotionIntensity
	}{
		{"좋다", domain.IntensityLow},
		{"좋다!!", domain.IntensityMedium},
		{"좋다!!!!", domain.IntensityHigh},
		{"보고싶어 ♥♥", domain.IntensityHigh},
		{"왜?", domain.IntensityLow},
	}
	for _, c := range cases {
		if got := DefaultEmotionScorer.Score(c.text).Intensity; got != c.want {
			t.Fatalf("text %q: expected intensity %s, got %s", c.text, c.want, got)
		}
	}
}

func TestEmoticonRunCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"ㅋㅋㅋㅋ", 1},
		{"ㅋㅋ 진짜 ㅠㅠ", 2},
		{"ㅋ", 0},
		{"그냥 텍스트", 0},
	}
	for _, c := range cases {
		if got := emoticonRunCount(c.text); got != c.want {
			t.Fatalf("text %q: expected %d runs, got %d", c.text, c.want, got)
		}
	}
}
