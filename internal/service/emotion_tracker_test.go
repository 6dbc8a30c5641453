package service

import (
	"testing"

	"persona-llm/internal/domain"
)

func userMsg(text string) domain.Message {
	return domain.Message{Sender: domain.SenderUser, Text: text}
}

func assistantMsg(text string) domain.Message {
	return domain.Message{Sender: domain.SenderAssistant, Text: text}
}

func TestEmotionTrackerTrack_EmptyHistory(t *testing.T) {
	tracker := NewEmotionTracker()

	for _, messages := range [][]domain.Message{nil, {}, {assistantMsg("안녕!")}} {
		ctx := tracker.Track(messages)
		if ctx.CurrentEmotion.Primary != domain.EmotionNeutral {
			t.Fatalf("expected neutral, got %s", ctx.CurrentEmotion.Primary)
		}
		if ctx.EmotionTrend != domain.TrendNeutral {
			t.Fatalf("expected neutral trend, got %s", ctx.EmotionTrend)
		}
		if ctx.EngagementLevel != domain.EngagementLow {
			t.Fatalf("expected low engagement, got %s", ctx.EngagementLevel)
		}
		if ctx.ConversationPhase != domain.PhaseOpening {
			t.Fatalf("expected opening phase, got %s", ctx.ConversationPhase)
		}
		if ctx.NeedsEmotionalSupport || ctx.IsFlirting {
			t.Fatalf("expected no support/flirt flags on empty history")
		}
	}
}

func TestEmotionTrackerTrack_SustainedSadness(t *testing.T) {
	tracker := NewEmotionTracker()
	messages := []domain.Message{
		userMsg("요즘 너무 힘들어 ㅠㅠ"),
		assistantMsg("무슨 일 있었어?"),
		userMsg("회사에서 진짜 지쳤어..."),
		assistantMsg("많이 힘들었겠다..."),
		userMsg("계속 우울하고 눈물나 ㅠㅠ"),
	}

	ctx := tracker.Track(messages)
	if ctx.CurrentEmotion.Primary != domain.EmotionSad {
		t.Fatalf("expected sad, got %s", ctx.CurrentEmotion.Primary)
	}
	if ctx.EmotionTrend != domain.TrendNegative {
		t.Fatalf("expected negative trend, got %s", ctx.EmotionTrend)
	}
	if ctx.ConversationPhase != domain.PhaseDeep {
		t.Fatalf("expected deep phase on hardship markers, got %s", ctx.ConversationPhase)
	}
	if !ctx.NeedsEmotionalSupport {
		t.Fatalf("expected emotional support flag")
	}
}

func TestEmotionTrackerTrack_PositiveTrend(t *testing.T) {
	tracker := NewEmotionTracker()
	messages := []domain.Message{
		userMsg("오늘 완전 좋았어!!"),
		userMsg("드디어 합격했어 너무 행복해!"),
		userMsg("저녁도 최고였어 ㅎㅎ"),
	}

	ctx := tracker.Track(messages)
	if ctx.EmotionTrend != domain.TrendPositive {
		t.Fatalf("expected positive trend, got %s", ctx.EmotionTrend)
	}
	if len(ctx.EmotionHistory) != 3 {
		t.Fatalf("expected 3 states in window, got %d", len(ctx.EmotionHistory))
	}
}

func TestEmotionTrackerTrack_VolatileOverridesAverage(t *testing.T) {
	tracker := NewEmotionTracker()
	messages := []domain.Message{
		userMsg("오늘 완전 좋았어"),
		userMsg("근데 또 힘들어"),
		userMsg("아니다 행복해"),
		userMsg("다시 우울해"),
		userMsg("응"),
		userMsg("그래"),
		userMsg("몰라"),
		userMsg("응응"),
	}

	ctx := tracker.Track(messages)
	if ctx.EmotionTrend != domain.TrendVolatile {
		t.Fatalf("expected volatile trend on repeated sign flips, got %s", ctx.EmotionTrend)
	}
}

func TestEmotionTrackerTrack_VolatileNeedsLongWindow(t *testing.T) {
	tracker := NewEmotionTracker()
	// Mismas alternancias pero con menos de 8 mensajes: no hay volatilidad.
	messages := []domain.Message{
		userMsg("오늘 완전 좋았어"),
		userMsg("근데 또 힘들어"),
		userMsg("아니다 행복해"),
	}

	ctx := tracker.Track(messages)
	if ctx.EmotionTrend == domain.TrendVolatile {
		t.Fatalf("expected no volatility below the window size")
	}
}

func TestEmotionTrackerTrack_Engagement(t *testing.T) {
	tracker := NewEmotionTracker()

	long := userMsg("오늘 회사에서 있었던 일을 처음부터 끝까지 전부 다 이야기해 줄게 들어봐")
	short := userMsg("응")

	if ctx := tracker.Track([]domain.Message{long, long, long}); ctx.EngagementLevel != domain.EngagementHigh {
		t.Fatalf("expected high engagement for long messages, got %s", ctx.EngagementLevel)
	}
	if ctx := tracker.Track([]domain.Message{short, short, short, short}); ctx.EngagementLevel != domain.EngagementLow {
		t.Fatalf("expected low engagement for short messages, got %s", ctx.EngagementLevel)
	}
}

func TestEmotionTrackerTrack_PhaseProgression(t *testing.T) {
	tracker := NewEmotionTracker()

	opening := []domain.Message{userMsg("안녕!"), userMsg("반가워")}
	if ctx := tracker.Track(opening); ctx.ConversationPhase != domain.PhaseOpening {
		t.Fatalf("expected opening phase, got %s", ctx.ConversationPhase)
	}

	developing := []domain.Message{
		userMsg("안녕!"), userMsg("반가워"), userMsg("응응"), userMsg("그래그래"),
	}
	if ctx := tracker.Track(developing); ctx.ConversationPhase != domain.PhaseDeveloping {
		t.Fatalf("expected developing phase, got %s", ctx.ConversationPhase)
	}

	// Señales de dificultad fuerzan deep aun en el primer turno.
	deep := []domain.Message{userMsg("고민이 있어서 우울해")}
	if ctx := tracker.Track(deep); ctx.ConversationPhase != domain.PhaseDeep {
		t.Fatalf("expected deep phase on hardship signal, got %s", ctx.ConversationPhase)
	}
}

func TestEmotionTrackerTrack_Flirting(t *testing.T) {
	tracker := NewEmotionTracker()

	byKeyword := []domain.Message{userMsg("보고싶다 진짜")}
	if ctx := tracker.Track(byKeyword); !ctx.IsFlirting {
		t.Fatalf("expected flirting flag for keyword")
	}

	byHearts := []domain.Message{userMsg("오늘도 화이팅 ♥"), userMsg("이따 봐 ♥")}
	if ctx := tracker.Track(byHearts); !ctx.IsFlirting {
		t.Fatalf("expected flirting flag for accumulated hearts")
	}

	plain := []domain.Message{userMsg("오늘 뭐 먹을까")}
	if ctx := tracker.Track(plain); ctx.IsFlirting {
		t.Fatalf("expected no flirting flag for plain text")
	}
}
