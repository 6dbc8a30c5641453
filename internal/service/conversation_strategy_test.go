package service

import (
	"reflect"
	"testing"

	"persona-llm/internal/domain"
)

func TestDeriveStrategy_Bands(t *testing.T) {
	cases := []struct {
		turnCount    int
		targetLength int
		shouldAsk    bool
		tone         string
	}{
		{1, 25, true, "friendly"},
		{2, 25, true, "friendly"},
		{3, 35, true, "interested"},
		{5, 35, true, "interested"},
		{6, 40, false, "warm"},
		{10, 40, false, "warm"},
		{11, 45, false, "comfortable"},
		{50, 45, false, "comfortable"},
	}

	for _, tc := range cases {
		strategy := DefaultConversationStrategist.DeriveStrategy(tc.turnCount)
		if strategy.TargetLength != tc.targetLength {
			t.Fatalf("turn %d: expected target length %d, got %d", tc.turnCount, tc.targetLength, strategy.TargetLength)
		}
		if strategy.ShouldAskQuestion != tc.shouldAsk {
			t.Fatalf("turn %d: expected shouldAsk=%v", tc.turnCount, tc.shouldAsk)
		}
		if strategy.EmotionalTone != tc.tone {
			t.Fatalf("turn %d: expected tone %q, got %q", tc.turnCount, tc.tone, strategy.EmotionalTone)
		}
		if strategy.CurrentGoal == "" {
			t.Fatalf("turn %d: expected non-empty goal", tc.turnCount)
		}
	}
}

func TestDetectMood(t *testing.T) {
	s := DefaultConversationStrategist

	deepWins := []domain.Message{
		userMsg("ㅋㅋㅋ 웃기다"),
		userMsg("근데 사실 요즘 고민이 많아"),
	}
	if mood := s.DetectMood(deepWins); mood != domain.MoodDeep {
		t.Fatalf("expected deep mood to win over playful, got %s", mood)
	}

	playful := []domain.Message{userMsg("ㅋㅋㅋ 완전 웃겨"), assistantMsg("뭐가 그렇게 웃겨 ㅎㅎ")}
	if mood := s.DetectMood(playful); mood != domain.MoodPlayful {
		t.Fatalf("expected playful mood, got %s", mood)
	}

	light := []domain.Message{userMsg("점심 먹었어?")}
	if mood := s.DetectMood(light); mood != domain.MoodLight {
		t.Fatalf("expected light mood, got %s", mood)
	}

	// Las señales fuera de la ventana de 4 mensajes no cuentan.
	stale := []domain.Message{
		userMsg("요즘 우울해"),
		userMsg("점심 먹었어?"), userMsg("응"), userMsg("그래"), userMsg("좋네"),
	}
	if mood := s.DetectMood(stale); mood == domain.MoodDeep {
		t.Fatalf("expected deep signal outside the window to be ignored")
	}
}

func TestExtractTopics(t *testing.T) {
	s := DefaultConversationStrategist

	messages := []domain.Message{
		userMsg("오늘 치킨 먹고 게임했는데 기분 최고"),
	}
	got := s.ExtractTopics(messages)
	want := []string{"food", "hobby", "daily"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected topics %v in declaration order, got %v", want, got)
	}

	if topics := s.ExtractTopics([]domain.Message{userMsg("그렇구나")}); len(topics) != 0 {
		t.Fatalf("expected no topics, got %v", topics)
	}
}

func TestBuildContext(t *testing.T) {
	s := DefaultConversationStrategist
	messages := []domain.Message{
		userMsg("안녕!"),
		assistantMsg("안녕~ 반가워"),
		userMsg("오늘 치킨 먹었어"),
		assistantMsg("오 맛있었겠다"),
	}
	emotional := domain.DefaultEmotionalContext()
	emotional.CurrentEmotion.Primary = domain.EmotionHappy

	ctx := s.BuildContext(messages, emotional)
	if ctx.TurnCount != 2 {
		t.Fatalf("expected turn count 2 (user messages only), got %d", ctx.TurnCount)
	}
	if ctx.LastUserMessage != "오늘 치킨 먹었어" {
		t.Fatalf("unexpected last user message: %q", ctx.LastUserMessage)
	}
	if ctx.LastAiMessage != "오 맛있었겠다" {
		t.Fatalf("unexpected last assistant message: %q", ctx.LastAiMessage)
	}
	if ctx.UserEmotionalState != string(domain.EmotionHappy) {
		t.Fatalf("unexpected emotional state: %q", ctx.UserEmotionalState)
	}
	if len(ctx.RecentTopics) == 0 || ctx.RecentTopics[0] != "food" {
		t.Fatalf("expected food topic first, got %v", ctx.RecentTopics)
	}
}
