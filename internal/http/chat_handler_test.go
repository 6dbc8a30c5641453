package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"persona-llm/internal/domain"
	"persona-llm/internal/llm"
	"persona-llm/internal/service"
)

type mockSessionRepo struct {
	sessions map[string]domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session domain.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, pgx.ErrNoRows
	}
	return session, nil
}

type mockMessageRepo struct {
	messages []domain.Message
}

func (m *mockMessageRepo) Create(_ context.Context, message domain.Message) error {
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockMessageRepo) ListBySessionID(_ context.Context, sessionID string) ([]domain.Message, error) {
	var out []domain.Message
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type mockPersonaRepo struct {
	record domain.PersonaRecord
}

func (m *mockPersonaRepo) GetByID(_ context.Context, id string) (domain.PersonaRecord, error) {
	if m.record.ID != id {
		return domain.PersonaRecord{}, pgx.ErrNoRows
	}
	return m.record, nil
}

type mockCoachRepo struct{}

func (m *mockCoachRepo) GetByID(_ context.Context, _ string) (domain.CoachRecord, error) {
	return domain.CoachRecord{}, pgx.ErrNoRows
}

type mockMemoryRepo struct{}

func (m *mockMemoryRepo) Create(_ context.Context, _ domain.MemoryEntry) error {
	return nil
}

func (m *mockMemoryRepo) Search(_ context.Context, _, _ string, _ pgvector.Vector, _ int) ([]domain.MemoryEntry, error) {
	return nil, nil
}

type chatTestEnv struct {
	router  *gin.Engine
	jwtServ *service.JWTService
	llm     *llm.MockClient
	msgRepo *mockMessageRepo
}

func setupChatEnv(t *testing.T) chatTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	mockLLM := &llm.MockClient{Response: "안녕! 오늘 어땠어?"}
	msgRepo := &mockMessageRepo{}
	personaRepo := &mockPersonaRepo{record: domain.PersonaRecord{
		ID:   "p1",
		Kind: domain.PersonaRecordRaw,
		Name: "지민",
		MBTI: "ENFP",
	}}
	memSvc := service.NewMemoryService(logger, mockLLM, &mockMemoryRepo{})
	chatServ := service.NewChatService(logger, mockLLM, msgRepo, personaRepo, &mockCoachRepo{}, memSvc)

	sessions := newMockSessionRepo()
	sessions.sessions["s1"] = domain.Session{
		ID:        "s1",
		UserID:    "u1",
		PartnerID: "p1",
		Mode:      domain.ModeChat,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}

	jwtServ := service.NewJWTServiceWithStore("secret", 15*time.Minute, 30*time.Minute, service.NewMemoryRefreshTokenStore())
	chatH := NewChatHandler(logger, sessions, service.NewMessageService(msgRepo), chatServ, nil)

	r := gin.New()
	protected := r.Group("", JWTAuthMiddleware(jwtServ))
	protected.POST("/session", chatH.CreateSession)
	protected.GET("/session/:id/messages", chatH.ListMessages)
	protected.POST("/chat", chatH.Chat)
	protected.POST("/chat/stream", chatH.ChatStream)
	protected.POST("/safety/check", chatH.CheckSafety)

	return chatTestEnv{router: r, jwtServ: jwtServ, llm: mockLLM, msgRepo: msgRepo}
}

func (e chatTestEnv) token(t *testing.T, userID string) string {
	t.Helper()
	pair, err := e.jwtServ.GeneratePair(domain.User{ID: userID, Email: userID + "@example.com"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return pair.AccessToken
}

func performRequestWithToken(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestChatHandlerChat_ReturnsReply(t *testing.T) {
	env := setupChatEnv(t)
	token := env.token(t, "u1")

	rec := performRequest(env.router, http.MethodPost, "/chat", map[string]string{
		"session_id": "s1",
		"message":    "오늘 진짜 재밌었어!",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = performRequestWithToken(env.router, http.MethodPost, "/chat", token, map[string]string{
		"session_id": "s1",
		"message":    "오늘 진짜 재밌었어!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "안녕! 오늘 어땠어?") {
		t.Fatalf("expected model reply in body, got %s", rec.Body.String())
	}
	if len(env.llm.LastRequest.Messages) == 0 {
		t.Fatalf("expected model to be called")
	}
}

func TestChatHandlerChat_SessionOwnership(t *testing.T) {
	env := setupChatEnv(t)
	token := env.token(t, "intruder")

	rec := performRequestWithToken(env.router, http.MethodPost, "/chat", token, map[string]string{
		"session_id": "s1",
		"message":    "안녕",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign session, got %d", rec.Code)
	}
}

func TestChatHandlerChatStream_EmitsSSE(t *testing.T) {
	env := setupChatEnv(t)
	env.llm.Deltas = []string{"안녕! ", "오늘 ", "어땠어?"}
	token := env.token(t, "u1")

	rec := performRequestWithToken(env.router, http.MethodPost, "/chat/stream", token, map[string]string{
		"session_id": "s1",
		"message":    "오늘 하루 얘기해줄게",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("expected event-stream content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatalf("expected SSE frames, got %s", body)
	}
	if !strings.Contains(body, "data: [DONE]") {
		t.Fatalf("expected terminal DONE frame, got %s", body)
	}
}

func TestChatHandlerCheckSafety(t *testing.T) {
	env := setupChatEnv(t)
	token := env.token(t, "u1")

	rec := performRequestWithToken(env.router, http.MethodPost, "/safety/check", token, map[string]string{
		"text": "오늘 날씨 좋다",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "\"is_safe\":true") {
		t.Fatalf("expected safe verdict, got %s", rec.Body.String())
	}
}

func TestChatHandlerListMessages(t *testing.T) {
	env := setupChatEnv(t)
	token := env.token(t, "u1")

	rec := performRequestWithToken(env.router, http.MethodPost, "/chat", token, map[string]string{
		"session_id": "s1",
		"message":    "안녕!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("chat failed with %d", rec.Code)
	}

	rec = performRequestWithToken(env.router, http.MethodGet, "/session/s1/messages", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(env.msgRepo.messages) < 2 {
		t.Fatalf("expected user and assistant messages persisted, got %d", len(env.msgRepo.messages))
	}
}

func TestChatHandlerCreateSession(t *testing.T) {
	env := setupChatEnv(t)
	token := env.token(t, "u1")

	rec := performRequestWithToken(env.router, http.MethodPost, "/session", token, map[string]string{
		"partner_id": "p1",
		"mode":       "roleplay",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequestWithToken(env.router, http.MethodPost, "/session", token, map[string]string{
		"partner_id": "p1",
		"mode":       "bogus",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown mode, got %d", rec.Code)
	}
}
