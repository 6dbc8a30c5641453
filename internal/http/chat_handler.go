package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"persona-llm/internal/domain"
	"persona-llm/internal/repository"
	"persona-llm/internal/service"
)

// ChatHandler mantiene dependencias para endpoints de sesiones y chat.
type ChatHandler struct {
	logger   *zap.Logger
	sessions repository.SessionRepository
	messages *service.MessageService
	chatServ *service.ChatService
	limiter  service.ChatRateLimiter
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	sessions repository.SessionRepository,
	messages *service.MessageService,
	chatServ *service.ChatService,
	limiter service.ChatRateLimiter,
) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		sessions: sessions,
		messages: messages,
		chatServ: chatServ,
		limiter:  limiter,
	}
}

// CreateSession maneja POST /session.
func (h *ChatHandler) CreateSession(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		PartnerID string `json:"partner_id" binding:"required"`
		Mode      string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create session request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	mode := domain.ChatMode(req.Mode)
	switch mode {
	case domain.ModeChat, domain.ModeRoleplay, domain.ModeCoach:
	case "":
		mode = domain.ModeChat
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode"})
		return
	}

	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    claims.UserID,
		PartnerID: req.PartnerID,
		Mode:      mode,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}

	if err := h.sessions.Create(c.Request.Context(), session); err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// ListMessages maneja GET /session/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	session, ok := h.ownedSession(c, c.Param("id"))
	if !ok {
		return
	}

	messages, err := h.messages.ListBySession(c.Request.Context(), session.ID)
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type chatRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// Chat maneja POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	session, req, ok := h.prepareChat(c)
	if !ok {
		return
	}

	reply, err := h.chatServ.Generate(c.Request.Context(), session, req.Message)
	if err != nil {
		h.logger.Error("generate reply failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate reply"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// ChatStream maneja POST /chat/stream y responde server-sent events.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	session, req, ok := h.prepareChat(c)
	if !ok {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, canFlush := c.Writer.(http.Flusher)
	writeEvent := func(chunk string) {
		payload, err := json.Marshal(gin.H{"delta": chunk})
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		if canFlush {
			flusher.Flush()
		}
	}

	reply, err := h.chatServ.Stream(c.Request.Context(), session, req.Message, writeEvent)
	if err != nil {
		h.logger.Error("stream reply failed", zap.Error(err))
		fmt.Fprintf(c.Writer, "data: {\"error\":\"stream failed\"}\n\n")
	} else if reply != "" {
		payload, merr := json.Marshal(gin.H{"reply": reply})
		if merr == nil {
			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
		}
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	if canFlush {
		flusher.Flush()
	}
}

// CheckSafety maneja POST /safety/check.
func (h *ChatHandler) CheckSafety(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid safety check request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result := h.chatServ.CheckSafety(req.Text)
	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *ChatHandler) prepareChat(c *gin.Context) (domain.Session, chatRequest, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.Session{}, chatRequest{}, false
	}
	if h.limiter != nil && !h.limiter.Allow(claims.UserID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return domain.Session{}, chatRequest{}, false
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return domain.Session{}, chatRequest{}, false
	}

	session, ok := h.ownedSession(c, req.SessionID)
	if !ok {
		return domain.Session{}, chatRequest{}, false
	}
	if !session.ExpiresAt.IsZero() && session.ExpiresAt.Before(time.Now().UTC()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return domain.Session{}, chatRequest{}, false
	}
	return session, req, true
}

func (h *ChatHandler) ownedSession(c *gin.Context, sessionID string) (domain.Session, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return domain.Session{}, false
	}

	session, err := h.sessions.GetByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return domain.Session{}, false
		}
		h.logger.Error("get session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch session"})
		return domain.Session{}, false
	}
	if session.UserID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "session does not belong to user"})
		return domain.Session{}, false
	}
	return session, true
}
