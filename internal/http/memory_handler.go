package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"persona-llm/internal/domain"
	"persona-llm/internal/service"
)

// MemoryHandler mantiene dependencias para endpoints de memoria de usuario.
type MemoryHandler struct {
	logger *zap.Logger
	memory *service.MemoryService
}

// NewMemoryHandler crea una instancia de MemoryHandler con dependencias necesarias.
func NewMemoryHandler(logger *zap.Logger, memory *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{
		logger: logger,
		memory: memory,
	}
}

// SaveFact maneja POST /memory/facts.
func (h *MemoryHandler) SaveFact(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing claims"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
		Kind    string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save fact request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = domain.MemoryKindFact
	}

	if err := h.memory.Save(c.Request.Context(), claims.UserID, kind, req.Content); err != nil {
		h.logger.Error("save fact failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save fact"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}
