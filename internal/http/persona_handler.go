package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"persona-llm/internal/repository"
	"persona-llm/internal/service"
)

// PersonaHandler mantiene dependencias para endpoints de personas.
type PersonaHandler struct {
	logger   *zap.Logger
	personas repository.PersonaRepository
	resolver service.PersonaResolver
}

// NewPersonaHandler crea una instancia de PersonaHandler con dependencias necesarias.
func NewPersonaHandler(logger *zap.Logger, personas repository.PersonaRepository) *PersonaHandler {
	return &PersonaHandler{
		logger:   logger,
		personas: personas,
		resolver: service.DefaultPersonaResolver,
	}
}

// GetPersona maneja GET /personas/:id y devuelve el perfil ya resuelto.
func (h *PersonaHandler) GetPersona(c *gin.Context) {
	id := c.Param("id")
	record, err := h.personas.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "persona not found"})
			return
		}
		h.logger.Error("get persona failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch persona"})
		return
	}

	profile := h.resolver.Resolve(record)
	behavior := h.resolver.BehaviorFor(profile.MBTI)
	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"behavior": behavior,
	})
}
