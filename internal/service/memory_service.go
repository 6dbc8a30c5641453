package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"persona-llm/internal/domain"
	"persona-llm/internal/repository"
)

// MemoryService es el colaborador de memoria de largo plazo: guarda hechos
// del usuario y resumenes de sesion con embedding y los recupera por
// similitud para inyectarlos en el prompt.
type MemoryService struct {
	logger    *zap.Logger
	llmClient embeddingClient
	repo      repository.MemoryRepository
}

type embeddingClient interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

var ErrMemoryServiceNotConfigured = errors.New("memory service not configured")

const (
	memoryFactLimit    = 5
	memorySummaryLimit = 3
)

func NewMemoryService(logger *zap.Logger, llmClient embeddingClient, repo repository.MemoryRepository) *MemoryService {
	return &MemoryService{
		logger:    logger,
		llmClient: llmClient,
		repo:      repo,
	}
}

// Retrieve busca hechos y resumenes relevantes al query. Devuelve el error
// real; la politica de degradar a contexto vacio vive en RetrieveOrEmpty.
func (s *MemoryService) Retrieve(ctx context.Context, userID, query string) (domain.MemoryContext, error) {
	if s == nil || s.repo == nil || s.llmClient == nil {
		return domain.MemoryContext{}, ErrMemoryServiceNotConfigured
	}
	if strings.TrimSpace(query) == "" {
		return domain.MemoryContext{}, nil
	}

	embed, err := s.llmClient.CreateEmbedding(ctx, query)
	if err != nil {
		return domain.MemoryContext{}, fmt.Errorf("create embedding: %w", err)
	}
	vector := pgvector.NewVector(embed)

	facts, err := s.repo.Search(ctx, userID, domain.MemoryKindFact, vector, memoryFactLimit)
	if err != nil {
		return domain.MemoryContext{}, fmt.Errorf("search facts: %w", err)
	}
	summaries, err := s.repo.Search(ctx, userID, domain.MemoryKindSummary, vector, memorySummaryLimit)
	if err != nil {
		return domain.MemoryContext{}, fmt.Errorf("search summaries: %w", err)
	}

	var memCtx domain.MemoryContext
	for _, f := range facts {
		memCtx.UserFacts = append(memCtx.UserFacts, f.Content)
	}
	for _, sm := range summaries {
		memCtx.RecentSummaries = append(memCtx.RecentSummaries, sm.Content)
	}
	return memCtx, nil
}

// RetrieveOrEmpty aplica la politica documentada "default on error": el
// fallo del colaborador de memoria nunca corta la conversacion, solo se
// loguea y se sigue con contexto vacio.
func (s *MemoryService) RetrieveOrEmpty(ctx context.Context, userID, query string) domain.MemoryContext {
	memCtx, err := s.Retrieve(ctx, userID, query)
	if err != nil {
		if s != nil && s.logger != nil {
			s.logger.Warn("memory lookup failed, continuing with empty context", zap.Error(err))
		}
		return domain.MemoryContext{}
	}
	return memCtx
}

// Save guarda una entrada de memoria generando su embedding.
func (s *MemoryService) Save(ctx context.Context, userID, kind, content string) error {
	if s == nil || s.repo == nil || s.llmClient == nil {
		return ErrMemoryServiceNotConfigured
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if kind != domain.MemoryKindFact && kind != domain.MemoryKindSummary {
		return fmt.Errorf("unknown memory kind %q", kind)
	}

	embed, err := s.llmClient.CreateEmbedding(ctx, content)
	if err != nil {
		return fmt.Errorf("create embedding: %w", err)
	}

	entry := domain.MemoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Content:   content,
		Embedding: pgvector.NewVector(embed),
		CreatedAt: time.Now().UTC(),
	}
	return s.repo.Create(ctx, entry)
}
