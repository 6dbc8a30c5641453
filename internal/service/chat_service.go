package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"persona-llm/internal/domain"
	"persona-llm/internal/llm"
	"persona-llm/internal/repository"
)

// ChatService orquesta el pipeline completo de un turno:
// safety de entrada → memoria ∥ partner → adaptacion emocional →
// composicion del prompt → llamada al LLM → safety de salida.
type ChatService struct {
	logger      *zap.Logger
	llmClient   llm.LLMClient
	messageRepo repository.MessageRepository
	personas    repository.PersonaRepository
	coaches     repository.CoachRepository
	memory      *MemoryService

	tracker    *EmotionTracker
	strategist ConversationStrategist
	resolver   PersonaResolver
	paramGen   AdaptiveParamGenerator
	builder    PromptBuilder
	safety     SafetyFilter
}

var (
	ErrChatServiceNotConfigured = errors.New("chat service not configured")
	ErrNilMessages              = errors.New("nil message history")
)

// Respuestas fijas de rechazo por politica de contenido. No son errores:
// son salidas normales del pipeline.
const (
	inputRefusalTemplate  = "미안, 그 얘기는 여기서 하고 싶지 않아. 우리 다른 얘기 하자!"
	outputRefusalTemplate = "방금 하려던 말은 안 하는 게 좋을 것 같아. 다른 이야기 해볼까?"
)

// streamQueueSize acota la cola que desacopla el sink del consumo del stream.
const streamQueueSize = 64

func NewChatService(
	logger *zap.Logger,
	llmClient llm.LLMClient,
	messageRepo repository.MessageRepository,
	personas repository.PersonaRepository,
	coaches repository.CoachRepository,
	memory *MemoryService,
) *ChatService {
	return &ChatService{
		logger:      logger,
		llmClient:   llmClient,
		messageRepo: messageRepo,
		personas:    personas,
		coaches:     coaches,
		memory:      memory,
		tracker:     NewEmotionTracker(),
		strategist:  DefaultConversationStrategist,
		resolver:    DefaultPersonaResolver,
		paramGen:    DefaultAdaptiveParamGenerator,
		builder:     DefaultPromptBuilder,
		safety:      DefaultSafetyFilter,
	}
}

// CheckSafety expone el filtro como utilidad independiente.
func (s *ChatService) CheckSafety(text string) SafetyResult {
	return s.safety.Classify(text)
}

// Generate ejecuta el pipeline completo en modo sincrono y devuelve el texto
// de la respuesta. Un rechazo por politica devuelve la plantilla fija con
// error nil.
func (s *ChatService) Generate(ctx context.Context, session domain.Session, userMessage string) (string, error) {
	turn, err := s.prepareTurn(ctx, session, userMessage)
	if err != nil {
		return "", err
	}
	if turn.rejected {
		return inputRefusalTemplate, nil
	}

	response, err := s.llmClient.Complete(ctx, turn.request)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}

	response = s.moderateOutput(response)
	if err := s.persistAssistantMessage(ctx, session, response); err != nil {
		return "", err
	}
	return response, nil
}

// Stream ejecuta el pipeline en modo streaming: cada delta se entrega a
// onChunk en orden de llegada a traves de una cola acotada, mientras el
// acumulado se modera con ventana rodante; un hit corta el stream temprano.
// Devuelve el texto completo acumulado al terminar.
func (s *ChatService) Stream(ctx context.Context, session domain.Session, userMessage string, onChunk func(string)) (string, error) {
	turn, err := s.prepareTurn(ctx, session, userMessage)
	if err != nil {
		return "", err
	}
	if turn.rejected {
		if onChunk != nil {
			onChunk(inputRefusalTemplate)
		}
		return inputRefusalTemplate, nil
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// La cola acotada desacopla un sink lento del consumo del stream.
	queue := make(chan string, streamQueueSize)
	var sinkWG sync.WaitGroup
	sinkWG.Add(1)
	go func() {
		defer sinkWG.Done()
		for chunk := range queue {
			if onChunk != nil {
				onChunk(chunk)
			}
		}
	}()

	var window strings.Builder
	cutByModeration := false
	full, err := s.llmClient.Stream(streamCtx, turn.request, func(delta string) {
		if cutByModeration {
			return
		}
		// Moderacion rodante: lo ya emitido no se puede retirar, pero el
		// stream se corta en cuanto la ventana acumulada deja de ser segura.
		window.WriteString(delta)
		if result := s.safety.Classify(window.String()); !result.IsSafe {
			cutByModeration = true
			cancel()
			return
		}
		queue <- delta
	})
	close(queue)
	sinkWG.Wait()

	if cutByModeration {
		s.logger.Warn("stream cut by output moderation",
			zap.String("session_id", session.ID))
		return outputRefusalTemplate, nil
	}
	if err != nil {
		// Cancelado a mitad del stream: el parcial acumulado se descarta.
		return "", fmt.Errorf("llm stream: %w", err)
	}

	full = s.moderateOutput(full)
	if err := s.persistAssistantMessage(ctx, session, full); err != nil {
		return "", err
	}
	return full, nil
}

// turnState es el resultado de las etapas previas a la llamada al modelo.
type turnState struct {
	rejected bool
	request  llm.ChatRequest
}

// prepareTurn ejecuta SafetyCheckIn, MemoryLookup ∥ PartnerResolve,
// EmotionAdapt y PromptCompose, y deja lista la request del modelo.
func (s *ChatService) prepareTurn(ctx context.Context, session domain.Session, userMessage string) (turnState, error) {
	if s == nil || s.llmClient == nil || s.messageRepo == nil {
		return turnState{}, ErrChatServiceNotConfigured
	}

	// SafetyCheckIn: un rechazo termina el turno sin ejecutar nada mas.
	if result := s.safety.Classify(userMessage); !result.IsSafe {
		s.logger.Info("input rejected by safety filter",
			zap.String("session_id", session.ID),
			zap.String("reason", result.Reason))
		return turnState{rejected: true}, nil
	}

	history, err := s.messageRepo.ListBySessionID(ctx, session.ID)
	if err != nil {
		return turnState{}, fmt.Errorf("list messages: %w", err)
	}

	inbound := domain.Message{
		ID:        uuid.NewString(),
		UserID:    session.UserID,
		SessionID: session.ID,
		Sender:    domain.SenderUser,
		Text:      userMessage,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, inbound); err != nil {
		return turnState{}, fmt.Errorf("persist user message: %w", err)
	}
	messages := append(history, inbound)

	// MemoryLookup y PartnerResolve no dependen entre si: corren en
	// paralelo y el prompt se compone recien cuando ambos terminaron.
	var (
		wg       sync.WaitGroup
		memCtx   domain.MemoryContext
		persona  domain.PersonaRecord
		coach    *domain.CoachRecord
		partnerE error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		memCtx = s.memory.RetrieveOrEmpty(ctx, session.UserID, userMessage)
	}()
	go func() {
		defer wg.Done()
		persona, coach, partnerE = s.resolvePartner(ctx, session)
	}()
	wg.Wait()
	if partnerE != nil {
		return turnState{}, partnerE
	}

	// EmotionAdapt sobre el historial completo.
	emotional := s.tracker.Track(messages)
	params := s.paramGen.Generate(emotional)

	// PromptCompose.
	convCtx := s.strategist.BuildContext(messages, emotional)
	profile := s.resolver.Resolve(persona)
	prompt := s.builder.Build(PromptInput{
		Mode:      session.Mode,
		Profile:   profile,
		Behavior:  s.resolver.BehaviorFor(profile.MBTI),
		ConvCtx:   convCtx,
		Strategy:  s.strategist.DeriveStrategy(convCtx.TurnCount),
		Params:    params,
		Emotional: emotional,
		Memory:    memCtx,
		Scenario:  persona.Scenario,
		Mission:   persona.Mission,
		Coach:     coach,
	})

	return turnState{
		request: llm.ChatRequest{
			Messages:         []llm.ChatMessage{{Role: "user", Content: prompt}},
			Temperature:      params.Temperature,
			MaxTokens:        params.MaxTokens,
			FrequencyPenalty: params.FrequencyPenalty,
			PresencePenalty:  params.PresencePenalty,
		},
	}, nil
}

// resolvePartner trae el registro de persona o coach. La ausencia del
// registro degrada a un registro minimo, nunca corta el turno.
func (s *ChatService) resolvePartner(ctx context.Context, session domain.Session) (domain.PersonaRecord, *domain.CoachRecord, error) {
	if session.Mode == domain.ModeCoach {
		if s.coaches == nil {
			return minimalPersona(), minimalCoach(), nil
		}
		coach, err := s.coaches.GetByID(ctx, session.PartnerID)
		if err != nil {
			s.logger.Warn("coach lookup failed, using minimal record",
				zap.Error(err), zap.String("partner_id", session.PartnerID))
			return minimalPersona(), minimalCoach(), nil
		}
		return minimalPersona(), &coach, nil
	}

	if s.personas == nil {
		return minimalPersona(), nil, nil
	}
	persona, err := s.personas.GetByID(ctx, session.PartnerID)
	if err != nil {
		s.logger.Warn("persona lookup failed, using minimal record",
			zap.Error(err), zap.String("partner_id", session.PartnerID))
		return minimalPersona(), nil, nil
	}
	return persona, nil, nil
}

// moderateOutput aplica SafetyCheckOut reemplazando el texto por la
// plantilla de rechazo cuando el filtro lo marca.
func (s *ChatService) moderateOutput(response string) string {
	if result := s.safety.Classify(response); !result.IsSafe {
		s.logger.Warn("output replaced by safety filter", zap.String("reason", result.Reason))
		return outputRefusalTemplate
	}
	return response
}

func (s *ChatService) persistAssistantMessage(ctx context.Context, session domain.Session, text string) error {
	msg := domain.Message{
		ID:        uuid.NewString(),
		UserID:    session.UserID,
		SessionID: session.ID,
		Sender:    domain.SenderAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return fmt.Errorf("persist assistant message: %w", err)
	}
	return nil
}

// minimalPersona es el fallback cuando no hay registro de persona.
func minimalPersona() domain.PersonaRecord {
	return domain.PersonaRecord{
		Kind: domain.PersonaRecordRaw,
		Name: "대화 상대",
	}
}

// minimalCoach es el fallback instruccion-only cuando no hay registro de coach.
func minimalCoach() *domain.CoachRecord {
	return &domain.CoachRecord{
		Name:            "코치",
		Bio:             "대화 연습을 도와주는 코치",
		BaseInstruction: "상대의 대화 실력이 늘도록 구체적으로 도와줘라.",
	}
}
