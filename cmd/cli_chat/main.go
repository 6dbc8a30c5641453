package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"persona-llm/internal/config"
	"persona-llm/internal/db"
	"persona-llm/internal/domain"
	"persona-llm/internal/llm"
	"persona-llm/internal/repository"
	"persona-llm/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	personaRepo := repository.NewPgPersonaRepository(pool)
	coachRepo := repository.NewPgCoachRepository(pool)
	memoryRepo := repository.NewPgMemoryRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger).
		WithEmbeddingModel(cfg.LLMEmbeddingModel)
	memorySvc := service.NewMemoryService(logger, llmClient, memoryRepo)
	chatSvc := service.NewChatService(logger, llmClient, messageRepo, personaRepo, coachRepo, memorySvc)

	user, err := ensureUser(ctx, pool, userRepo, "cli_test@example.com")
	if err != nil {
		log.Fatal(err)
	}

	for {
		fmt.Println("===== Personas disponibles =====")
		personas, err := listPersonas(ctx, pool)
		if err != nil {
			log.Fatalf("listar personas: %v", err)
		}
		if len(personas) == 0 {
			log.Fatal("no hay personas cargadas en la base")
		}

		for i, p := range personas {
			fmt.Printf("[%d] %s (%s)\n", i+1, p.Name, p.MBTI)
		}
		fmt.Println("[S] Salir")
		fmt.Print("Selecciona una persona: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		if strings.EqualFold(choice, "S") {
			return
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(personas) {
			fmt.Println("Seleccion invalida.")
			continue
		}
		selected := personas[idx-1]

		mode := readMode(reader)
		if err := chatFlow(ctx, reader, selected, user, mode, sessionRepo, chatSvc); err != nil {
			log.Printf("error en chat: %v", err)
		}
	}
}

func readMode(reader *bufio.Reader) domain.ChatMode {
	fmt.Println("[1] Chat casual")
	fmt.Println("[2] Roleplay")
	fmt.Println("[3] Coach")
	fmt.Print("Selecciona un modo (default 1): ")
	line, _ := reader.ReadString('\n')
	switch strings.TrimSpace(line) {
	case "2":
		return domain.ModeRoleplay
	case "3":
		return domain.ModeCoach
	default:
		return domain.ModeChat
	}
}

func chatFlow(
	ctx context.Context,
	reader *bufio.Reader,
	persona domain.PersonaRecord,
	user domain.User,
	mode domain.ChatMode,
	sessionRepo repository.SessionRepository,
	chatSvc *service.ChatService,
) error {
	session := domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		PartnerID: persona.ID,
		Mode:      mode,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return fmt.Errorf("crear sesion: %w", err)
	}

	fmt.Printf("---- Chat con %s (escribe 'salir' para terminar) ----\n", persona.Name)
	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			fmt.Println("Saliendo del chat...")
			return nil
		}

		fmt.Printf("%s > ", persona.Name)
		_, err = chatSvc.Stream(ctx, session, text, func(delta string) {
			fmt.Print(delta)
		})
		fmt.Println()
		if err != nil {
			fmt.Printf("error generando respuesta: %v\n", err)
		}
	}
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, repo repository.UserRepository, email string) (domain.User, error) {
	const query = `
		SELECT id, email, display_name, created_at
		FROM users
		WHERE email = $1
	`

	var u domain.User
	err := pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.DisplayName, &u.CreatedAt)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}

	u = domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func listPersonas(ctx context.Context, pool *pgxpool.Pool) ([]domain.PersonaRecord, error) {
	const query = `
		SELECT id, name, mbti, created_at
		FROM personas
		ORDER BY created_at DESC
	`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personas []domain.PersonaRecord
	for rows.Next() {
		var p domain.PersonaRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.MBTI, &p.CreatedAt); err != nil {
			return nil, err
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}
