package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"persona-llm/internal/domain"
)

// PersonaRepository entrega registros de persona. El kind (raw | enhanced)
// se resuelve aqui, una sola vez, segun si el registro trae estilo y
// expresiones propios; aguas abajo nadie vuelve a chequear la forma.
type PersonaRepository interface {
	GetByID(ctx context.Context, id string) (domain.PersonaRecord, error)
}

type PgPersonaRepository struct {
	pool *pgxpool.Pool
}

func NewPgPersonaRepository(pool *pgxpool.Pool) *PgPersonaRepository {
	return &PgPersonaRepository{pool: pool}
}

func (r *PgPersonaRepository) GetByID(ctx context.Context, id string) (domain.PersonaRecord, error) {
	const query = `
		SELECT id, name, age, mbti, job, interests, scenario, mission, speech_style, expressions, created_at
		FROM personas
		WHERE id = $1
	`

	var record domain.PersonaRecord
	var speechStyleJSON, expressionsJSON []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Name,
		&record.Age,
		&record.MBTI,
		&record.Job,
		&record.Interests,
		&record.Scenario,
		&record.Mission,
		&speechStyleJSON,
		&expressionsJSON,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PersonaRecord{}, err
	}
	if err != nil {
		return domain.PersonaRecord{}, err
	}

	record.Kind = domain.PersonaRecordRaw
	if len(speechStyleJSON) > 0 && len(expressionsJSON) > 0 {
		var style domain.SpeechStyle
		var expressions domain.ExpressionSet
		if json.Unmarshal(speechStyleJSON, &style) == nil && json.Unmarshal(expressionsJSON, &expressions) == nil {
			record.Kind = domain.PersonaRecordEnhanced
			record.SpeechStyle = &style
			record.Expressions = &expressions
		}
	}

	return record, nil
}
