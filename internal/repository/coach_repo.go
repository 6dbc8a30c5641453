package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"persona-llm/internal/domain"
)

type CoachRepository interface {
	GetByID(ctx context.Context, id string) (domain.CoachRecord, error)
}

type PgCoachRepository struct {
	pool *pgxpool.Pool
}

func NewPgCoachRepository(pool *pgxpool.Pool) *PgCoachRepository {
	return &PgCoachRepository{pool: pool}
}

func (r *PgCoachRepository) GetByID(ctx context.Context, id string) (domain.CoachRecord, error) {
	const query = `
		SELECT id, name, bio, specialty, base_instruction, citations, created_at
		FROM coaches
		WHERE id = $1
	`
	var coach domain.CoachRecord
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&coach.ID,
		&coach.Name,
		&coach.Bio,
		&coach.Specialty,
		&coach.BaseInstruction,
		&coach.Citations,
		&coach.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CoachRecord{}, err
	}
	return coach, err
}
