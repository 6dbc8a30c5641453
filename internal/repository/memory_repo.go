package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"persona-llm/internal/domain"
)

// MemoryRepository persiste hechos del usuario y resumenes de sesion con su
// embedding, y los recupera por similitud coseno.
type MemoryRepository interface {
	Create(ctx context.Context, entry domain.MemoryEntry) error
	Search(ctx context.Context, userID, kind string, queryEmbedding pgvector.Vector, k int) ([]domain.MemoryEntry, error)
}

type PgMemoryRepository struct {
	pool *pgxpool.Pool
}

func NewPgMemoryRepository(pool *pgxpool.Pool) *PgMemoryRepository {
	return &PgMemoryRepository{pool: pool}
}

func (r *PgMemoryRepository) Create(ctx context.Context, entry domain.MemoryEntry) error {
	const query = `
		INSERT INTO memory_entries (id, user_id, kind, content, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Kind,
		entry.Content,
		entry.Embedding,
		entry.CreatedAt,
	)
	return err
}

func (r *PgMemoryRepository) Search(ctx context.Context, userID, kind string, queryEmbedding pgvector.Vector, k int) ([]domain.MemoryEntry, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, user_id, kind, content, embedding, created_at
		FROM memory_entries
		WHERE user_id = $1 AND kind = $2
		ORDER BY embedding <=> $3
		LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, userID, kind, queryEmbedding, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMemoryEntries(rows)
}

func scanMemoryEntries(rows pgxRows) ([]domain.MemoryEntry, error) {
	var entries []domain.MemoryEntry
	for rows.Next() {
		var e domain.MemoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Kind,
			&e.Content,
			&e.Embedding,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
