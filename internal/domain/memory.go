package domain

import (
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

// Clases de entradas de memoria de largo plazo.
const (
	MemoryKindFact    = "fact"
	MemoryKindSummary = "summary"
)

// MemoryEntry es un hecho del usuario o resumen de sesion persistido con
// su embedding para busqueda por similitud.
type MemoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Kind      string          `json:"kind"` // fact | summary
	Content   string          `json:"content"`
	Embedding pgvector.Vector `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
}

// MemoryContext es lo que el colaborador de memoria entrega al pipeline.
// El valor cero es el default documentado cuando la consulta falla.
type MemoryContext struct {
	UserFacts       []string `json:"user_facts"`
	RecentSummaries []string `json:"recent_summaries"`
}

// IsEmpty indica si no hay nada que inyectar en el prompt.
func (m MemoryContext) IsEmpty() bool {
	return len(m.UserFacts) == 0 && len(m.RecentSummaries) == 0
}

// UserContext agrupa lo que se sabe del usuario para el bloque de hechos.
type UserContext struct {
	DisplayName string   `json:"display_name,omitempty"`
	KnownFacts  []string `json:"known_facts,omitempty"`
}
