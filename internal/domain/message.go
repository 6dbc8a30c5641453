package domain

import "time"

// Roles validos de un mensaje dentro de la conversacion.
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
	SenderSystem    = "system"
)

type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// IsUser indica si el mensaje fue escrito por el usuario.
func (m Message) IsUser() bool { return m.Sender == SenderUser }
