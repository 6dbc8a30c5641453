package domain

import "time"

// Session es una conversacion con una persona o un coach concreto.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PartnerID string    `json:"partner_id"`
	Mode      ChatMode  `json:"mode"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
