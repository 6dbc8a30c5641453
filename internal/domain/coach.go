package domain

import "time"

// CoachRecord es el registro de un coach conversacional.
// A diferencia de una persona, un coach responde con una instruccion de
// sistema sintetizada a partir de su bio y su instruccion base.
type CoachRecord struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Bio             string    `json:"bio"`
	Specialty       string    `json:"specialty"`
	BaseInstruction string    `json:"base_instruction"`
	Citations       []string  `json:"citations,omitempty"` // bibliografia fija que puede citar
	CreatedAt       time.Time `json:"created_at"`
}

// SystemInstruction sintetiza la instruccion de sistema del coach.
func (c CoachRecord) SystemInstruction() string {
	return "You are " + c.Name + ", an AI coach. " + c.Bio + "\n" + c.BaseInstruction
}
