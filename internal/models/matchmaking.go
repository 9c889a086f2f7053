package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
)

type TicketStatus string

const (
	TicketWaiting   TicketStatus = "waiting"
	TicketMatched   TicketStatus = "matched"
	TicketCancelled TicketStatus = "cancelled"
)

// MatchTicket tracks one player's place in the matchmaking queue. Once
// matched it carries the game and the token for the player's color.
type MatchTicket struct {
	ID        uuid.UUID     `json:"id"`
	Player    string        `json:"player"`
	Status    TicketStatus  `json:"status"`
	GameID    *uuid.UUID    `json:"game_id,omitempty"`
	Color     *engine.Color `json:"color,omitempty"`
	Token     *uuid.UUID    `json:"token,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
