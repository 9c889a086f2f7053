package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
)

// Snapshot is the denormalized game status kept next to the move log so
// reads do not have to replay. The log is always the source of truth.
type Snapshot struct {
	TurnColor  engine.Color      `json:"turn_color"`
	State      engine.State      `json:"state"`
	DrawReason engine.DrawReason `json:"draw_reason,omitempty"`
	MoveCount  int               `json:"move_count"`
}

// SnapshotOf captures the status of g.
func SnapshotOf(g *engine.Game) Snapshot {
	return Snapshot{
		TurnColor:  g.Turn(),
		State:      g.State(),
		DrawReason: g.DrawReason(),
		MoveCount:  g.MoveCount(),
	}
}

// InitialSnapshot is the snapshot of a game with no moves.
var InitialSnapshot = Snapshot{TurnColor: engine.White, State: engine.InProgress}

// GameSummary is the stored record of a game.
type GameSummary struct {
	ID         uuid.UUID `json:"id"`
	WhiteToken uuid.UUID `json:"white_token"`
	BlackToken uuid.UUID `json:"black_token"`
	CreatedAt  time.Time `json:"created_at"`
	Snapshot
}

// ColorOf returns the color token plays, or false when token belongs to
// neither side.
func (s GameSummary) ColorOf(token uuid.UUID) (engine.Color, bool) {
	switch token {
	case s.WhiteToken:
		return engine.White, true
	case s.BlackToken:
		return engine.Black, true
	}
	return engine.White, false
}

// TokenOf returns the access token for color c.
func (s GameSummary) TokenOf(c engine.Color) uuid.UUID {
	if c == engine.White {
		return s.WhiteToken
	}
	return s.BlackToken
}

// GameInfo pairs the stored record with the game rebuilt from its moves.
type GameInfo struct {
	Summary GameSummary
	Game    *engine.Game
}

type GameFilter struct {
	State    engine.State
	Limit    int
	Offset   int
	OrderDir string
}

// Page is one slice of a paginated listing. Number starts at 1.
type Page[T any] struct {
	Content    []T `json:"content"`
	Number     int `json:"number"`
	Size       int `json:"size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPage computes the page count for total items split by size.
func NewPage[T any](content []T, number, size, total int) Page[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Number: number, Size: size, TotalItems: total, TotalPages: pages}
}
