package api

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/errors"
	"github.com/vytor/ivanachess/internal/models"
	"github.com/vytor/ivanachess/internal/notation"
)

const (
	moveTypeSimple    = "simple"
	moveTypePromotion = "promotion"
)

// moveDTO is both the body of a play request and an entry of a game's move
// list.
type moveDTO struct {
	Type      string `json:"type"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func newMoveDTO(m engine.Move) moveDTO {
	dto := moveDTO{Type: moveTypeSimple, From: m.Source().String(), To: m.Target().String()}
	if p, ok := m.(engine.PromotionMove); ok {
		dto.Type = moveTypePromotion
		dto.Promotion = strings.ToLower(p.Promotion.String())
	}
	return dto
}

// toMove validates the request shape. Rule violations are left to the
// engine.
func (d moveDTO) toMove() (engine.Move, error) {
	from, err := engine.ParsePosition(d.From)
	if err != nil {
		return nil, errors.NewValidationError("from", err.Error())
	}
	to, err := engine.ParsePosition(d.To)
	if err != nil {
		return nil, errors.NewValidationError("to", err.Error())
	}

	switch strings.ToLower(d.Type) {
	case moveTypeSimple, "":
		if d.Promotion != "" {
			return nil, errors.NewValidationError("promotion", "only allowed on promotion moves")
		}
		return engine.SimpleMove{From: from, To: to}, nil
	case moveTypePromotion:
		t, err := engine.ParsePieceType(d.Promotion)
		if err != nil {
			return nil, errors.NewValidationError("promotion", err.Error())
		}
		move, err := engine.NewPromotion(from, to, t)
		if err != nil {
			return nil, errors.NewInvalidMoveError(string(engine.PromotionPieceTypeInvalid), engine.PromotionPieceTypeInvalid.Message(), err)
		}
		return move, nil
	}
	return nil, errors.NewValidationError("type", "must be simple or promotion")
}

type pieceDTO struct {
	Type     string       `json:"type"`
	Color    engine.Color `json:"color"`
	Position string       `json:"position"`
}

// gameDTO is the full view of a game. Tokens are only filled in on
// creation: anyone holding a token can play for that color.
type gameDTO struct {
	ID         uuid.UUID         `json:"id"`
	WhiteToken *uuid.UUID        `json:"white_token,omitempty"`
	BlackToken *uuid.UUID        `json:"black_token,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	TurnColor  engine.Color      `json:"turn_color"`
	State      engine.State      `json:"state"`
	DrawReason engine.DrawReason `json:"draw_reason,omitempty"`
	FEN        string            `json:"fen"`
	Moves      []moveDTO         `json:"moves"`
	SAN        []string          `json:"san"`
	Pieces     []pieceDTO        `json:"pieces"`
	Opening    *notation.Opening `json:"opening,omitempty"`
}

func newGameDTO(info *models.GameInfo, withTokens bool) gameDTO {
	g := info.Game
	dto := gameDTO{
		ID:         info.Summary.ID,
		CreatedAt:  info.Summary.CreatedAt,
		TurnColor:  g.Turn(),
		State:      g.State(),
		DrawReason: g.DrawReason(),
		FEN:        g.FEN(),
		Moves:      make([]moveDTO, 0, g.MoveCount()),
		SAN:        []string{},
	}
	if withTokens {
		white, black := info.Summary.WhiteToken, info.Summary.BlackToken
		dto.WhiteToken, dto.BlackToken = &white, &black
	}
	for _, m := range g.Moves() {
		dto.Moves = append(dto.Moves, newMoveDTO(m))
	}
	occupants := g.Board().Occupants()
	dto.Pieces = make([]pieceDTO, 0, len(occupants))
	for _, pp := range occupants {
		dto.Pieces = append(dto.Pieces, pieceDTO{
			Type:     strings.ToLower(pp.Piece.Type.String()),
			Color:    pp.Piece.Color,
			Position: pp.Position.String(),
		})
	}
	return dto
}

// gameSummaryDTO is the list view: no board, no moves.
type gameSummaryDTO struct {
	ID         uuid.UUID         `json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	TurnColor  engine.Color      `json:"turn_color"`
	State      engine.State      `json:"state"`
	DrawReason engine.DrawReason `json:"draw_reason,omitempty"`
	MoveCount  int               `json:"move_count"`
}

func newGameSummaryDTO(s models.GameSummary) gameSummaryDTO {
	return gameSummaryDTO{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		TurnColor:  s.TurnColor,
		State:      s.State,
		DrawReason: s.DrawReason,
		MoveCount:  s.MoveCount,
	}
}

type matchRequest struct {
	Player string `json:"player"`
}
