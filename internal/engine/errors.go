package engine

import "fmt"

// Reason classifies why a move was rejected.
type Reason string

const (
	WrongTurn                 Reason = "wrong_turn"
	NoPieceAtSource           Reason = "no_piece_at_source"
	OwnPieceBlocksDestination Reason = "own_piece_blocks_destination"
	ShapeViolation            Reason = "shape_violation"
	PathBlocked               Reason = "path_blocked"
	LeavesOwnKingInCheck      Reason = "leaves_own_king_in_check"
	InvalidPromotionTarget    Reason = "invalid_promotion_target"
	PromotionPieceTypeInvalid Reason = "promotion_piece_type_invalid"
	PromotionRequired         Reason = "promotion_required"
	CastlingNotAllowed        Reason = "castling_not_allowed"
	GameOver                  Reason = "game_over"
)

var reasonMessages = map[Reason]string{
	WrongTurn:                 "piece at source does not belong to the side to move",
	NoPieceAtSource:           "no piece at source square",
	OwnPieceBlocksDestination: "destination is occupied by a piece of the same color",
	ShapeViolation:            "piece cannot move that way",
	PathBlocked:               "path to destination is blocked",
	LeavesOwnKingInCheck:      "move leaves own king in check",
	InvalidPromotionTarget:    "only a pawn reaching its last rank can promote",
	PromotionPieceTypeInvalid: "pawn can only promote to knight, bishop, rook or queen",
	PromotionRequired:         "pawn reaching its last rank must promote",
	CastlingNotAllowed:        "castling is not allowed",
	GameOver:                  "game is over",
}

// Message is a human-readable description of r.
func (r Reason) Message() string {
	if m, ok := reasonMessages[r]; ok {
		return m
	}
	return string(r)
}

// MoveError is returned when a move is rejected by the rules.
type MoveError struct {
	Move   Move
	Reason Reason
}

func (e *MoveError) Error() string {
	if e.Move == nil {
		return fmt.Sprintf("illegal move: %s", e.Reason.Message())
	}
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason.Message())
}

// ReplayError reports a stored move log that does not replay. Logs written
// by this package never produce it; seeing one means the log was damaged.
type ReplayError struct {
	Index int
	Move  Move
	Cause error
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("move log corrupted at index %d (%v): %v", e.Index, e.Move, e.Cause)
}

func (e *ReplayError) Unwrap() error {
	return e.Cause
}
