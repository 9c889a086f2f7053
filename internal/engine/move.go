package engine

import (
	"fmt"
	"strings"
)

// Move is either a SimpleMove or a PromotionMove. The set is closed: only
// this package can add implementations.
type Move interface {
	Source() Position
	Target() Position
	// UCI is the lower-case long algebraic form, e.g. "e2e4" or "f7g8q".
	UCI() string
	String() string
	isMove()
}

// SimpleMove moves the piece on From to To. Castling and en passant are
// simple moves too; see Board.ApplyMove.
type SimpleMove struct {
	From Position
	To   Position
}

// PromotionMove moves a pawn to its last rank and replaces it with Promotion.
type PromotionMove struct {
	From      Position
	To        Position
	Promotion PieceType
}

func (m SimpleMove) Source() Position { return m.From }
func (m SimpleMove) Target() Position { return m.To }
func (SimpleMove) isMove()            {}

func (m SimpleMove) UCI() string {
	return strings.ToLower(m.From.String() + m.To.String())
}

func (m SimpleMove) String() string {
	return m.From.String() + "-" + m.To.String()
}

func (m PromotionMove) Source() Position { return m.From }
func (m PromotionMove) Target() Position { return m.To }
func (PromotionMove) isMove()            {}

func (m PromotionMove) UCI() string {
	return strings.ToLower(m.From.String()+m.To.String()) + strings.ToLower(string(m.Promotion.Letter()))
}

func (m PromotionMove) String() string {
	return fmt.Sprintf("%s-%s=%c", m.From, m.To, m.Promotion.Letter())
}

// NewSimpleMove parses both coordinates, e.g. NewSimpleMove("E2", "E4").
func NewSimpleMove(from, to string) (SimpleMove, error) {
	f, err := ParsePosition(from)
	if err != nil {
		return SimpleMove{}, err
	}
	t, err := ParsePosition(to)
	if err != nil {
		return SimpleMove{}, err
	}
	return SimpleMove{From: f, To: t}, nil
}

// NewPromotion builds a promotion, rejecting Pawn and King as the new piece.
func NewPromotion(from, to Position, promotion PieceType) (PromotionMove, error) {
	if !promotion.isPromotionTarget() {
		return PromotionMove{}, &MoveError{
			Move:   PromotionMove{From: from, To: to, Promotion: promotion},
			Reason: PromotionPieceTypeInvalid,
		}
	}
	return PromotionMove{From: from, To: to, Promotion: promotion}, nil
}

// ParseMove reads the compact form used on the command line and in logs:
// "E2E4", "e2e4", "E2-E4" or "F7G8Q" / "f7-g8=q" for promotions.
func ParseMove(s string) (Move, error) {
	clean := strings.NewReplacer("-", "", "=", "", " ", "").Replace(strings.TrimSpace(s))
	if len(clean) != 4 && len(clean) != 5 {
		return nil, &FormatError{Input: s}
	}
	from, err := ParsePosition(clean[0:2])
	if err != nil {
		return nil, err
	}
	to, err := ParsePosition(clean[2:4])
	if err != nil {
		return nil, err
	}
	if len(clean) == 4 {
		return SimpleMove{From: from, To: to}, nil
	}
	t, err := ParsePieceType(clean[4:])
	if err != nil {
		return nil, &FormatError{Input: s}
	}
	return NewPromotion(from, to, t)
}

// MustParseMove is ParseMove for literals.
func MustParseMove(s string) Move {
	m, err := ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}
