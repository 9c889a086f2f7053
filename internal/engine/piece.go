package engine

import (
	"fmt"
	"strings"
)

// Color of a piece or of the side to move.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row direction pawns of c travel in.
func (c Color) forward() int {
	if c == White {
		return 1
	}
	return -1
}

// homeRow is the back rank of c.
func (c Color) homeRow() int {
	if c == White {
		return 1
	}
	return 8
}

// MarshalText encodes c as "white" or "black".
func (c Color) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText is the inverse of MarshalText.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor accepts "white" or "black" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown color %q", s)
}

// PieceType is the kind of a piece.
type PieceType int

const (
	Pawn PieceType = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = map[PieceType]string{
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

var pieceTypeLetters = map[PieceType]byte{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

func (t PieceType) String() string {
	if name, ok := pieceTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Letter is the upper-case English letter of t.
func (t PieceType) Letter() byte {
	if l, ok := pieceTypeLetters[t]; ok {
		return l
	}
	return '?'
}

// ParsePieceType accepts full names ("queen") or letters ("Q"), in any case.
func ParsePieceType(s string) (PieceType, error) {
	s = strings.TrimSpace(s)
	for t, name := range pieceTypeNames {
		if strings.EqualFold(name, s) {
			return t, nil
		}
	}
	if len(s) == 1 {
		for t, l := range pieceTypeLetters {
			if strings.EqualFold(string(l), s) {
				return t, nil
			}
		}
	}
	return 0, fmt.Errorf("unknown piece type %q", s)
}

// isPromotionTarget reports whether a pawn may promote to t.
func (t PieceType) isPromotionTarget() bool {
	return t == Knight || t == Bishop || t == Rook || t == Queen
}

// Piece is a (type, color) value. Two pieces of the same type and color are equal.
type Piece struct {
	Type  PieceType
	Color Color
}

func (p Piece) String() string {
	return fmt.Sprintf("%s of %s", p.Type, p.Color)
}

// Symbol is the FEN letter: upper-case for White, lower-case for Black.
func (p Piece) Symbol() byte {
	l := p.Type.Letter()
	if p.Color == Black {
		return l + ('a' - 'A')
	}
	return l
}

// PieceFromSymbol is the inverse of Symbol.
func PieceFromSymbol(b byte) (Piece, bool) {
	color := White
	upper := b
	if b >= 'a' && b <= 'z' {
		color = Black
		upper = b - ('a' - 'A')
	}
	for t, l := range pieceTypeLetters {
		if l == upper {
			return Piece{Type: t, Color: color}, true
		}
	}
	return Piece{}, false
}

// PositionedPiece binds a piece to the square it stands on.
type PositionedPiece struct {
	Piece    Piece
	Position Position
}

func (pp PositionedPiece) String() string {
	return fmt.Sprintf("%s=%s", pp.Position, pp.Piece)
}
