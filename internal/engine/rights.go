package engine

import "strings"

// CastlingRights is a set of castling options still open to the players.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether every right in r2 is in r.
func (r CastlingRights) Has(r2 CastlingRights) bool {
	return r&r2 == r2 && r2 != 0
}

func castlingRight(c Color, kingside bool) CastlingRights {
	switch {
	case c == White && kingside:
		return WhiteKingside
	case c == White:
		return WhiteQueenside
	case kingside:
		return BlackKingside
	default:
		return BlackQueenside
	}
}

// String is the FEN castling field, "-" when empty.
func (r CastlingRights) String() string {
	var sb strings.Builder
	for _, x := range []struct {
		right CastlingRights
		sym   byte
	}{{WhiteKingside, 'K'}, {WhiteQueenside, 'Q'}, {BlackKingside, 'k'}, {BlackQueenside, 'q'}} {
		if r.Has(x.right) {
			sb.WriteByte(x.sym)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Rights is the part of a position that the squares alone do not show:
// which castles are still allowed and which square, if any, a pawn may
// capture en passant on this turn.
type Rights struct {
	Castling  CastlingRights
	EnPassant Position // zero value when no en passant capture is possible
}

// InitialRights holds for the initial board.
var InitialRights = Rights{Castling: AllCastling}

// After returns the rights that hold once move has been played on board.
// board is the position before the move.
func (r Rights) After(board Board, move Move) Rights {
	next := Rights{Castling: r.Castling}
	from, to := move.Source(), move.Target()
	piece, ok := board.PieceAt(from)
	if !ok {
		return next
	}

	if piece.Type == King {
		next.Castling &^= castlingRight(piece.Color, true) | castlingRight(piece.Color, false)
	}
	for _, corner := range []struct {
		pos   Position
		right CastlingRights
	}{
		{Position{Col: 1, Row: 1}, WhiteQueenside},
		{Position{Col: 8, Row: 1}, WhiteKingside},
		{Position{Col: 1, Row: 8}, BlackQueenside},
		{Position{Col: 8, Row: 8}, BlackKingside},
	} {
		if from == corner.pos || to == corner.pos {
			next.Castling &^= corner.right
		}
	}

	if piece.Type == Pawn && (to.Row-from.Row == 2 || to.Row-from.Row == -2) {
		next.EnPassant = Position{Col: from.Col, Row: (from.Row + to.Row) / 2}
	}
	return next
}
