package engine

import "fmt"

// Board maps every square to a piece or to nothing. It is a value: copies
// are independent and two boards are equal (==) iff every square matches.
type Board struct {
	squares [64]Piece // zero Piece means empty
}

// InitialBoard is the standard starting arrangement.
var InitialBoard = func() Board {
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	var b Board
	for col := MinIndex; col <= MaxIndex; col++ {
		b.set(Position{Col: col, Row: 1}, Piece{Type: back[col-1], Color: White})
		b.set(Position{Col: col, Row: 2}, Piece{Type: Pawn, Color: White})
		b.set(Position{Col: col, Row: 7}, Piece{Type: Pawn, Color: Black})
		b.set(Position{Col: col, Row: 8}, Piece{Type: back[col-1], Color: Black})
	}
	return b
}()

// NewBoard builds a board holding exactly the given pieces. A later entry for
// the same square replaces an earlier one.
func NewBoard(pieces ...PositionedPiece) (Board, error) {
	var b Board
	for _, pp := range pieces {
		if !pp.Position.IsValid() {
			return Board{}, fmt.Errorf("invalid position %v for %s", pp.Position, pp.Piece)
		}
		if pp.Piece.Type < Pawn || pp.Piece.Type > King {
			return Board{}, fmt.Errorf("invalid piece type at %s", pp.Position)
		}
		b.set(pp.Position, pp.Piece)
	}
	return b, nil
}

// PieceAt returns the piece on pos, or false when pos is empty or off-board.
func (b Board) PieceAt(pos Position) (Piece, bool) {
	if !pos.IsValid() {
		return Piece{}, false
	}
	p := b.squares[pos.index()]
	return p, p.Type != 0
}

func (b Board) isEmpty(pos Position) bool {
	_, ok := b.PieceAt(pos)
	return !ok
}

func (b *Board) set(pos Position, p Piece) {
	b.squares[pos.index()] = p
}

func (b *Board) clear(pos Position) {
	b.squares[pos.index()] = Piece{}
}

// Occupants lists every piece on the board in AllPositions order.
func (b Board) Occupants() []PositionedPiece {
	out := make([]PositionedPiece, 0, 32)
	for _, pos := range allPositions {
		if p, ok := b.PieceAt(pos); ok {
			out = append(out, PositionedPiece{Piece: p, Position: pos})
		}
	}
	return out
}

// Count returns the number of occupied squares.
func (b Board) Count() int {
	n := 0
	for _, p := range b.squares {
		if p.Type != 0 {
			n++
		}
	}
	return n
}

// kingPosition finds the king of color c.
func (b Board) kingPosition(c Color) (Position, bool) {
	king := Piece{Type: King, Color: c}
	for i, p := range b.squares {
		if p == king {
			return positionAt(i), true
		}
	}
	return Position{}, false
}

// ApplyMove returns the board after move. The receiver is left untouched.
//
// It is mechanical and assumes a structurally valid move: the source is
// occupied. A king moving two files is castling and brings the rook along;
// a pawn moving diagonally onto an empty square captures en passant.
// Legality is CheckMove's job.
func (b Board) ApplyMove(move Move) Board {
	next := b
	from, to := move.Source(), move.Target()
	piece, ok := b.PieceAt(from)
	if !ok {
		return next
	}

	switch m := move.(type) {
	case PromotionMove:
		next.clear(from)
		next.set(to, Piece{Type: m.Promotion, Color: piece.Color})
	case SimpleMove:
		next.clear(from)
		next.set(to, piece)
		switch piece.Type {
		case King:
			if d := to.Col - from.Col; d == 2 || d == -2 {
				rookFrom, rookTo := castlingRookSquares(from, d > 0)
				if rook, ok := b.PieceAt(rookFrom); ok {
					next.clear(rookFrom)
					next.set(rookTo, rook)
				}
			}
		case Pawn:
			if from.Col != to.Col && b.isEmpty(to) {
				next.clear(Position{Col: to.Col, Row: from.Row})
			}
		}
	}
	return next
}

// castlingRookSquares returns the rook's origin and destination for a castle
// by the king standing on kingFrom.
func castlingRookSquares(kingFrom Position, kingside bool) (Position, Position) {
	if kingside {
		return Position{Col: 8, Row: kingFrom.Row}, Position{Col: 6, Row: kingFrom.Row}
	}
	return Position{Col: 1, Row: kingFrom.Row}, Position{Col: 4, Row: kingFrom.Row}
}
