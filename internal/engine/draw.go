package engine

// DrawReason says which rule ended a game in a draw.
type DrawReason string

const (
	NoDraw               DrawReason = ""
	InsufficientMaterial DrawReason = "insufficient_material"
	FiftyMoveRule        DrawReason = "fifty_move_rule"
	ThreefoldRepetition  DrawReason = "threefold_repetition"
)

// fiftyMoveLimit is counted in half-moves.
const fiftyMoveLimit = 100

// HasInsufficientMaterial reports positions where neither side can mate:
// K v K, K+B v K, K+N v K and K+B v K+B with bishops on the same color.
func HasInsufficientMaterial(b Board) bool {
	var minors []PositionedPiece
	for _, pp := range b.Occupants() {
		switch pp.Piece.Type {
		case King:
			continue
		case Pawn, Rook, Queen:
			return false
		}
		minors = append(minors, pp)
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, c := minors[0], minors[1]
		return a.Piece.Type == Bishop && c.Piece.Type == Bishop &&
			a.Piece.Color != c.Piece.Color &&
			isLightSquare(a.Position) == isLightSquare(c.Position)
	}
	return false
}

func isLightSquare(p Position) bool {
	return (p.Col+p.Row)%2 == 1
}
