package engine

// BoardSerializer turns a board into bytes for a text transport.
type BoardSerializer interface {
	Serialize(b Board) []byte
}

// AsciiSerializer draws the board as an 8x8 grid, rank 8 first. Each square
// is a piece symbol or '.', separated by single spaces, one rank per line.
type AsciiSerializer struct{}

// Serialize never fails.
func (AsciiSerializer) Serialize(b Board) []byte {
	out := make([]byte, 0, 8*16)
	for _, pos := range allPositions {
		if pos.Col > MinIndex {
			out = append(out, ' ')
		}
		if p, ok := b.PieceAt(pos); ok {
			out = append(out, p.Symbol())
		} else {
			out = append(out, '.')
		}
		if pos.Col == MaxIndex {
			out = append(out, '\n')
		}
	}
	return out
}
