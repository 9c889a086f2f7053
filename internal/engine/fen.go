package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialFEN is the FEN of the initial board with White to move.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// placement renders the piece placement field of a FEN.
func placement(b Board) string {
	var sb strings.Builder
	for row := MaxIndex; row >= MinIndex; row-- {
		empty := 0
		for col := MinIndex; col <= MaxIndex; col++ {
			p, ok := b.PieceAt(Position{Col: col, Row: row})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > MinIndex {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func turnField(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

func enPassantField(r Rights) string {
	if !r.EnPassant.IsValid() {
		return "-"
	}
	return strings.ToLower(r.EnPassant.String())
}

// FEN renders a position in Forsyth-Edwards Notation. The en passant field
// names the square skipped by the last double pawn push whether or not an
// enemy pawn could capture there, as the original FEN standard does. Some
// tools only write it when a capture is possible.
func FEN(b Board, turn Color, rights Rights, halfmoveClock, fullmove int) string {
	return fmt.Sprintf("%s %s %s %s %d %d",
		placement(b), turnField(turn), rights.Castling, enPassantField(rights), halfmoveClock, fullmove)
}

// repetitionKey identifies a position for threefold repetition: placement,
// side to move, castling rights and en passant target.
func repetitionKey(b Board, turn Color, rights Rights) string {
	return placement(b) + " " + turnField(turn) + " " + rights.Castling.String() + " " + enPassantField(rights)
}

// ParseFEN reads the first four FEN fields. Clocks, when present, are
// returned as well; missing clocks default to 0 and 1.
func ParseFEN(s string) (Board, Color, Rights, int, int, error) {
	fields := strings.Fields(s)
	if len(fields) < 4 {
		return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: expected at least 4 fields", s)
	}

	var b Board
	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: expected 8 ranks", s)
	}
	for i, rowText := range rows {
		row := MaxIndex - i
		col := MinIndex
		for j := 0; j < len(rowText); j++ {
			ch := rowText[j]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			p, ok := PieceFromSymbol(ch)
			if !ok || col > MaxIndex {
				return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: bad rank %q", s, rowText)
			}
			b.set(Position{Col: col, Row: row}, p)
			col++
		}
		if col != MaxIndex+1 {
			return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: rank %q does not have 8 files", s, rowText)
		}
	}

	var turn Color
	switch fields[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: bad side to move", s)
	}

	var rights Rights
	if fields[2] != "-" {
		for _, ch := range fields[2] {
			switch ch {
			case 'K':
				rights.Castling |= WhiteKingside
			case 'Q':
				rights.Castling |= WhiteQueenside
			case 'k':
				rights.Castling |= BlackKingside
			case 'q':
				rights.Castling |= BlackQueenside
			default:
				return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: bad castling field", s)
			}
		}
	}
	if fields[3] != "-" {
		ep, err := ParsePosition(fields[3])
		if err != nil {
			return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: %w", s, err)
		}
		rights.EnPassant = ep
	}

	halfmove, fullmove := 0, 1
	if len(fields) >= 6 {
		var err error
		if halfmove, err = strconv.Atoi(fields[4]); err != nil {
			return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: bad halfmove clock", s)
		}
		if fullmove, err = strconv.Atoi(fields[5]); err != nil {
			return Board{}, White, Rights{}, 0, 0, fmt.Errorf("fen %q: bad fullmove number", s)
		}
	}
	return b, turn, rights, halfmove, fullmove, nil
}
