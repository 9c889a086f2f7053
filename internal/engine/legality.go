package engine

type offset struct{ dc, dr int }

var (
	knightOffsets = []offset{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = []offset{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	rookDirs      = []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	bishopDirs    = []offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}
	queenDirs     = append(append([]offset{}, rookDirs...), bishopDirs...)
)

func slidingDirs(t PieceType) []offset {
	switch t {
	case Rook:
		return rookDirs
	case Bishop:
		return bishopDirs
	case Queen:
		return queenDirs
	}
	return nil
}

// attacks lists the squares the piece on from covers. Sliders stop at the
// first occupied square and include it whatever its color. Pawns cover both
// forward diagonals whether or not anything stands there. Castling and en
// passant never appear: this is the raw generation used to answer "is this
// square attacked", and it must not recurse into check-safety.
func attacks(b Board, from Position, p Piece) []Position {
	var out []Position
	switch p.Type {
	case Pawn:
		for _, dc := range []int{-1, 1} {
			if pos, ok := from.Relative(dc, p.Color.forward()); ok {
				out = append(out, pos)
			}
		}
	case Knight, King:
		offsets := knightOffsets
		if p.Type == King {
			offsets = kingOffsets
		}
		for _, o := range offsets {
			if pos, ok := from.Relative(o.dc, o.dr); ok {
				out = append(out, pos)
			}
		}
	default:
		for _, d := range slidingDirs(p.Type) {
			pos, ok := from.Relative(d.dc, d.dr)
			for ok {
				out = append(out, pos)
				if !b.isEmpty(pos) {
					break
				}
				pos, ok = pos.Relative(d.dc, d.dr)
			}
		}
	}
	return out
}

// IsAttacked reports whether any piece of color by covers pos on b.
func IsAttacked(b Board, pos Position, by Color) bool {
	for i, p := range b.squares {
		if p.Type == 0 || p.Color != by {
			continue
		}
		for _, target := range attacks(b, positionAt(i), p) {
			if target == pos {
				return true
			}
		}
	}
	return false
}

// InCheck reports whether the king of color c is attacked. A board without
// that king is never in check.
func InCheck(b Board, c Color) bool {
	king, ok := b.kingPosition(c)
	if !ok {
		return false
	}
	return IsAttacked(b, king, c.Opposite())
}

// reachable lists the destinations of the piece on from ignoring whether the
// move would leave its own king attacked. Castling destinations are added
// separately by castleTargets.
func reachable(b Board, from Position, p Piece, rights Rights) []Position {
	if p.Type != Pawn {
		var out []Position
		for _, pos := range attacks(b, from, p) {
			if other, ok := b.PieceAt(pos); ok && other.Color == p.Color {
				continue
			}
			out = append(out, pos)
		}
		return out
	}

	var out []Position
	fwd := p.Color.forward()
	if one, ok := from.Relative(0, fwd); ok && b.isEmpty(one) {
		out = append(out, one)
		if from.Row == pawnStartRow(p.Color) {
			if two, ok := from.Relative(0, 2*fwd); ok && b.isEmpty(two) {
				out = append(out, two)
			}
		}
	}
	for _, diag := range attacks(b, from, p) {
		if other, ok := b.PieceAt(diag); ok {
			if other.Color != p.Color {
				out = append(out, diag)
			}
		} else if rights.EnPassant.IsValid() && diag == rights.EnPassant {
			out = append(out, diag)
		}
	}
	return out
}

func pawnStartRow(c Color) int {
	if c == White {
		return 2
	}
	return 7
}

func lastRow(c Color) int {
	if c == White {
		return MaxIndex
	}
	return MinIndex
}

// isCastlingShape reports a king leaving its initial square two files sideways.
func isCastlingShape(p Piece, from, to Position) bool {
	home := Position{Col: 5, Row: p.Color.homeRow()}
	d := to.Col - from.Col
	return p.Type == King && from == home && to.Row == from.Row && (d == 2 || d == -2)
}

// canCastle checks every castling condition except the destination square
// being safe, which the common check-safety step covers.
func canCastle(b Board, c Color, kingside bool, rights Rights) bool {
	if !rights.Castling.Has(castlingRight(c, kingside)) {
		return false
	}
	row := c.homeRow()
	kingFrom := Position{Col: 5, Row: row}
	if king, ok := b.PieceAt(kingFrom); !ok || king != (Piece{Type: King, Color: c}) {
		return false
	}
	rookFrom, _ := castlingRookSquares(kingFrom, kingside)
	if rook, ok := b.PieceAt(rookFrom); !ok || rook != (Piece{Type: Rook, Color: c}) {
		return false
	}

	between := []int{2, 3, 4}
	passing := 4
	if kingside {
		between = []int{6, 7}
		passing = 6
	}
	for _, col := range between {
		if !b.isEmpty(Position{Col: col, Row: row}) {
			return false
		}
	}
	opponent := c.Opposite()
	if IsAttacked(b, kingFrom, opponent) {
		return false
	}
	return !IsAttacked(b, Position{Col: passing, Row: row}, opponent)
}

func castleTargets(b Board, c Color, rights Rights) []Position {
	var out []Position
	row := c.homeRow()
	if canCastle(b, c, true, rights) {
		out = append(out, Position{Col: 7, Row: row})
	}
	if canCastle(b, c, false, rights) {
		out = append(out, Position{Col: 3, Row: row})
	}
	return out
}

// shapeFits reports whether from->to is a movement pattern of p on an empty
// board. It only separates PathBlocked from ShapeViolation.
func shapeFits(p Piece, from, to Position) bool {
	dc, dr := to.Col-from.Col, to.Row-from.Row
	adc, adr := abs(dc), abs(dr)
	switch p.Type {
	case Pawn:
		fwd := p.Color.forward()
		return dc == 0 && (dr == fwd || (dr == 2*fwd && from.Row == pawnStartRow(p.Color)))
	case Knight:
		return adc*adr == 2
	case Bishop:
		return adc == adr
	case Rook:
		return dc == 0 || dr == 0
	case Queen:
		return adc == adr || dc == 0 || dr == 0
	case King:
		return adc <= 1 && adr <= 1
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func contains(positions []Position, pos Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}

// CheckMove decides whether turn may play move on board given rights. It
// returns nil for a legal move and a *MoveError otherwise.
func CheckMove(b Board, turn Color, rights Rights, move Move) error {
	reject := func(r Reason) error { return &MoveError{Move: move, Reason: r} }

	promotion, isPromotion := move.(PromotionMove)
	if isPromotion && !promotion.Promotion.isPromotionTarget() {
		return reject(PromotionPieceTypeInvalid)
	}

	from, to := move.Source(), move.Target()
	if !from.IsValid() || !to.IsValid() {
		return reject(ShapeViolation)
	}
	piece, ok := b.PieceAt(from)
	if !ok {
		return reject(NoPieceAtSource)
	}
	if piece.Color != turn {
		return reject(WrongTurn)
	}
	if from == to {
		return reject(ShapeViolation)
	}
	if other, ok := b.PieceAt(to); ok && other.Color == turn {
		return reject(OwnPieceBlocksDestination)
	}

	if isCastlingShape(piece, from, to) {
		if isPromotion {
			return reject(InvalidPromotionTarget)
		}
		if !canCastle(b, turn, to.Col > from.Col, rights) {
			return reject(CastlingNotAllowed)
		}
	} else if !contains(reachable(b, from, piece, rights), to) {
		if shapeFits(piece, from, to) {
			return reject(PathBlocked)
		}
		return reject(ShapeViolation)
	}

	reachesLastRow := piece.Type == Pawn && to.Row == lastRow(piece.Color)
	switch {
	case isPromotion && !reachesLastRow:
		return reject(InvalidPromotionTarget)
	case !isPromotion && reachesLastRow:
		return reject(PromotionRequired)
	}

	if InCheck(b.ApplyMove(move), turn) {
		return reject(LeavesOwnKingInCheck)
	}
	return nil
}

// IsLegal is CheckMove without history: no castling rights and no en
// passant target.
func IsLegal(b Board, turn Color, move Move) error {
	return CheckMove(b, turn, Rights{}, move)
}

// candidateMoves lists every move shape turn could try: raw destinations
// plus castles, with last-rank pawn moves expanded into four promotions.
func candidateMoves(b Board, turn Color, rights Rights, yield func(Move) bool) {
	for i, p := range b.squares {
		if p.Type == 0 || p.Color != turn {
			continue
		}
		from := positionAt(i)
		targets := reachable(b, from, p, rights)
		if p.Type == King {
			targets = append(targets, castleTargets(b, turn, rights)...)
		}
		for _, to := range targets {
			if p.Type == Pawn && to.Row == lastRow(turn) {
				for _, t := range []PieceType{Queen, Rook, Bishop, Knight} {
					if !yield(PromotionMove{From: from, To: to, Promotion: t}) {
						return
					}
				}
				continue
			}
			if !yield(SimpleMove{From: from, To: to}) {
				return
			}
		}
	}
}

// LegalMoves lists every move turn may legally play.
func LegalMoves(b Board, turn Color, rights Rights) []Move {
	var out []Move
	candidateMoves(b, turn, rights, func(m Move) bool {
		if CheckMove(b, turn, rights, m) == nil {
			out = append(out, m)
		}
		return true
	})
	return out
}

// HasLegalMove stops at the first legal move it finds.
func HasLegalMove(b Board, turn Color, rights Rights) bool {
	found := false
	candidateMoves(b, turn, rights, func(m Move) bool {
		if CheckMove(b, turn, rights, m) == nil {
			found = true
			return false
		}
		return true
	})
	return found
}
