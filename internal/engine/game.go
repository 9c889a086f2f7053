package engine

import "fmt"

// State is the status of a game from the point of view of the side to move.
type State string

const (
	InProgress State = "in_progress"
	Check      State = "check"
	Checkmate  State = "checkmate"
	Stalemate  State = "stalemate"
	Draw       State = "draw"
)

// IsTerminal reports whether no further move may be played.
func (s State) IsTerminal() bool {
	return s == Checkmate || s == Stalemate || s == Draw
}

// ParseState converts the stored form of a state back.
func ParseState(s string) (State, error) {
	switch st := State(s); st {
	case InProgress, Check, Checkmate, Stalemate, Draw:
		return st, nil
	}
	return "", fmt.Errorf("unknown game state %q", s)
}

// DeriveState maps (side to move in check, side to move has a legal move)
// to a state. Draw rules are applied on top by Game.
func DeriveState(inCheck, hasLegalMove bool) State {
	switch {
	case inCheck && hasLegalMove:
		return Check
	case inCheck:
		return Checkmate
	case hasLegalMove:
		return InProgress
	default:
		return Stalemate
	}
}

// Game is a position reached by replaying a move log from the initial board.
// A Game is never modified once returned; Play builds a new one.
type Game struct {
	moves         []Move
	board         Board
	turn          Color
	rights        Rights
	halfmoveClock int
	fullmove      int
	state         State
	drawReason    DrawReason
	seen          map[string]int
}

// NewGame returns the initial game: initial board, White to move.
func NewGame() *Game {
	g := &Game{
		board:    InitialBoard,
		turn:     White,
		rights:   InitialRights,
		fullmove: 1,
		state:    InProgress,
		seen:     make(map[string]int),
	}
	g.seen[repetitionKey(g.board, g.turn, g.rights)] = 1
	return g
}

// Replay rebuilds a game from an ordered move log. A move the rules reject
// means the log is corrupt and is reported as *ReplayError.
func Replay(moves []Move) (*Game, error) {
	g := NewGame()
	g.moves = make([]Move, 0, len(moves))
	for i, m := range moves {
		if err := g.advance(m); err != nil {
			return nil, &ReplayError{Index: i, Move: m, Cause: err}
		}
	}
	return g, nil
}

// Play validates move against the current position and returns the game
// that follows it. The receiver is left untouched.
func (g *Game) Play(move Move) (*Game, error) {
	next := g.clone()
	if err := next.advance(move); err != nil {
		return nil, err
	}
	return next, nil
}

func (g *Game) clone() *Game {
	c := *g
	c.moves = make([]Move, len(g.moves), len(g.moves)+1)
	copy(c.moves, g.moves)
	c.seen = make(map[string]int, len(g.seen)+1)
	for k, v := range g.seen {
		c.seen[k] = v
	}
	return &c
}

// advance applies move in place. Only used on games not yet handed out.
func (g *Game) advance(move Move) error {
	if move == nil {
		return &MoveError{Reason: NoPieceAtSource}
	}
	if g.state.IsTerminal() {
		return &MoveError{Move: move, Reason: GameOver}
	}
	if err := CheckMove(g.board, g.turn, g.rights, move); err != nil {
		return err
	}

	piece, _ := g.board.PieceAt(move.Source())
	capture := !g.board.isEmpty(move.Target()) ||
		(piece.Type == Pawn && move.Source().Col != move.Target().Col)

	g.rights = g.rights.After(g.board, move)
	g.board = g.board.ApplyMove(move)
	g.moves = append(g.moves, move)
	if piece.Type == Pawn || capture {
		g.halfmoveClock = 0
	} else {
		g.halfmoveClock++
	}
	if g.turn == Black {
		g.fullmove++
	}
	g.turn = g.turn.Opposite()

	key := repetitionKey(g.board, g.turn, g.rights)
	g.seen[key]++

	g.state = DeriveState(InCheck(g.board, g.turn), HasLegalMove(g.board, g.turn, g.rights))
	g.drawReason = NoDraw
	if !g.state.IsTerminal() {
		switch {
		case HasInsufficientMaterial(g.board):
			g.drawReason = InsufficientMaterial
		case g.halfmoveClock >= fiftyMoveLimit:
			g.drawReason = FiftyMoveRule
		case g.seen[key] >= 3:
			g.drawReason = ThreefoldRepetition
		}
		if g.drawReason != NoDraw {
			g.state = Draw
		}
	}
	return nil
}

// Board returns the current board.
func (g *Game) Board() Board { return g.board }

// Turn returns the color to move.
func (g *Game) Turn() Color { return g.turn }

// State returns the current game state.
func (g *Game) State() State { return g.state }

// DrawReason is set only when State is Draw.
func (g *Game) DrawReason() DrawReason { return g.drawReason }

// Rights returns castling rights and the en passant target.
func (g *Game) Rights() Rights { return g.rights }

// Moves returns a copy of the move log.
func (g *Game) Moves() []Move {
	out := make([]Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// MoveCount is the length of the move log.
func (g *Game) MoveCount() int { return len(g.moves) }

// HalfmoveClock counts half-moves since the last pawn move or capture.
func (g *Game) HalfmoveClock() int { return g.halfmoveClock }

// FEN renders the current position.
func (g *Game) FEN() string {
	return FEN(g.board, g.turn, g.rights, g.halfmoveClock, g.fullmove)
}

// LegalMoves lists the moves the side to move may play. Empty once the game
// is over.
func (g *Game) LegalMoves() []Move {
	if g.state.IsTerminal() {
		return nil
	}
	return LegalMoves(g.board, g.turn, g.rights)
}
