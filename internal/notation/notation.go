// Package notation renders engine move logs in the formats other chess
// software reads: PGN, SAN and ECO opening names.
package notation

import (
	"fmt"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
	"github.com/vytor/ivanachess/internal/engine"
)

// Opening is an ECO classification.
type Opening struct {
	Code  string `json:"eco"`
	Title string `json:"name"`
}

var (
	bookOnce sync.Once
	book     *opening.BookECO
)

func ecoBook() *opening.BookECO {
	bookOnce.Do(func() {
		book = opening.NewBookECO()
	})
	return book
}

// Replay plays moves through a corentings game. An error means the two rule
// implementations disagree about a move.
func Replay(moves []engine.Move) (*chess.Game, error) {
	game := chess.NewGame()
	uci := chess.UCINotation{}
	for i, m := range moves {
		mv, err := uci.Decode(game.Position(), m.UCI())
		if err != nil {
			return nil, fmt.Errorf("decode move %d (%s): %w", i, m.UCI(), err)
		}
		if err := game.Move(mv, nil); err != nil {
			return nil, fmt.Errorf("apply move %d (%s): %w", i, m.UCI(), err)
		}
	}
	return game, nil
}

// PGN renders moves with the given tag pairs.
func PGN(moves []engine.Move, tags map[string]string) (string, error) {
	game, err := Replay(moves)
	if err != nil {
		return "", err
	}
	for k, v := range tags {
		game.AddTagPair(k, v)
	}
	return game.String(), nil
}

// SAN lists moves in standard algebraic notation ("e4", "Nf3", "fxg8=Q").
func SAN(moves []engine.Move) ([]string, error) {
	game, err := Replay(moves)
	if err != nil {
		return nil, err
	}
	positions := game.Positions()
	san := chess.AlgebraicNotation{}
	out := make([]string, 0, len(moves))
	for i, mv := range game.Moves() {
		out = append(out, san.Encode(positions[i], mv))
	}
	return out, nil
}

// FindOpening names the deepest ECO opening the moves follow. It returns
// nil when the line matches no book entry.
func FindOpening(moves []engine.Move) (*Opening, error) {
	if len(moves) == 0 {
		return nil, nil
	}
	game, err := Replay(moves)
	if err != nil {
		return nil, err
	}
	found := ecoBook().Find(game.Moves())
	if found == nil {
		return nil, nil
	}
	return &Opening{Code: found.Code(), Title: found.Title()}, nil
}

// Result is the PGN result token for a finished game, "*" otherwise.
// The loser of a checkmate is the side to move.
func Result(state engine.State, turn engine.Color) string {
	switch state {
	case engine.Checkmate:
		if turn == engine.White {
			return "0-1"
		}
		return "1-0"
	case engine.Stalemate, engine.Draw:
		return "1/2-1/2"
	}
	return "*"
}
