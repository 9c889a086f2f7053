package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/ivanachess/internal/engine"
)

// ErrSetupPosition is returned for PGN games that start from a FEN setup.
// Games always start from the initial position.
var ErrSetupPosition = errors.New("games starting from a set-up position are not supported")

// descriptiveTags are kept from an imported game. The result is derived
// from the moves, so it is not among them.
var descriptiveTags = []string{"Event", "Site", "Date", "Round", "White", "Black"}

// Imported is the main line of a PGN game with its descriptive tags.
type Imported struct {
	Moves []engine.Move
	Tags  map[string]string
}

// FromPGN reads the first game of pgn. Comments, variations and NAGs are
// dropped; tags other than the descriptive ones are ignored.
func FromPGN(pgn string) (*Imported, error) {
	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		return nil, fmt.Errorf("parse pgn: %w", err)
	}
	game := chess.NewGame(opt)
	if game.GetTagPair("FEN") != "" {
		return nil, ErrSetupPosition
	}

	played := game.Moves()
	imported := &Imported{
		Moves: make([]engine.Move, 0, len(played)),
		Tags:  map[string]string{},
	}
	for i, mv := range played {
		m, err := engine.ParseMove(moveUCI(mv))
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		imported.Moves = append(imported.Moves, m)
	}
	for _, k := range descriptiveTags {
		if v := game.GetTagPair(k); v != "" && v != "?" {
			imported.Tags[k] = v
		}
	}
	return imported, nil
}

// moveUCI converts a corentings move to UCI format (e.g., "e2e4", "e7e8q").
func moveUCI(move *chess.Move) string {
	uci := squareName(move.S1()) + squareName(move.S2())
	switch move.Promo() {
	case chess.Queen:
		uci += "q"
	case chess.Rook:
		uci += "r"
	case chess.Bishop:
		uci += "b"
	case chess.Knight:
		uci += "n"
	}
	return uci
}

func squareName(sq chess.Square) string {
	return fmt.Sprintf("%c%c", 'a'+rune(sq.File()), '1'+rune(sq.Rank()))
}
