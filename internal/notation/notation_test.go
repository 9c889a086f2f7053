package notation_test

import (
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/notation"
)

func moves(s string) []engine.Move {
	var out []engine.Move
	for _, f := range strings.Fields(s) {
		out = append(out, engine.MustParseMove(f))
	}
	return out
}

func TestSAN(t *testing.T) {
	san, err := notation.SAN(moves("E2E4 E7E5 G1F3 B8C6 F1C4 G8F6 E1G1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6", "O-O"}, san)
}

func TestSAN_Promotion(t *testing.T) {
	san, err := notation.SAN(moves("E2E4 E7E5 F2F4 H7H6 F4E5 F7F6 E5F6 G7G5 F6F7 E8E7 F7G8Q"))
	require.NoError(t, err)
	require.Len(t, san, 11)
	assert.Equal(t, "fxg8=Q", strings.TrimRight(san[10], "+#"))
}

func TestReplay_AgreesOnCheckmate(t *testing.T) {
	line := moves("F2F3 E7E5 G2G4 D8H4")

	game, err := notation.Replay(line)
	require.NoError(t, err)
	assert.Equal(t, chess.Checkmate, game.Method())
	assert.Equal(t, chess.BlackWon, game.Outcome())

	ours, err := engine.Replay(line)
	require.NoError(t, err)
	assert.Equal(t, engine.Checkmate, ours.State())
	assert.Equal(t, "0-1", notation.Result(ours.State(), ours.Turn()))
}

func TestReplay_IllegalMove(t *testing.T) {
	_, err := notation.Replay(moves("E2E5"))
	assert.Error(t, err)
}

func TestPGN(t *testing.T) {
	out, err := notation.PGN(moves("E2E4 E7E5 G1F3"), map[string]string{
		"Event": "Casual game",
		"White": "alice",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "1. e4 e5 2. Nf3")

	back, err := notation.FromPGN(out)
	require.NoError(t, err)
	assert.Equal(t, "Casual game", back.Tags["Event"])
	assert.Equal(t, "alice", back.Tags["White"])
	assert.Equal(t, moves("E2E4 E7E5 G1F3"), back.Moves)
}

func TestFindOpening(t *testing.T) {
	found, err := notation.FindOpening(moves("E2E4 C7C5"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "B20", found.Code)
	assert.Contains(t, found.Title, "Sicilian")

	none, err := notation.FindOpening(nil)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestResult(t *testing.T) {
	assert.Equal(t, "*", notation.Result(engine.InProgress, engine.White))
	assert.Equal(t, "*", notation.Result(engine.Check, engine.Black))
	assert.Equal(t, "1-0", notation.Result(engine.Checkmate, engine.Black))
	assert.Equal(t, "1/2-1/2", notation.Result(engine.Stalemate, engine.White))
	assert.Equal(t, "1/2-1/2", notation.Result(engine.Draw, engine.White))
}
