package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	b, turn, rights, halfmove, fullmove, err := ParseFEN(fen)
	require.NoError(t, err)
	g := &Game{
		board:         b,
		turn:          turn,
		rights:        rights,
		halfmoveClock: halfmove,
		fullmove:      fullmove,
		seen:          make(map[string]int),
	}
	g.state = DeriveState(InCheck(b, turn), HasLegalMove(b, turn, rights))
	g.seen[repetitionKey(b, turn, rights)] = 1
	return g
}

func TestGame_FiftyMoveRule(t *testing.T) {
	g := gameFromFEN(t, "4k3/8/8/8/8/8/4P3/R3K3 w - - 99 80")

	next, err := g.Play(SimpleMove{From: MustParsePosition("A1"), To: MustParsePosition("A2")})
	require.NoError(t, err)
	assert.Equal(t, Draw, next.State())
	assert.Equal(t, FiftyMoveRule, next.DrawReason())

	reset, err := g.Play(SimpleMove{From: MustParsePosition("E2"), To: MustParsePosition("E4")})
	require.NoError(t, err)
	assert.Equal(t, InProgress, reset.State())
	assert.Equal(t, 0, reset.HalfmoveClock())
}

func TestGame_CheckmateBeatsFiftyMoveRule(t *testing.T) {
	g := gameFromFEN(t, "k7/8/1K6/8/8/8/8/7R w - - 99 80")

	next, err := g.Play(SimpleMove{From: MustParsePosition("H1"), To: MustParsePosition("H8")})
	require.NoError(t, err)
	assert.Equal(t, Checkmate, next.State())
	assert.Equal(t, NoDraw, next.DrawReason())
}

func TestGame_InsufficientMaterialAfterCapture(t *testing.T) {
	g := gameFromFEN(t, "4k3/8/8/8/8/8/3r4/3QK3 w - - 0 1")

	next, err := g.Play(SimpleMove{From: MustParsePosition("D1"), To: MustParsePosition("D2")})
	require.NoError(t, err)
	assert.Equal(t, InProgress, next.State(), "queen still on board")

	g = gameFromFEN(t, "4k3/8/8/8/8/8/3r4/3BK3 w - - 0 1")
	next, err = g.Play(SimpleMove{From: MustParsePosition("E1"), To: MustParsePosition("D2")})
	require.NoError(t, err)
	assert.Equal(t, Draw, next.State())
	assert.Equal(t, InsufficientMaterial, next.DrawReason())
}

func TestFEN_RoundTrip(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 3",
	}
	for _, fen := range fens {
		b, turn, rights, half, full, err := ParseFEN(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, FEN(b, turn, rights, half, full))
	}
}
