package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/engine"
)

func mustFEN(t *testing.T, fen string) (engine.Board, engine.Color, engine.Rights) {
	t.Helper()
	b, turn, rights, _, _, err := engine.ParseFEN(fen)
	require.NoError(t, err)
	return b, turn, rights
}

func reasonOf(t *testing.T, err error) engine.Reason {
	t.Helper()
	var moveErr *engine.MoveError
	require.True(t, errors.As(err, &moveErr), "expected MoveError, got %v", err)
	return moveErr.Reason
}

func TestIsLegal_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		move   string
		reason engine.Reason
	}{
		{"wrong turn", engine.InitialFEN, "E7E5", engine.WrongTurn},
		{"empty source", engine.InitialFEN, "E4E5", engine.NoPieceAtSource},
		{"own piece on target", engine.InitialFEN, "A1A2", engine.OwnPieceBlocksDestination},
		{"knight shape", engine.InitialFEN, "G1G3", engine.ShapeViolation},
		{"pawn sideways", "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", "E2D2", engine.ShapeViolation},
		{"pawn diagonal without capture", engine.InitialFEN, "E2D3", engine.ShapeViolation},
		{"bishop through pawn", engine.InitialFEN, "F1C4", engine.PathBlocked},
		{"pawn double step blocked", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "E2E4", engine.PathBlocked},
		{"pawn cannot capture forward", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "E2E3", engine.PathBlocked},
		{"pinned knight", "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1", "E2C3", engine.LeavesOwnKingInCheck},
		{"king into attack", "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1", "E1E2", engine.LeavesOwnKingInCheck},
		{"ignores check", "4k3/4r3/8/8/8/8/P7/4K3 w - - 0 1", "A2A3", engine.LeavesOwnKingInCheck},
		{"simple move to last rank", "8/4P3/8/8/8/8/8/k3K3 w - - 0 1", "E7E8", engine.PromotionRequired},
		{"promotion off last rank", engine.InitialFEN, "E2E4Q", engine.InvalidPromotionTarget},
		{"promotion of a knight", "6n1/8/5N2/8/8/8/8/k3K3 w - - 0 1", "F6G8Q", engine.InvalidPromotionTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, turn, _ := mustFEN(t, tt.fen)
			err := engine.IsLegal(b, turn, engine.MustParseMove(tt.move))
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestIsLegal_PromotionPieceTypeInvalid(t *testing.T) {
	b, turn, _ := mustFEN(t, "8/5P2/8/8/8/8/8/k3K3 w - - 0 1")
	from, to := engine.MustParsePosition("F7"), engine.MustParsePosition("F8")

	for _, pt := range []engine.PieceType{engine.Pawn, engine.King} {
		err := engine.IsLegal(b, turn, engine.PromotionMove{From: from, To: to, Promotion: pt})
		assert.Equal(t, engine.PromotionPieceTypeInvalid, reasonOf(t, err))
	}
	for _, pt := range []engine.PieceType{engine.Queen, engine.Rook, engine.Bishop, engine.Knight} {
		assert.NoError(t, engine.IsLegal(b, turn, engine.PromotionMove{From: from, To: to, Promotion: pt}))
	}
}

func TestIsLegal_Accepts(t *testing.T) {
	b := engine.InitialBoard
	for _, m := range []string{"E2E4", "E2E3", "G1F3", "B1C3"} {
		assert.NoError(t, engine.IsLegal(b, engine.White, engine.MustParseMove(m)), m)
	}
}

func TestCheckMove_Castling(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		move   string
		reason engine.Reason
	}{
		{"kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "E1G1", ""},
		{"queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "E1C1", ""},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "E8G8", ""},
		{"right lost", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", "E1G1", engine.CastlingNotAllowed},
		{"through check", "r3kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", "E1G1", engine.CastlingNotAllowed},
		{"out of check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQ - 0 1", "E1C1", engine.CastlingNotAllowed},
		{"into check", "r3k1r1/8/8/8/8/8/8/R3K2R w KQ - 0 1", "E1G1", engine.LeavesOwnKingInCheck},
		{"piece between", "r3k2r/8/8/8/8/8/8/RN2K2R w KQ - 0 1", "E1C1", engine.CastlingNotAllowed},
		{"queenside b-file attack is fine", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "E1C1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, turn, rights := mustFEN(t, tt.fen)
			err := engine.CheckMove(b, turn, rights, engine.MustParseMove(tt.move))
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestCheckMove_CastlingMovesRook(t *testing.T) {
	b, _, _ := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	after := b.ApplyMove(engine.MustParseMove("E1G1"))
	rook, ok := after.PieceAt(engine.MustParsePosition("F1"))
	require.True(t, ok)
	assert.Equal(t, engine.Piece{Type: engine.Rook, Color: engine.White}, rook)
	_, ok = after.PieceAt(engine.MustParsePosition("H1"))
	assert.False(t, ok)

	after = b.ApplyMove(engine.MustParseMove("E1C1"))
	_, ok = after.PieceAt(engine.MustParsePosition("D1"))
	assert.True(t, ok)
	_, ok = after.PieceAt(engine.MustParsePosition("A1"))
	assert.False(t, ok)
}

func TestCheckMove_EnPassant(t *testing.T) {
	b, turn, rights := mustFEN(t, "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	move := engine.MustParseMove("E5D6")

	require.NoError(t, engine.CheckMove(b, turn, rights, move))
	assert.Equal(t, engine.ShapeViolation, reasonOf(t, engine.IsLegal(b, turn, move)), "no en passant without history")

	after := b.ApplyMove(move)
	_, ok := after.PieceAt(engine.MustParsePosition("D5"))
	assert.False(t, ok, "captured pawn must be removed")
	p, ok := after.PieceAt(engine.MustParsePosition("D6"))
	require.True(t, ok)
	assert.Equal(t, engine.Piece{Type: engine.Pawn, Color: engine.White}, p)
}

func TestCheckMove_EnPassantDiscoveredCheck(t *testing.T) {
	// Both pawns leave the fifth rank, exposing the king to the rook.
	b, turn, rights := mustFEN(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")
	err := engine.CheckMove(b, turn, rights, engine.MustParseMove("E5D6"))
	assert.Equal(t, engine.LeavesOwnKingInCheck, reasonOf(t, err))
}

func TestInCheck(t *testing.T) {
	b, _, _ := mustFEN(t, "4k3/8/8/8/8/8/8/4K2r w - - 0 1")
	assert.True(t, engine.InCheck(b, engine.White))
	assert.False(t, engine.InCheck(b, engine.Black))
	assert.False(t, engine.InCheck(engine.InitialBoard, engine.White))
}

func TestIsAttacked_PawnCoversDiagonalsOnly(t *testing.T) {
	b, _, _ := mustFEN(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	assert.True(t, engine.IsAttacked(b, engine.MustParsePosition("D3"), engine.White))
	assert.True(t, engine.IsAttacked(b, engine.MustParsePosition("F3"), engine.White))
	assert.False(t, engine.IsAttacked(b, engine.MustParsePosition("E3"), engine.White))
}

func TestLegalMoves_Initial(t *testing.T) {
	moves := engine.LegalMoves(engine.InitialBoard, engine.White, engine.InitialRights)
	assert.Len(t, moves, 20)
}

func TestLegalMoves_PromotionsExpanded(t *testing.T) {
	b, turn, rights := mustFEN(t, "8/5P2/8/8/8/8/8/k3K3 w - - 0 1")
	var promotions []string
	for _, m := range engine.LegalMoves(b, turn, rights) {
		if _, ok := m.(engine.PromotionMove); ok {
			promotions = append(promotions, m.UCI())
		}
	}
	assert.ElementsMatch(t, []string{"f7f8q", "f7f8r", "f7f8b", "f7f8n"}, promotions)
}

func TestLegalMoves_Sound(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		b, turn, rights := mustFEN(t, fen)
		for _, m := range engine.LegalMoves(b, turn, rights) {
			assert.False(t, engine.InCheck(b.ApplyMove(m), turn), "%s leaves king in check in %s", m, fen)
		}
	}
}
