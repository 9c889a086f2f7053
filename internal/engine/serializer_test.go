package engine_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/engine"
)

func TestAsciiSerializer_InitialBoardFixture(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "board", "initial.txt"))
	require.NoError(t, err)

	got := engine.AsciiSerializer{}.Serialize(engine.InitialBoard)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("initial board mismatch (-want +got):\n%s", diff)
	}
}

func TestAsciiSerializer_EmptyBoard(t *testing.T) {
	got := string(engine.AsciiSerializer{}.Serialize(engine.Board{}))
	line := ". . . . . . . .\n"
	expected := ""
	for i := 0; i < 8; i++ {
		expected += line
	}
	assert.Equal(t, expected, got)
}

func TestAsciiSerializer_Deterministic(t *testing.T) {
	var ser engine.BoardSerializer = engine.AsciiSerializer{}
	assert.Equal(t, ser.Serialize(engine.InitialBoard), ser.Serialize(engine.InitialBoard))
}
