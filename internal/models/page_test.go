package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/vytor/ivanachess/internal/engine"
	"github.com/vytor/ivanachess/internal/models"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		total    int
		expected int
	}{
		{"empty", 10, 0, 0},
		{"exact", 10, 20, 2},
		{"partial last page", 10, 21, 3},
		{"zero size", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewPage[int](nil, 1, tt.size, tt.total)
			assert.Equal(t, tt.expected, p.TotalPages)
			assert.NotNil(t, p.Content)
		})
	}
}

func TestGameSummary_ColorOf(t *testing.T) {
	s := models.GameSummary{WhiteToken: uuid.New(), BlackToken: uuid.New()}

	c, ok := s.ColorOf(s.WhiteToken)
	assert.True(t, ok)
	assert.Equal(t, engine.White, c)

	c, ok = s.ColorOf(s.BlackToken)
	assert.True(t, ok)
	assert.Equal(t, engine.Black, c)

	_, ok = s.ColorOf(uuid.New())
	assert.False(t, ok)

	assert.Equal(t, s.BlackToken, s.TokenOf(engine.Black))
}

func TestSnapshotOf(t *testing.T) {
	g, err := engine.NewGame().Play(engine.MustParseMove("E2E4"))
	assert.NoError(t, err)

	snap := models.SnapshotOf(g)
	assert.Equal(t, models.Snapshot{TurnColor: engine.Black, State: engine.InProgress, MoveCount: 1}, snap)
	assert.Equal(t, models.InitialSnapshot, models.SnapshotOf(engine.NewGame()))
}
