package ai_test

import (
	. "github.com/janpfeifer/dropfour/internal/ai"
	. "github.com/janpfeifer/dropfour/internal/state"
	. "github.com/janpfeifer/dropfour/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"math/rand/v2"
	"testing"
)

func TestRewardTerminal(t *testing.T) {
	b := BuildBoard(
		"O O O . . . .",
		"X X X . . . .")
	assert.Equal(t, WinReward, Reward(b, PlayerA, true, 3))
	assert.Equal(t, LossReward, Reward(b, PlayerA, true, 6))
	// Board is not changed.
	assert.Equal(t, 6, b.NumPieces())
}

func TestRewardShaped(t *testing.T) {
	b := BuildBoard(
		". . . . . . .",
		"O O O . . . .",
		"X X X . . . .")
	// Winning move, not terminal.
	assert.Equal(t, WinningMoveReward, Reward(b, PlayerA, false, 3))
	// For B column 3 blocks A's win.
	assert.Equal(t, float32(0), Reward(b, PlayerB, false, 3))
	// Column 5 has no value for anyone.
	assert.Equal(t, PointlessMoveReward, Reward(b, PlayerA, false, 5))
	assert.Equal(t, PointlessMoveReward, Reward(b, PlayerB, false, 5))

	// After A plays 3 (bottom row), B's win is at column 3.
	b2 := BuildBoard(
		"O O O . . . .",
		"X X X O . . .")
	assert.Equal(t, WinningMoveReward, Reward(b2, PlayerB, false, 3))
	assert.Equal(t, float32(0), Reward(b2, PlayerA, false, 3))
}

func TestRewardDraw(t *testing.T) {
	grid := BuildBoard(
		"X X O O X X O",
		"O O X X O O X",
		"X X O O X X O",
		"O O X X O O X",
		"X X O O X X O",
		"O O X X O O X").Snapshot()
	grid[0][4] = Empty
	b := FromGrid(grid)
	for _, piece := range Players {
		assert.Equal(t, DrawReward, Reward(b, piece, false, 4))
		// Filling the board is terminal, and the acting piece didn't win.
		assert.Equal(t, LossReward, Reward(b, piece, true, 4))
	}
}

func TestRewardPanics(t *testing.T) {
	b := PlayMoves(PlayerA, 0, 0, 0, 0, 0, 0)
	assert.Panics(t, func() { Reward(b, PlayerA, false, 0) })
	assert.Panics(t, func() { Reward(b, PlayerA, false, NumColumns) })
}

func TestHasStrategicValue(t *testing.T) {
	b := BuildBoard(". O O O . . .")
	assert.True(t, HasStrategicValue(b, 0))
	assert.True(t, HasStrategicValue(b, 4))
	assert.False(t, HasStrategicValue(b, 5))
}

func TestWinningColumn(t *testing.T) {
	b := BuildBoard(". O O O . . .")
	assert.Equal(t, 0, WinningColumn(b, PlayerB))
	assert.Equal(t, -1, WinningColumn(b, PlayerA))
}

func TestRandomColumn(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	b := PlayMoves(PlayerA, 0, 0, 0, 0, 0, 0, 6, 6, 6, 6, 6, 6)
	for range 100 {
		col := RandomColumn(b, rng)
		assert.True(t, b.IsPlayable(col))
		assert.NotContains(t, []int{0, 6}, col)
	}
	full := PlayMoves(PlayerA)
	for col := range NumColumns {
		for range NumRows {
			full.Drop(col, PlayerA)
		}
	}
	assert.Panics(t, func() { RandomColumn(full, rng) })
}
