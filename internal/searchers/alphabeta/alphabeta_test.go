package alphabeta

import (
	"github.com/janpfeifer/dropfour/internal/features"
	. "github.com/janpfeifer/dropfour/internal/state"
	. "github.com/janpfeifer/dropfour/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestColumnOrder(t *testing.T) {
	assert.Equal(t, [NumColumns]int{3, 2, 4, 1, 5, 0, 6}, columnOrder)
}

func TestEndGameMove(t *testing.T) {
	board := BuildBoard(
		"O O O . . . .",
		"X X X . . . O")
	searcher := New(features.DefaultLinear).WithMaxDepth(1)
	col, score := searcher.Search(board, PlayerA)
	assert.Equal(t, 3, col)
	assert.Equal(t, float32(1), score)
}

func TestBlock(t *testing.T) {
	// O has 3 stacked in column 0.
	board := PlayMoves(PlayerB, 0, 1, 0, 2, 0)
	col, score := New(features.DefaultLinear).WithMaxDepth(2).Search(board, PlayerA)
	assert.Equal(t, 0, col)
	assert.Greater(t, score, float32(-1))
}

func TestDoubleThreat(t *testing.T) {
	board := PlayMoves(PlayerA, 2, 2, 3, 3)
	searcher := New(features.DefaultLinear).WithMaxDepth(3)
	col, score := searcher.Search(board, PlayerA)
	assert.Contains(t, []int{1, 4}, col)
	assert.InDelta(t, 1.0-2*moveDiscount, score, 1e-6)
	stats := searcher.Stats()
	assert.Greater(t, stats.Nodes, 0)
	assert.Greater(t, stats.Evals, 0)
}

func TestPruning(t *testing.T) {
	searcher := New(features.DefaultLinear).WithMaxDepth(4)
	col, _ := searcher.Search(NewGame(), PlayerA)
	assert.True(t, col >= 0 && col < NumColumns)
	stats := searcher.Stats()
	assert.Greater(t, stats.Prunes, 0)
	// Without pruning it would be 7+7^2+7^3+7^4 nodes.
	assert.Less(t, stats.Nodes, 7+49+343+2401)
}

func TestRandomness(t *testing.T) {
	searcher := New(features.DefaultLinear).WithMaxDepth(2).WithRandomness(0.5).WithSeed(3)
	seen := make(map[int]bool)
	for range 50 {
		col, _ := searcher.Search(NewGame(), PlayerA)
		seen[col] = true
	}
	assert.Greater(t, len(seen), 1)

	// Randomness doesn't change forced moves.
	board := PlayMoves(PlayerB, 0, 1, 0, 2, 0)
	for range 10 {
		col, _ := searcher.Search(board, PlayerA)
		require.Equal(t, 0, col)
	}
}

func TestPlayer(t *testing.T) {
	p := NewPlayer(New(features.DefaultLinear).WithMaxDepth(2), PlayerB)
	assert.Equal(t, "alphabeta(O, depth=2)", p.String())
	// O must block X's three in the bottom row.
	board := PlayMoves(PlayerA, 0, 0, 1, 1, 2)
	assert.Equal(t, 3, p.Play(board))
	assert.Panics(t, func() {
		full := BuildBoard(
			"X X O O X X O",
			"O O X X O O X",
			"X X O O X X O",
			"O O X X O O X",
			"X X O O X X O",
			"O O X X O O X")
		p.Play(full)
	})
}
