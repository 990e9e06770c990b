package features

import (
	. "github.com/janpfeifer/dropfour/internal/state"
	. "github.com/janpfeifer/dropfour/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestForBoard(t *testing.T) {
	assert.Equal(t, Vector{}, ForBoard(NewGame(), PlayerA))

	// Single X in the bottom-left corner: one horizontal, one vertical and one diagonal window.
	b := PlayMoves(PlayerA, 0)
	v := ForBoard(b, PlayerA)
	assert.Equal(t, float32(3), v[IdOpen1])
	assert.Equal(t, float32(0), v[IdCenter])
	assert.Equal(t, v[IdOpen1], ForBoard(b, PlayerB)[IdOpponentOpen1])

	// Center column.
	b = PlayMoves(PlayerA, 3, 3, 3)
	assert.Equal(t, float32(1), ForBoard(b, PlayerA)[IdCenter])
	assert.Equal(t, float32(-1), ForBoard(b, PlayerB)[IdCenter])
	assert.Contains(t, ForBoard(b, PlayerA).String(), "center=1")
}

func TestThreats(t *testing.T) {
	// X completes a line at row 4 (from the top), column 3, which is not yet playable.
	b := BuildBoard(
		"X X X . . . .",
		"O O X . O . O")
	v := ForBoard(b, PlayerA)
	assert.Equal(t, float32(1), v[IdThreats])
	assert.Equal(t, float32(0), v[IdOpponentThreats])
	assert.Equal(t, float32(1), ForBoard(b, PlayerB)[IdOpponentThreats])

	// Same line, but the cell is directly playable: it's a win, not a threat.
	b = BuildBoard(
		"X X X . . . .",
		"O O X O O . O")
	assert.Equal(t, float32(0), ForBoard(b, PlayerA)[IdThreats])
}

func TestLinearScore(t *testing.T) {
	good := BuildBoard(
		"X X X . . . .",
		"O O X . O . O")
	score := DefaultLinear.Score(good, PlayerA)
	assert.Greater(t, score, float32(0))
	assert.Less(t, score, float32(1))
	assert.Less(t, DefaultLinear.Score(good, PlayerB), float32(0))
	assert.Equal(t, "open_2", IdOpen2.String())
}
