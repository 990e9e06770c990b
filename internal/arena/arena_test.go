package arena

import (
	"context"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/ai/baseline"
	. "github.com/janpfeifer/dropfour/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// fixedColumn always plays the same column, or the leftmost playable one if it's full.
type fixedColumn int

func (f fixedColumn) Play(board *Board) int {
	if board.IsPlayable(int(f)) {
		return int(f)
	}
	return board.PlayableColumns()[0]
}

func (f fixedColumn) String() string { return "fixed" }

func randomFactory(matchIdx int, piece Piece) (ai.Player, error) {
	return baseline.NewRandom(uint64(matchIdx)*2 + uint64(piece)), nil
}

func tacticalFactory(matchIdx int, piece Piece) (ai.Player, error) {
	return baseline.NewTactical(piece, uint64(matchIdx)), nil
}

func TestPlayMatch(t *testing.T) {
	// X stacks on column 0 and O on column 1: X wins on its 4th piece.
	winner, moves, err := PlayMatch(context.Background(), [2]ai.Player{fixedColumn(0), fixedColumn(1)})
	require.NoError(t, err)
	assert.Equal(t, PlayerA, winner)
	assert.Equal(t, 7, moves)

	_, _, err = PlayMatch(context.Background(), [2]ai.Player{fixedColumn(0), invalidPlayer{}})
	assert.Error(t, err)
}

type invalidPlayer struct{}

func (invalidPlayer) Play(*Board) int { return NumColumns }
func (invalidPlayer) String() string  { return "invalid" }

func TestRun(t *testing.T) {
	var progress []int
	r, err := Run(context.Background(), [2]PlayerFactory{tacticalFactory, randomFactory}, 40, 4, func(r *Results) {
		progress = append(progress, r.Played)
	})
	require.NoError(t, err)
	assert.Equal(t, 40, r.Played)
	assert.Equal(t, 40, r.Wins(0)+r.Wins(1)+r.NumDraws())
	assert.Len(t, progress, 40)
	// Tactical should beat random most of the time.
	assert.Greater(t, r.Wins(0), r.Wins(1))
	assert.Contains(t, r.String(), "Played 40 of 40")
}

func TestRunSidesAlternate(t *testing.T) {
	// The first mover always wins with fixed columns: each player wins exactly as first mover.
	factory := func(col int) PlayerFactory {
		return func(int, Piece) (ai.Player, error) { return fixedColumn(col), nil }
	}
	r, err := Run(context.Background(), [2]PlayerFactory{factory(0), factory(1)}, 10, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, [2]int{5, 5}, r.WinsAs1st)
	assert.Equal(t, [2]int{0, 0}, r.WinsAs2nd)
}

func TestRunErrors(t *testing.T) {
	failing := func(int, Piece) (ai.Player, error) { return nil, errors.New("no player") }
	_, err := Run(context.Background(), [2]PlayerFactory{randomFactory, failing}, 4, 1, nil)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := Run(ctx, [2]PlayerFactory{randomFactory, randomFactory}, 10, 1, nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, r.Played)
}

func TestParallelism(t *testing.T) {
	assert.Equal(t, 3, Parallelism(3))
	assert.Greater(t, Parallelism(0), 0)
}
