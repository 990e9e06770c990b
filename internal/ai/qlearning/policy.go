package qlearning

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/ai/qtable"
	. "github.com/janpfeifer/dropfour/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// ChooseColumn selects the column to play for the agent's piece:
//
//  1. A column that wins immediately, if there is one (leftmost first).
//  2. With probability given by the exploration rate, or if the board was never seen, a random playable column.
//  3. The playable column with the highest value in the table.
//
// The table is only read. It panics if the board is full.
func (a *Agent) ChooseColumn(board *Board) int {
	col := chooseColumn(board, a.piece, a.table, a.explorationRate, a.rng)
	if klog.V(3).Enabled() {
		klog.Infof("%s chose column %d for\n%s", a, col, board)
	}
	return col
}

func chooseColumn(board *Board, piece Piece, table qtable.Store, explorationRate float64, rng *rand.Rand) int {
	playable := board.PlayableColumns()
	if len(playable) == 0 {
		exceptions.Panicf("choosing a column for %s on a full board", piece)
	}
	if col := ai.WinningColumn(board, piece); col >= 0 {
		return col
	}
	key := Encode(board)
	if _, seen := table.Lookup(key); !seen || rng.Float64() < explorationRate {
		return playable[rng.IntN(len(playable))]
	}
	return table.BestPlayableColumn(key, playable)
}

// Greedy is a read-only Player view of a trained Agent: it never explores (except on unseen boards,
// where it plays a random column) and it never changes the value table.
//
// Many Greedy players over the same Agent can play concurrently, as long as the Agent is not
// being trained at the same time.
type Greedy struct {
	piece Piece
	table qtable.Store
	rng   *rand.Rand
	name  string
}

// Assert Greedy and Agent implement ai.Player.
var (
	_ ai.Player = (*Greedy)(nil)
	_ ai.Player = (*Agent)(nil)
)

// Frozen returns a Greedy player for the agent. seed is used for the random choices on unseen boards.
func (a *Agent) Frozen(seed uint64) *Greedy {
	return &Greedy{
		piece: a.piece,
		table: a.table,
		rng:   rand.New(rand.NewPCG(seed, uint64(a.piece))),
		name:  fmt.Sprintf("qlearn(%s, %d states)", a.piece, a.table.Len()),
	}
}

// Piece played.
func (g *Greedy) Piece() Piece { return g.piece }

// Play implements ai.Player.
func (g *Greedy) Play(board *Board) int {
	return chooseColumn(board, g.piece, g.table, 0, g.rng)
}

// String implements ai.Player.
func (g *Greedy) String() string { return g.name }

// Play implements ai.Player, with exploration: it is the same as ChooseColumn.
func (a *Agent) Play(board *Board) int {
	return a.ChooseColumn(board)
}
