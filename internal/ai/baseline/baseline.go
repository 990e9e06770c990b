// Package baseline implements simple non-learning players, used as opponents to evaluate the
// trained agents.
package baseline

import (
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai"
	. "github.com/janpfeifer/dropfour/internal/state"
	"k8s.io/klog/v2"
	"math/rand/v2"
)

// Random plays a uniformly random playable column.
type Random struct {
	rng *rand.Rand
}

// Assert Random and Tactical implement ai.Player.
var (
	_ ai.Player = (*Random)(nil)
	_ ai.Player = (*Tactical)(nil)
)

// NewRandom returns a Random player with the given seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, 0))}
}

// Play implements ai.Player.
func (r *Random) Play(board *Board) int {
	return ai.RandomColumn(board, r.rng)
}

// String implements ai.Player.
func (r *Random) String() string { return "random" }

// Tactical looks one move ahead:
//
//  1. It takes an immediate win.
//  2. It blocks the opponent's immediate win.
//  3. It avoids columns that let the opponent win right on top of its piece.
//  4. Otherwise, it plays a random column.
type Tactical struct {
	piece Piece
	rng   *rand.Rand
}

// NewTactical returns a Tactical player for piece.
func NewTactical(piece Piece, seed uint64) *Tactical {
	return &Tactical{piece: piece, rng: rand.New(rand.NewPCG(seed, uint64(piece)))}
}

// Play implements ai.Player.
func (t *Tactical) Play(board *Board) int {
	if col := ai.WinningColumn(board, t.piece); col >= 0 {
		return col
	}
	opponent := t.piece.Opponent()
	if col := ai.WinningColumn(board, opponent); col >= 0 {
		klog.V(2).Infof("%s blocks column %d", t, col)
		return col
	}
	playable := board.PlayableColumns()
	safe := make([]int, 0, len(playable))
	for _, col := range playable {
		next := board.Clone()
		next.Drop(col, t.piece)
		if !next.WinsAt(col, opponent) {
			safe = append(safe, col)
		}
	}
	if len(safe) > 0 {
		return safe[t.rng.IntN(len(safe))]
	}
	return ai.RandomColumn(board, t.rng)
}

// String implements ai.Player.
func (t *Tactical) String() string { return fmt.Sprintf("tactical(%s)", t.piece) }
