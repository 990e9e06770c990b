// Package alphabeta implements a depth limited alpha-beta pruning searcher (in its negamax form),
// and a Player based on it.
package alphabeta

import (
	"fmt"
	"github.com/janpfeifer/dropfour/internal/ai"
	"github.com/janpfeifer/dropfour/internal/searchers"
	. "github.com/janpfeifer/dropfour/internal/state"
	"k8s.io/klog/v2"
	"math"
	"math/rand/v2"
	"time"
)

// Searcher implements the searchers.Searcher interface.
type Searcher struct {
	maxDepth   int
	randomness float32
	scorer     searchers.Scorer
	rng        *rand.Rand
	stats      Stats
}

// Assert that Searcher implements searchers.Searcher and ai.Player.
var (
	_ searchers.Searcher = (*Searcher)(nil)
	_ ai.Player          = (*Player)(nil)
)

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search: a piece dropped in a board.
	Nodes int

	// Evals is the number of boards passed to the scorer. End-game boards are not scored and don't count here.
	Evals int

	Prunes int
}

// DefaultMaxDepth for search.
const DefaultMaxDepth = 4

// moveDiscount is subtracted from the win score for each ply, so faster wins score higher.
const moveDiscount = float32(1e-3)

// columnOrder explores the center columns first: it makes the pruning more effective.
var columnOrder = func() (order [NumColumns]int) {
	center := NumColumns / 2
	order[0] = center
	for ii := 1; ii < NumColumns; ii++ {
		offset := (ii + 1) / 2
		if ii%2 == 1 {
			order[ii] = center - offset
		} else {
			order[ii] = center + offset
		}
	}
	return
}()

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the scorer used for the leaves of the search.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(scorer searchers.Scorer) *Searcher {
	return &Searcher{
		scorer:   scorer,
		maxDepth: DefaultMaxDepth,
		rng:      rand.New(rand.NewPCG(0, 0)),
	}
}

// WithMaxDepth sets the max depth of search: the unit here are plies (ply singular). Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// The default is DefaultMaxDepth. Values < 1 are set to 1.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = max(maxDepth, 1)
	return ab
}

// WithRandomness adds a gaussian noise scaled to randomness to the scores returned by the scorer.
// Scores vary from -1 to 1, so a value of 1.0 here would be a lot.
//
// This can be useful to make the AI play worse, or to generate different matches.
// Set to 0 to disable randomness -- this is the default.
func (ab *Searcher) WithRandomness(randomness float32) *Searcher {
	ab.randomness = randomness
	return ab
}

// WithSeed sets the seed used for the randomness.
func (ab *Searcher) WithSeed(seed uint64) *Searcher {
	ab.rng = rand.New(rand.NewPCG(seed, 1))
	return ab
}

// Stats returns the stats accumulated so far.
func (ab *Searcher) Stats() Stats { return ab.stats }

// Search implements the searchers.Searcher interface. It panics if the board is full.
func (ab *Searcher) Search(board *Board, piece Piece) (column int, score float32) {
	start := time.Now()
	before := ab.stats
	column, score = ab.recursion(board, piece, ab.maxDepth, 0, float32(-math.MaxFloat32), float32(math.MaxFloat32))
	if column < 0 {
		column = ai.RandomColumn(board, ab.rng) // Panics if the board is full.
	}
	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		nodes := ab.stats.Nodes - before.Nodes
		klog.Infof("alpha-beta(%s): column %d, score=%.3f, nodes=%d (%.1f nodes/s), evals=%d, prunes=%d",
			piece, column, score, nodes, float64(nodes)/elapsed,
			ab.stats.Evals-before.Evals, ab.stats.Prunes-before.Prunes)
	}
	return
}

// recursion of the alpha-beta pruning algorithm, with depthLeft plies to go, for piece to play.
// The score returned is from the point of view of piece.
func (ab *Searcher) recursion(board *Board, piece Piece, depthLeft, ply int, alpha, beta float32) (
	bestColumn int, bestScore float32) {
	// Immediate wins need no search.
	if col := ai.WinningColumn(board, piece); col >= 0 {
		return col, searchers.WinGameScore - moveDiscount*float32(ply)
	}
	bestColumn = -1
	bestScore = float32(-math.MaxFloat32)
	for _, col := range columnOrder {
		if !board.IsPlayable(col) {
			continue
		}
		next := board.Clone()
		next.Drop(col, piece)
		ab.stats.Nodes++
		var score float32
		switch {
		case next.IsFull():
			score = 0 // Draw: no winning move was available above.
		case depthLeft <= 1:
			score = ab.leafScore(next, piece)
		default:
			_, opponentScore := ab.recursion(next, piece.Opponent(), depthLeft-1, ply+1, -beta, -alpha)
			score = -opponentScore
		}
		if score > bestScore {
			bestScore, bestColumn = score, col
		}
		alpha = max(alpha, score)
		if alpha >= beta {
			// The opponent will never take this path, so we can prune the search and stop here.
			ab.stats.Prunes++
			break
		}
	}
	return
}

func (ab *Searcher) leafScore(board *Board, piece Piece) float32 {
	ab.stats.Evals++
	score := ab.scorer.Score(board, piece)
	if ab.randomness > 0 {
		score += float32(ab.rng.NormFloat64()) * ab.randomness
		// Keep it away from the end-game scores.
		score = min(max(score, -0.99), 0.99)
	}
	return score
}

// Player plays with a Searcher. It is not safe for concurrent use.
type Player struct {
	searcher *Searcher
	piece    Piece
}

// NewPlayer returns an ai.Player for piece that uses searcher.
func NewPlayer(searcher *Searcher, piece Piece) *Player {
	return &Player{searcher: searcher, piece: piece}
}

// Play implements ai.Player.
func (p *Player) Play(board *Board) int {
	column, _ := p.searcher.Search(board, p.piece)
	return column
}

// String implements ai.Player.
func (p *Player) String() string {
	return fmt.Sprintf("alphabeta(%s, depth=%d)", p.piece, p.searcher.maxDepth)
}
