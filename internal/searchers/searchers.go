// Package searchers defines the interfaces of the game-tree search algorithms and of the board scorers
// they use.
package searchers

import (
	. "github.com/janpfeifer/dropfour/internal/state"
)

// Scorer estimates the value of a (not finished) board.
type Scorer interface {
	// Score returns a value in the range (-1, 1) for the board, from the point of view of piece:
	// positive is good for piece.
	Score(board *Board, piece Piece) float32
}

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// Search returns the column to play for piece on the given board, along with its expected score.
	Search(board *Board, piece Piece) (column int, score float32)
}

// WinGameScore is the score of a won game. The searchers use it, minus a small discount per move,
// so earlier wins are preferred.
const WinGameScore = float32(1.0)
