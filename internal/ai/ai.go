// Package ai (Artificial Intelligence) defines the interfaces and the shared building blocks,
// like the rewards, used by the connect-four players.
package ai

import (
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/dropfour/internal/state"
	"math/rand/v2"
)

// Player is anything that is able to play the game: given a board it chooses a column.
//
// The Player is bound to the piece it plays with at creation, and Play must only be called with
// boards where it is its turn and that are not finished.
type Player interface {
	// Play returns a playable column for the board. The board must not be changed.
	Play(board *Board) (column int)

	// String returns a short description of the player.
	String() string
}

// WinningColumn returns the first playable column, left to right, where dropping piece wins the game.
// It returns -1 if there is no such column.
func WinningColumn(board *Board, piece Piece) int {
	for _, col := range board.PlayableColumns() {
		if board.WinsAt(col, piece) {
			return col
		}
	}
	return -1
}

// RandomColumn returns a uniformly sampled playable column. It panics if the board is full.
func RandomColumn(board *Board, rng *rand.Rand) int {
	cols := board.PlayableColumns()
	if len(cols) == 0 {
		exceptions.Panicf("RandomColumn() called on a full board")
	}
	return cols[rng.IntN(len(cols))]
}
