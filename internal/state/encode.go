package state

import (
	"github.com/pkg/errors"
	"hash/fnv"
)

// StateKey is a canonical text encoding of a board: one letter per cell (see PieceLetters),
// row-major starting from the top row. Two boards have the same key iff they have the same cells.
type StateKey string

// Encode returns the StateKey of the board.
func Encode(b *Board) StateKey {
	return b.grid.Key()
}

// Key returns the StateKey of the grid.
func (g Grid) Key() StateKey {
	var buf [NumCells]byte
	for row := range NumRows {
		for col := range NumColumns {
			buf[row*NumColumns+col] = PieceLetters[g[row][col]][0]
		}
	}
	return StateKey(buf[:])
}

// Key is an alias to Encode.
func (b *Board) Key() StateKey {
	return Encode(b)
}

// Hash returns a 64 bits hash of the key, used for sharding and sampling.
func (k StateKey) Hash() uint64 {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(k))
	return hasher.Sum64()
}

// DecodeKey returns the grid encoded by key.
func DecodeKey(key StateKey) (grid Grid, err error) {
	if len(key) != NumCells {
		err = errors.Errorf("invalid state key %q: expected %d cells, got %d", key, NumCells, len(key))
		return
	}
	for ii := range NumCells {
		piece, found := LetterToPiece[key[ii]]
		if !found {
			err = errors.Errorf("invalid state key %q: unknown cell letter %q at position %d", key, key[ii], ii)
			return
		}
		grid[ii/NumColumns][ii%NumColumns] = piece
	}
	return
}
