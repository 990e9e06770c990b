// Package state holds the connect-four board: a fixed grid of cells where pieces are dropped
// into columns and fall to the lowest empty cell.
package state

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"strings"
)

var _ = fmt.Print

const (
	// NumRows of the board. Row 0 is the top row.
	NumRows = 6

	// NumColumns of the board, also the number of possible actions.
	NumColumns = 7

	// ConnectLength is the number of aligned pieces needed to win.
	ConnectLength = 4

	// NumCells in the board.
	NumCells = NumRows * NumColumns
)

// Piece occupying a cell, or Empty.
type Piece uint8

const (
	Empty Piece = iota
	PlayerA
	PlayerB

	// PieceInvalid marks the end of the valid pieces.
	PieceInvalid
)

var (
	// PieceLetters used both for printing and for the state keys.
	PieceLetters  = [PieceInvalid]string{".", "X", "O"}
	LetterToPiece = map[byte]Piece{'.': Empty, 'X': PlayerA, 'O': PlayerB}

	// Players enumerates the pieces that can be dropped.
	Players = [2]Piece{PlayerA, PlayerB}
)

// String returns the letter of the piece.
func (p Piece) String() string {
	if p >= PieceInvalid {
		return fmt.Sprintf("Piece(%d)", uint8(p))
	}
	return PieceLetters[p]
}

// ParsePiece converts a player name ("A", "B", or their letters "X", "O", case-insensitive) to a Piece.
func ParsePiece(name string) (Piece, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "A", "X", "PLAYERA":
		return PlayerA, nil
	case "B", "O", "PLAYERB":
		return PlayerB, nil
	}
	return Empty, errors.Errorf("unknown player %q, valid values are A (or X) and B (or O)", name)
}

// Opponent returns the other player piece. Empty has no opponent and returns Empty.
func (p Piece) Opponent() Piece {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

// IsPlayer returns whether p is one of the two player pieces.
func (p Piece) IsPlayer() bool {
	return p == PlayerA || p == PlayerB
}

// Grid is a value copy of the cells of a board, indexed [row][column], with row 0 at the top.
type Grid [NumRows][NumColumns]Piece

// Board is the mutable game board. The zero value is not usable, create it with NewBoard.
//
// Pieces in every column always form a contiguous run from the bottom row up: Drop is
// the only mutator.
type Board struct {
	grid      Grid
	numPieces int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// FromGrid creates a board with the given cells. It doesn't check for gravity, it's used
// mostly for tests and decoding.
func FromGrid(grid Grid) *Board {
	b := &Board{grid: grid}
	for row := range NumRows {
		for col := range NumColumns {
			if grid[row][col] != Empty {
				b.numPieces++
			}
		}
	}
	return b
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := *b
	return &newB
}

// Snapshot returns a copy of the cells.
func (b *Board) Snapshot() Grid {
	return b.grid
}

// At returns the piece at the given cell. It panics if out of bounds.
func (b *Board) At(row, column int) Piece {
	return b.grid[row][column]
}

// NumPieces dropped so far.
func (b *Board) NumPieces() int {
	return b.numPieces
}

// IsPlayable returns whether a piece can be dropped in column.
func (b *Board) IsPlayable(column int) bool {
	return column >= 0 && column < NumColumns && b.grid[0][column] == Empty
}

// PlayableColumns returns the columns that are not full, in ascending order.
func (b *Board) PlayableColumns() []int {
	columns := make([]int, 0, NumColumns)
	for col := range NumColumns {
		if b.grid[0][col] == Empty {
			columns = append(columns, col)
		}
	}
	return columns
}

// Drop places piece in the lowest empty cell of column.
//
// It returns false, and leaves the board unchanged, if the column is out of range or full.
// Dropping Empty is a programming error and panics.
func (b *Board) Drop(column int, piece Piece) bool {
	if !piece.IsPlayer() {
		exceptions.Panicf("Board.Drop(column=%d, piece=%s): only PlayerA or PlayerB can be dropped", column, piece)
	}
	if column < 0 || column >= NumColumns {
		return false
	}
	for row := NumRows - 1; row >= 0; row-- {
		if b.grid[row][column] == Empty {
			b.grid[row][column] = piece
			b.numPieces++
			return true
		}
	}
	return false
}

// DropRow is like Drop, but returns the row where the piece landed, or -1 if it couldn't be dropped.
func (b *Board) DropRow(column int, piece Piece) int {
	if !b.Drop(column, piece) {
		return -1
	}
	for row := range NumRows {
		if b.grid[row][column] != Empty {
			return row
		}
	}
	return -1
}

// directions scanned for a line: horizontal, vertical, diagonal down-right and diagonal down-left.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// HasWon returns whether piece has ConnectLength aligned cells in any of the four orientations.
func (b *Board) HasWon(piece Piece) bool {
	if !piece.IsPlayer() {
		return false
	}
	for row := range NumRows {
		for col := range NumColumns {
			if b.grid[row][col] != piece {
				continue
			}
			for _, dir := range directions {
				endRow := row + dir[0]*(ConnectLength-1)
				endCol := col + dir[1]*(ConnectLength-1)
				if endRow < 0 || endRow >= NumRows || endCol < 0 || endCol >= NumColumns {
					continue
				}
				ii := 1
				for ; ii < ConnectLength; ii++ {
					if b.grid[row+dir[0]*ii][col+dir[1]*ii] != piece {
						break
					}
				}
				if ii == ConnectLength {
					return true
				}
			}
		}
	}
	return false
}

// IsFull returns whether no more pieces can be dropped: the top row is fully occupied.
func (b *Board) IsFull() bool {
	for col := range NumColumns {
		if b.grid[0][col] == Empty {
			return false
		}
	}
	return true
}

// Winner returns the piece that won, or Empty if none did.
func (b *Board) Winner() Piece {
	for _, p := range Players {
		if b.HasWon(p) {
			return p
		}
	}
	return Empty
}

// IsFinished returns whether the game is over, by a win or by a full board.
func (b *Board) IsFinished() bool {
	return b.IsFull() || b.Winner() != Empty
}

// WinsAt returns whether dropping piece at column would make it win. The board is not changed.
func (b *Board) WinsAt(column int, piece Piece) bool {
	if !b.IsPlayable(column) {
		return false
	}
	sim := b.Clone()
	sim.Drop(column, piece)
	return sim.HasWon(piece)
}

// String returns a text grid with the column numbers at the bottom.
func (b *Board) String() string {
	return b.grid.String()
}

// String returns a text grid with the column numbers at the bottom.
func (g Grid) String() string {
	var sb strings.Builder
	for row := range NumRows {
		for col := range NumColumns {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(PieceLetters[g[row][col]])
		}
		sb.WriteByte('\n')
	}
	for col := range NumColumns {
		if col > 0 {
			sb.WriteByte(' ')
		}
		_, _ = fmt.Fprintf(&sb, "%d", col)
	}
	sb.WriteByte('\n')
	return sb.String()
}
