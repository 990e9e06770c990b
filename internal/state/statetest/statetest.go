// Package statetest provides helper functions to create tests using connect-four boards.
package statetest

import (
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/dropfour/internal/state"
	"strings"
)

// BuildBoard from a text layout, one string per row using the letters in PieceLetters.
// Spaces are ignored. The last row given is the bottom row: missing rows at the top are empty.
//
// Example:
//
//	b := BuildBoard(
//		". . . X . . .",
//		". . O X . . .",
//		"O . O X . . .")
func BuildBoard(rows ...string) *Board {
	if len(rows) > NumRows {
		exceptions.Panicf("BuildBoard: %d rows given, board only has %d", len(rows), NumRows)
	}
	var grid Grid
	offset := NumRows - len(rows)
	for ii, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if len(line) != NumColumns {
			exceptions.Panicf("BuildBoard: row %d (%q) has %d cells, wanted %d", ii, line, len(line), NumColumns)
		}
		for col := range NumColumns {
			piece, found := LetterToPiece[line[col]]
			if !found {
				exceptions.Panicf("BuildBoard: unknown cell %q in row %d", line[col], ii)
			}
			grid[offset+ii][col] = piece
		}
	}
	return FromGrid(grid)
}

// PlayMoves drops pieces in the given columns, alternating players starting with first.
// It panics if any move is refused.
func PlayMoves(first Piece, columns ...int) *Board {
	b := NewBoard()
	piece := first
	for ii, col := range columns {
		if !b.Drop(col, piece) {
			exceptions.Panicf("PlayMoves: move #%d, column %d refused", ii, col)
		}
		piece = piece.Opponent()
	}
	return b
}
