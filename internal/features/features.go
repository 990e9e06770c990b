// Package features extracts board features, from the point of view of one of the players, and
// provides a linear scorer over them.
//
// The features are counts of "windows": the ConnectLength aligned cells (in any direction) that
// could still make a line for one of the players, because they hold no piece of the other one.
package features

import (
	"fmt"
	"github.com/chewxy/math32"
	. "github.com/janpfeifer/dropfour/internal/state"
	"strings"
)

// Id represents an enum of board features.
type Id uint8

const (
	// IdOpen1 to IdOpen3 count the windows with 1 to 3 of the player's pieces and none of the opponent.
	IdOpen1 Id = iota
	IdOpen2
	IdOpen3

	// IdOpponentOpen1 to IdOpponentOpen3 are the same for the opponent.
	IdOpponentOpen1
	IdOpponentOpen2
	IdOpponentOpen3

	// IdCenter is the number of player's pieces in the center column, minus the opponent's.
	IdCenter

	// IdThreats counts the empty cells that would complete a line for the player, and that are not
	// yet playable (something has to be dropped below them first).
	IdThreats
	IdOpponentThreats

	// IdNumFeatures defined -- this must always be the last enum.
	IdNumFeatures
)

// Names of the features, indexed by Id.
var Names = [IdNumFeatures]string{
	"open_1", "open_2", "open_3",
	"opponent_open_1", "opponent_open_2", "opponent_open_3",
	"center", "threats", "opponent_threats",
}

// String implements fmt.Stringer.
func (id Id) String() string {
	if id >= IdNumFeatures {
		return fmt.Sprintf("Id(%d)", int(id))
	}
	return Names[id]
}

// Vector of features, indexed by Id.
type Vector [IdNumFeatures]float32

// String returns the non-zero features as "name=value" pairs.
func (v Vector) String() string {
	var parts []string
	for id, value := range v {
		if value != 0 {
			parts = append(parts, fmt.Sprintf("%s=%g", Id(id), value))
		}
	}
	return strings.Join(parts, ", ")
}

// directions (row, column deltas) of a line: horizontal, vertical, and the 2 diagonals.
var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// ForBoard returns the features of the board from the point of view of piece.
func ForBoard(board *Board, piece Piece) (v Vector) {
	opponent := piece.Opponent()
	for row := range NumRows {
		for col := range NumColumns {
			for _, dir := range directions {
				endRow, endCol := row+(ConnectLength-1)*dir[0], col+(ConnectLength-1)*dir[1]
				if endRow < 0 || endRow >= NumRows || endCol < 0 || endCol >= NumColumns {
					continue
				}
				var counts [PieceInvalid]int
				for ii := range ConnectLength {
					counts[board.At(row+ii*dir[0], col+ii*dir[1])]++
				}
				switch {
				case counts[piece] > 0 && counts[opponent] == 0 && counts[piece] < ConnectLength:
					v[IdOpen1+Id(counts[piece]-1)]++
				case counts[opponent] > 0 && counts[piece] == 0 && counts[opponent] < ConnectLength:
					v[IdOpponentOpen1+Id(counts[opponent]-1)]++
				}
			}
		}
	}
	center := NumColumns / 2
	for row := range NumRows {
		switch board.At(row, center) {
		case piece:
			v[IdCenter]++
		case opponent:
			v[IdCenter]--
		}
	}
	v[IdThreats] = float32(countThreats(board, piece))
	v[IdOpponentThreats] = float32(countThreats(board, opponent))
	return
}

// countThreats counts the empty cells, not directly playable, that would complete a line for piece.
func countThreats(board *Board, piece Piece) int {
	grid := board.Snapshot()
	count := 0
	for col := range NumColumns {
		// Skip the lowest empty cell (directly playable) of the column.
		row := NumRows - 1
		for row >= 0 && grid[row][col] != Empty {
			row--
		}
		for row--; row >= 0; row-- {
			grid[row][col] = piece
			if FromGrid(grid).HasWon(piece) {
				count++
			}
			grid[row][col] = Empty
		}
	}
	return count
}

// Linear scorer: the score is tanh of the weighted sum of the features.
type Linear struct {
	Weights Vector
	Bias    float32
}

// DefaultLinear holds hand-tuned weights, good enough to guide a shallow search.
var DefaultLinear = &Linear{
	Weights: Vector{
		IdOpen1: 0.01, IdOpen2: 0.05, IdOpen3: 0.2,
		IdOpponentOpen1: -0.01, IdOpponentOpen2: -0.05, IdOpponentOpen3: -0.25,
		IdCenter: 0.05, IdThreats: 0.3, IdOpponentThreats: -0.35,
	},
}

// Score returns a value in (-1, 1) for the board, from the point of view of piece.
func (l *Linear) Score(board *Board, piece Piece) float32 {
	v := ForBoard(board, piece)
	sum := l.Bias
	for ii, w := range l.Weights {
		sum += w * v[ii]
	}
	return math32.Tanh(sum)
}
