package ai

import (
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/dropfour/internal/state"
)

const (
	// WinReward for the winning move of a finished game. The losing side gets LossReward = -WinReward.
	WinReward = float32(1)

	// LossReward for a move that finishes the game without winning it.
	LossReward = -WinReward

	// DrawReward when the move fills the board without a winner, and it was not marked terminal.
	DrawReward = float32(0.5)

	// WinningMoveReward is the shaped reward for a non-terminal evaluation of a move that wins.
	WinningMoveReward = float32(0.9)

	// PointlessMoveReward for a move that neither wins nor blocks an immediate win.
	PointlessMoveReward = float32(-0.1)
)

// Reward of piece dropping into column on the board before the move, evaluated on a copy.
//
// The rules, checked in order:
//
//   - isTerminal and piece wins: WinReward.
//   - isTerminal and piece doesn't win: LossReward.
//   - the move wins: WinningMoveReward.
//   - the move fills the board without a winner: DrawReward.
//   - the cell has no strategic value (neither piece would win by dropping there): PointlessMoveReward.
//   - otherwise 0 (a blocking move).
//
// It panics if column is not playable.
func Reward(before *Board, piece Piece, isTerminal bool, column int) float32 {
	if !before.IsPlayable(column) {
		exceptions.Panicf("Reward(piece=%s, column=%d): column is not playable", piece, column)
	}
	after := before.Clone()
	after.Drop(column, piece)
	won := after.HasWon(piece)
	switch {
	case isTerminal && won:
		return WinReward
	case isTerminal:
		return LossReward
	case won:
		return WinningMoveReward
	case after.IsFull():
		return DrawReward
	case HasStrategicValue(before, column):
		return 0
	}
	return PointlessMoveReward
}

// HasStrategicValue returns whether dropping either piece in column would win for that piece:
// the move either wins or blocks the opponent's immediate win.
func HasStrategicValue(board *Board, column int) bool {
	return board.WinsAt(column, PlayerA) || board.WinsAt(column, PlayerB)
}
