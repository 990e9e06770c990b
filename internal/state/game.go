package state

// NewGame returns an empty board, ready for the first move.
func NewGame() *Board {
	return NewBoard()
}

// AttemptMove drops piece in column, and returns whether it was accepted.
// A refused move (column out of range or full) leaves the board unchanged.
func AttemptMove(b *Board, column int, piece Piece) bool {
	return b.Drop(column, piece)
}

// IsWon returns whether piece has four aligned.
func IsWon(b *Board, piece Piece) bool {
	return b.HasWon(piece)
}

// IsDraw returns whether the board is full and nobody won.
func IsDraw(b *Board) bool {
	return b.IsFull() && b.Winner() == Empty
}
