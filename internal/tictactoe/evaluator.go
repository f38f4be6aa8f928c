package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

// WinCombos lists rows, then columns, then diagonals. The order decides which line is reported first.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate reports whether the board is won, drawn or still in progress.
func Evaluate(board entity.Board) entity.GameStatus {
	if line, ok := WinningLine(board); ok {
		winner, _ := board[line[0]].Player()
		return entity.Won(winner)
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

// WinningLine returns the first complete line of identical marks.
func WinningLine(board entity.Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}
