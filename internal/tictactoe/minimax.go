package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const winScore = 10

// BestMove runs a full-width minimax search for ai and returns the cell with the highest score.
// Ties go to the lowest cell index. It returns false only when the board has no empty cell.
//
// The search works on copies of the board, so the caller's board is never touched.
func BestMove(board entity.Board, ai entity.Player) (int, bool) {
	bestScore := math.MinInt
	bestCell := -1

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = ai.Mark()

		score := minimax(next, ai, 0, false)
		if score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell, bestCell >= 0
}

// Score returns the minimax value of board for ai when toMove plays next.
func Score(board entity.Board, ai, toMove entity.Player) int {
	return minimax(board, ai, 0, toMove == ai)
}

// minimax scores terminal boards as +10-depth for an ai win and -10+depth for a loss,
// so quicker wins and slower losses rank higher.
func minimax(board entity.Board, ai entity.Player, depth int, maximizing bool) int {
	status := Evaluate(board)
	switch {
	case status.IsDraw():
		return 0
	case status.IsFinished() && status.Winner == ai:
		return winScore - depth
	case status.IsFinished():
		return depth - winScore
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = ai.Mark()
			best = max(best, minimax(next, ai, depth+1, false))
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = ai.Opponent().Mark()
		best = min(best, minimax(next, ai, depth+1, true))
	}
	return best
}
