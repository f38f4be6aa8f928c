package display

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Banner is the status line shown above the board.
func Banner(session *entity.Session) string {
	status := session.GameStatus()

	switch {
	case status.IsDraw():
		return "It's a draw!"
	case status.IsFinished():
		return fmt.Sprintf("Player %s wins!", status.Winner)
	default:
		return fmt.Sprintf("Player %s's turn", session.CurrentPlayer())
	}
}

// Grid renders the board as three rows, numbering empty cells so they can be picked.
func Grid(board entity.Board) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			index := row*3 + col
			cell := string(board[index])
			if board[index] == entity.EmptyCell {
				cell = fmt.Sprint(index)
			}
			sb.WriteString(" " + cell + " ")
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
