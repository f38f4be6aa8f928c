package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// ApplyMove places the player's mark and re-evaluates the game. A rejected move leaves the session untouched.
func ApplyMove(session *entity.Session, cell int, player entity.Player) error {
	if !session.Active {
		return apperror.ErrGameInactive
	}

	if err := validateMove(session, cell, player); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	session.Board[cell] = player.Mark()
	updateGameStatus(session, player)
	session.UpdatedAt = time.Now()

	return nil
}

// Reset clears the board and hands the first move back to X.
func Reset(session *entity.Session) {
	session.Board = entity.Board{}
	session.Turn = entity.PlayerX
	session.Status = entity.InProgress()
	session.Active = true
	session.Generation++
	session.UpdatedAt = time.Now()
}

// validateMove - checks if the move is valid.
func validateMove(session *entity.Session, cell int, player entity.Player) error {
	if cell < 0 || cell >= len(session.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if session.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if session.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(session *entity.Session, player entity.Player) {
	session.Status = Evaluate(session.Board)
	session.Active = session.Status.IsOngoing()

	if session.Active {
		session.Turn = player.Opponent()
	}
}
