package service

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type BotService interface {
	MakeTurn(session *entity.Session) (int, error)
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays the minimax move for the session's computer mark and returns the chosen cell.
func (that *botService) MakeTurn(session *entity.Session) (int, error) {
	cell, ok := tictactoe.BestMove(session.Snapshot(), session.ComputerMark)
	if !ok {
		return -1, apperror.ErrNoAvailableMoves
	}

	if err := tictactoe.ApplyMove(session, cell, session.ComputerMark); err != nil {
		return -1, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return cell, nil
}
