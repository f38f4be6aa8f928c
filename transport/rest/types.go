package rest

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/display"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type CreateSessionRequest struct {
	Computer bool `json:"computer"`
}

type MoveRequest struct {
	Cell *int `json:"cell" validate:"required,min=0,max=8"`
}

type ComputerRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type SessionResponse struct {
	ID           string        `json:"id"`
	Board        entity.Board  `json:"board"`
	Turn         entity.Player `json:"turn"`
	Status       string        `json:"status"`
	Winner       entity.Player `json:"winner,omitempty"`
	WinningCells []int         `json:"winning_cells,omitempty"`
	Active       bool          `json:"active"`
	Computer     bool          `json:"computer"`
	ComputerMark entity.Player `json:"computer_mark"`
	Message      string        `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func newSessionResponse(session *entity.Session) SessionResponse {
	response := SessionResponse{
		ID:           session.ID,
		Board:        session.Snapshot(),
		Turn:         session.CurrentPlayer(),
		Status:       session.Status.State,
		Winner:       session.Status.Winner,
		Active:       session.Active,
		Computer:     session.Computer,
		ComputerMark: session.ComputerMark,
		Message:      display.Banner(session),
	}

	if line, ok := tictactoe.WinningLine(session.Board); ok {
		response.WinningCells = line[:]
	}

	return response
}
