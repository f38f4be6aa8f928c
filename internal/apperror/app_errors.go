package apperror

import "errors"

var (
	ErrGameInactive     = errors.New("game is not active")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)
