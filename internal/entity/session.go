package entity

import "time"

// Session owns the single mutable board of one game instance.
type Session struct {
	ID     string     `json:"id"`
	Board  Board      `json:"board"`
	Turn   Player     `json:"player_turn"`
	Status GameStatus `json:"status"`

	// Active mirrors Status.IsOngoing for fast rejection of post-terminal input.
	Active bool `json:"active"`

	Computer     bool   `json:"computer"`
	ComputerMark Player `json:"computer_mark"`

	// Generation is bumped on every reset so delayed callbacks can detect a stale board.
	Generation uint64 `json:"generation"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewSession(id string, computerMark Player) *Session {
	if !computerMark.IsValid() {
		computerMark = PlayerO
	}

	return &Session{
		ID:           id,
		Turn:         PlayerX,
		Status:       InProgress(),
		Active:       true,
		ComputerMark: computerMark,
		UpdatedAt:    time.Now(),
	}
}

func (that *Session) CurrentPlayer() Player {
	return that.Turn
}

func (that *Session) GameStatus() GameStatus {
	return that.Status
}

// Snapshot returns a read-only copy of the board.
func (that *Session) Snapshot() Board {
	return that.Board
}

// IsComputerTurn reports whether the computer opponent should move next.
func (that *Session) IsComputerTurn() bool {
	return that.Computer && that.Active && that.Turn == that.ComputerMark
}
