package entity

const (
	StatusOngoing = "ongoing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

// Cell is the content of one board position.
type Cell string

const (
	EmptyCell Cell = ""
	MarkX     Cell = "X"
	MarkO     Cell = "O"
)

// Player is the side making a move. X always opens.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

func (that Player) Mark() Cell {
	return Cell(that)
}

func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Player returns the owner of a non-empty cell.
func (that Cell) Player() (Player, bool) {
	switch that {
	case MarkX:
		return PlayerX, true
	case MarkO:
		return PlayerO, true
	default:
		return "", false
	}
}

// Board is the 3x3 grid in row-major order. It is a value type, so assigning it copies the grid.
type Board [9]Cell

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, len(that))
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) Count(mark Cell) int {
	count := 0
	for _, cell := range that {
		if cell == mark {
			count++
		}
	}
	return count
}

type GameStatus struct {
	State  string `json:"state"`
	Winner Player `json:"winner,omitempty"`
}

func InProgress() GameStatus {
	return GameStatus{State: StatusOngoing}
}

func Won(winner Player) GameStatus {
	return GameStatus{State: StatusWon, Winner: winner}
}

func Draw() GameStatus {
	return GameStatus{State: StatusDraw}
}

func (that GameStatus) IsOngoing() bool {
	return that.State == StatusOngoing
}

func (that GameStatus) IsFinished() bool {
	return that.State == StatusWon || that.State == StatusDraw
}

func (that GameStatus) IsDraw() bool {
	return that.State == StatusDraw
}
