package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer(t *testing.T) {
	t.Run("Opponent alternates between X and O", func(t *testing.T) {
		assert.Equal(t, PlayerO, PlayerX.Opponent())
		assert.Equal(t, PlayerX, PlayerO.Opponent())
	})

	t.Run("Mark matches the player", func(t *testing.T) {
		assert.Equal(t, MarkX, PlayerX.Mark())
		assert.Equal(t, MarkO, PlayerO.Mark())
	})

	t.Run("Only X and O are valid", func(t *testing.T) {
		assert.True(t, PlayerX.IsValid())
		assert.True(t, PlayerO.IsValid())
		assert.False(t, Player("Z").IsValid())
		assert.False(t, Player("").IsValid())
	})
}

func TestCell_Player(t *testing.T) {
	player, ok := MarkO.Player()
	require.True(t, ok)
	assert.Equal(t, PlayerO, player)

	_, ok = EmptyCell.Player()
	assert.False(t, ok)
}

func TestBoard(t *testing.T) {
	t.Run("EmptyCells are listed in index order", func(t *testing.T) {
		// Given: a board with three marks
		board := Board{MarkX, EmptyCell, MarkO, EmptyCell, MarkX, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// When: listing empty cells
		cells := board.EmptyCells()

		// Then: the free indices come back in increasing order
		assert.Equal(t, []int{1, 3, 5, 6, 7, 8}, cells)
	})

	t.Run("IsFull and Count", func(t *testing.T) {
		board := Board{MarkO, MarkX, MarkO, MarkO, MarkX, MarkX, MarkX, MarkO, MarkX}

		assert.True(t, board.IsFull())
		assert.Empty(t, board.EmptyCells())
		assert.Equal(t, 5, board.Count(MarkX))
		assert.Equal(t, 4, board.Count(MarkO))
		assert.False(t, Board{}.IsFull())
	})

	t.Run("Assignment copies the grid", func(t *testing.T) {
		board := Board{}
		snapshot := board

		board[4] = MarkX

		assert.Equal(t, EmptyCell, snapshot[4])
	})
}

func TestGameStatus(t *testing.T) {
	assert.True(t, InProgress().IsOngoing())
	assert.False(t, InProgress().IsFinished())

	assert.True(t, Won(PlayerX).IsFinished())
	assert.False(t, Won(PlayerX).IsDraw())
	assert.Equal(t, PlayerX, Won(PlayerX).Winner)

	assert.True(t, Draw().IsFinished())
	assert.True(t, Draw().IsDraw())
	assert.Empty(t, Draw().Winner)
}

func TestNewSession(t *testing.T) {
	t.Run("Starts empty with X to move", func(t *testing.T) {
		// When: creating a session
		session := NewSession("123", PlayerO)

		// Then: it matches the initial game state
		assert.Equal(t, "123", session.ID)
		assert.Equal(t, Board{}, session.Snapshot())
		assert.Equal(t, PlayerX, session.CurrentPlayer())
		assert.Equal(t, InProgress(), session.GameStatus())
		assert.True(t, session.Active)
		assert.False(t, session.Computer)
		assert.Equal(t, PlayerO, session.ComputerMark)
		assert.Zero(t, session.Generation)
	})

	t.Run("Unknown computer mark falls back to O", func(t *testing.T) {
		session := NewSession("123", Player("?"))

		assert.Equal(t, PlayerO, session.ComputerMark)
	})
}

func TestSession_IsComputerTurn(t *testing.T) {
	session := NewSession("123", PlayerO)
	assert.False(t, session.IsComputerTurn())

	session.Computer = true
	assert.False(t, session.IsComputerTurn())

	session.Turn = PlayerO
	assert.True(t, session.IsComputerTurn())

	session.Active = false
	assert.False(t, session.IsComputerTurn())
}
