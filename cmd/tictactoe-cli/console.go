package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/display"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const helpText = `commands:
  move N | N        place the current player's mark on cell N (0-8)
  reset             start over with an empty board
  computer on|off   toggle the computer opponent
  board             show the board
  help              show this help
  quit              leave
`

type sessionService interface {
	Create(ctx context.Context, computer bool) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)

	Move(ctx context.Context, id string, cell int) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	SetComputer(ctx context.Context, id string, enabled bool) (*entity.Session, error)
}

// console renders one session to out. Writes are serialized because computer moves arrive asynchronously.
type console struct {
	mu  sync.Mutex
	out io.Writer

	sessions sessionService
	id       string
}

func newConsole(out io.Writer) *console {
	return &console{out: out}
}

func (that *console) start(ctx context.Context, sessions sessionService, computer bool) error {
	session, err := sessions.Create(ctx, computer)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	that.sessions = sessions
	that.id = session.ID
	that.print(helpText)
	that.show(*session)

	return nil
}

// execute runs one command line and reports whether the user asked to quit.
func (that *console) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	var (
		session *entity.Session
		err     error
	)

	switch cmd := fields[0]; {
	case cmd == "quit" || cmd == "exit" || cmd == "q":
		return true
	case cmd == "help" || cmd == "?":
		that.print(helpText)
		return false
	case cmd == "board":
		session, err = that.sessions.Get(ctx, that.id)
	case cmd == "reset":
		session, err = that.sessions.Reset(ctx, that.id)
	case cmd == "computer" && len(fields) == 2 && (fields[1] == "on" || fields[1] == "off"):
		session, err = that.sessions.SetComputer(ctx, that.id, fields[1] == "on")
	case cmd == "move" && len(fields) == 2:
		session, err = that.move(ctx, fields[1])
	case len(fields) == 1 && isDigit(cmd):
		session, err = that.move(ctx, cmd)
	default:
		that.print(fmt.Sprintf("unknown command %q, type 'help'\n", line))
		return false
	}

	if err != nil {
		that.print(describe(err) + "\n")
		return false
	}

	that.show(*session)
	if session.IsComputerTurn() {
		that.print("computer is thinking...\n")
	}

	return false
}

func (that *console) move(ctx context.Context, arg string) (*entity.Session, error) {
	cell, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, arg)
	}

	return that.sessions.Move(ctx, that.id, cell)
}

func (that *console) show(session entity.Session) {
	that.print(display.Grid(session.Board) + display.Banner(&session) + "\n")
}

func (that *console) print(text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, _ = io.WriteString(that.out, text)
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is taken"
	case errors.Is(err, apperror.ErrGameInactive):
		return "the game is over, type 'reset' to play again"
	case errors.Is(err, apperror.ErrNotYourTurn):
		return "wait for the computer to move"
	case errors.Is(err, apperror.ErrInvalidCell):
		return "pick a cell between 0 and 8"
	default:
		return err.Error()
	}
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}
