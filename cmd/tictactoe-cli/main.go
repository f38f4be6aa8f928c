package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

func main() {
	delay := flag.Duration("delay", 500*time.Millisecond, "pause before the computer replies")
	computer := flag.Bool("computer", true, "play against the computer")
	mark := flag.String("mark", "O", "mark played by the computer (X or O)")
	debug := flag.Bool("debug", false, "log service events to stderr")
	flag.Parse()

	if err := run(*delay, *computer, entity.Player(strings.ToUpper(*mark)), *debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(delay time.Duration, computer bool, mark entity.Player, debug bool) error {
	if !mark.IsValid() {
		return fmt.Errorf("computer mark must be X or O, got %q", mark)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tictactoe> ",
		HistoryFile:     ".tictactoe_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}
	defer rl.Close()

	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	con := newConsole(rl.Stdout())
	sessions := service.NewSessionService(logger, repository.NewMemorySessionRepository(), service.NewBotService(),
		service.WithComputerDelay(delay),
		service.WithComputerMark(mark),
		service.WithNotifier(con.show),
	)
	defer sessions.Close()

	ctx := context.Background()
	if err = con.start(ctx, sessions, computer); err != nil {
		return err
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		if quit := con.execute(ctx, line); quit {
			return nil
		}
	}
}
