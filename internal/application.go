package application

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	sessions := service.NewSessionService(logger, sessionRepo, service.NewBotService(),
		service.WithComputerDelay(conf.Computer.Delay),
		service.WithComputerMark(entity.Player(conf.Computer.Mark)),
	)
	defer sessions.Close()

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, sessions)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newSessionRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	client, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Error("could not close redis storage", "component", "app", "error", err)
		}
	}

	return repository.NewSessionRepository(client, conf.Redis.SessionTTL), closeFn, nil
}
