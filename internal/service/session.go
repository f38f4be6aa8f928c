package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const computerTurnTimeout = 5 * time.Second

type SessionService interface {
	Create(ctx context.Context, computer bool) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error

	Move(ctx context.Context, id string, cell int) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	SetComputer(ctx context.Context, id string, enabled bool) (*entity.Session, error)

	Close()
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type Option func(*sessionService)

// WithComputerDelay sets the pause before the computer answers a human move.
func WithComputerDelay(delay time.Duration) Option {
	return func(that *sessionService) {
		that.delay = delay
	}
}

func WithComputerMark(mark entity.Player) Option {
	return func(that *sessionService) {
		if mark.IsValid() {
			that.computerMark = mark
		}
	}
}

// WithNotifier registers a callback invoked with a copy of the session after every computer move.
func WithNotifier(notify func(entity.Session)) Option {
	return func(that *sessionService) {
		that.notify = notify
	}
}

type sessionService struct {
	logger *slog.Logger
	repo   sessionRepo
	bot    BotService

	delay        time.Duration
	computerMark entity.Player
	notify       func(entity.Session)

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	pending map[string]*time.Timer
	closed  bool
	wg      sync.WaitGroup
}

func NewSessionService(logger *slog.Logger, repo sessionRepo, bot BotService, opts ...Option) SessionService {
	that := &sessionService{
		logger:       logger.With("component", "session_service"),
		repo:         repo,
		bot:          bot,
		delay:        500 * time.Millisecond,
		computerMark: entity.PlayerO,
		notify:       func(entity.Session) {},
		locks:        make(map[string]*sync.Mutex),
		pending:      make(map[string]*time.Timer),
	}

	for _, opt := range opts {
		opt(that)
	}

	return that
}

func (that *sessionService) Create(ctx context.Context, computer bool) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString(), that.computerMark)
	session.Computer = computer

	if err := that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.scheduleComputerTurn(session)
	that.logger.Info("session created", "sessionID", session.ID, "computer", computer)

	return session, nil
}

func (that *sessionService) Get(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		that.forgetIfMissing(id, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	that.resumeComputerTurn(session)

	return session, nil
}

func (that *sessionService) Delete(ctx context.Context, id string) error {
	unlock := that.lock(id)
	defer unlock()

	that.cancelComputerTurn(id)

	if err := that.repo.DeleteByID(ctx, id); err != nil {
		that.forgetIfMissing(id, err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.forget(id)

	return nil
}

// Move handles a chosen cell: it applies the human move for the current player and,
// when the computer is enabled and now to move, schedules its reply.
func (that *sessionService) Move(ctx context.Context, id string, cell int) (*entity.Session, error) {
	log := that.logger.With("method", "Move", "sessionID", id, "cell", cell)

	unlock := that.lock(id)
	defer unlock()

	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		that.forgetIfMissing(id, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	// the computer's reply is pending; its mark is not available to the human
	if session.IsComputerTurn() {
		that.resumeComputerTurn(session)
		return nil, apperror.ErrNotYourTurn
	}

	player := session.CurrentPlayer()
	if err = tictactoe.ApplyMove(session, cell, player); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	log.Info("move applied", "player", player, "status", session.Status.State)
	that.scheduleComputerTurn(session)

	return session, nil
}

func (that *sessionService) Reset(ctx context.Context, id string) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	that.cancelComputerTurn(id)

	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		that.forgetIfMissing(id, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	tictactoe.Reset(session)

	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	that.logger.Info("session reset", "sessionID", id, "generation", session.Generation)
	that.scheduleComputerTurn(session)

	return session, nil
}

func (that *sessionService) SetComputer(ctx context.Context, id string, enabled bool) (*entity.Session, error) {
	unlock := that.lock(id)
	defer unlock()

	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		that.forgetIfMissing(id, err)
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.Computer = enabled
	session.UpdatedAt = time.Now()

	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if enabled {
		that.scheduleComputerTurn(session)
	} else {
		that.cancelComputerTurn(id)
	}

	return session, nil
}

// Close stops pending computer replies and waits for running ones.
func (that *sessionService) Close() {
	that.mu.Lock()
	that.closed = true
	for id, timer := range that.pending {
		that.stopTimer(timer)
		delete(that.pending, id)
	}
	that.mu.Unlock()

	that.wg.Wait()
}

func (that *sessionService) lock(id string) func() {
	that.mu.Lock()
	sessionLock, ok := that.locks[id]
	if !ok {
		sessionLock = &sync.Mutex{}
		that.locks[id] = sessionLock
	}
	that.mu.Unlock()

	sessionLock.Lock()
	return sessionLock.Unlock
}

// scheduleComputerTurn replaces any pending reply for the session.
func (that *sessionService) scheduleComputerTurn(session *entity.Session) {
	that.schedule(session, true)
}

// resumeComputerTurn schedules a reply only when none is pending, e.g. after a failed
// reply or a restart left the session waiting on the computer.
func (that *sessionService) resumeComputerTurn(session *entity.Session) {
	that.schedule(session, false)
}

func (that *sessionService) schedule(session *entity.Session, replace bool) {
	if !session.IsComputerTurn() {
		return
	}

	id, generation := session.ID, session.Generation

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	if timer, ok := that.pending[id]; ok {
		if !replace {
			return
		}
		that.stopTimer(timer)
	}

	var timer *time.Timer
	that.wg.Add(1)
	timer = time.AfterFunc(that.delay, func() {
		defer that.wg.Done()
		that.computerTurn(id, generation)
		that.release(id, timer)
	})
	that.pending[id] = timer
}

// release drops the finished timer unless a newer reply already took its place.
func (that *sessionService) release(id string, timer *time.Timer) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending[id] == timer {
		delete(that.pending, id)
	}
}

// forget drops the bookkeeping of a session that no longer exists in the store.
func (that *sessionService) forget(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if timer, ok := that.pending[id]; ok {
		that.stopTimer(timer)
		delete(that.pending, id)
	}
	delete(that.locks, id)
}

func (that *sessionService) forgetIfMissing(id string, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		that.forget(id)
	}
}

func (that *sessionService) cancelComputerTurn(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if timer, ok := that.pending[id]; ok {
		that.stopTimer(timer)
		delete(that.pending, id)
	}
}

// stopTimer must be called with mu held.
func (that *sessionService) stopTimer(timer *time.Timer) {
	if timer.Stop() {
		that.wg.Done()
	}
}

// computerTurn runs when a scheduled reply fires. It drops the reply if the session was reset,
// finished, or had the computer disabled in the meantime.
func (that *sessionService) computerTurn(id string, generation uint64) {
	log := that.logger.With("method", "computerTurn", "sessionID", id)

	ctx, cancel := context.WithTimeout(context.Background(), computerTurnTimeout)
	defer cancel()

	unlock := that.lock(id)

	session, err := that.repo.GetByID(ctx, id)
	if err != nil {
		unlock()
		if errors.Is(err, apperror.ErrSessionNotFound) {
			that.forget(id)
			log.Debug("session expired before the computer moved")
			return
		}
		log.Error("failed to get session", "error", err)
		return
	}

	if session.Generation != generation || !session.IsComputerTurn() {
		unlock()
		log.Debug("stale computer turn dropped", "generation", generation, "current", session.Generation)
		return
	}

	cell, err := that.bot.MakeTurn(session)
	if err != nil {
		unlock()
		log.Error("computer failed to move", "error", err)
		return
	}

	if err = that.repo.CreateOrUpdate(ctx, session); err != nil {
		unlock()
		log.Error("failed to update session", "error", err)
		return
	}

	snapshot := *session
	unlock()

	log.Info("computer moved", "cell", cell, "status", snapshot.Status.State)
	that.notify(snapshot)
}
