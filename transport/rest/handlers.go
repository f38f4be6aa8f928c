package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const maxBodyBytes = 1 << 10

var errInvalidBody = errors.New("invalid request body")

type sessionService interface {
	Create(ctx context.Context, computer bool) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)

	Move(ctx context.Context, id string, cell int) (*entity.Session, error)
	Reset(ctx context.Context, id string) (*entity.Session, error)
	SetComputer(ctx context.Context, id string, enabled bool) (*entity.Session, error)
}

type sessionHandlers struct {
	logger   *slog.Logger
	sessions sessionService
	validate *validator.Validate
}

func newSessionHandlers(logger *slog.Logger, sessions sessionService) *sessionHandlers {
	return &sessionHandlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (that *sessionHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := that.decode(r, &req, true); err != nil {
		that.writeError(w, "create", err)
		return
	}

	session, err := that.sessions.Create(r.Context(), req.Computer)
	if err != nil {
		that.writeError(w, "create", err)
		return
	}

	writeJSON(w, http.StatusCreated, newSessionResponse(session))
}

func (that *sessionHandlers) get(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "get", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *sessionHandlers) move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := that.decode(r, &req, false); err != nil {
		that.writeError(w, "move", err)
		return
	}

	session, err := that.sessions.Move(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "move", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *sessionHandlers) reset(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "reset", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

func (that *sessionHandlers) setComputer(w http.ResponseWriter, r *http.Request) {
	var req ComputerRequest
	if err := that.decode(r, &req, false); err != nil {
		that.writeError(w, "setComputer", err)
		return
	}

	session, err := that.sessions.SetComputer(r.Context(), chi.URLParam(r, "id"), *req.Enabled)
	if err != nil {
		that.writeError(w, "setComputer", err)
		return
	}

	writeJSON(w, http.StatusOK, newSessionResponse(session))
}

// decode reads a JSON body into dst and validates it. An empty body is accepted only when optional is set.
func (that *sessionHandlers) decode(r *http.Request, dst any, optional bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	switch {
	case errors.Is(err, io.EOF) && optional:
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	if err = that.validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidBody, err)
	}

	return nil
}

func (that *sessionHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, status, ErrorResponse{Error: http.StatusText(status)})
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidBody), errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameInactive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
