package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

const playerHeader = "X-Player-ID"

var errPlayerRequired = errors.New("player id is required")

type gameUseCase interface {
	JoinGame(ctx context.Context, areaID, playerID string) (*entity.QuantumState, error)
	MakeTurn(ctx context.Context, areaID, gameID, playerID string, move entity.QuantumMove) (*entity.QuantumState, error)
	LeaveGame(ctx context.Context, areaID, gameID, playerID string) (*entity.QuantumState, error)
	GetState(ctx context.Context, areaID string) (*entity.QuantumState, error)
	History(ctx context.Context, playerID string) ([]entity.GameResult, error)
	CloseArea(ctx context.Context, areaID string) error
}

type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)
	JoinGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	LeaveGame(w http.ResponseWriter, r *http.Request)
	GetState(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	CloseArea(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

type moveRequest struct {
	Board entity.BoardID `json:"board"`
	Row   int            `json:"row"`
	Col   int            `json:"col"`
	Mark  entity.Mark    `json:"mark,omitempty"`
}

type joinResponse struct {
	GameID string               `json:"game_id"`
	State  *entity.QuantumState `json:"state"`
}

type errorResponse struct {
	Error string               `json:"error"`
	State *entity.QuantumState `json:"state,omitempty"`
}

func NewHandlers(logger *slog.Logger, gameUseCase gameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	playerID := r.Header.Get(playerHeader)
	if playerID == "" {
		that.writeError(w, errPlayerRequired, nil)
		return
	}

	state, err := that.gameUseCase.JoinGame(r.Context(), chi.URLParam(r, "areaID"), playerID)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, joinResponse{GameID: state.GameID, State: state.ViewFor(playerID)})
}

func (that *handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	playerID := r.Header.Get(playerHeader)
	if playerID == "" {
		that.writeError(w, errPlayerRequired, nil)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, apperror.ErrInvalidCommand, nil)
		return
	}

	move := entity.QuantumMove{Board: req.Board, Row: req.Row, Col: req.Col, Mark: req.Mark}

	state, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "areaID"), chi.URLParam(r, "gameID"), playerID, move)
	if err != nil {
		that.writeError(w, err, viewFor(state, playerID))
		return
	}

	that.writeJSON(w, http.StatusOK, state.ViewFor(playerID))
}

func (that *handlers) LeaveGame(w http.ResponseWriter, r *http.Request) {
	playerID := r.Header.Get(playerHeader)
	if playerID == "" {
		that.writeError(w, errPlayerRequired, nil)
		return
	}

	state, err := that.gameUseCase.LeaveGame(r.Context(), chi.URLParam(r, "areaID"), chi.URLParam(r, "gameID"), playerID)
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, state.ViewFor(playerID))
}

func (that *handlers) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := that.gameUseCase.GetState(r.Context(), chi.URLParam(r, "areaID"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, state.ViewFor(r.Header.Get(playerHeader)))
}

func (that *handlers) History(w http.ResponseWriter, r *http.Request) {
	results, err := that.gameUseCase.History(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		that.writeError(w, err, nil)
		return
	}

	that.writeJSON(w, http.StatusOK, results)
}

func (that *handlers) CloseArea(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.CloseArea(r.Context(), chi.URLParam(r, "areaID")); err != nil {
		that.writeError(w, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) writeError(w http.ResponseWriter, err error, state *entity.QuantumState) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), State: state})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrAreaNotFound):
		return http.StatusNotFound
	case errors.Is(err, errPlayerRequired),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidCommand):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrAlreadyJoined),
		errors.Is(err, apperror.ErrGameFull),
		errors.Is(err, apperror.ErrGameNotInProgress),
		errors.Is(err, apperror.ErrGameIDMismatch),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func viewFor(state *entity.QuantumState, playerID string) *entity.QuantumState {
	if state == nil {
		return nil
	}

	return state.ViewFor(playerID)
}
