// Package area hosts quantum matches for one interactable game area. An area owns at
// most one match at a time and serializes every command on it.
package area

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/pkg"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/quantum"
)

// Result is the outcome of a command on the area.
type Result struct {
	State *entity.QuantumState
	// Finished is set by the command that moved the match to OVER.
	Finished *entity.GameResult
}

type Area struct {
	mu sync.Mutex

	id   string
	game *quantum.Game
	// recorded is the id of the last match whose result was reported.
	recorded string

	newID func() string
	now   func() time.Time
}

func New(id string) *Area {
	return &Area{
		id:    id,
		newID: pkg.GenerateGameID,
		now:   time.Now,
	}
}

func (that *Area) ID() string {
	return that.id
}

// Join - joins the current match, starting a new one if there is none or it is over.
func (that *Area) Join(playerID string) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil || that.game.IsOver() {
		that.game = quantum.NewGame(that.newID())
	}

	if err := that.game.Join(playerID); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	return that.stateUpdated(), nil
}

// Move - applies a move to the match identified by gameID.
//
// On a collision both the result and ErrCellOccupied are returned, the state changed.
func (that *Area) Move(gameID, playerID string, move entity.QuantumMove) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.checkGame(gameID); err != nil {
		return nil, err
	}

	if move.Mark != entity.EmptyCell && move.Mark != entity.MarkX && move.Mark != entity.MarkO {
		return nil, fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidCommand, move.Mark)
	}

	movesBefore := len(that.game.State().Moves)

	if err := that.game.ApplyMove(playerID, move.Board, move.Row, move.Col); err != nil {
		if errors.Is(err, apperror.ErrCellOccupied) && len(that.game.State().Moves) > movesBefore {
			return that.stateUpdated(), fmt.Errorf("failed to apply move: %w", err)
		}

		return nil, fmt.Errorf("failed to apply move: %w", err)
	}

	return that.stateUpdated(), nil
}

// Leave - removes the player from the match identified by gameID.
func (that *Area) Leave(gameID, playerID string) (*Result, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.checkGame(gameID); err != nil {
		return nil, err
	}

	if err := that.game.Leave(playerID); err != nil {
		return nil, fmt.Errorf("failed to leave game: %w", err)
	}

	return that.stateUpdated(), nil
}

// Snapshot - returns the state of the current match, nil if no match was ever started.
func (that *Area) Snapshot() *entity.QuantumState {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil {
		return nil
	}

	return that.state()
}

func (that *Area) checkGame(gameID string) error {
	if that.game == nil {
		return apperror.ErrGameNotInProgress
	}

	if that.game.ID() != gameID {
		return fmt.Errorf("%w: %s", apperror.ErrGameIDMismatch, gameID)
	}

	return nil
}

// stateUpdated - records the result of a match the first time it is seen over.
func (that *Area) stateUpdated() *Result {
	state := that.state()
	result := &Result{State: state}

	if !state.IsOver() || state.X == "" || state.O == "" {
		return result
	}

	if that.recorded == state.GameID {
		return result
	}

	that.recorded = state.GameID
	result.Finished = entity.NewGameResult(state, that.now())

	return result
}

func (that *Area) state() *entity.QuantumState {
	state := that.game.State()
	state.AreaID = that.id
	state.Turn = state.WhoseTurn()

	return state
}
