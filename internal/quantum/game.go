// Package quantum implements the three-board quantum variant of tic-tac-toe.
//
// A match owns three independent boards. Both players share one turn sequence that
// is derived from the length of the match move log. Placing a mark on a cell the
// opponent already holds is a collision: nothing is placed, the cell becomes publicly
// visible and the turn is still consumed.
package quantum

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/tictactoe"
)

type Game struct {
	id     string
	boards [entity.BoardCount]*tictactoe.Game

	x       string
	o       string
	status  entity.Status
	moves   []entity.QuantumMove
	visible [entity.BoardCount]entity.Visibility
	xScore  int
	oScore  int
	winner  string
}

func NewGame(id string) *Game {
	game := &Game{id: id}
	game.reset()

	return game
}

func (that *Game) ID() string {
	return that.id
}

// Join - seats the player on all three boards and at the first open quantum seat.
func (that *Game) Join(playerID string) error {
	if playerID == "" {
		return fmt.Errorf("%w: empty player id", apperror.ErrInvalidCommand)
	}

	if that.x == playerID || that.o == playerID {
		return apperror.ErrAlreadyJoined
	}

	if that.x != "" && that.o != "" {
		return apperror.ErrGameFull
	}

	for i, board := range that.boards {
		if err := board.Join(playerID); err != nil {
			return fmt.Errorf("failed to join board %s: %w", entity.Boards[i], err)
		}
	}

	if that.x == "" {
		that.x = playerID
	} else {
		that.o = playerID
	}

	if that.x != "" && that.o != "" {
		that.status = entity.StatusInProgress
	}

	return nil
}

// Leave - removes the player. The sole seated player resets the match, otherwise the
// match is forfeited to the remaining player.
func (that *Game) Leave(playerID string) error {
	if playerID == "" || (that.x != playerID && that.o != playerID) {
		return apperror.ErrNotInGame
	}

	for i, board := range that.boards {
		if err := board.Leave(playerID); err != nil {
			return fmt.Errorf("failed to leave board %s: %w", entity.Boards[i], err)
		}
	}

	remaining := that.seatOf(that.markOf(playerID).Opponent())

	if remaining == "" {
		that.x, that.o = "", ""
		that.reset()

		return nil
	}

	that.checkForWins()

	if that.status == entity.StatusOver {
		return nil
	}

	that.status = entity.StatusOver
	that.winner = remaining

	return nil
}

// ApplyMove - plays the player's mark on the given board cell.
//
// A collision with an opponent mark returns ErrCellOccupied after the match state has
// changed: the cell is revealed and the turn is consumed.
func (that *Game) ApplyMove(playerID string, boardID entity.BoardID, row, col int) error {
	if that.status != entity.StatusInProgress {
		return apperror.ErrGameNotInProgress
	}

	index, err := boardID.Index()
	if err != nil {
		return err
	}

	board := that.boards[index]
	if board.IsOver() {
		return fmt.Errorf("%w: board %s is over", apperror.ErrGameNotInProgress, boardID)
	}

	if playerID == "" || playerID != that.whoseTurn() {
		return apperror.ErrNotYourTurn
	}

	mark := that.markOf(playerID)
	move := entity.QuantumMove{Board: boardID, Row: row, Col: col, Mark: mark}

	err = board.ApplyMove(playerID, row, col, mark)
	switch {
	case err == nil:
		that.moves = append(that.moves, move)
	case errors.Is(err, apperror.ErrCellOccupied):
		existing, cellErr := board.Cell(row, col)
		if cellErr != nil {
			return cellErr
		}

		if existing == mark {
			return err
		}

		that.visible[index][row][col] = true
		move.Collision = true
		that.moves = append(that.moves, move)

		that.checkForWins()
		that.checkForGameEnding()

		return err
	default:
		return err
	}

	that.checkForWins()
	that.checkForGameEnding()

	return nil
}

// State - returns a snapshot of the match.
func (that *Game) State() *entity.QuantumState {
	state := &entity.QuantumState{
		GameID:  that.id,
		X:       that.x,
		O:       that.o,
		Status:  that.status,
		Moves:   make([]entity.QuantumMove, len(that.moves)),
		Visible: that.visible,
		XScore:  that.xScore,
		OScore:  that.oScore,
		Winner:  that.winner,
	}
	copy(state.Moves, that.moves)

	for i, board := range that.boards {
		state.Boards[i] = board.Grid()
		state.BoardStatus[i] = board.Status()
		state.BoardWinner[i] = board.Winner()
	}

	return state
}

func (that *Game) Status() entity.Status {
	return that.status
}

func (that *Game) Winner() string {
	return that.winner
}

func (that *Game) IsOver() bool {
	return that.status == entity.StatusOver
}

func (that *Game) whoseTurn() string {
	if len(that.moves)%2 == 0 {
		return that.x
	}

	return that.o
}

func (that *Game) seatOf(mark entity.Mark) string {
	if mark == entity.MarkX {
		return that.x
	}

	return that.o
}

func (that *Game) markOf(playerID string) entity.Mark {
	if playerID == that.x {
		return entity.MarkX
	}

	return entity.MarkO
}

// checkForWins - recounts the boards won by each seat.
func (that *Game) checkForWins() {
	that.xScore, that.oScore = 0, 0

	for _, board := range that.boards {
		switch winner := board.Winner(); {
		case winner == "":
		case winner == that.x:
			that.xScore++
		case winner == that.o:
			that.oScore++
		}
	}
}

// checkForGameEnding - closes the match once every board is over.
func (that *Game) checkForGameEnding() {
	for _, board := range that.boards {
		if !board.IsOver() {
			return
		}
	}

	that.status = entity.StatusOver

	switch {
	case that.xScore > that.oScore:
		that.winner = that.x
	case that.oScore > that.xScore:
		that.winner = that.o
	default:
		that.winner = ""
	}
}

func (that *Game) reset() {
	for i := range that.boards {
		that.boards[i] = tictactoe.NewGame()
	}

	that.status = entity.StatusWaiting
	that.moves = nil
	that.visible = [entity.BoardCount]entity.Visibility{}
	that.xScore, that.oScore = 0, 0
	that.winner = ""
}
