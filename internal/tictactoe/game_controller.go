package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

const markTie entity.Mark = "-"

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move is a placement accepted by a single board.
type Move struct {
	PlayerID string
	Row      int
	Col      int
	Mark     entity.Mark
}

// Game is a single 3x3 board with two local seats. It does not enforce turn order,
// the caller owns that.
type Game struct {
	board  [entity.GridSize * entity.GridSize]entity.Mark
	x      string
	o      string
	moves  []Move
	status entity.Status
	winner string
}

func NewGame() *Game {
	return &Game{
		status: entity.StatusWaiting,
	}
}

// Join - seats the player at the first open seat, X before O.
func (that *Game) Join(playerID string) error {
	if that.x == playerID || that.o == playerID {
		return apperror.ErrAlreadyJoined
	}

	switch {
	case that.x == "":
		that.x = playerID
	case that.o == "":
		that.o = playerID
	default:
		return apperror.ErrGameFull
	}

	if that.x != "" && that.o != "" {
		that.status = entity.StatusInProgress
	}

	return nil
}

// Leave - removes the player; an in-progress board is forfeited to the other seat.
func (that *Game) Leave(playerID string) error {
	if playerID == "" || (that.x != playerID && that.o != playerID) {
		return apperror.ErrNotInGame
	}

	switch that.status {
	case entity.StatusWaiting:
		if that.x == playerID {
			that.x = ""
		} else {
			that.o = ""
		}
	case entity.StatusInProgress:
		that.status = entity.StatusOver
		if that.x == playerID {
			that.winner = that.o
		} else {
			that.winner = that.x
		}
	case entity.StatusOver:
	}

	return nil
}

// ApplyMove - places mark at (row, col) and re-evaluates the board.
func (that *Game) ApplyMove(playerID string, row, col int, mark entity.Mark) error {
	if that.status != entity.StatusInProgress {
		return apperror.ErrGameNotInProgress
	}

	cell, err := cellIndex(row, col)
	if err != nil {
		return err
	}

	if that.board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.board[cell] = mark
	that.moves = append(that.moves, Move{PlayerID: playerID, Row: row, Col: col, Mark: mark})

	that.updateGameStatus()

	return nil
}

// Cell - returns the mark stored at (row, col).
func (that *Game) Cell(row, col int) (entity.Mark, error) {
	cell, err := cellIndex(row, col)
	if err != nil {
		return entity.EmptyCell, err
	}

	return that.board[cell], nil
}

func (that *Game) Grid() entity.Grid {
	var grid entity.Grid
	for i, mark := range that.board {
		grid[i/entity.GridSize][i%entity.GridSize] = mark
	}

	return grid
}

func (that *Game) Status() entity.Status {
	return that.status
}

func (that *Game) Winner() string {
	return that.winner
}

func (that *Game) MoveCount() int {
	return len(that.moves)
}

func (that *Game) Moves() []Move {
	moves := make([]Move, len(that.moves))
	copy(moves, that.moves)

	return moves
}

func (that *Game) IsOver() bool {
	return that.status == entity.StatusOver
}

// updateGameStatus - checks the board after a placement.
func (that *Game) updateGameStatus() {
	switch result := checkGameStatus(that.board); result {
	case entity.MarkX:
		that.winner = that.x
		that.status = entity.StatusOver
	case entity.MarkO:
		that.winner = that.o
		that.status = entity.StatusOver
	case markTie:
		that.status = entity.StatusOver
	}
}

func cellIndex(row, col int) (int, error) {
	if row < 0 || row >= entity.GridSize || col < 0 || col >= entity.GridSize {
		return 0, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	return row*entity.GridSize + col, nil
}

func checkGameStatus(board [entity.GridSize * entity.GridSize]entity.Mark) entity.Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.EmptyCell
		}
	}

	return markTie
}
