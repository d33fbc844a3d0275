package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStartedGame(t *testing.T) *Game {
	t.Helper()

	game := NewGame()
	require.NoError(t, game.Join("p1"))
	require.NoError(t, game.Join("p2"))

	return game
}

func TestNewGame(t *testing.T) {
	// When: a new board is created
	game := NewGame()

	// Then: it should be empty and waiting for players
	assert.Equal(t, entity.StatusWaiting, game.Status())
	assert.Equal(t, entity.Grid{}, game.Grid())
	assert.Empty(t, game.Winner())
	assert.Zero(t, game.MoveCount())
}

func TestGame_Join(t *testing.T) {
	t.Run("Seats X then O and starts the game", func(t *testing.T) {
		// Given: a new board
		game := NewGame()

		// When: the first player joins
		require.NoError(t, game.Join("p1"))

		// Then: the board still waits for the second player
		assert.Equal(t, entity.StatusWaiting, game.Status())

		// When: the second player joins
		require.NoError(t, game.Join("p2"))

		// Then: the board is in progress
		assert.Equal(t, entity.StatusInProgress, game.Status())
	})

	t.Run("Returns ErrAlreadyJoined for a seated player", func(t *testing.T) {
		// Given: a board with one player
		game := NewGame()
		require.NoError(t, game.Join("p1"))

		// When: the same player joins again
		err := game.Join("p1")

		// Then: ErrAlreadyJoined should be returned
		require.ErrorIs(t, err, apperror.ErrAlreadyJoined)
	})

	t.Run("Returns ErrGameFull when both seats are taken", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: a third player joins
		err := game.Join("p3")

		// Then: ErrGameFull should be returned
		require.ErrorIs(t, err, apperror.ErrGameFull)
	})
}

func TestGame_Leave(t *testing.T) {
	t.Run("Returns ErrNotInGame for an unknown player", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: a stranger leaves
		err := game.Leave("p3")

		// Then: ErrNotInGame should be returned
		require.ErrorIs(t, err, apperror.ErrNotInGame)
	})

	t.Run("Vacates the seat when the game has not started", func(t *testing.T) {
		// Given: a board with one player
		game := NewGame()
		require.NoError(t, game.Join("p1"))

		// When: the player leaves
		require.NoError(t, game.Leave("p1"))

		// Then: the seat is free again
		require.NoError(t, game.Join("p1"))
		assert.Equal(t, entity.StatusWaiting, game.Status())
	})

	t.Run("Forfeits an in-progress game to the remaining player", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: X leaves
		require.NoError(t, game.Leave("p1"))

		// Then: O wins the board
		assert.Equal(t, entity.StatusOver, game.Status())
		assert.Equal(t, "p2", game.Winner())
	})

	t.Run("Keeps the result of a finished game", func(t *testing.T) {
		// Given: a board won by X
		game := newStartedGame(t)
		for col := 0; col < 3; col++ {
			require.NoError(t, game.ApplyMove("p1", 0, col, entity.MarkX))
		}

		// When: X leaves afterwards
		require.NoError(t, game.Leave("p1"))

		// Then: X remains the winner
		assert.Equal(t, "p1", game.Winner())
	})
}

func TestGame_ApplyMove(t *testing.T) {
	t.Run("Places the mark", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: X plays the centre
		err := game.ApplyMove("p1", 1, 1, entity.MarkX)
		require.NoError(t, err)

		// Then: the mark is stored and recorded
		mark, err := game.Cell(1, 1)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, mark)
		assert.Equal(t, []Move{{PlayerID: "p1", Row: 1, Col: 1, Mark: entity.MarkX}}, game.Moves())
		assert.Equal(t, entity.StatusInProgress, game.Status())
	})

	t.Run("Does not enforce turn order", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: X plays twice in a row
		require.NoError(t, game.ApplyMove("p1", 0, 0, entity.MarkX))
		err := game.ApplyMove("p1", 0, 1, entity.MarkX)

		// Then: both placements are accepted
		require.NoError(t, err)
		assert.Equal(t, 2, game.MoveCount())
	})

	t.Run("Returns ErrGameNotInProgress before the game starts", func(t *testing.T) {
		// Given: a board with one player
		game := NewGame()
		require.NoError(t, game.Join("p1"))

		// When: the player moves
		err := game.ApplyMove("p1", 0, 0, entity.MarkX)

		// Then: ErrGameNotInProgress should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotInProgress)
	})

	t.Run("Returns ErrCellOccupied and keeps the board unchanged", func(t *testing.T) {
		// Given: a board where X holds the centre
		game := newStartedGame(t)
		require.NoError(t, game.ApplyMove("p1", 1, 1, entity.MarkX))

		// When: O plays the centre
		err := game.ApplyMove("p2", 1, 1, entity.MarkO)

		// Then: ErrCellOccupied should be returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		mark, _ := game.Cell(1, 1)
		assert.Equal(t, entity.MarkX, mark)
		assert.Equal(t, 1, game.MoveCount())
	})

	t.Run("Returns ErrInvalidCell out of range", func(t *testing.T) {
		game := newStartedGame(t)

		assert.ErrorIs(t, game.ApplyMove("p1", 3, 0, entity.MarkX), apperror.ErrInvalidCell)
		assert.ErrorIs(t, game.ApplyMove("p1", 0, -1, entity.MarkX), apperror.ErrInvalidCell)
	})

	t.Run("Ends the game with a winner on three in a row", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)

		// When: O fills the anti-diagonal
		require.NoError(t, game.ApplyMove("p2", 0, 2, entity.MarkO))
		require.NoError(t, game.ApplyMove("p2", 1, 1, entity.MarkO))
		require.NoError(t, game.ApplyMove("p2", 2, 0, entity.MarkO))

		// Then: O wins and the board is closed
		assert.Equal(t, entity.StatusOver, game.Status())
		assert.Equal(t, "p2", game.Winner())
		require.ErrorIs(t, game.ApplyMove("p1", 2, 2, entity.MarkX), apperror.ErrGameNotInProgress)
	})

	t.Run("Ends the game without a winner on a full board", func(t *testing.T) {
		// Given: a started board
		game := newStartedGame(t)
		board := [3][3]entity.Mark{
			{entity.MarkX, entity.MarkO, entity.MarkX},
			{entity.MarkX, entity.MarkO, entity.MarkO},
			{entity.MarkO, entity.MarkX, entity.MarkX},
		}

		// When: every cell is filled without a line
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				require.NoError(t, game.ApplyMove("p1", row, col, board[row][col]))
			}
		}

		// Then: the board is over with no winner
		assert.Equal(t, entity.StatusOver, game.Status())
		assert.Empty(t, game.Winner())
		assert.Equal(t, entity.Grid(board), game.Grid())
	})
}

func TestGame_checkGameStatus(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		board := [9]entity.Mark{entity.MarkX, entity.MarkO, "", entity.MarkX, entity.MarkO, "", entity.MarkX, "", ""}

		require.Equal(t, entity.MarkX, checkGameStatus(board))
	})

	t.Run("Ongoing Game", func(t *testing.T) {
		board := [9]entity.Mark{entity.MarkX, entity.MarkO, entity.MarkX, "", entity.MarkO, "", entity.MarkX, "", ""}

		require.Equal(t, entity.EmptyCell, checkGameStatus(board))
	})

	t.Run("Tie", func(t *testing.T) {
		board := [9]entity.Mark{entity.MarkO, entity.MarkX, entity.MarkO, entity.MarkO, entity.MarkX, entity.MarkX, entity.MarkX, entity.MarkO, entity.MarkX}

		assert.Equal(t, markTie, checkGameStatus(board))
	})
}
