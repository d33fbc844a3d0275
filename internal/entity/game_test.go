package entity

import (
	"testing"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardID_Index(t *testing.T) {
	t.Run("Returns the fixed position of each board", func(t *testing.T) {
		for want, id := range Boards {
			got, err := id.Index()

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Returns ErrInvalidBoard for an unknown label", func(t *testing.T) {
		// When: an unknown board label is resolved
		_, err := BoardID("D").Index()

		// Then: ErrInvalidBoard should be returned
		require.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, MarkO, MarkX.Opponent())
	assert.Equal(t, MarkX, MarkO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestQuantumState_WhoseTurn(t *testing.T) {
	t.Run("Returns nobody when the game is not in progress", func(t *testing.T) {
		// Given: a waiting game
		state := &QuantumState{X: "p1", Status: StatusWaiting}

		// Then: there should be no player to move
		assert.Empty(t, state.WhoseTurn())
	})

	t.Run("Alternates with the length of the move log", func(t *testing.T) {
		// Given: an in-progress game without moves
		state := &QuantumState{X: "p1", O: "p2", Status: StatusInProgress}

		// Then: X moves first
		assert.Equal(t, "p1", state.WhoseTurn())

		// When: one turn was consumed by a collision
		state.Moves = append(state.Moves, QuantumMove{Board: BoardA, Mark: MarkX, Collision: true})

		// Then: O moves next
		assert.Equal(t, "p2", state.WhoseTurn())
	})
}

func TestQuantumState_MarkOf(t *testing.T) {
	state := &QuantumState{X: "p1", O: "p2"}

	assert.Equal(t, MarkX, state.MarkOf("p1"))
	assert.Equal(t, MarkO, state.MarkOf("p2"))
	assert.Equal(t, EmptyCell, state.MarkOf("p3"))
	assert.Equal(t, EmptyCell, (&QuantumState{}).MarkOf(""))
}

func TestQuantumState_ViewFor(t *testing.T) {
	newState := func() *QuantumState {
		state := &QuantumState{X: "p1", O: "p2", Status: StatusInProgress}
		state.Boards[0][0][0] = MarkX
		state.Boards[0][1][1] = MarkO
		state.Boards[1][2][2] = MarkO
		state.Visible[1][2][2] = true
		state.Moves = []QuantumMove{
			{Board: BoardA, Row: 0, Col: 0, Mark: MarkX},
			{Board: BoardB, Row: 2, Col: 2, Mark: MarkO},
			{Board: BoardB, Row: 2, Col: 2, Mark: MarkX, Collision: true},
			{Board: BoardA, Row: 1, Col: 1, Mark: MarkO},
		}
		return state
	}

	t.Run("Shows own marks and revealed cells only", func(t *testing.T) {
		// Given: a state with marks of both players
		state := newState()

		// When: X requests its view
		view := state.ViewFor("p1")

		// Then: X's own mark and the revealed O cell are shown, the hidden O cell is not
		assert.Equal(t, MarkX, view.Boards[0][0][0])
		assert.Equal(t, EmptyCell, view.Boards[0][1][1])
		assert.Equal(t, MarkO, view.Boards[1][2][2])
	})

	t.Run("Keeps the move count but hides opponent placements", func(t *testing.T) {
		// Given: a state with four consumed turns
		state := newState()

		// When: X requests its view
		view := state.ViewFor("p1")

		// Then: the turn order is still derivable
		require.Len(t, view.Moves, 4)
		assert.Equal(t, state.WhoseTurn(), view.WhoseTurn())
		assert.Equal(t, QuantumMove{Mark: MarkO, Hidden: true}, view.Moves[1])
		assert.Equal(t, QuantumMove{Mark: MarkO, Hidden: true}, view.Moves[3])
		assert.True(t, view.Moves[2].Collision)
	})

	t.Run("Does not modify the original state", func(t *testing.T) {
		// Given: a state
		state := newState()

		// When: a spectator requests a view
		view := state.ViewFor("spectator")

		// Then: the spectator only sees revealed cells while the source stays intact
		assert.Equal(t, EmptyCell, view.Boards[0][0][0])
		assert.Equal(t, MarkO, view.Boards[1][2][2])
		assert.Equal(t, MarkX, state.Boards[0][0][0])
		assert.False(t, state.Moves[1].Hidden)
	})
}
