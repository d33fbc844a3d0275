package entity

import (
	"fmt"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
)

type (
	BoardID string
	Mark    string
	Status  string
)

const (
	BoardA BoardID = "A"
	BoardB BoardID = "B"
	BoardC BoardID = "C"
)

const (
	MarkX     Mark = "X"
	MarkO     Mark = "O"
	EmptyCell Mark = ""
)

const (
	StatusWaiting    Status = "WAITING_TO_START"
	StatusInProgress Status = "IN_PROGRESS"
	StatusOver       Status = "OVER"
)

const (
	BoardCount = 3
	GridSize   = 3
)

// Boards lists the sub-boards of a match in their fixed order.
var Boards = [BoardCount]BoardID{BoardA, BoardB, BoardC}

type (
	Grid       [GridSize][GridSize]Mark
	Visibility [GridSize][GridSize]bool
)

// Index - returns the position of the board in Boards.
func (that BoardID) Index() (int, error) {
	for i, id := range Boards {
		if id == that {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidBoard, string(that))
}

func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

// QuantumMove is one consumed quantum turn. Collision marks a turn that hit an
// opponent cell and placed nothing. Hidden moves only appear in player views.
type QuantumMove struct {
	Board     BoardID `json:"board,omitempty"`
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Mark      Mark    `json:"mark"`
	Collision bool    `json:"collision,omitempty"`
	Hidden    bool    `json:"hidden,omitempty"`
}

// QuantumState is a point-in-time snapshot of a match.
type QuantumState struct {
	AreaID string `json:"area_id,omitempty"`
	GameID string `json:"game_id"`

	X      string `json:"x,omitempty"`
	O      string `json:"o,omitempty"`
	Status Status `json:"status"`

	// Turn is the id of the player expected to move, filled in by the area.
	Turn string `json:"whose_turn,omitempty"`

	Moves       []QuantumMove          `json:"moves"`
	Boards      [BoardCount]Grid       `json:"boards"`
	Visible     [BoardCount]Visibility `json:"publicly_visible"`
	BoardStatus [BoardCount]Status     `json:"board_status"`
	BoardWinner [BoardCount]string     `json:"board_winner"`

	XScore int    `json:"x_score"`
	OScore int    `json:"o_score"`
	Winner string `json:"winner,omitempty"`
}

func (that *QuantumState) IsOver() bool {
	return that.Status == StatusOver
}

func (that *QuantumState) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// MarkOf - returns the mark of the seat held by playerID, or EmptyCell for spectators.
func (that *QuantumState) MarkOf(playerID string) Mark {
	switch {
	case playerID == "":
		return EmptyCell
	case playerID == that.X:
		return MarkX
	case playerID == that.O:
		return MarkO
	default:
		return EmptyCell
	}
}

// WhoseTurn - returns the id of the player expected to move next.
func (that *QuantumState) WhoseTurn() string {
	if !that.IsInProgress() {
		return ""
	}

	if len(that.Moves)%2 == 0 {
		return that.X
	}

	return that.O
}

// ViewFor - returns a copy of the state in which opponent marks are hidden unless revealed.
func (that *QuantumState) ViewFor(playerID string) *QuantumState {
	view := *that

	own := that.MarkOf(playerID)
	for b := range that.Boards {
		for r := range that.Boards[b] {
			for c, mark := range that.Boards[b][r] {
				if mark != own && !that.Visible[b][r][c] {
					view.Boards[b][r][c] = EmptyCell
				}
			}
		}
	}

	view.Moves = make([]QuantumMove, 0, len(that.Moves))
	for _, move := range that.Moves {
		if move.Mark != own && !move.Collision {
			move = QuantumMove{Mark: move.Mark, Hidden: true}
		}
		view.Moves = append(view.Moves, move)
	}

	return &view
}
