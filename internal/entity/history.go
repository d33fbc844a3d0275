package entity

import "time"

// GameResult is the recorded outcome of a finished match.
type GameResult struct {
	GameID     string    `json:"game_id"`
	AreaID     string    `json:"area_id"`
	X          string    `json:"x"`
	O          string    `json:"o"`
	XScore     int       `json:"x_score"`
	OScore     int       `json:"o_score"`
	Winner     string    `json:"winner,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewGameResult - builds the result record of a finished match.
func NewGameResult(state *QuantumState, finishedAt time.Time) *GameResult {
	return &GameResult{
		GameID:     state.GameID,
		AreaID:     state.AreaID,
		X:          state.X,
		O:          state.O,
		XScore:     state.XScore,
		OScore:     state.OScore,
		Winner:     state.Winner,
		FinishedAt: finishedAt,
	}
}
