package entity

type Player struct {
	ID     string `json:"id"`
	Mark   Mark   `json:"mark,omitempty"`
	AreaID string `json:"area_id,omitempty"`
	GameID string `json:"game_id,omitempty"`
}
