package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameJoin  = "game:join"
	actionGameTurn  = "game:turn"
	actionGameLeave = "game:leave"
	actionGameState = "game:state"
	actionError     = "error"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player       `json:"player,omitempty"`
	Game   *entity.QuantumState `json:"game,omitempty"`
	Move   *entity.QuantumMove  `json:"move,omitempty"`
	Error  string               `json:"error,omitempty"`
}
