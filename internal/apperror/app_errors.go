package apperror

import "errors"

var (
	ErrAlreadyJoined     = errors.New("player is already in the game")
	ErrGameFull          = errors.New("game is full")
	ErrNotInGame         = errors.New("player is not in the game")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrGameIDMismatch    = errors.New("game id mismatch")
	ErrAreaNotFound      = errors.New("area not found")
	ErrInvalidCommand    = errors.New("invalid command")
)
