package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/pkg"
)

var (
	errPlayerRequired = errors.New("player is required")
	errGameRequired   = errors.New("game is required")
	errMoveRequired   = errors.New("move is required")
)

func (that *Server) handleConnect(ctx context.Context, c *client, payload *Payload) error {
	log := that.logger.With("method", "handleConnect")

	playerID := pkg.GenerateNewSessionID()
	if payload.Player != nil && payload.Player.ID != "" {
		playerID = payload.Player.ID
	}

	that.register(c, playerID)

	log = log.With("playerID", playerID, "areaID", c.areaID)

	state, err := that.gameUseCase.GetState(ctx, c.areaID)
	if err != nil && !errors.Is(err, apperror.ErrAreaNotFound) {
		log.Error("failed to get game", "error", err)
		that.sendError(ctx, c, actionConnect, err)

		return nil
	}

	resp := Payload{Player: &entity.Player{ID: playerID, AreaID: c.areaID}}
	if state != nil {
		resp = payloadFor(playerID, state)
	}

	if err = that.sendMessage(ctx, c, actionConnect, resp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player")

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, c *client, payload *Payload) error {
	log := that.logger.With("method", "handleJoinGame")

	playerID, err := that.identify(c, payload)
	if err != nil {
		that.sendError(ctx, c, actionGameJoin, err)
		return nil
	}

	log = log.With("playerID", playerID, "areaID", c.areaID)

	state, err := that.gameUseCase.JoinGame(ctx, c.areaID, playerID)
	if err != nil {
		log.Info("failed to join game", "error", err)
		that.sendError(ctx, c, actionGameJoin, err)

		return nil
	}

	that.broadcast(ctx, actionGameJoin, state)

	log.Info("Player joined game", "gameID", state.GameID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, payload *Payload) error {
	log := that.logger.With("method", "handleGameTurn")

	playerID, err := that.identify(c, payload)
	if err != nil {
		that.sendError(ctx, c, actionGameTurn, err)
		return nil
	}

	if payload.Game == nil || payload.Game.GameID == "" {
		that.sendError(ctx, c, actionGameTurn, errGameRequired)
		return nil
	}

	if payload.Move == nil {
		that.sendError(ctx, c, actionGameTurn, errMoveRequired)
		return nil
	}

	log = log.With("playerID", playerID, "areaID", c.areaID, "gameID", payload.Game.GameID)

	state, err := that.gameUseCase.MakeTurn(ctx, c.areaID, payload.Game.GameID, playerID, *payload.Move)
	if state != nil {
		that.broadcast(ctx, actionGameTurn, state)
	}

	if err != nil {
		log.Info("turn rejected", "error", err)
		that.sendError(ctx, c, actionGameTurn, err)

		return nil
	}

	log.Info("Player made a turn")

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, c *client, payload *Payload) error {
	log := that.logger.With("method", "handleGameLeave")

	playerID, err := that.identify(c, payload)
	if err != nil {
		that.sendError(ctx, c, actionGameLeave, err)
		return nil
	}

	if payload.Game == nil || payload.Game.GameID == "" {
		that.sendError(ctx, c, actionGameLeave, errGameRequired)
		return nil
	}

	state, err := that.gameUseCase.LeaveGame(ctx, c.areaID, payload.Game.GameID, playerID)
	if err != nil {
		log.Info("failed to leave game", "error", err)
		that.sendError(ctx, c, actionGameLeave, err)

		return nil
	}

	that.broadcast(ctx, actionGameLeave, state)

	log.Info("Player leaving", "playerID", playerID, "gameID", state.GameID)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, c *client, _ *Payload) error {
	state, err := that.gameUseCase.GetState(ctx, c.areaID)
	if err != nil {
		that.sendError(ctx, c, actionGameState, err)
		return nil
	}

	if err = that.sendMessage(ctx, c, actionGameState, payloadFor(c.playerID, state)); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// handleOpponentOut - forfeits the match of a player whose socket did not come back.
func (that *Server) handleOpponentOut(ctx context.Context, areaID, playerID string) {
	log := that.logger.With("method", "handleOpponentOut", "areaID", areaID, "playerID", playerID)

	state, err := that.gameUseCase.GetState(ctx, areaID)
	if err != nil {
		log.Info("no game to leave", "error", err)
		return
	}

	if state.IsOver() || state.MarkOf(playerID) == entity.EmptyCell {
		return
	}

	state, err = that.gameUseCase.LeaveGame(ctx, areaID, state.GameID, playerID)
	if err != nil {
		log.Error("failed to leave game", "error", err)
		return
	}

	that.broadcast(ctx, actionGameLeave, state)

	log.Info("handled opponent out", "gameID", state.GameID)
}

// identify - resolves the acting player from the payload, falling back to the connected one.
func (that *Server) identify(c *client, payload *Payload) (string, error) {
	if payload.Player != nil && payload.Player.ID != "" {
		if payload.Player.ID != c.playerID {
			that.register(c, payload.Player.ID)
		}

		return payload.Player.ID, nil
	}

	if c.playerID == "" {
		return "", errPlayerRequired
	}

	return c.playerID, nil
}
