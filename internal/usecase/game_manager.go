package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/apperror"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/area"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/repository"
)

const defaultHistoryLimit = 50

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, state *entity.QuantumState) error
	GetByID(ctx context.Context, areaID string) (*entity.QuantumState, error)
	DeleteByID(ctx context.Context, areaID string) error
}

type historyRepo interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListByPlayer(ctx context.Context, playerID string) ([]entity.GameResult, error)
	List(ctx context.Context, limit int) ([]entity.GameResult, error)
}

// GameManager dispatches player commands to the game areas and keeps the storages
// in sync with them.
type GameManager struct {
	logger *slog.Logger

	areas       *area.Registry
	gameRepo    gameRepo
	historyRepo historyRepo
}

func NewGameManager(logger *slog.Logger, areas *area.Registry, gameRepo gameRepo, historyRepo historyRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		areas:       areas,
		gameRepo:    gameRepo,
		historyRepo: historyRepo,
	}
}

func (that *GameManager) JoinGame(ctx context.Context, areaID, playerID string) (*entity.QuantumState, error) {
	log := that.logger.With("method", "JoinGame", "areaID", areaID, "playerID", playerID)

	result, err := that.areas.GetOrCreate(areaID).Join(playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to join area: %w", err)
	}

	that.stateUpdated(ctx, result)

	log.Info("player joined", "gameID", result.State.GameID, "status", result.State.Status)

	return result.State, nil
}

// MakeTurn - applies a move. A collision returns both the new state and ErrCellOccupied.
func (that *GameManager) MakeTurn(ctx context.Context, areaID, gameID, playerID string, move entity.QuantumMove) (*entity.QuantumState, error) {
	log := that.logger.With("method", "MakeTurn", "areaID", areaID, "gameID", gameID, "playerID", playerID)

	existingArea, err := that.areas.Get(areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get area: %w", err)
	}

	result, moveErr := existingArea.Move(gameID, playerID, move)
	if result == nil {
		return nil, fmt.Errorf("failed to make turn: %w", moveErr)
	}

	that.stateUpdated(ctx, result)

	if errors.Is(moveErr, apperror.ErrCellOccupied) {
		log.Info("collision", "board", move.Board, "row", move.Row, "col", move.Col)

		return result.State, fmt.Errorf("failed to make turn: %w", moveErr)
	}

	return result.State, nil
}

func (that *GameManager) LeaveGame(ctx context.Context, areaID, gameID, playerID string) (*entity.QuantumState, error) {
	log := that.logger.With("method", "LeaveGame", "areaID", areaID, "gameID", gameID, "playerID", playerID)

	existingArea, err := that.areas.Get(areaID)
	if err != nil {
		return nil, fmt.Errorf("failed to get area: %w", err)
	}

	result, err := existingArea.Leave(gameID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to leave game: %w", err)
	}

	that.stateUpdated(ctx, result)

	log.Info("player left", "status", result.State.Status)

	return result.State, nil
}

// GetState - returns the state of the area, falling back to the stored snapshot.
func (that *GameManager) GetState(ctx context.Context, areaID string) (*entity.QuantumState, error) {
	if existingArea, err := that.areas.Get(areaID); err == nil {
		if state := existingArea.Snapshot(); state != nil {
			return state, nil
		}
	}

	state, err := that.gameRepo.GetByID(ctx, areaID)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("%w: %s", apperror.ErrAreaNotFound, areaID)
		}

		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return state, nil
}

// History - returns the finished games of the player, or the latest games when playerID is empty.
func (that *GameManager) History(ctx context.Context, playerID string) ([]entity.GameResult, error) {
	var (
		results []entity.GameResult
		err     error
	)

	if playerID == "" {
		results, err = that.historyRepo.List(ctx, defaultHistoryLimit)
	} else {
		results, err = that.historyRepo.ListByPlayer(ctx, playerID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return results, nil
}

// CloseArea - drops the area and its stored snapshot.
func (that *GameManager) CloseArea(ctx context.Context, areaID string) error {
	that.areas.Remove(areaID)

	if err := that.gameRepo.DeleteByID(ctx, areaID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("area closed", "method", "CloseArea", "areaID", areaID, "openAreas", that.areas.Len())

	return nil
}

// stateUpdated - mirrors the area into the storages. The area is the source of truth, so a
// storage failure is logged and the command still succeeds.
func (that *GameManager) stateUpdated(ctx context.Context, result *area.Result) {
	log := that.logger.With("method", "stateUpdated", "areaID", result.State.AreaID, "gameID", result.State.GameID)

	if err := that.gameRepo.CreateOrUpdate(ctx, result.State); err != nil {
		log.Error("failed to update game snapshot", "error", err)
	}

	if result.Finished == nil {
		return
	}

	if err := that.historyRepo.Save(ctx, result.Finished); err != nil {
		log.Error("failed to save game result", "error", err)
		return
	}

	log.Info("game finished",
		"winner", result.Finished.Winner,
		"xScore", result.Finished.XScore,
		"oScore", result.Finished.OScore,
	)
}
