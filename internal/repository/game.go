package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/quantum-tictactoe-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, state *entity.QuantumState) error
	GetByID(ctx context.Context, areaID string) (*entity.QuantumState, error)
	DeleteByID(ctx context.Context, areaID string) error
}

// dbGame keeps the latest snapshot of each area in redis.
type dbGame struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGameRepository(client *redis.Client, ttl time.Duration) GameRepository {
	return &dbGame{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, state *entity.QuantumState) error {
	gameJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	err = that.client.Set(ctx, gameKey(state.AreaID), gameJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, areaID string) (*entity.QuantumState, error) {
	response, err := that.client.Get(ctx, gameKey(areaID)).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.QuantumState{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.QuantumState{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.QuantumState
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.QuantumState{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, areaID string) error {
	deleted, err := that.client.Del(ctx, gameKey(areaID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

func gameKey(areaID string) string {
	return "game:" + areaID
}
